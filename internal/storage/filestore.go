package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"viewcounter/internal/domain"
	"viewcounter/internal/infra"
	"viewcounter/internal/metrics"
)

// LoadStatus describes how the persisted log was obtained.
type LoadStatus string

const (
	// LoadOK means the file held a valid record array.
	LoadOK LoadStatus = "ok"
	// LoadMissing means no file existed yet.
	LoadMissing LoadStatus = "missing"
	// LoadReset means the file existed but could not be used and the log
	// starts empty.
	LoadReset LoadStatus = "reset"
)

// FileStore persists the MetricsLog as a JSON array of daily records on the
// local filesystem.
type FileStore struct {
	path   string
	logger *infra.Logger
}

// NewFileStore initializes a FileStore for the file at path.
func NewFileStore(path string, logger *infra.Logger) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage: metrics file path is required")
	}
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &FileStore{path: filepath.Clean(path), logger: logger}, nil
}

// Path returns the configured metrics file.
func (s *FileStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the stored log. An absent file yields an empty log. A file that
// is not a JSON array of records, including the older single-object total
// shape, is discarded with a warning and also yields an empty log. Only I/O
// failures are returned as errors.
func (s *FileStore) Load(ctx context.Context) (domain.MetricsLog, LoadStatus, error) {
	if s == nil {
		return nil, "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Str("path", s.path).Msg("storage: metrics file not found, starting fresh")
		return domain.MetricsLog{}, LoadMissing, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("storage: read metrics file: %w", err)
	}

	log, reason := decodeLog(raw)
	if reason != "" {
		s.logger.Warn().Str("path", s.path).Str("reason", reason).Msg("storage: unusable metrics file, starting fresh")
		return domain.MetricsLog{}, LoadReset, nil
	}
	return log, LoadOK, nil
}

// Save writes the log through a temporary file in the same directory and
// renames it over the target so readers never observe a partial file.
func (s *FileStore) Save(ctx context.Context, log domain.MetricsLog) error {
	if s == nil {
		return errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if log == nil {
		log = domain.MetricsLog{}
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode metrics: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: ensure directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("storage: replace metrics file: %w", err)
	}
	s.logger.Debug().Str("path", s.path).Int("days", len(log)).Msg("storage: metrics saved")
	return nil
}

// decodeLog parses raw as a record array and normalizes its order. The
// returned reason is non-empty when the content cannot be used.
func decodeLog(raw []byte) (domain.MetricsLog, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, "empty file"
	}
	if trimmed[0] == '{' {
		return nil, "legacy totals object"
	}
	var log domain.MetricsLog
	if err := json.Unmarshal(trimmed, &log); err != nil {
		return nil, err.Error()
	}
	if log == nil {
		return nil, "null document"
	}
	normalized, err := metrics.Merge(log, nil)
	if err != nil {
		return nil, err.Error()
	}
	return normalized, ""
}
