package badge

import (
	"context"
	"fmt"
	"os"
	"time"

	"viewcounter/internal/infra"
)

// Report lists what a publish pass did with each Markdown file.
type Report struct {
	Updated   []string
	Unchanged []string
	Skipped   []string
}

// Publisher rewrites badge blocks under a document tree.
type Publisher struct {
	logger *infra.Logger
}

// NewPublisher returns a Publisher logging through logger.
func NewPublisher(logger *infra.Logger) *Publisher {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Publisher{logger: logger}
}

// Publish renders the badge for total and writes it into every Markdown file
// under root that carries the marker pair. Files without markers are never
// written.
func (p *Publisher) Publish(ctx context.Context, root string, total int, now time.Time) (Report, error) {
	var report Report
	paths, err := CollectMarkdown(root)
	if err != nil {
		return report, fmt.Errorf("badge: scan %s: %w", root, err)
	}
	block := RenderBlock(total, now)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return report, fmt.Errorf("badge: stat %s: %w", path, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return report, fmt.Errorf("badge: read %s: %w", path, err)
		}
		doc := string(raw)
		updated, ok := ReplaceBlock(doc, block)
		if !ok {
			p.logger.Debug().Str("file", path).Msg("badge: no badge markers, skipped")
			report.Skipped = append(report.Skipped, path)
			continue
		}
		if updated == doc {
			report.Unchanged = append(report.Unchanged, path)
			continue
		}
		if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
			return report, fmt.Errorf("badge: write %s: %w", path, err)
		}
		p.logger.Info().Str("file", path).Int("total", total).Msg("badge: updated visitor count")
		report.Updated = append(report.Updated, path)
	}
	return report, nil
}
