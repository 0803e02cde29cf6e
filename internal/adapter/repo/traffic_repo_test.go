package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"viewcounter/internal/domain"
	"viewcounter/internal/infra"
	"viewcounter/internal/sqlinline"
)

type execCall struct {
	query string
	args  []any
}

type stubExecutor struct {
	calls   []execCall
	total   int64
	execErr error
	rowErr  error
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, execCall{query: query, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), s.execErr
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return stubRow{total: s.total, err: s.rowErr}
}

type stubRow struct {
	total int64
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	ptr, ok := dest[0].(*int64)
	if !ok {
		return errors.New("invalid dest")
	}
	*ptr = r.total
	return nil
}

var _ infra.SQLExecutor = (*stubExecutor)(nil)

func TestUpsertDaily(t *testing.T) {
	exec := &stubExecutor{}
	repo := NewTrafficRepository(exec)
	log := domain.MetricsLog{
		{Date: "2024-01-01", Count: 5, Uniques: domain.Uniques(2)},
		{Date: "2024-01-02", Count: 3},
	}

	if err := repo.UpsertDaily(context.Background(), "octo/widgets", log); err != nil {
		t.Fatalf("UpsertDaily error: %v", err)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 exec calls, got %d", len(exec.calls))
	}
	first := exec.calls[0]
	if first.query != sqlinline.QUpsertTrafficDaily {
		t.Fatalf("unexpected query %q", first.query)
	}
	if v, ok := first.args[0].(string); !ok || v != "octo/widgets" {
		t.Fatalf("expected repo argument, got %T %v", first.args[0], first.args[0])
	}
	if v, ok := first.args[1].(string); !ok || v != "2024-01-01" {
		t.Fatalf("expected date argument, got %T %v", first.args[1], first.args[1])
	}
	if u, ok := exec.calls[1].args[3].(*int); !ok || u != nil {
		t.Fatalf("unset uniques should be passed as nil, got %T %v", exec.calls[1].args[3], exec.calls[1].args[3])
	}
}

func TestUpsertDailyStopsOnError(t *testing.T) {
	exec := &stubExecutor{execErr: errors.New("connection reset")}
	repo := NewTrafficRepository(exec)
	log := domain.MetricsLog{{Date: "2024-01-01", Count: 1}, {Date: "2024-01-02", Count: 1}}

	if err := repo.UpsertDaily(context.Background(), "octo/widgets", log); err == nil {
		t.Fatal("expected error")
	}
	if len(exec.calls) != 1 {
		t.Fatalf("expected to stop after first failure, got %d calls", len(exec.calls))
	}
}

func TestEnsureSchema(t *testing.T) {
	exec := &stubExecutor{}
	if err := NewTrafficRepository(exec).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if len(exec.calls) != 1 || exec.calls[0].query != sqlinline.QEnsureTrafficDaily {
		t.Fatalf("unexpected calls %#v", exec.calls)
	}
}

func TestTotalViews(t *testing.T) {
	repo := NewTrafficRepository(&stubExecutor{total: 77})
	total, err := repo.TotalViews(context.Background(), "octo/widgets")
	if err != nil {
		t.Fatalf("TotalViews error: %v", err)
	}
	if total != 77 {
		t.Fatalf("expected 77, got %d", total)
	}
}

func TestTotalViewsNoRows(t *testing.T) {
	repo := NewTrafficRepository(&stubExecutor{rowErr: pgx.ErrNoRows})
	total, err := repo.TotalViews(context.Background(), "octo/widgets")
	if err != nil {
		t.Fatalf("TotalViews error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %d", total)
	}
}

func TestSQLMarkersAreValid(t *testing.T) {
	for _, q := range []string{sqlinline.QEnsureTrafficDaily, sqlinline.QUpsertTrafficDaily, sqlinline.QSelectTrafficTotal} {
		if _, _, err := infra.ExtractMarker(q); err != nil {
			t.Fatalf("invalid marker in %q: %v", q, err)
		}
	}
}
