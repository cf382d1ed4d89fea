package health

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/clusterdex/internal/db"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

type mockInspector struct {
	indexes map[string]int64
	asked   []string
}

func (m *mockInspector) IndexInfo(_ context.Context, name string) (*db.IndexInfo, error) {
	m.asked = append(m.asked, name)
	n, ok := m.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrIndexNotFound, name)
	}
	return &db.IndexInfo{Name: name, NumDocs: n}, nil
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}).WithCheck("embedding", &mockChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks["embedding"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}).WithCheck("embedding", &mockChecker{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks["embedding"])
	}
}

func TestCheck_OptionalDependencyError(t *testing.T) {
	svc := New(&mockDBPinger{}).WithCheck("embedding", &mockChecker{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding %q, got %q", CheckError, r.Checks["embedding"])
	}
}

func TestCheck_BothFailingStaysUnhealthy(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("down")}).WithCheck("embedding", &mockChecker{err: errors.New("down")})
	if r := svc.Check(context.Background()); r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}

func TestCheck_NilCheckerIgnored(t *testing.T) {
	svc := New(&mockDBPinger{}).WithCheck("embedding", nil)
	r := svc.Check(context.Background())

	if _, ok := r.Checks["embedding"]; ok {
		t.Error("nil checker must not be reported")
	}
	if len(r.Checks) != 1 {
		t.Errorf("expected only database check, got %v", r.Checks)
	}
}

func TestCheck_Timeout(t *testing.T) {
	slow := CheckerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc := New(&mockDBPinger{}).WithCheck("slow", slow).WithTimeout(10 * time.Millisecond)

	r := svc.Check(context.Background())
	if r.Checks["slow"] != CheckError {
		t.Errorf("expected slow check to fail on timeout, got %q", r.Checks["slow"])
	}
}

func TestCheck_IndexChecks(t *testing.T) {
	insp := &mockInspector{indexes: map[string]int64{"idx:news": 42}}
	svc := New(&mockDBPinger{}).
		WithCheck("index:news", IndexCheck(insp, "idx:news")).
		WithCheck("index:blogs", IndexCheck(insp, "idx:blogs"))

	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q with a missing index, got %q", Degraded, r.Status)
	}
	if r.Checks["index:news"] != CheckOK {
		t.Errorf("index:news = %q, want %q", r.Checks["index:news"], CheckOK)
	}
	if r.Checks["index:blogs"] != CheckError {
		t.Errorf("index:blogs = %q, want %q", r.Checks["index:blogs"], CheckError)
	}
	if len(insp.asked) != 2 {
		t.Errorf("expected 2 FT.INFO lookups, got %v", insp.asked)
	}
}
