package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if report.Checks["database"] != CheckOK || report.Checks["index"] != CheckOK {
		t.Errorf("unexpected checks: %+v", report.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("unexpected database check: %s", report.Checks["database"])
	}
	if report.Checks["index"] != CheckOK {
		t.Errorf("unexpected index check: %s", report.Checks["index"])
	}
}

func TestCheck_IndexDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("503")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
}

func TestCheck_NilIndex(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if _, ok := report.Checks["index"]; ok {
		t.Error("no index check expected when index is not configured")
	}
}
