package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuditRepo struct {
	inserted  []*domain.AuditLog
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, log *domain.AuditLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *log
	r.inserted = append(r.inserted, &clone)
	return nil
}

func (r *stubAuditRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*domain.AuditLog, error) {
	var out []*domain.AuditLog
	for _, l := range r.inserted {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubNotifier struct {
	calls []ports.AuditFact
	err   error
}

func (n *stubNotifier) NotifyFromAudit(_ context.Context, fact ports.AuditFact) error {
	n.calls = append(n.calls, fact)
	return n.err
}

func testFact() ports.AuditFact {
	return ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    "user_1",
		Action:     domain.ActionMilestoneStatus,
		EntityType: "milestone",
		EntityID:   "m_1",
		Metadata:   map[string]string{"status": "completed"},
	}
}

// ---------------------------------------------------------------------------
// Record tests
// ---------------------------------------------------------------------------

func TestAuditService_Record_WritesOneLog(t *testing.T) {
	repo := &stubAuditRepo{}
	notifier := &stubNotifier{}
	svc := NewAuditService(repo, notifier, zerolog.Nop())

	if err := svc.Record(context.Background(), testFact()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(repo.inserted))
	}
	entry := repo.inserted[0]
	if entry.Action != domain.ActionMilestoneStatus {
		t.Errorf("action = %q, want %q", entry.Action, domain.ActionMilestoneStatus)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt must be server-assigned, got zero")
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected fan-out to run once, got %d", len(notifier.calls))
	}
}

func TestAuditService_Record_LogSurvivesFanoutFailure(t *testing.T) {
	repo := &stubAuditRepo{}
	notifier := &stubNotifier{err: errors.New("fan-out down")}
	svc := NewAuditService(repo, notifier, zerolog.Nop())

	err := svc.Record(context.Background(), testFact())
	if err == nil {
		t.Fatal("expected error when fan-out fails")
	}

	// The durable write must not be rolled back: the record is observable
	// immediately after the failing call returns.
	logs, _ := repo.ListByEntity(context.Background(), "milestone", "m_1")
	if len(logs) != 1 {
		t.Fatalf("expected audit record to persist despite fan-out failure, got %d records", len(logs))
	}
}

func TestAuditService_Record_LogWriteFailureAbortsCall(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("write failed")}
	notifier := &stubNotifier{}
	svc := NewAuditService(repo, notifier, zerolog.Nop())

	if err := svc.Record(context.Background(), testFact()); err == nil {
		t.Fatal("expected error when log write fails")
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("fan-out must not run when the log write fails, got %d calls", len(notifier.calls))
	}
}

func TestAuditService_Record_EachCallWritesExactlyOne(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, &stubNotifier{}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if err := svc.Record(context.Background(), testFact()); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if len(repo.inserted) != 3 {
		t.Fatalf("expected 3 audit records after 3 calls, got %d", len(repo.inserted))
	}
}
