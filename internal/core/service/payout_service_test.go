package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

type stubPayoutRepo struct {
	byID    map[string]*domain.Payout
	history []domain.PayoutStatus
	nextID  int
}

func newStubPayoutRepo() *stubPayoutRepo {
	return &stubPayoutRepo{byID: make(map[string]*domain.Payout)}
}

func (r *stubPayoutRepo) Create(_ context.Context, p *domain.Payout) error {
	r.nextID++
	p.ID = "p_" + string(rune('0'+r.nextID))
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPayoutRepo) FindByID(_ context.Context, id string) (*domain.Payout, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPayoutNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPayoutRepo) ListByCreator(_ context.Context, creatorID string) ([]*domain.Payout, error) {
	var out []*domain.Payout
	for _, p := range r.byID {
		if p.CreatorID == creatorID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPayoutRepo) UpdateStatus(_ context.Context, id string, status domain.PayoutStatus) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPayoutNotFound
	}
	p.Status = status
	r.history = append(r.history, status)
	return nil
}

type stubEnqueuer struct {
	tasks []ports.PayoutTask
}

func (q *stubEnqueuer) Enqueue(task ports.PayoutTask) {
	q.tasks = append(q.tasks, task)
}

func TestPayoutService_Request_CreatesAndEnqueues(t *testing.T) {
	repo := newStubPayoutRepo()
	auditor := &recordingAuditor{}
	queue := &stubEnqueuer{}
	svc := NewPayoutService(repo, auditor, queue, zerolog.Nop())

	p, err := svc.Request(context.Background(), "creator_1", 120.50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != domain.PayoutRequested {
		t.Errorf("status = %q, want %q", p.Status, domain.PayoutRequested)
	}
	if len(queue.tasks) != 1 || queue.tasks[0].PayoutID != p.ID || queue.tasks[0].CreatorID != "creator_1" {
		t.Fatalf("expected one enqueued task for the payout, got %+v", queue.tasks)
	}
	if len(auditor.facts) != 1 || auditor.facts[0].Action != domain.ActionPayoutRequested {
		t.Fatalf("expected %s audit fact, got %+v", domain.ActionPayoutRequested, auditor.facts)
	}
	if auditor.facts[0].Metadata["amount"] != "120.50" {
		t.Errorf("metadata amount = %q, want %q", auditor.facts[0].Metadata["amount"], "120.50")
	}
}

func TestPayoutService_Request_RejectsNonPositiveAmount(t *testing.T) {
	repo := newStubPayoutRepo()
	queue := &stubEnqueuer{}
	svc := NewPayoutService(repo, &recordingAuditor{}, queue, zerolog.Nop())

	for _, amount := range []float64{0, -5} {
		_, err := svc.Request(context.Background(), "creator_1", amount)
		if !errors.Is(err, domain.ErrInvalidPayoutAmount) {
			t.Fatalf("amount %v: expected ErrInvalidPayoutAmount, got %v", amount, err)
		}
	}
	if len(repo.byID) != 0 || len(queue.tasks) != 0 {
		t.Error("rejected request must neither persist nor enqueue")
	}
}

func TestPayoutProcessor_Process_RunsToCompleted(t *testing.T) {
	repo := newStubPayoutRepo()
	auditor := &recordingAuditor{}
	reqSvc := NewPayoutService(repo, auditor, nil, zerolog.Nop())

	p, err := reqSvc.Request(context.Background(), "creator_1", 50)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	auditor.facts = nil
	repo.history = nil

	proc := NewPayoutProcessor(repo, auditor, zerolog.Nop())
	if err := proc.Process(context.Background(), ports.PayoutTask{PayoutID: p.ID, CreatorID: "creator_1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.PayoutStatus{domain.PayoutProcessing, domain.PayoutCompleted}
	if len(repo.history) != len(want) {
		t.Fatalf("status history = %v, want %v", repo.history, want)
	}
	for i, s := range want {
		if repo.history[i] != s {
			t.Fatalf("status history = %v, want %v", repo.history, want)
		}
	}
	if len(auditor.facts) != 2 {
		t.Fatalf("expected an audit fact per transition, got %d", len(auditor.facts))
	}
	for _, fact := range auditor.facts {
		if fact.ActorType != domain.ActorSystem {
			t.Errorf("processor facts must be system-actor, got %q", fact.ActorType)
		}
	}
}

func TestPayoutProcessor_Process_AuditFailureDoesNotAbort(t *testing.T) {
	repo := newStubPayoutRepo()
	reqSvc := NewPayoutService(repo, &recordingAuditor{}, nil, zerolog.Nop())

	p, err := reqSvc.Request(context.Background(), "creator_1", 50)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	failing := &recordingAuditor{err: errors.New("audit store down")}
	proc := NewPayoutProcessor(repo, failing, zerolog.Nop())
	if err := proc.Process(context.Background(), ports.PayoutTask{PayoutID: p.ID, CreatorID: "creator_1"}); err != nil {
		t.Fatalf("audit failure must not abort processing, got %v", err)
	}
	if repo.byID[p.ID].Status != domain.PayoutCompleted {
		t.Errorf("status = %q, want %q", repo.byID[p.ID].Status, domain.PayoutCompleted)
	}
}

func TestPayoutProcessor_Process_AlreadyCompleted(t *testing.T) {
	repo := newStubPayoutRepo()
	reqSvc := NewPayoutService(repo, &recordingAuditor{}, nil, zerolog.Nop())

	p, err := reqSvc.Request(context.Background(), "creator_1", 50)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	repo.byID[p.ID].Status = domain.PayoutCompleted

	proc := NewPayoutProcessor(repo, &recordingAuditor{}, zerolog.Nop())
	err = proc.Process(context.Background(), ports.PayoutTask{PayoutID: p.ID, CreatorID: "creator_1"})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPayoutService_ListByCreator(t *testing.T) {
	repo := newStubPayoutRepo()
	svc := NewPayoutService(repo, &recordingAuditor{}, nil, zerolog.Nop())

	if _, err := svc.Request(context.Background(), "creator_1", 10); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := svc.Request(context.Background(), "creator_2", 20); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	list, err := svc.ListByCreator(context.Background(), "creator_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].CreatorID != "creator_1" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
