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

type stubMilestoneRepo struct {
	byID   map[string]*domain.Milestone
	nextID int
}

func newStubMilestoneRepo() *stubMilestoneRepo {
	return &stubMilestoneRepo{byID: make(map[string]*domain.Milestone)}
}

func (r *stubMilestoneRepo) Create(_ context.Context, m *domain.Milestone) error {
	r.nextID++
	m.ID = "m_" + string(rune('0'+r.nextID))
	clone := *m
	r.byID[m.ID] = &clone
	return nil
}

func (r *stubMilestoneRepo) FindByID(_ context.Context, id string) (*domain.Milestone, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMilestoneNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMilestoneRepo) ListByAgreement(_ context.Context, agreementID string) ([]*domain.Milestone, error) {
	var out []*domain.Milestone
	for _, m := range r.byID {
		if m.AgreementID == agreementID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMilestoneRepo) UpdateStatus(_ context.Context, id string, status domain.MilestoneStatus) error {
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrMilestoneNotFound
	}
	m.Status = status
	return nil
}

func (r *stubMilestoneRepo) AppendDeliverable(_ context.Context, id string, d domain.Deliverable) error {
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrMilestoneNotFound
	}
	m.Deliverables = append(m.Deliverables, d)
	return nil
}

// recordingAuditor captures facts without any fan-out.
type recordingAuditor struct {
	facts []ports.AuditFact
	err   error
}

func (a *recordingAuditor) Record(_ context.Context, fact ports.AuditFact) error {
	if a.err != nil {
		return a.err
	}
	a.facts = append(a.facts, fact)
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMilestoneService_Create_StartsPending(t *testing.T) {
	repo := newStubMilestoneRepo()
	auditor := &recordingAuditor{}
	svc := NewMilestoneService(repo, auditor, zerolog.Nop())

	m, err := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1",
		CreatorID:   "creator_1",
		BrandID:     "brand_1",
		Title:       "Launch video",
		Amount:      500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Status != domain.MilestonePending {
		t.Errorf("status = %q, want %q", m.Status, domain.MilestonePending)
	}
	if m.ID == "" {
		t.Error("expected generated id")
	}
	if len(auditor.facts) != 1 || auditor.facts[0].Action != domain.ActionMilestoneCreated {
		t.Fatalf("expected one %s audit fact, got %+v", domain.ActionMilestoneCreated, auditor.facts)
	}
	if auditor.facts[0].Metadata["creator_id"] != "creator_1" {
		t.Error("audit metadata must carry the creator id for fan-out")
	}
}

func TestMilestoneService_UpdateStatus_ValidTransition(t *testing.T) {
	repo := newStubMilestoneRepo()
	auditor := &recordingAuditor{}
	svc := NewMilestoneService(repo, auditor, zerolog.Nop())

	m, _ := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1", CreatorID: "creator_1", BrandID: "brand_1", Title: "t", Amount: 1,
	})

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateMilestoneStatusInput{
		MilestoneID: m.ID,
		Status:      domain.MilestoneInProgress,
		ActorID:     "creator_1",
		ActorRole:   domain.RoleCreator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.MilestoneInProgress {
		t.Errorf("status = %q, want %q", updated.Status, domain.MilestoneInProgress)
	}
	if repo.byID[m.ID].Status != domain.MilestoneInProgress {
		t.Error("status change not persisted")
	}
}

func TestMilestoneService_UpdateStatus_RejectsNonParty(t *testing.T) {
	repo := newStubMilestoneRepo()
	svc := NewMilestoneService(repo, &recordingAuditor{}, zerolog.Nop())

	m, _ := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1", CreatorID: "creator_1", BrandID: "brand_1", Title: "t", Amount: 1,
	})

	// Authenticated but unrelated to the milestone's parties.
	_, err := svc.UpdateStatus(context.Background(), ports.UpdateMilestoneStatusInput{
		MilestoneID: m.ID,
		Status:      domain.MilestoneInProgress,
		ActorID:     "other_brand",
		ActorRole:   domain.RoleBrand,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-party actor, got %v", err)
	}
	if repo.byID[m.ID].Status != domain.MilestonePending {
		t.Error("a forbidden transition must not change persisted status")
	}
}

func TestMilestoneService_AddDeliverable_RejectsForeignCreator(t *testing.T) {
	repo := newStubMilestoneRepo()
	auditor := &recordingAuditor{}
	svc := NewMilestoneService(repo, auditor, zerolog.Nop())

	m, _ := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1", CreatorID: "creator_1", BrandID: "brand_1", Title: "t", Amount: 1,
	})
	auditor.facts = nil

	_, err := svc.AddDeliverable(context.Background(), m.ID, "sneaky.mp4", "creator_2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign creator, got %v", err)
	}
	if len(repo.byID[m.ID].Deliverables) != 0 {
		t.Error("forbidden upload must not be persisted")
	}
	if len(auditor.facts) != 0 {
		t.Error("forbidden upload must not be audited")
	}
}

func TestMilestoneService_UpdateStatus_RejectsSkippedState(t *testing.T) {
	repo := newStubMilestoneRepo()
	svc := NewMilestoneService(repo, &recordingAuditor{}, zerolog.Nop())

	m, _ := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1", CreatorID: "creator_1", BrandID: "brand_1", Title: "t", Amount: 1,
	})

	// pending → paid skips two states.
	_, err := svc.UpdateStatus(context.Background(), ports.UpdateMilestoneStatusInput{
		MilestoneID: m.ID,
		Status:      domain.MilestonePaid,
		ActorID:     "brand_1",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.byID[m.ID].Status != domain.MilestonePending {
		t.Error("rejected transition must not change persisted status")
	}
}

func TestMilestoneService_UpdateStatus_RejectsBackwards(t *testing.T) {
	repo := newStubMilestoneRepo()
	svc := NewMilestoneService(repo, &recordingAuditor{}, zerolog.Nop())

	m, _ := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1", CreatorID: "creator_1", BrandID: "brand_1", Title: "t", Amount: 1,
	})
	repo.byID[m.ID].Status = domain.MilestoneCompleted

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateMilestoneStatusInput{
		MilestoneID: m.ID,
		Status:      domain.MilestoneInProgress,
		ActorID:     "brand_1",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestMilestoneService_AddDeliverable_AppendsAndAudits(t *testing.T) {
	repo := newStubMilestoneRepo()
	auditor := &recordingAuditor{}
	svc := NewMilestoneService(repo, auditor, zerolog.Nop())

	m, _ := svc.Create(context.Background(), ports.CreateMilestoneInput{
		AgreementID: "ag_1", CreatorID: "creator_1", BrandID: "brand_1", Title: "t", Amount: 1,
	})
	auditor.facts = nil

	updated, err := svc.AddDeliverable(context.Background(), m.ID, "final_cut.mp4", "creator_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Deliverables) != 1 || updated.Deliverables[0].FileName != "final_cut.mp4" {
		t.Fatalf("deliverable not appended: %+v", updated.Deliverables)
	}
	if len(auditor.facts) != 1 || auditor.facts[0].Action != domain.ActionDeliverableAdded {
		t.Fatalf("expected %s audit fact, got %+v", domain.ActionDeliverableAdded, auditor.facts)
	}
}

func TestMilestoneService_UpdateStatus_UnknownID(t *testing.T) {
	svc := NewMilestoneService(newStubMilestoneRepo(), &recordingAuditor{}, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateMilestoneStatusInput{
		MilestoneID: "missing",
		Status:      domain.MilestoneInProgress,
	})
	if !errors.Is(err, domain.ErrMilestoneNotFound) {
		t.Fatalf("expected ErrMilestoneNotFound, got %v", err)
	}
}
