package domain

import (
	"errors"
	"time"
)

// MilestoneStatus represents the lifecycle state of a milestone.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestonePaid       MilestoneStatus = "paid"
)

// milestoneTransitions defines the allowed forward-only progression.
var milestoneTransitions = map[MilestoneStatus][]MilestoneStatus{
	MilestonePending:    {MilestoneInProgress},
	MilestoneInProgress: {MilestoneCompleted},
	MilestoneCompleted:  {MilestonePaid},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrMilestoneNotFound = errors.New("milestone not found")

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s MilestoneStatus) CanTransitionTo(next MilestoneStatus) bool {
	for _, allowed := range milestoneTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Deliverable is a file attached to a milestone, stored on disk under the
// uploads root keyed by milestone id.
type Deliverable struct {
	FileName   string    `json:"file_name" bson:"file_name"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Milestone belongs to a collaboration agreement and carries the payable
// unit of work between a brand and a creator.
type Milestone struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	AgreementID  string          `json:"agreement_id" bson:"agreement_id"`
	CreatorID    string          `json:"creator_id" bson:"creator_id"`
	BrandID      string          `json:"brand_id" bson:"brand_id"`
	Title        string          `json:"title" bson:"title"`
	Amount       float64         `json:"amount" bson:"amount"`
	Status       MilestoneStatus `json:"status" bson:"status"`
	DueDate      *time.Time      `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Deliverables []Deliverable   `json:"deliverables" bson:"deliverables"`
	CreatedAt    time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" bson:"updated_at"`
}
