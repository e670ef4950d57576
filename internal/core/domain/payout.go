package domain

import (
	"errors"
	"time"
)

// PayoutStatus represents the lifecycle state of a payout request.
type PayoutStatus string

const (
	PayoutRequested  PayoutStatus = "requested"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutFailed     PayoutStatus = "failed"
)

// payoutTransitions defines the allowed state machine transitions.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutRequested:  {PayoutProcessing},
	PayoutProcessing: {PayoutCompleted, PayoutFailed},
}

var ErrPayoutNotFound = errors.New("payout not found")
var ErrInvalidPayoutAmount = errors.New("payout amount must be positive")

// CanTransitionTo reports whether a payout may move from s to next.
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payout is a creator's request to withdraw earned funds.
type Payout struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	CreatorID   string       `json:"creator_id" bson:"creator_id"`
	Amount      float64      `json:"amount" bson:"amount"`
	Status      PayoutStatus `json:"status" bson:"status"`
	RequestedAt time.Time    `json:"requested_at" bson:"requested_at"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
}
