package models

import (
	"time"

	"github.com/splitsettle/splitsettle-backend/utils"
)

// SettlementRecord represents a single proposed or confirmed payment
// between two members. Records are append-only: cancellation is a state,
// never a deletion.
type SettlementRecord struct {
	ID         string                 `json:"id"`
	GroupID    string                 `json:"groupId"`
	FromUserID string                 `json:"fromUser"`
	ToUserID   string                 `json:"toUser"`
	Amount     float64                `json:"amount"`
	Method     string                 `json:"method"`
	Status     string                 `json:"status"`
	BatchID    string                 `json:"batchId,omitempty"`
	Proof      string                 `json:"proof,omitempty"`
	Notes      string                 `json:"notes,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`

	// Metadata is the legacy payload shape; it is folded into Data at the
	// read boundary and never consulted by business logic.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	RequestedAt time.Time  `json:"requestedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

// statusAliases maps legacy persisted statuses to their canonical form.
var statusAliases = map[string]string{
	"paid":      utils.StatusCompleted,
	"completed": utils.StatusCompleted,
	"pending":   utils.StatusPending,
	"confirmed": utils.StatusConfirmed,
	"cancelled": utils.StatusCancelled,
	"disputed":  utils.StatusDisputed,
}

// NormalizeStatus maps a persisted status to its canonical form.
// Unknown statuses pass through unchanged so legacy data still surfaces.
func NormalizeStatus(status string) string {
	if canonical, ok := statusAliases[status]; ok {
		return canonical
	}
	return status
}

// Normalize rewrites a persisted record into the current shape: legacy
// statuses are canonicalized and a legacy metadata payload is merged under
// data, with current data keys winning on collision.
func (s *SettlementRecord) Normalize() {
	s.Status = NormalizeStatus(s.Status)

	if len(s.Metadata) > 0 {
		merged := make(map[string]interface{}, len(s.Metadata)+len(s.Data))
		for k, v := range s.Metadata {
			merged[k] = v
		}
		for k, v := range s.Data {
			merged[k] = v
		}
		s.Data = merged
		s.Metadata = nil
	}
}

// IsTerminal reports whether the settlement has reached a final state.
func (s *SettlementRecord) IsTerminal() bool {
	status := NormalizeStatus(s.Status)
	return status == utils.StatusCompleted || status == utils.StatusCancelled
}

// CreateSettlementRequest request model
type CreateSettlementRequest struct {
	GroupID    string  `json:"groupId" binding:"required"`
	FromUserID string  `json:"fromUser" binding:"required"`
	ToUserID   string  `json:"toUser" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Method     string  `json:"method"`
	Notes      string  `json:"notes"`
}

// MarkPaidRequest request model
type MarkPaidRequest struct {
	SettlementID string `json:"settlementId" binding:"required"`
	ActorID      string `json:"actorId" binding:"required"`
	Proof        string `json:"proof"`
	Notes        string `json:"notes"`
}

// CancelSettlementRequest request model
type CancelSettlementRequest struct {
	SettlementID string `json:"settlementId" binding:"required"`
	ActorID      string `json:"actorId" binding:"required"`
	AsAdmin      bool   `json:"asAdmin"`
}

// DisputeSettlementRequest request model
type DisputeSettlementRequest struct {
	SettlementID string `json:"settlementId" binding:"required"`
	ActorID      string `json:"actorId" binding:"required"`
	Notes        string `json:"notes"`
}

// ResolveDisputeRequest request model. Resolution is either "paid" or
// "cancelled".
type ResolveDisputeRequest struct {
	SettlementID string `json:"settlementId" binding:"required"`
	ActorID      string `json:"actorId" binding:"required"`
	Resolution   string `json:"resolution" binding:"required"`
	AsAdmin      bool   `json:"asAdmin"`
}
