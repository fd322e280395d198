package models

import "time"

// BatchStats tracks child record states for a batch. The invariant
// TotalPending + TotalCompleted + TotalCancelled == SettlementCount holds at
// every observation point; disputed children count under TotalPending until
// they resolve.
type BatchStats struct {
	TotalPending   int `json:"totalPending"`
	TotalCompleted int `json:"totalCompleted"`
	TotalCancelled int `json:"totalCancelled"`
}

// SettlementBatch groups settlements created together as one administrative
// unit. It holds weak references to its children: their lifecycle is governed
// by the settlement state machine, the batch only aggregates.
type SettlementBatch struct {
	ID              string     `json:"id"`
	GroupID         string     `json:"groupId"`
	CreatedBy       string     `json:"createdBy"`
	SettlementIDs   []string   `json:"settlementIds"`
	TotalAmount     float64    `json:"totalAmount"`
	SettlementCount int        `json:"settlementCount"`
	Status          string     `json:"status"`
	Stats           BatchStats `json:"stats"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// BatchTransferInput is one proposed transfer inside a batch creation request
type BatchTransferInput struct {
	ToUserID string  `json:"toUser" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Method   string  `json:"method"`
	Notes    string  `json:"notes"`
}

// CreateBatchRequest request model
type CreateBatchRequest struct {
	GroupID   string               `json:"groupId" binding:"required"`
	CreatedBy string               `json:"createdBy" binding:"required"`
	Transfers []BatchTransferInput `json:"transfers" binding:"required,min=1"`
}

// GetBatchRequest request model
type GetBatchRequest struct {
	BatchID string `json:"batchId" binding:"required"`
}

// CreateBatchResult is returned from batch creation: the batch plus the
// child records actually realized (skipped entries are observable through
// SettlementCount).
type CreateBatchResult struct {
	Batch       *SettlementBatch   `json:"batch"`
	Settlements []SettlementRecord `json:"settlements"`
	Skipped     []string           `json:"skipped,omitempty"`
}
