package models

// SummaryBucket is a running count and amount total for one grouping key
type SummaryBucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Summary aggregates a user's settlement history for display
type Summary struct {
	UserID        string  `json:"userId"`
	UserOweAmount float64 `json:"userOweAmount"`
	UserGetAmount float64 `json:"userGetAmount"`

	ByStatus map[string]SummaryBucket `json:"byStatus"`
	ByMethod map[string]SummaryBucket `json:"byMethod"`
	ByGroup  map[string]SummaryBucket `json:"byGroup"`

	PendingSettlements   []SettlementRecord `json:"pendingSettlements"`
	CompletedSettlements []SettlementRecord `json:"completedSettlements"`
}

// SummaryRequest request model
type SummaryRequest struct {
	UserID string `json:"userId" binding:"required"`
}
