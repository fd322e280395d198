package services

import (
	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// SettlementLister loads a user's settlement history
type SettlementLister interface {
	ListByUser(userID string) ([]models.SettlementRecord, error)
}

// SummaryService aggregates a user's settlement history for display
type SummaryService struct {
	settlements SettlementLister
}

// NewSummaryService creates a new summary service
func NewSummaryService(settlements SettlementLister) *SummaryService {
	return &SummaryService{settlements: settlements}
}

// Summarize aggregates the given settlements from the user's point of view.
// Legacy status and payload shapes are normalized before bucketing. Pure
// aggregation, no persistence side effects.
func (s *SummaryService) Summarize(userID string, settlements []models.SettlementRecord) *models.Summary {
	summary := &models.Summary{
		UserID:               userID,
		ByStatus:             make(map[string]models.SummaryBucket),
		ByMethod:             make(map[string]models.SummaryBucket),
		ByGroup:              make(map[string]models.SummaryBucket),
		PendingSettlements:   []models.SettlementRecord{},
		CompletedSettlements: []models.SettlementRecord{},
	}

	for _, settlement := range settlements {
		settlement.Normalize()

		involved := false
		if settlement.FromUserID == userID {
			summary.UserOweAmount += settlement.Amount
			involved = true
		}
		if settlement.ToUserID == userID {
			summary.UserGetAmount += settlement.Amount
			involved = true
		}
		if !involved {
			continue
		}

		method := settlement.Method
		if method == "" {
			method = utils.MethodOther
		}

		addToBucket(summary.ByStatus, settlement.Status, settlement.Amount)
		addToBucket(summary.ByMethod, method, settlement.Amount)
		addToBucket(summary.ByGroup, settlement.GroupID, settlement.Amount)

		switch settlement.Status {
		case utils.StatusPending, utils.StatusConfirmed:
			summary.PendingSettlements = append(summary.PendingSettlements, settlement)
		case utils.StatusCompleted:
			summary.CompletedSettlements = append(summary.CompletedSettlements, settlement)
		}
	}

	summary.UserOweAmount = utils.Round(summary.UserOweAmount)
	summary.UserGetAmount = utils.Round(summary.UserGetAmount)

	return summary
}

// SummarizeUser loads and aggregates a user's settlement history
func (s *SummaryService) SummarizeUser(userID string) (*models.Summary, error) {
	settlements, err := s.settlements.ListByUser(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return s.Summarize(userID, settlements), nil
}

// addToBucket folds an amount into a keyed running total
func addToBucket(buckets map[string]models.SummaryBucket, key string, amount float64) {
	bucket := buckets[key]
	bucket.Count++
	bucket.Amount = utils.Round(bucket.Amount + amount)
	buckets[key] = bucket
}
