package services

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// BatchRepository is the persistence port for settlement batches. Creation
// is atomic: the batch and all its child records exist together or not at
// all.
type BatchRepository interface {
	CreateBatchWithSettlements(batch *models.SettlementBatch, records []models.SettlementRecord) error
	GetBatch(id string) (*models.SettlementBatch, error)
}

// BatchService creates settlement batches and keeps their aggregate
// counters consistent with child states
type BatchService struct {
	batches  BatchRepository
	users    UserDirectory
	notifier Notifier
}

// NewBatchService creates a new batch service
func NewBatchService(batches BatchRepository, users UserDirectory, notifier Notifier) *BatchService {
	return &BatchService{
		batches:  batches,
		users:    users,
		notifier: notifier,
	}
}

// CreateBatch creates a batch of proposed transfers from createdBy. Entries
// whose target user does not resolve are skipped, not failed: the batch's
// settlement count reflects only the records actually created. One
// notification goes to each created record's receiver.
func (s *BatchService) CreateBatch(req *models.CreateBatchRequest) (*models.CreateBatchResult, error) {
	if err := utils.ValidateNotEmpty(req.Transfers, "transfers"); err != nil {
		return nil, err
	}
	if _, err := s.users.ResolveUser(req.CreatedBy); err != nil {
		return nil, utils.NewNotFoundError("User " + req.CreatedBy)
	}

	now := time.Now()
	batchID := uuid.NewString()

	var records []models.SettlementRecord
	var skipped []string
	var totalAmount float64

	for _, transfer := range req.Transfers {
		if err := utils.ValidatePositive(transfer.Amount, "amount"); err != nil {
			return nil, err
		}
		if err := utils.ValidateDistinctParties(req.CreatedBy, transfer.ToUserID); err != nil {
			return nil, err
		}
		if err := utils.ValidateMethod(transfer.Method); err != nil {
			return nil, err
		}

		if _, err := s.users.ResolveUser(transfer.ToUserID); err != nil {
			skipped = append(skipped, transfer.ToUserID)
			continue
		}

		method := transfer.Method
		if method == "" {
			method = utils.MethodOther
		}

		records = append(records, models.SettlementRecord{
			ID:          uuid.NewString(),
			GroupID:     req.GroupID,
			FromUserID:  req.CreatedBy,
			ToUserID:    transfer.ToUserID,
			Amount:      utils.Round(transfer.Amount),
			Method:      method,
			Status:      utils.StatusPending,
			BatchID:     batchID,
			Notes:       transfer.Notes,
			RequestedAt: now,
		})
		totalAmount += transfer.Amount
	}

	if len(records) == 0 {
		return nil, utils.NewValidationError("no transfer target could be resolved")
	}

	batch := &models.SettlementBatch{
		ID:              batchID,
		GroupID:         req.GroupID,
		CreatedBy:       req.CreatedBy,
		TotalAmount:     utils.Round(totalAmount),
		SettlementCount: len(records),
		Status:          utils.BatchStatusReady,
		Stats: models.BatchStats{
			TotalPending: len(records),
		},
		CreatedAt: now,
	}
	for _, record := range records {
		batch.SettlementIDs = append(batch.SettlementIDs, record.ID)
	}

	if err := s.batches.CreateBatchWithSettlements(batch, records); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	for _, record := range records {
		dispatch(s.notifier, record.ToUserID, KindSettlementRequest, map[string]interface{}{
			"settlementId": record.ID,
			"batchId":      batch.ID,
			"fromUser":     record.FromUserID,
			"amount":       record.Amount,
		})
	}

	if len(skipped) > 0 {
		slog.Info("batch created with skipped transfers",
			"batch", batch.ID,
			"created", len(records),
			"skipped", len(skipped))
	}

	return &models.CreateBatchResult{
		Batch:       batch,
		Settlements: records,
		Skipped:     skipped,
	}, nil
}

// GetBatch retrieves a batch by id
func (s *BatchService) GetBatch(id string) (*models.SettlementBatch, error) {
	batch, err := s.batches.GetBatch(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Batch")
	}
	return batch, nil
}

// logBatchStatsFailure records a stats update failure. The child transition
// stands; batch reads recompute stats from children so the counters heal.
func logBatchStatsFailure(batchID string, err error) {
	slog.Error("failed to update batch stats",
		"batch", batchID,
		"error", err)
}
