package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// SettlementRepository is the persistence port for settlement records.
// Reads return records already normalized to the current shape.
type SettlementRepository interface {
	CreateSettlement(record *models.SettlementRecord) error
	GetSettlement(id string) (*models.SettlementRecord, error)
	// UpdateStatusIfCurrent performs a compare-and-set keyed on the
	// pre-transition status. It reports false when the record was not in
	// fromStatus, without mutating anything.
	UpdateStatusIfCurrent(id, fromStatus, toStatus string, paidAt *time.Time, proof, notes string) (bool, error)
	ListByUser(userID string) ([]models.SettlementRecord, error)
	ListByGroup(groupID string) ([]models.SettlementRecord, error)
}

// BatchStatsUpdater applies a child-state transition delta to a batch
type BatchStatsUpdater interface {
	UpdateBatchStats(batchID string, delta models.BatchStats) error
}

// UserDirectory resolves user ids to members
type UserDirectory interface {
	ResolveUser(id string) (*models.Member, error)
}

// SettlementService governs the settlement record lifecycle
type SettlementService struct {
	repo     SettlementRepository
	batches  BatchStatsUpdater
	users    UserDirectory
	notifier Notifier
}

// NewSettlementService creates a new settlement service
func NewSettlementService(repo SettlementRepository, batches BatchStatsUpdater, users UserDirectory, notifier Notifier) *SettlementService {
	return &SettlementService{
		repo:     repo,
		batches:  batches,
		users:    users,
		notifier: notifier,
	}
}

// CreateSettlement records a proposed payment. The record starts pending;
// the receiver is notified.
func (s *SettlementService) CreateSettlement(req *models.CreateSettlementRequest) (*models.SettlementRecord, error) {
	if err := utils.ValidateDistinctParties(req.FromUserID, req.ToUserID); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateMethod(req.Method); err != nil {
		return nil, err
	}

	if _, err := s.users.ResolveUser(req.FromUserID); err != nil {
		return nil, utils.NewNotFoundError("User " + req.FromUserID)
	}
	if _, err := s.users.ResolveUser(req.ToUserID); err != nil {
		return nil, utils.NewNotFoundError("User " + req.ToUserID)
	}

	method := req.Method
	if method == "" {
		method = utils.MethodOther
	}

	record := &models.SettlementRecord{
		ID:          uuid.NewString(),
		GroupID:     req.GroupID,
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		Amount:      utils.Round(req.Amount),
		Method:      method,
		Status:      utils.StatusPending,
		Notes:       req.Notes,
		RequestedAt: time.Now(),
	}

	if err := s.repo.CreateSettlement(record); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	dispatch(s.notifier, record.ToUserID, KindSettlementRequest, map[string]interface{}{
		"settlementId": record.ID,
		"fromUser":     record.FromUserID,
		"amount":       record.Amount,
	})

	return record, nil
}

// GetSettlement retrieves a settlement by id
func (s *SettlementService) GetSettlement(id string) (*models.SettlementRecord, error) {
	record, err := s.repo.GetSettlement(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Settlement")
	}
	record.Normalize()
	return record, nil
}

// MarkPaid confirms receipt of a payment. Only the receiver may confirm;
// the settlement must still be pending. Exactly one of two concurrent calls
// wins the compare-and-set, the loser gets a conflict.
func (s *SettlementService) MarkPaid(req *models.MarkPaidRequest) (*models.SettlementRecord, error) {
	record, err := s.GetSettlement(req.SettlementID)
	if err != nil {
		return nil, err
	}

	if record.ToUserID != req.ActorID {
		return nil, utils.NewForbiddenError("only the receiver can confirm payment")
	}
	if record.Status != utils.StatusPending {
		return nil, utils.NewConflictError(fmt.Sprintf("settlement is already %s", record.Status))
	}

	now := time.Now()
	updated, err := s.repo.UpdateStatusIfCurrent(record.ID, utils.StatusPending, utils.StatusCompleted, &now, req.Proof, req.Notes)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !updated {
		return nil, s.conflictWithCurrentStatus(record.ID)
	}

	record.Status = utils.StatusCompleted
	record.PaidAt = &now
	if req.Proof != "" {
		record.Proof = req.Proof
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	s.applyBatchDelta(record, models.BatchStats{TotalPending: -1, TotalCompleted: 1})

	dispatch(s.notifier, record.FromUserID, KindSettlementCompleted, map[string]interface{}{
		"settlementId": record.ID,
		"toUser":       record.ToUserID,
		"amount":       record.Amount,
	})

	return record, nil
}

// CancelSettlement cancels a pending or disputed settlement. Either party
// or an admin may cancel; a paid settlement cannot be cancelled.
func (s *SettlementService) CancelSettlement(req *models.CancelSettlementRequest) (*models.SettlementRecord, error) {
	record, err := s.GetSettlement(req.SettlementID)
	if err != nil {
		return nil, err
	}

	if !req.AsAdmin && record.FromUserID != req.ActorID && record.ToUserID != req.ActorID {
		return nil, utils.NewForbiddenError("only a settlement party or an admin can cancel")
	}
	if record.Status != utils.StatusPending && record.Status != utils.StatusDisputed {
		return nil, utils.NewConflictError(fmt.Sprintf("settlement is already %s", record.Status))
	}

	updated, err := s.repo.UpdateStatusIfCurrent(record.ID, record.Status, utils.StatusCancelled, nil, "", "")
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !updated {
		return nil, s.conflictWithCurrentStatus(record.ID)
	}

	record.Status = utils.StatusCancelled

	s.applyBatchDelta(record, models.BatchStats{TotalPending: -1, TotalCancelled: 1})

	s.notifyCounterparty(record, req.ActorID, KindSettlementCancelled)

	return record, nil
}

// DisputeSettlement moves a pending settlement into the disputed branch.
// Either party may dispute.
func (s *SettlementService) DisputeSettlement(req *models.DisputeSettlementRequest) (*models.SettlementRecord, error) {
	record, err := s.GetSettlement(req.SettlementID)
	if err != nil {
		return nil, err
	}

	if record.FromUserID != req.ActorID && record.ToUserID != req.ActorID {
		return nil, utils.NewForbiddenError("only a settlement party can dispute")
	}
	if record.Status != utils.StatusPending {
		return nil, utils.NewConflictError(fmt.Sprintf("settlement is already %s", record.Status))
	}

	updated, err := s.repo.UpdateStatusIfCurrent(record.ID, utils.StatusPending, utils.StatusDisputed, nil, "", req.Notes)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !updated {
		return nil, s.conflictWithCurrentStatus(record.ID)
	}

	record.Status = utils.StatusDisputed
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	// Disputed counts as pending in batch stats until it resolves.
	s.notifyCounterparty(record, req.ActorID, KindSettlementDisputed)

	return record, nil
}

// ResolveDispute closes the disputed branch, either confirming the payment
// or cancelling the settlement. Confirming requires the receiver (or an
// admin); cancelling is open to either party or an admin.
func (s *SettlementService) ResolveDispute(req *models.ResolveDisputeRequest) (*models.SettlementRecord, error) {
	record, err := s.GetSettlement(req.SettlementID)
	if err != nil {
		return nil, err
	}

	resolution := models.NormalizeStatus(req.Resolution)
	if resolution != utils.StatusCompleted && resolution != utils.StatusCancelled {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown resolution %q", req.Resolution))
	}

	if resolution == utils.StatusCompleted {
		if !req.AsAdmin && record.ToUserID != req.ActorID {
			return nil, utils.NewForbiddenError("only the receiver can confirm payment")
		}
	} else if !req.AsAdmin && record.FromUserID != req.ActorID && record.ToUserID != req.ActorID {
		return nil, utils.NewForbiddenError("only a settlement party or an admin can cancel")
	}

	if record.Status != utils.StatusDisputed {
		return nil, utils.NewConflictError(fmt.Sprintf("settlement is %s, not disputed", record.Status))
	}

	var paidAt *time.Time
	if resolution == utils.StatusCompleted {
		now := time.Now()
		paidAt = &now
	}

	updated, err := s.repo.UpdateStatusIfCurrent(record.ID, utils.StatusDisputed, resolution, paidAt, "", "")
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !updated {
		return nil, s.conflictWithCurrentStatus(record.ID)
	}

	record.Status = resolution
	record.PaidAt = paidAt

	if resolution == utils.StatusCompleted {
		s.applyBatchDelta(record, models.BatchStats{TotalPending: -1, TotalCompleted: 1})
		dispatch(s.notifier, record.FromUserID, KindSettlementCompleted, map[string]interface{}{
			"settlementId": record.ID,
			"amount":       record.Amount,
		})
	} else {
		s.applyBatchDelta(record, models.BatchStats{TotalPending: -1, TotalCancelled: 1})
		s.notifyCounterparty(record, req.ActorID, KindSettlementCancelled)
	}

	return record, nil
}

// conflictWithCurrentStatus builds the conflict error for a lost
// compare-and-set, naming whatever status the record holds now
func (s *SettlementService) conflictWithCurrentStatus(id string) error {
	current, err := s.GetSettlement(id)
	if err != nil {
		return utils.NewConflictError("settlement status changed concurrently")
	}
	return utils.NewConflictError(fmt.Sprintf("settlement is already %s", current.Status))
}

// applyBatchDelta forwards a child transition to the owning batch, if any.
// A stats failure is logged, never surfaced: batches recompute stats from
// children on read.
func (s *SettlementService) applyBatchDelta(record *models.SettlementRecord, delta models.BatchStats) {
	if record.BatchID == "" || s.batches == nil {
		return
	}
	if err := s.batches.UpdateBatchStats(record.BatchID, delta); err != nil {
		logBatchStatsFailure(record.BatchID, err)
	}
}

// notifyCounterparty notifies the party that did not act
func (s *SettlementService) notifyCounterparty(record *models.SettlementRecord, actorID, kind string) {
	target := record.FromUserID
	if actorID == record.FromUserID {
		target = record.ToUserID
	}
	dispatch(s.notifier, target, kind, map[string]interface{}{
		"settlementId": record.ID,
		"amount":       record.Amount,
	})
}
