package services

import (
	"errors"
	"time"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// In-memory fakes standing in for the repository, user directory and
// notifier capabilities.

type fakeLedger struct {
	group    *models.Group
	members  []models.Member
	expenses []models.ExpenseRecord
}

func (f *fakeLedger) GetGroup(groupID string) (*models.Group, error) {
	if f.group == nil || f.group.ID != groupID {
		return nil, errors.New("group not found")
	}
	return f.group, nil
}

func (f *fakeLedger) LoadGroupMembers(groupID string) ([]models.Member, error) {
	return f.members, nil
}

func (f *fakeLedger) LoadUnsettledExpenses(groupID string) ([]models.ExpenseRecord, error) {
	return f.expenses, nil
}

type fakeUserDirectory struct {
	users map[string]string // id -> name
}

func (f *fakeUserDirectory) ResolveUser(id string) (*models.Member, error) {
	name, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &models.Member{ID: id, Name: name}, nil
}

type sentNotification struct {
	UserID  string
	Kind    string
	Payload map[string]interface{}
}

type fakeNotifier struct {
	sent    []sentNotification
	failErr error
}

func (f *fakeNotifier) Notify(userID, kind string, payload map[string]interface{}) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, sentNotification{UserID: userID, Kind: kind, Payload: payload})
	return nil
}

type fakeSettlementRepo struct {
	records map[string]*models.SettlementRecord
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{records: make(map[string]*models.SettlementRecord)}
}

func (f *fakeSettlementRepo) CreateSettlement(record *models.SettlementRecord) error {
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeSettlementRepo) GetSettlement(id string) (*models.SettlementRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, errors.New("settlement not found")
	}
	copied := *record
	copied.Normalize()
	return &copied, nil
}

func (f *fakeSettlementRepo) UpdateStatusIfCurrent(id, fromStatus, toStatus string, paidAt *time.Time, proof, notes string) (bool, error) {
	record, ok := f.records[id]
	if !ok {
		return false, errors.New("settlement not found")
	}
	if record.Status != fromStatus {
		return false, nil
	}
	record.Status = toStatus
	if paidAt != nil {
		record.PaidAt = paidAt
	}
	if proof != "" {
		record.Proof = proof
	}
	if notes != "" {
		record.Notes = notes
	}
	return true, nil
}

func (f *fakeSettlementRepo) ListByUser(userID string) ([]models.SettlementRecord, error) {
	var out []models.SettlementRecord
	for _, record := range f.records {
		if record.FromUserID == userID || record.ToUserID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (f *fakeSettlementRepo) ListByGroup(groupID string) ([]models.SettlementRecord, error) {
	var out []models.SettlementRecord
	for _, record := range f.records {
		if record.GroupID == groupID {
			out = append(out, *record)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches     map[string]*models.SettlementBatch
	settlements *fakeSettlementRepo
	createErr   error
}

func newFakeBatchRepo(settlements *fakeSettlementRepo) *fakeBatchRepo {
	return &fakeBatchRepo{
		batches:     make(map[string]*models.SettlementBatch),
		settlements: settlements,
	}
}

func (f *fakeBatchRepo) CreateBatchWithSettlements(batch *models.SettlementBatch, records []models.SettlementRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *batch
	f.batches[batch.ID] = &stored
	for i := range records {
		if err := f.settlements.CreateSettlement(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBatchRepo) GetBatch(id string) (*models.SettlementBatch, error) {
	batch, ok := f.batches[id]
	if !ok {
		return nil, errors.New("batch not found")
	}
	copied := *batch
	return &copied, nil
}

func (f *fakeBatchRepo) UpdateBatchStats(batchID string, delta models.BatchStats) error {
	batch, ok := f.batches[batchID]
	if !ok {
		return errors.New("batch not found")
	}
	batch.Stats.TotalPending += delta.TotalPending
	batch.Stats.TotalCompleted += delta.TotalCompleted
	batch.Stats.TotalCancelled += delta.TotalCancelled
	if batch.Stats.TotalPending == 0 {
		if batch.Stats.TotalCompleted > 0 {
			batch.Status = utils.BatchStatusCompleted
		} else if batch.Stats.TotalCancelled > 0 {
			batch.Status = utils.BatchStatusCancelled
		}
	}
	return nil
}
