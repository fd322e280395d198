package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

type batchFixture struct {
	settlements *fakeSettlementRepo
	batches     *fakeBatchRepo
	users       *fakeUserDirectory
	notifier    *fakeNotifier
	service     *BatchService
	lifecycle   *SettlementService
}

func newBatchFixture() *batchFixture {
	settlements := newFakeSettlementRepo()
	batches := newFakeBatchRepo(settlements)
	users := &fakeUserDirectory{users: map[string]string{
		"alice": "Alice",
		"bob":   "Bob",
		"carol": "Carol",
	}}
	notifier := &fakeNotifier{}
	return &batchFixture{
		settlements: settlements,
		batches:     batches,
		users:       users,
		notifier:    notifier,
		service:     NewBatchService(batches, users, notifier),
		lifecycle:   NewSettlementService(settlements, batches, users, notifier),
	}
}

func TestBatchService_CreateBatch(t *testing.T) {
	f := newBatchFixture()

	result, err := f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{
			{ToUserID: "bob", Amount: 60},
			{ToUserID: "carol", Amount: 40, Method: utils.MethodCash},
		},
	})

	assert.NoError(t, err)
	batch := result.Batch
	assert.Equal(t, utils.BatchStatusReady, batch.Status)
	assert.Equal(t, 100.0, batch.TotalAmount)
	assert.Equal(t, 2, batch.SettlementCount)
	assert.Equal(t, models.BatchStats{TotalPending: 2}, batch.Stats)
	assert.Len(t, batch.SettlementIDs, 2)

	for _, record := range result.Settlements {
		assert.Equal(t, batch.ID, record.BatchID)
		assert.Equal(t, utils.StatusPending, record.Status)
		assert.Equal(t, "alice", record.FromUserID)
	}

	// One notification per created record, to its receiver
	assert.Len(t, f.notifier.sent, 2)
	assert.Equal(t, "bob", f.notifier.sent[0].UserID)
	assert.Equal(t, "carol", f.notifier.sent[1].UserID)
}

func TestBatchService_CreateBatch_SkipsUnknownUsers(t *testing.T) {
	f := newBatchFixture()

	// Three proposed transfers, one target does not resolve
	result, err := f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{
			{ToUserID: "bob", Amount: 30},
			{ToUserID: "ghost", Amount: 99},
			{ToUserID: "carol", Amount: 20},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Batch.SettlementCount)
	assert.Equal(t, 2, result.Batch.Stats.TotalPending)
	assert.Equal(t, 50.0, result.Batch.TotalAmount)
	assert.Equal(t, []string{"ghost"}, result.Skipped)
	assert.Len(t, result.Settlements, 2)
	assert.Len(t, f.notifier.sent, 2)
}

func TestBatchService_CreateBatch_Validation(t *testing.T) {
	f := newBatchFixture()

	_, err := f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{},
	})
	assert.Error(t, err)

	_, err = f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "ghost",
		Transfers: []models.BatchTransferInput{{ToUserID: "bob", Amount: 10}},
	})
	assert.True(t, utils.IsNotFound(err))

	// Self-transfer is a caller error, not a skip
	_, err = f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{{ToUserID: "alice", Amount: 10}},
	})
	assert.Error(t, err)

	// A batch where nothing resolves is an error, not an empty batch
	_, err = f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{{ToUserID: "ghost", Amount: 10}},
	})
	assert.Error(t, err)
}

func TestBatchService_CreateBatch_StoreFailureCreatesNothing(t *testing.T) {
	f := newBatchFixture()
	f.batches.createErr = errors.New("db down")

	_, err := f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{{ToUserID: "bob", Amount: 10}},
	})

	assert.Error(t, err)
	assert.Empty(t, f.batches.batches)
	assert.Empty(t, f.settlements.records)
	assert.Empty(t, f.notifier.sent)
}

func TestBatchService_StatsFollowChildTransitions(t *testing.T) {
	f := newBatchFixture()

	result, err := f.service.CreateBatch(&models.CreateBatchRequest{
		GroupID:   "g1",
		CreatedBy: "alice",
		Transfers: []models.BatchTransferInput{
			{ToUserID: "bob", Amount: 60},
			{ToUserID: "carol", Amount: 40},
		},
	})
	assert.NoError(t, err)
	batch := result.Batch

	assertStatsConsistent := func() {
		current, err := f.service.GetBatch(batch.ID)
		assert.NoError(t, err)
		total := current.Stats.TotalPending + current.Stats.TotalCompleted + current.Stats.TotalCancelled
		assert.Equal(t, current.SettlementCount, total)
	}

	assertStatsConsistent()

	// First child paid
	_, err = f.lifecycle.MarkPaid(&models.MarkPaidRequest{
		SettlementID: result.Settlements[0].ID,
		ActorID:      "bob",
	})
	assert.NoError(t, err)
	assertStatsConsistent()

	current, _ := f.service.GetBatch(batch.ID)
	assert.Equal(t, models.BatchStats{TotalPending: 1, TotalCompleted: 1}, current.Stats)
	assert.Equal(t, utils.BatchStatusReady, current.Status)

	// Second child cancelled; no child remains pending, batch closes
	_, err = f.lifecycle.CancelSettlement(&models.CancelSettlementRequest{
		SettlementID: result.Settlements[1].ID,
		ActorID:      "alice",
	})
	assert.NoError(t, err)
	assertStatsConsistent()

	current, _ = f.service.GetBatch(batch.ID)
	assert.Equal(t, models.BatchStats{TotalCompleted: 1, TotalCancelled: 1}, current.Stats)
	assert.Equal(t, utils.BatchStatusCompleted, current.Status)
}
