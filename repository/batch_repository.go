// repository/batch_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// BatchRepository handles database operations for settlement batches
type BatchRepository struct {
	DB *sql.DB
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{DB: db}
}

// CreateBatchWithSettlements saves a batch and its child records in one
// transaction. Either everything exists afterwards or nothing does.
func (r *BatchRepository) CreateBatchWithSettlements(batch *models.SettlementBatch, records []models.SettlementRecord) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO settlement_batches
			(id, group_id, created_by, total_amount, settlement_count, status,
			 total_pending, total_completed, total_cancelled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		batch.ID, batch.GroupID, batch.CreatedBy, batch.TotalAmount,
		batch.SettlementCount, batch.Status,
		batch.Stats.TotalPending, batch.Stats.TotalCompleted, batch.Stats.TotalCancelled,
		batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %v", err)
	}

	for i := range records {
		if err := insertSettlement(tx, &records[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetBatch retrieves a batch by id. Stats are recomputed from the child
// records so the consistency invariant holds at every observation point,
// even if a counter update was lost.
func (r *BatchRepository) GetBatch(id string) (*models.SettlementBatch, error) {
	var batch models.SettlementBatch
	err := r.DB.QueryRow(`
		SELECT id, group_id, created_by, total_amount, settlement_count, status, created_at
		FROM settlement_batches WHERE id = $1`,
		id,
	).Scan(&batch.ID, &batch.GroupID, &batch.CreatedBy, &batch.TotalAmount,
		&batch.SettlementCount, &batch.Status, &batch.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("batch not found")
		}
		return nil, fmt.Errorf("failed to get batch: %v", err)
	}

	rows, err := r.DB.Query(
		"SELECT id, status FROM settlements WHERE batch_id = $1 ORDER BY requested_at",
		batch.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch settlements: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var settlementID, status string
		if err := rows.Scan(&settlementID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan batch settlement: %v", err)
		}
		batch.SettlementIDs = append(batch.SettlementIDs, settlementID)

		switch models.NormalizeStatus(status) {
		case utils.StatusCompleted:
			batch.Stats.TotalCompleted++
		case utils.StatusCancelled:
			batch.Stats.TotalCancelled++
		default:
			// pending, confirmed and disputed all count as pending
			batch.Stats.TotalPending++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	batch.Status = deriveBatchStatus(batch.Status, batch.Stats)
	return &batch, nil
}

// UpdateBatchStats applies a child-state transition delta under an
// exclusive row lock and re-derives the batch status
func (r *BatchRepository) UpdateBatchStats(batchID string, delta models.BatchStats) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var stats models.BatchStats
	var status string
	err = tx.QueryRow(`
		SELECT status, total_pending, total_completed, total_cancelled
		FROM settlement_batches WHERE id = $1
		FOR UPDATE`,
		batchID,
	).Scan(&status, &stats.TotalPending, &stats.TotalCompleted, &stats.TotalCancelled)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("batch not found")
		}
		return fmt.Errorf("failed to lock batch: %v", err)
	}

	stats.TotalPending += delta.TotalPending
	stats.TotalCompleted += delta.TotalCompleted
	stats.TotalCancelled += delta.TotalCancelled

	_, err = tx.Exec(`
		UPDATE settlement_batches
		SET total_pending = $2, total_completed = $3, total_cancelled = $4, status = $5
		WHERE id = $1`,
		batchID, stats.TotalPending, stats.TotalCompleted, stats.TotalCancelled,
		deriveBatchStatus(status, stats),
	)
	if err != nil {
		return fmt.Errorf("failed to update batch stats: %v", err)
	}

	return tx.Commit()
}

// deriveBatchStatus closes a batch once no child remains pending: completed
// if any child completed, cancelled otherwise. Open batches keep their
// stored status.
func deriveBatchStatus(status string, stats models.BatchStats) string {
	if stats.TotalPending > 0 {
		return status
	}
	if stats.TotalCompleted > 0 {
		return utils.BatchStatusCompleted
	}
	if stats.TotalCancelled > 0 {
		return utils.BatchStatusCancelled
	}
	return status
}
