// repository/settlement_repository.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/splitsettle/splitsettle-backend/models"
)

// SettlementRepository handles database operations for settlement records.
// Records are append-only: status transitions update rows, nothing is ever
// deleted.
type SettlementRepository struct {
	DB *sql.DB
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{DB: db}
}

const settlementColumns = `
	id, group_id, from_user, to_user, amount, method, status,
	COALESCE(batch_id, ''), COALESCE(proof, ''), COALESCE(notes, ''),
	data, metadata, requested_at, paid_at`

// CreateSettlement inserts a new settlement record
func (r *SettlementRepository) CreateSettlement(record *models.SettlementRecord) error {
	return insertSettlement(r.DB, record)
}

// insertSettlement writes one record through either a *sql.DB or a *sql.Tx
func insertSettlement(q queryer, record *models.SettlementRecord) error {
	data, err := marshalPayload(record.Data)
	if err != nil {
		return fmt.Errorf("failed to encode settlement data: %v", err)
	}

	_, err = q.Exec(`
		INSERT INTO settlements
			(id, group_id, from_user, to_user, amount, method, status,
			 batch_id, proof, notes, data, requested_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)`,
		record.ID, record.GroupID, record.FromUserID, record.ToUserID,
		record.Amount, record.Method, record.Status,
		record.BatchID, record.Proof, record.Notes, data,
		record.RequestedAt, record.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %v", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by id, normalized to the current
// shape
func (r *SettlementRepository) GetSettlement(id string) (*models.SettlementRecord, error) {
	row := r.DB.QueryRow(
		"SELECT"+settlementColumns+" FROM settlements WHERE id = $1", id)

	record, err := scanSettlement(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("settlement not found")
		}
		return nil, fmt.Errorf("failed to get settlement: %v", err)
	}
	return record, nil
}

// UpdateStatusIfCurrent performs a compare-and-set transition keyed on the
// pre-transition status. Proof and notes are only written when non-empty.
// It reports false when the row was not in fromStatus.
func (r *SettlementRepository) UpdateStatusIfCurrent(id, fromStatus, toStatus string, paidAt *time.Time, proof, notes string) (bool, error) {
	result, err := r.DB.Exec(`
		UPDATE settlements
		SET status = $3,
		    paid_at = COALESCE($4, paid_at),
		    proof = CASE WHEN $5 <> '' THEN $5 ELSE proof END,
		    notes = CASE WHEN $6 <> '' THEN $6 ELSE notes END
		WHERE id = $1 AND status = $2`,
		id, fromStatus, toStatus, paidAt, proof, notes,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update settlement status: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %v", err)
	}
	return affected == 1, nil
}

// ListByUser retrieves every settlement a user is party to, newest first
func (r *SettlementRepository) ListByUser(userID string) ([]models.SettlementRecord, error) {
	rows, err := r.DB.Query(
		"SELECT"+settlementColumns+`
		FROM settlements
		WHERE from_user = $1 OR to_user = $1
		ORDER BY requested_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %v", err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

// ListByGroup retrieves a group's settlements, newest first
func (r *SettlementRepository) ListByGroup(groupID string) ([]models.SettlementRecord, error) {
	rows, err := r.DB.Query(
		"SELECT"+settlementColumns+`
		FROM settlements
		WHERE group_id = $1
		ORDER BY requested_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %v", err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSettlement reads one settlement row and normalizes legacy shapes at
// the read boundary
func scanSettlement(row rowScanner) (*models.SettlementRecord, error) {
	var record models.SettlementRecord
	var data, metadata []byte
	var paidAt sql.NullTime

	err := row.Scan(&record.ID, &record.GroupID, &record.FromUserID,
		&record.ToUserID, &record.Amount, &record.Method, &record.Status,
		&record.BatchID, &record.Proof, &record.Notes,
		&data, &metadata, &record.RequestedAt, &paidAt)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		record.PaidAt = &paidAt.Time
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &record.Data); err != nil {
			return nil, fmt.Errorf("failed to decode settlement data: %v", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode settlement metadata: %v", err)
		}
	}

	record.Normalize()
	return &record, nil
}

// collectSettlements drains a settlement result set
func collectSettlements(rows *sql.Rows) ([]models.SettlementRecord, error) {
	var settlements []models.SettlementRecord
	for rows.Next() {
		record, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %v", err)
		}
		settlements = append(settlements, *record)
	}
	return settlements, rows.Err()
}

// marshalPayload encodes the data payload, NULL when empty
func marshalPayload(payload map[string]interface{}) (interface{}, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return encoded, nil
}
