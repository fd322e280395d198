// repository/group_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/splitsettle/splitsettle-backend/models"
)

// GroupRepository handles database operations for groups and their ledger
// snapshot (members and unsettled expense-split records)
type GroupRepository struct {
	DB *sql.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GetGroup retrieves a group with its members
func (r *GroupRepository) GetGroup(groupID string) (*models.Group, error) {
	var group models.Group
	err := r.DB.QueryRow(
		"SELECT id, code, name, currency, creation_time FROM groups WHERE id = $1",
		groupID,
	).Scan(&group.ID, &group.Code, &group.Name, &group.Currency, &group.CreationTime)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("group not found")
		}
		return nil, fmt.Errorf("failed to get group: %v", err)
	}

	members, err := r.LoadGroupMembers(group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return &group, nil
}

// LoadGroupMembers retrieves every member of a group
func (r *GroupRepository) LoadGroupMembers(groupID string) ([]models.Member, error) {
	rows, err := r.DB.Query(`
		SELECT u.id, u.name
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY u.name`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %v", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var member models.Member
		if err := rows.Scan(&member.ID, &member.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %v", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// LoadUnsettledExpenses retrieves a group's unsettled expenses with their
// splits
func (r *GroupRepository) LoadUnsettledExpenses(groupID string) ([]models.ExpenseRecord, error) {
	rows, err := r.DB.Query(`
		SELECT id, group_id, description, amount, paid_by, is_settled, creation_time
		FROM expenses
		WHERE group_id = $1 AND is_settled = FALSE
		ORDER BY creation_time`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []models.ExpenseRecord
	byID := make(map[string]int)
	for rows.Next() {
		var expense models.ExpenseRecord
		err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&expense.Amount, &expense.PaidBy, &expense.IsSettled, &expense.CreationTime)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		byID[expense.ID] = len(expenses)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	splitRows, err := r.DB.Query(`
		SELECT es.expense_id, es.member_id, es.share_amount, es.settled, es.settled_at
		FROM expense_splits es
		JOIN expenses e ON e.id = es.expense_id
		WHERE e.group_id = $1 AND e.is_settled = FALSE`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %v", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID string
		var split models.ExpenseSplit
		var settledAt sql.NullTime
		err := splitRows.Scan(&expenseID, &split.MemberID, &split.ShareAmount,
			&split.Settled, &settledAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %v", err)
		}
		if settledAt.Valid {
			split.SettledAt = &settledAt.Time
		}
		if idx, ok := byID[expenseID]; ok {
			expenses[idx].Splits = append(expenses[idx].Splits, split)
		}
	}

	return expenses, splitRows.Err()
}
