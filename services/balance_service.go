package services

import (
	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// LedgerRepository loads the point-in-time snapshot balances are computed
// from.
type LedgerRepository interface {
	GetGroup(groupID string) (*models.Group, error)
	LoadGroupMembers(groupID string) ([]models.Member, error)
	LoadUnsettledExpenses(groupID string) ([]models.ExpenseRecord, error)
}

// BalanceService computes net balances from a ledger snapshot
type BalanceService struct {
	ledger LedgerRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(ledger LedgerRepository) *BalanceService {
	return &BalanceService{ledger: ledger}
}

// ComputeBalances folds members and expenses into one net balance per
// member. Positive means the member is owed money, negative means they owe.
// Members with no expenses appear at 0. Malformed expenses (splits not
// summing to the amount) are not rejected; the resulting ledger may violate
// the conservation law, which the planner reports as an invariant warning.
func (s *BalanceService) ComputeBalances(members []models.Member, expenses []models.ExpenseRecord) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, member := range members {
		balances[member.ID] = 0
	}

	for _, expense := range expenses {
		balances[expense.PaidBy] += expense.Amount
		for _, split := range expense.Splits {
			balances[split.MemberID] -= split.ShareAmount
		}
	}

	// Round all balances
	for memberID, balance := range balances {
		balances[memberID] = utils.Round(balance)
	}

	return balances
}

// ComputeGroupBalances loads a group's snapshot and computes its balances
func (s *BalanceService) ComputeGroupBalances(groupID string) (*models.BalanceResult, error) {
	members, err := s.ledger.LoadGroupMembers(groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ledger.LoadUnsettledExpenses(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	return &models.BalanceResult{
		GroupID:  groupID,
		Balances: s.ComputeBalances(members, expenses),
	}, nil
}
