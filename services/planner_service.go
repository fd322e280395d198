package services

import (
	"log/slog"
	"sort"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// PlannerService converts net balances into a minimal set of directed
// transfers (debt minimization)
type PlannerService struct {
	balances *BalanceService
}

// NewPlannerService creates a new planner service
func NewPlannerService(balances *BalanceService) *PlannerService {
	return &PlannerService{balances: balances}
}

// memberBalance represents a member and a positive balance magnitude
type memberBalance struct {
	MemberID string
	Amount   float64
}

// Plan matches debtors against creditors greedily, largest magnitude first.
// Each step zeroes out at least one party, so the output holds at most
// k-1 transfers for k nonzero-balance members. Members within the settled
// epsilon of zero are dropped. Output order is deterministic for identical
// input.
func (s *PlannerService) Plan(balances map[string]float64) []models.PlannedTransfer {
	creditors := s.extractCreditors(balances)
	debtors := s.extractDebtors(balances)

	s.sortByMagnitude(creditors)
	s.sortByMagnitude(debtors)

	return s.generateTransfers(creditors, debtors)
}

// PlanGroupSettlements computes a group's balances and plans the transfers
// that clear them
func (s *PlannerService) PlanGroupSettlements(groupID string) (*models.SettlementPlan, error) {
	result, err := s.balances.ComputeGroupBalances(groupID)
	if err != nil {
		return nil, err
	}

	return &models.SettlementPlan{
		GroupID:   groupID,
		Transfers: s.Plan(result.Balances),
		Balances:  result.Balances,
	}, nil
}

// extractCreditors extracts members who are owed money
func (s *PlannerService) extractCreditors(balances map[string]float64) []memberBalance {
	var creditors []memberBalance
	for memberID, balance := range balances {
		if balance > utils.SettledEpsilon {
			creditors = append(creditors, memberBalance{
				MemberID: memberID,
				Amount:   balance,
			})
		}
	}
	return creditors
}

// extractDebtors extracts members who owe money, stored as positive magnitudes
func (s *PlannerService) extractDebtors(balances map[string]float64) []memberBalance {
	var debtors []memberBalance
	for memberID, balance := range balances {
		if balance < -utils.SettledEpsilon {
			debtors = append(debtors, memberBalance{
				MemberID: memberID,
				Amount:   -balance,
			})
		}
	}
	return debtors
}

// sortByMagnitude sorts descending by amount, ties broken by member id
// ascending so identical input always plans identical output
func (s *PlannerService) sortByMagnitude(slice []memberBalance) {
	sort.Slice(slice, func(i, j int) bool {
		if slice[i].Amount != slice[j].Amount {
			return slice[i].Amount > slice[j].Amount
		}
		return slice[i].MemberID < slice[j].MemberID
	})
}

// generateTransfers walks both sorted lists with two cursors, transferring
// the smaller of the two current amounts at each step
func (s *PlannerService) generateTransfers(creditors, debtors []memberBalance) []models.PlannedTransfer {
	var transfers []models.PlannedTransfer

	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amount := utils.Round(utils.Min(creditors[i].Amount, debtors[j].Amount))

		if amount > 0 {
			transfers = append(transfers, models.PlannedTransfer{
				FromUserID: debtors[j].MemberID,
				ToUserID:   creditors[i].MemberID,
				Amount:     amount,
			})
		}

		creditors[i].Amount -= amount
		debtors[j].Amount -= amount

		if utils.IsSettled(creditors[i].Amount) {
			i++
		}
		if utils.IsSettled(debtors[j].Amount) {
			j++
		}
	}

	// A nonzero remainder here means the input violated the conservation
	// law. Legacy data can already be inconsistent, so the plan is still
	// returned; the leftover is an observability event, not a transfer.
	var leftover float64
	for ; i < len(creditors); i++ {
		leftover += creditors[i].Amount
	}
	for ; j < len(debtors); j++ {
		leftover += debtors[j].Amount
	}
	if leftover > utils.SettledEpsilon {
		slog.Warn("balance conservation violated after planning",
			"leftover", utils.Round(leftover))
	}

	return transfers
}
