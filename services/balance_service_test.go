package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitsettle/splitsettle-backend/models"
)

func members(ids ...string) []models.Member {
	out := make([]models.Member, len(ids))
	for i, id := range ids {
		out[i] = models.Member{ID: id, Name: id}
	}
	return out
}

func equalSplitExpense(paidBy string, amount float64, among ...string) models.ExpenseRecord {
	share := amount / float64(len(among))
	expense := models.ExpenseRecord{PaidBy: paidBy, Amount: amount}
	for _, memberID := range among {
		expense.Splits = append(expense.Splits, models.ExpenseSplit{
			MemberID:    memberID,
			ShareAmount: share,
		})
	}
	return expense
}

func TestBalanceService_ComputeBalances_EqualSplit(t *testing.T) {
	service := NewBalanceService(nil)

	// One expense of 300 paid by A, split equally among A, B, C:
	// A: +300 - 100 = +200, B: -100, C: -100
	balances := service.ComputeBalances(
		members("a", "b", "c"),
		[]models.ExpenseRecord{equalSplitExpense("a", 300, "a", "b", "c")},
	)

	assert.Equal(t, map[string]float64{
		"a": 200,
		"b": -100,
		"c": -100,
	}, balances)
}

func TestBalanceService_ComputeBalances_MembersWithoutExpensesAppearAtZero(t *testing.T) {
	service := NewBalanceService(nil)

	balances := service.ComputeBalances(
		members("a", "b", "c", "idle"),
		[]models.ExpenseRecord{equalSplitExpense("a", 90, "a", "b", "c")},
	)

	assert.Len(t, balances, 4)
	assert.Equal(t, 0.0, balances["idle"])
}

func TestBalanceService_ComputeBalances_Conservation(t *testing.T) {
	service := NewBalanceService(nil)

	// Splits sum to each expense amount, so net balances must sum to zero
	expenses := []models.ExpenseRecord{
		equalSplitExpense("a", 300, "a", "b", "c"),
		equalSplitExpense("b", 120.50, "a", "b"),
		equalSplitExpense("c", 99.99, "a", "b", "c"),
		equalSplitExpense("b", 10, "c"),
	}

	balances := service.ComputeBalances(members("a", "b", "c"), expenses)

	var sum float64
	for _, balance := range balances {
		sum += balance
	}
	assert.InDelta(t, 0, sum, 0.01)
}

func TestBalanceService_ComputeBalances_Idempotent(t *testing.T) {
	service := NewBalanceService(nil)

	memberList := members("a", "b", "c")
	expenses := []models.ExpenseRecord{
		equalSplitExpense("a", 300, "a", "b", "c"),
		equalSplitExpense("b", 45.67, "a", "c"),
	}

	first := service.ComputeBalances(memberList, expenses)
	second := service.ComputeBalances(memberList, expenses)

	assert.Equal(t, first, second)
}

func TestBalanceService_ComputeBalances_RoundsHalfUp(t *testing.T) {
	service := NewBalanceService(nil)

	// 100/3 = 33.333..., payer keeps 100 - 33.33... = 66.67 after rounding
	balances := service.ComputeBalances(
		members("a", "b", "c"),
		[]models.ExpenseRecord{equalSplitExpense("a", 100, "a", "b", "c")},
	)

	assert.Equal(t, 66.67, balances["a"])
	assert.Equal(t, -33.33, balances["b"])
	assert.Equal(t, -33.33, balances["c"])
}

func TestBalanceService_ComputeBalances_MalformedExpenseIsNotRejected(t *testing.T) {
	service := NewBalanceService(nil)

	// Splits deliberately do not sum to the amount; computation still
	// succeeds and the imbalance shows up in the totals
	broken := models.ExpenseRecord{
		PaidBy: "a",
		Amount: 100,
		Splits: []models.ExpenseSplit{
			{MemberID: "b", ShareAmount: 30},
		},
	}

	balances := service.ComputeBalances(members("a", "b"), []models.ExpenseRecord{broken})

	assert.Equal(t, 100.0, balances["a"])
	assert.Equal(t, -30.0, balances["b"])
}

func TestBalanceService_ComputeGroupBalances(t *testing.T) {
	ledger := &fakeLedger{
		members: members("a", "b"),
		expenses: []models.ExpenseRecord{
			equalSplitExpense("a", 50, "a", "b"),
		},
	}
	service := NewBalanceService(ledger)

	result, err := service.ComputeGroupBalances("g1")

	assert.NoError(t, err)
	assert.Equal(t, "g1", result.GroupID)
	assert.Equal(t, 25.0, result.Balances["a"])
	assert.Equal(t, -25.0, result.Balances["b"])
}
