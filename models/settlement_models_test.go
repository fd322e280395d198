package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitsettle/splitsettle-backend/utils"
)

func TestNormalizeStatus_Mapping(t *testing.T) {
	// Exhaustive over every status shape that appears in persisted data
	cases := map[string]string{
		"paid":      utils.StatusCompleted,
		"completed": utils.StatusCompleted,
		"pending":   utils.StatusPending,
		"confirmed": utils.StatusConfirmed,
		"cancelled": utils.StatusCancelled,
		"disputed":  utils.StatusDisputed,
	}

	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeStatus(input), "status %q", input)
	}

	// Unknown statuses pass through so legacy data still surfaces
	assert.Equal(t, "archived", NormalizeStatus("archived"))
}

func TestSettlementRecord_Normalize_MergesMetadata(t *testing.T) {
	record := SettlementRecord{
		Status:   "paid",
		Metadata: map[string]interface{}{"channel": "upi", "ref": "old"},
		Data:     map[string]interface{}{"ref": "new"},
	}

	record.Normalize()

	assert.Equal(t, utils.StatusCompleted, record.Status)
	assert.Nil(t, record.Metadata)
	assert.Equal(t, "upi", record.Data["channel"])
	assert.Equal(t, "new", record.Data["ref"], "current data wins on collision")
}

func TestSettlementRecord_Normalize_NoMetadata(t *testing.T) {
	record := SettlementRecord{
		Status: "pending",
		Data:   map[string]interface{}{"ref": "x"},
	}

	record.Normalize()

	assert.Equal(t, utils.StatusPending, record.Status)
	assert.Equal(t, map[string]interface{}{"ref": "x"}, record.Data)
}

func TestSettlementRecord_IsTerminal(t *testing.T) {
	assert.True(t, (&SettlementRecord{Status: "paid"}).IsTerminal())
	assert.True(t, (&SettlementRecord{Status: "completed"}).IsTerminal())
	assert.True(t, (&SettlementRecord{Status: "cancelled"}).IsTerminal())
	assert.False(t, (&SettlementRecord{Status: "pending"}).IsTerminal())
	assert.False(t, (&SettlementRecord{Status: "disputed"}).IsTerminal())
}
