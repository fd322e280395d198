package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/services"
)

type stubLedger struct{}

func (s *stubLedger) GetGroup(groupID string) (*models.Group, error) {
	return &models.Group{ID: groupID, Code: "TRIP42", Name: "Trip", Currency: "USD"}, nil
}

func (s *stubLedger) LoadGroupMembers(groupID string) ([]models.Member, error) {
	return []models.Member{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	}, nil
}

func (s *stubLedger) LoadUnsettledExpenses(groupID string) ([]models.ExpenseRecord, error) {
	return []models.ExpenseRecord{
		{
			ID:      "e1",
			GroupID: groupID,
			Amount:  40.00,
			PaidBy:  "alice",
			Splits: []models.ExpenseSplit{
				{MemberID: "alice", ShareAmount: 20.00},
				{MemberID: "bob", ShareAmount: 20.00},
			},
		},
	}, nil
}

type stubSettlementLister struct{}

func (s *stubSettlementLister) ListByGroup(groupID string) ([]models.SettlementRecord, error) {
	return []models.SettlementRecord{}, nil
}

func newExportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	ledger := &stubLedger{}
	balances := services.NewBalanceService(ledger)
	planner := services.NewPlannerService(balances)
	exportService := services.NewExportService(ledger, balances, planner, &stubSettlementLister{})
	handler := NewExportHandler(exportService)

	router := gin.New()
	router.POST("/export/group", handler.ExportGroup)
	return router
}

func TestExportGroup_ReturnsWorkbook(t *testing.T) {
	router := newExportRouter()

	req := httptest.NewRequest(http.MethodPost, "/export/group",
		strings.NewReader(`{"groupId":"group-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "TRIP42_Settlements_")
	assert.NotZero(t, resp.Body.Len())
}

func TestExportGroup_RequiresGroupID(t *testing.T) {
	router := newExportRouter()

	req := httptest.NewRequest(http.MethodPost, "/export/group",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
