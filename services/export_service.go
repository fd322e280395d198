package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/splitsettle/splitsettle-backend/models"
)

// GroupSettlementLister loads a group's settlement history
type GroupSettlementLister interface {
	ListByGroup(groupID string) ([]models.SettlementRecord, error)
}

// ExportService generates Excel reports for a group
type ExportService struct {
	ledger      LedgerRepository
	balances    *BalanceService
	planner     *PlannerService
	settlements GroupSettlementLister
}

// NewExportService creates a new export service
func NewExportService(ledger LedgerRepository, balances *BalanceService, planner *PlannerService, settlements GroupSettlementLister) *ExportService {
	return &ExportService{
		ledger:      ledger,
		balances:    balances,
		planner:     planner,
		settlements: settlements,
	}
}

// ExportGroupToExcel generates an Excel file with the group's balances,
// planned transfers and settlement history
func (s *ExportService) ExportGroupToExcel(groupID string) (*excelize.File, string, error) {
	group, err := s.ledger.GetGroup(groupID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get group: %v", err)
	}

	members, err := s.ledger.LoadGroupMembers(groupID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get members: %v", err)
	}

	plan, err := s.planner.PlanGroupSettlements(groupID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to plan settlements: %v", err)
	}

	settlements, err := s.settlements.ListByGroup(groupID)
	if err != nil {
		// History is best-effort; export balances and plan regardless
		settlements = []models.SettlementRecord{}
	}

	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}

	f := excelize.NewFile()

	if err := s.createBalanceSheet(f, members, plan.Balances); err != nil {
		return nil, "", fmt.Errorf("failed to create balance sheet: %v", err)
	}
	if err := s.createTransferSheet(f, plan.Transfers, names); err != nil {
		return nil, "", fmt.Errorf("failed to create transfer sheet: %v", err)
	}
	if err := s.createSettlementSheet(f, settlements, names); err != nil {
		return nil, "", fmt.Errorf("failed to create settlement sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Settlements_%s.xlsx",
		group.Code,
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createBalanceSheet creates Sheet 1: net balance per member
func (s *ExportService) createBalanceSheet(f *excelize.File, members []models.Member, balances map[string]float64) error {
	sheetName := "Balances"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	sorted := make([]models.Member, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	headers := []string{"Member", "Net Balance"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	s.styleHeaderRow(f, sheetName, "A1", "B1")

	for i, member := range sorted {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), member.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), balances[member.ID])
	}

	f.SetColWidth(sheetName, "A", "B", 18)
	return nil
}

// createTransferSheet creates Sheet 2: transfers that clear the balances
func (s *ExportService) createTransferSheet(f *excelize.File, transfers []models.PlannedTransfer, names map[string]string) error {
	sheetName := "Planned Transfers"
	f.NewSheet(sheetName)

	headers := []string{"From", "To", "Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	s.styleHeaderRow(f, sheetName, "A1", "C1")

	for i, transfer := range transfers {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.displayName(names, transfer.FromUserID))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.displayName(names, transfer.ToUserID))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), transfer.Amount)
	}

	f.SetColWidth(sheetName, "A", "C", 18)
	return nil
}

// createSettlementSheet creates Sheet 3: settlement history
func (s *ExportService) createSettlementSheet(f *excelize.File, settlements []models.SettlementRecord, names map[string]string) error {
	sheetName := "Settlements"
	f.NewSheet(sheetName)

	headers := []string{"From", "To", "Amount", "Method", "Status", "Requested", "Paid"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	s.styleHeaderRow(f, sheetName, "A1", "G1")

	for i, settlement := range settlements {
		settlement.Normalize()
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.displayName(names, settlement.FromUserID))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.displayName(names, settlement.ToUserID))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), settlement.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), settlement.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), settlement.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), settlement.RequestedAt.Format("2006-01-02 15:04"))
		if settlement.PaidAt != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), settlement.PaidAt.Format("2006-01-02 15:04"))
		}
	}

	f.SetColWidth(sheetName, "A", "G", 18)
	return nil
}

// styleHeaderRow applies the bold blue header style used on every sheet
func (s *ExportService) styleHeaderRow(f *excelize.File, sheetName, from, to string) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, from, to, headerStyle)
}

// displayName resolves a member name, falling back to the raw id
func (s *ExportService) displayName(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return userID
}
