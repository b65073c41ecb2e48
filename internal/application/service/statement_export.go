package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
)

// ExportStatementXLSX builds the statement and renders it as a spreadsheet.
// Returns the file bytes and a download filename.
func (s *StatementService) ExportStatementXLSX(ctx context.Context, input *StatementInput) ([]byte, string, error) {
	statement, err := s.GetCustomerStatement(ctx, input)
	if err != nil {
		return nil, "", err
	}

	settings, err := s.shopSettings(ctx)
	if err != nil {
		return nil, "", err
	}

	return renderStatementXLSX(statement, settings)
}

// renderStatementXLSX lays the statement out on one sheet: a heading block,
// the entry rows newest first, the summary totals and any warnings.
func renderStatementXLSX(statement *CustomerStatement, settings *entity.ShopSettings) ([]byte, string, error) {
	f := excelize.NewFile()

	sheetName := "Statement"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	dateLayout := dateLayoutFor(settings.DateFormat)

	// Heading block
	f.SetCellValue(sheetName, "A1", settings.ShopName)
	f.SetCellValue(sheetName, "A2", "Customer Account Statement")
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Customer: %s (%s)", statement.CustomerName, statement.CustomerPhone))
	f.SetCellValue(sheetName, "A4", "Period: "+periodLabel(statement.PeriodStart, statement.PeriodEnd))
	f.SetCellValue(sheetName, "A5", "Generated: "+statement.GeneratedAt.Format(dateLayout+" 15:04"))

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 14,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, titleStyle)
	}

	// Entry table headers
	cur := settings.Currency
	headers := []string{
		"Date", "Description",
		"Debit (" + cur + ")", "Credit (" + cur + ")",
		"Paid (" + cur + ")", "Balance (" + cur + ")",
		"Status", "Notes",
	}
	headerRow := 7
	for i, header := range headers {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}

	// Style the header row
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, headerRow, headerRow, headerStyle)
	}

	// Entry rows, newest first as the builder returns them
	estimatedDates := false
	row := headerRow
	for _, entry := range statement.Entries {
		row++

		dateCell := entry.Date.Format(dateLayout)
		if entry.DateEstimated {
			dateCell += " *"
			estimatedDates = true
		}

		values := []interface{}{
			dateCell,
			entry.Description,
			entry.Debit.InexactFloat64(),
			entry.Credit.InexactFloat64(),
			entry.Paid.InexactFloat64(),
			entry.Balance.InexactFloat64(),
			entry.Status,
			entry.Notes,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Summary block
	row += 2
	summary := statement.Summary
	summaryRows := []struct {
		label string
		value interface{}
	}{
		{"Total Purchases (" + cur + ")", summary.TotalPurchases.InexactFloat64()},
		{"Total Paid (" + cur + ")", summary.TotalPaid.InexactFloat64()},
		{"Payments Received (" + cur + ")", summary.TotalPaymentsReceived.InexactFloat64()},
		{"Return Credits (" + cur + ")", summary.TotalReturnCredits.InexactFloat64()},
		{"Outstanding Balance (" + cur + ")", summary.TotalOutstanding.InexactFloat64()},
		{"Collection Rate (%)", summary.CollectionRate.InexactFloat64()},
		{"Refund Rate (%)", summary.RefundRate.InexactFloat64()},
	}
	for _, sr := range summaryRows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sr.label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sr.value)
		row++
	}

	// Footnotes
	if estimatedDates || len(statement.Warnings) > 0 {
		row++
		if estimatedDates {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "* date missing on the source record; the statement build time was used")
			row++
		}
		for _, w := range statement.Warnings {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Warning: "+w.Message)
			row++
		}
	}

	// Column widths
	widths := []float64{14, 42, 14, 14, 14, 14, 10, 30}
	for i, w := range widths {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, w)
	}

	// Delete the default sheet if it exists and is not our target sheet
	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	// Write to buffer
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("error writing Excel file to buffer: %v", err)
	}

	filename := fmt.Sprintf("statement-%s-%s.xlsx",
		utils.Slugify(statement.CustomerPhone),
		statement.GeneratedAt.Format("20060102"))

	return buf.Bytes(), filename, nil
}

// dateLayoutFor maps the settings date format to a Go time layout
func dateLayoutFor(format string) string {
	switch format {
	case "MM/DD/YYYY":
		return "01/02/2006"
	case "YYYY-MM-DD":
		return "2006-01-02"
	default: // DD/MM/YYYY
		return "02/01/2006"
	}
}
