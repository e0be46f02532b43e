package reports

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of WriteXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const amountColumn = 7

// WriteXLSX writes the expenses as a single-sheet workbook.
func WriteXLSX(w io.Writer, sheetName string, expenses []domain.Expense) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("Failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, expenseHeaders)
	if err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	if len(expenses) != 0 {
		if _, err = writeExpenseData(f, sheet, expenses, row); err != nil {
			return fmt.Errorf("failed to write xlsx rows: %w", err)
		}
	}
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeExpenseData(f *excelize.File, sheet string, expenses []domain.Expense, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(expenseHeaders), row+len(expenses)); err != nil {
		return row, err
	}
	for _, e := range expenses {
		row++
		for idx, value := range toRow(e).values() {
			col := idx + 1
			var cell interface{} = value
			if col == amountColumn {
				// numeric so spreadsheets can sum it
				cell, _ = e.Amount.Float64()
			}
			if err := writeColumn(f, sheet, col, row, cell); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Size: 11},
	})
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}
