package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gastos/format"
	"gastos/models"
)

const (
	sheetTransactions = "Transacciones"
	sheetCategories   = "Categorías"
)

// ExportFilename 导出文件名
func ExportFilename(month string) string {
	return fmt.Sprintf("gastos_%s.xlsx", month)
}

func cellBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}

// ExportMonth 将某月交易和类别统计写成 xlsx
func (l *Ledger) ExportMonth(ctx context.Context, month string, w io.Writer) error {
	if month == "" {
		month = l.locale.CurrentMonth()
	}
	txns, err := l.MonthTransactions(ctx, month)
	if err != nil {
		return err
	}
	categories, err := l.store.Query(ctx, CategoriesQuery(""))
	if err != nil {
		return err
	}
	accounts, err := l.store.Query(ctx, AccountsQuery())
	if err != nil {
		return err
	}

	catByID := make(map[string]*models.Category)
	for _, c := range models.AsCategories(categories) {
		catByID[c.ID] = c
	}
	accByID := make(map[string]*models.Account)
	for _, a := range models.AsAccounts(accounts) {
		accByID[a.ID] = a
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return err
	}

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    cellBorder(),
	})
	if err != nil {
		return err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	if err != nil {
		return err
	}

	// 列宽
	widths := map[string]float64{"A": 14, "B": 8, "C": 16, "D": 30, "E": 18, "F": 22, "G": 10, "H": 14}
	for col, width := range widths {
		if err := f.SetColWidth(sheetTransactions, col, col, width); err != nil {
			return err
		}
	}

	headers := []string{"Fecha", "Hora", "Monto", "Descripción", "Categoría", "Cuenta", "Tipo", "Pago"}
	if err := writeHeader(f, sheetTransactions, headers, headerStyle); err != nil {
		return err
	}

	for i, t := range txns {
		row := i + 2
		category, account := "", ""
		if c, ok := catByID[t.CategoryID]; ok {
			category = c.Name
		}
		if a, ok := accByID[t.AccountID]; ok {
			account = a.Name + " " + a.MaskedNumber()
		}
		values := []interface{}{
			format.FormatDate(t.Date),
			t.Time,
			l.locale.FormatCurrency(t.Amount),
			t.Description,
			category,
			account,
			string(t.Type),
			string(t.PaymentMethod),
		}
		if err := f.SetSheetRow(sheetTransactions, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetTransactions, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle); err != nil {
			return err
		}
	}

	// 汇总行
	summary := Summarize(month, txns)
	summaryRow := len(txns) + 2
	_ = f.SetCellValue(sheetTransactions, fmt.Sprintf("A%d", summaryRow), format.Capitalize(format.FormatMonth(month)))
	_ = f.MergeCell(sheetTransactions, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	_ = f.SetCellValue(sheetTransactions, fmt.Sprintf("C%d", summaryRow), l.locale.FormatCurrency(summary.Balance))
	_ = f.SetCellValue(sheetTransactions, fmt.Sprintf("D%d", summaryRow),
		fmt.Sprintf("Ingresos %s / Gastos %s / %d transacciones",
			l.locale.FormatCurrency(summary.Income), l.locale.FormatCurrency(summary.Expenses), summary.Count))
	_ = f.MergeCell(sheetTransactions, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("H%d", summaryRow))
	if err := f.SetCellStyle(sheetTransactions, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle); err != nil {
		return err
	}

	// 类别统计
	if _, err := f.NewSheet(sheetCategories); err != nil {
		return err
	}
	if err := writeHeader(f, sheetCategories, []string{"Categoría", "Total", "Transacciones", "Porcentaje"}, headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(sheetCategories, "A", "A", 22)
	_ = f.SetColWidth(sheetCategories, "B", "D", 16)

	expenseCats := make([]*models.Category, 0, len(catByID))
	for _, c := range models.AsCategories(categories) {
		if c.Type == models.TypeExpense {
			expenseCats = append(expenseCats, c)
		}
	}
	for i, s := range Breakdown(txns, expenseCats) {
		row := i + 2
		values := []interface{}{
			s.Category.Name,
			l.locale.FormatCurrency(s.Total),
			s.Count,
			format.FormatPercentage(s.Percentage / 100),
		}
		if err := f.SetSheetRow(sheetCategories, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetCategories, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), dataStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("生成 Excel 失败: %w", err)
	}
	l.log.Info().Str("month", month).Int("rows", len(txns)).Msg("已导出 Excel")
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
