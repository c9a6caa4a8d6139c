package api

import (
	"gastos/format"
	"gastos/models"
	"gastos/service"
)

// 列表中描述最多显示的字符数
const descriptionShortLen = 24

// TransactionView 交易加上展示用的格式化字段
type TransactionView struct {
	*models.Transaction
	AmountDisplay    string `json:"amount_display"` // "$1.250.000"
	AmountInput      string `json:"amount_input"`   // 编辑框回填 "1.250.000"
	DateDisplay      string `json:"date_display"`   // "Hoy" / "Ayer" / "27 nov 2025"
	TimeDisplay      string `json:"time_display"`   // "2:30 p. m."
	DescriptionShort string `json:"description_short"`
	IsToday          bool   `json:"is_today"`
}

func newTransactionView(l *format.Locale, t *models.Transaction) TransactionView {
	return TransactionView{
		Transaction:      t,
		AmountDisplay:    l.FormatCurrency(t.Amount),
		AmountInput:      format.FormatCurrencyInput(t.Amount.StringFixed(0)),
		DateDisplay:      l.FormatRelativeDate(t.Date),
		TimeDisplay:      format.FormatTime(t.Time),
		DescriptionShort: format.Truncate(t.Description, descriptionShortLen),
		IsToday:          t.IsToday(l.Now()),
	}
}

func newTransactionViews(l *format.Locale, txns []*models.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		views = append(views, newTransactionView(l, t))
	}
	return views
}

// TransactionDetailView 交易详情；类别或账户已删除时为 null
type TransactionDetailView struct {
	TransactionView
	Category *models.Category `json:"category"`
	Account  *models.Account  `json:"account"`
}

// SummaryView 月度汇总
type SummaryView struct {
	service.MonthSummary
	MonthDisplay    string `json:"month_display"` // "noviembre 2025"
	IncomeDisplay   string `json:"income_display"`
	ExpensesDisplay string `json:"expenses_display"`
	ExpensesCompact string `json:"expenses_compact"` // "1.3M"
	BalanceDisplay  string `json:"balance_display"`
}

func newSummaryView(l *format.Locale, s service.MonthSummary) SummaryView {
	return SummaryView{
		MonthSummary:    s,
		MonthDisplay:    format.FormatMonth(s.Month),
		IncomeDisplay:   l.FormatCurrency(s.Income),
		ExpensesDisplay: l.FormatCurrency(s.Expenses),
		ExpensesCompact: format.FormatCompactNumber(s.Expenses.InexactFloat64()),
		BalanceDisplay:  l.FormatCurrency(s.Balance),
	}
}

// CategorySummaryView 类别支出统计
type CategorySummaryView struct {
	service.CategorySummary
	TotalDisplay      string `json:"total_display"`
	PercentageDisplay string `json:"percentage_display"` // "45.5%"
}

func newCategorySummaryViews(l *format.Locale, stats []service.CategorySummary) []CategorySummaryView {
	views := make([]CategorySummaryView, 0, len(stats))
	for _, s := range stats {
		views = append(views, CategorySummaryView{
			CategorySummary:   s,
			TotalDisplay:      l.FormatCurrency(s.Total),
			PercentageDisplay: format.FormatPercentage(s.Percentage / 100),
		})
	}
	return views
}
