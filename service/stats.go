package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"gastos/models"
)

// MonthSummary 月度收支汇总，转账不计入
type MonthSummary struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
	Count    int             `json:"count"`
}

// CategorySummary 单个类别的支出统计
type CategorySummary struct {
	Category   *models.Category `json:"category"`
	Total      decimal.Decimal  `json:"total"`
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"` // 0-100
}

// Summarize 汇总交易
func Summarize(month string, txns []*models.Transaction) MonthSummary {
	s := MonthSummary{Month: month, Income: decimal.Zero, Expenses: decimal.Zero}
	for _, t := range txns {
		switch t.Type {
		case models.TypeIncome:
			s.Income = s.Income.Add(t.Amount)
		case models.TypeExpense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expenses)
	s.Count = len(txns)
	return s
}

// Breakdown 按类别统计支出，只保留有支出的类别，金额从高到低
// 引用了不在 categories 中的类别的交易计入总额，但不单独列出
func Breakdown(txns []*models.Transaction, categories []*models.Category) []CategorySummary {
	type acc struct {
		total decimal.Decimal
		count int
	}
	byCategory := make(map[string]*acc)
	total := decimal.Zero
	for _, t := range txns {
		if t.Type != models.TypeExpense {
			continue
		}
		total = total.Add(t.Amount)
		a, ok := byCategory[t.CategoryID]
		if !ok {
			a = &acc{total: decimal.Zero}
			byCategory[t.CategoryID] = a
		}
		a.total = a.total.Add(t.Amount)
		a.count++
	}

	out := make([]CategorySummary, 0, len(byCategory))
	for _, c := range categories {
		a, ok := byCategory[c.ID]
		if !ok || !a.total.IsPositive() {
			continue
		}
		pct := 0.0
		if total.IsPositive() {
			pct = a.total.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		out = append(out, CategorySummary{Category: c, Total: a.total, Count: a.count, Percentage: pct})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// MonthSummary 某月收支汇总
func (l *Ledger) MonthSummary(ctx context.Context, month string) (MonthSummary, error) {
	if month == "" {
		month = l.locale.CurrentMonth()
	}
	txns, err := l.MonthTransactions(ctx, month)
	if err != nil {
		return MonthSummary{}, err
	}
	return Summarize(month, txns), nil
}

// CategoryStats 某月按支出类别统计
func (l *Ledger) CategoryStats(ctx context.Context, month string) ([]CategorySummary, error) {
	txns, err := l.MonthTransactions(ctx, month)
	if err != nil {
		return nil, err
	}
	categories, err := l.ActiveCategories(ctx, models.TypeExpense)
	if err != nil {
		return nil, err
	}
	return Breakdown(txns, categories), nil
}
