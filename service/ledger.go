package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"gastos/database"
	"gastos/format"
	"gastos/models"
)

// DefaultRecentLimit 首页最近交易条数
const DefaultRecentLimit = 5

// TransactionInput 记账表单
type TransactionInput struct {
	Amount        string                 `json:"amount" binding:"required"` // "$1.250.000" 或 "1250000"
	Description   string                 `json:"description" binding:"required"`
	Notes         string                 `json:"notes"`
	CategoryID    string                 `json:"category_id" binding:"required"`
	AccountID     string                 `json:"account_id" binding:"required"`
	Type          models.TransactionType `json:"type"`           // 为空时为 expense
	PaymentMethod models.PaymentMethod   `json:"payment_method"` // 为空时为 debit_card
}

// TransactionDetail 交易及其类别、账户；引用已被删除时对应字段为 nil
type TransactionDetail struct {
	Transaction *models.Transaction `json:"transaction"`
	Category    *models.Category    `json:"category"`
	Account     *models.Account     `json:"account"`
}

// Ledger 记账相关操作
type Ledger struct {
	store  *database.Store
	locale *format.Locale
	log    zerolog.Logger
}

// NewLedger 创建 Ledger，locale 为 nil 时使用默认地区设置
func NewLedger(store *database.Store, locale *format.Locale, log zerolog.Logger) *Ledger {
	if locale == nil {
		locale = format.Default()
	}
	return &Ledger{store: store, locale: locale, log: log}
}

// Store 底层存储
func (l *Ledger) Store() *database.Store {
	return l.store
}

// Locale 地区设置
func (l *Ledger) Locale() *format.Locale {
	return l.locale
}

// validate 表单校验，顺序与录入界面的提示一致
func (in TransactionInput) validate() (decimal.Decimal, error) {
	amount := format.ParseCurrency(in.Amount)
	if amount <= 0 {
		return decimal.Zero, &models.ValidationError{Field: "amount", Message: "请输入金额"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return decimal.Zero, &models.ValidationError{Field: "description", Message: "请输入描述"}
	}
	if in.CategoryID == "" {
		return decimal.Zero, &models.ValidationError{Field: "category_id", Message: "请选择类别"}
	}
	if in.AccountID == "" {
		return decimal.Zero, &models.ValidationError{Field: "account_id", Message: "请选择账户"}
	}
	if in.Type != "" && !in.Type.Valid() {
		return decimal.Zero, &models.ValidationError{Field: "type", Message: "未知的交易类型: " + string(in.Type)}
	}
	return decimal.NewFromInt(amount), nil
}

// AddTransaction 按当前波哥大日期和时间记一笔手工交易
func (l *Ledger) AddTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	amount, err := in.validate()
	if err != nil {
		return nil, err
	}

	typ := in.Type
	if typ == "" {
		typ = models.TypeExpense
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentDebitCard
	}
	var notes *string
	if n := strings.TrimSpace(in.Notes); n != "" {
		notes = &n
	}
	now := l.locale.Now()

	var created *models.Transaction
	err = l.store.Write(ctx, func(tx *database.Tx) error {
		if _, err := tx.Find(models.TableCategories, in.CategoryID); err != nil {
			return missingRef(err, "category_id", "类别不存在")
		}
		if _, err := tx.Find(models.TableAccounts, in.AccountID); err != nil {
			return missingRef(err, "account_id", "账户不存在")
		}

		rec, err := tx.Create(models.TableTransactions, func(r models.Record) error {
			t := r.(*models.Transaction)
			t.Date = now.Format(models.DateLayout)
			t.Time = now.Format(models.TimeLayout)
			t.Amount = amount
			t.Description = strings.TrimSpace(in.Description)
			t.Notes = notes
			t.CategoryID = in.CategoryID
			t.AccountID = in.AccountID
			t.Type = typ
			t.PaymentMethod = method
			t.Source = models.SourceManual
			t.Confidence = 1.0
			t.IsSynced = false
			return nil
		})
		if err != nil {
			return err
		}
		created = rec.(*models.Transaction)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info().
		Str("id", created.ID).
		Str("amount", created.Amount.String()).
		Str("type", string(created.Type)).
		Str("at", created.DateTime()).
		Msg("交易已保存")
	return created, nil
}

func missingRef(err error, field, message string) error {
	if errors.Is(err, database.ErrNotFound) {
		return &models.ValidationError{Field: field, Message: message}
	}
	return err
}

// DeleteTransaction 永久删除
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if err := l.store.Destroy(ctx, models.TableTransactions, id); err != nil {
		return err
	}
	l.log.Info().Str("id", id).Msg("交易已删除")
	return nil
}

// GetTransaction 读取交易及其类别和账户
func (l *Ledger) GetTransaction(ctx context.Context, id string) (*TransactionDetail, error) {
	rec, err := l.store.Find(ctx, models.TableTransactions, id)
	if err != nil {
		return nil, err
	}
	txn := rec.(*models.Transaction)
	detail := &TransactionDetail{Transaction: txn}

	if detail.Category, err = l.store.CategoryOf(ctx, txn); err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	if detail.Account, err = l.store.AccountOf(ctx, txn); err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	return detail, nil
}

// MonthQuery 某月交易，按日期、时间倒序；month 为空时取当前月份
func (l *Ledger) MonthQuery(month string) (database.Query, error) {
	if month == "" {
		month = l.locale.CurrentMonth()
	}
	start, end, ok := format.MonthRange(month)
	if !ok {
		return database.Query{}, &models.ValidationError{Field: "month", Message: "月份格式应为 YYYY-MM"}
	}
	return database.Query{
		Table: models.TableTransactions,
		Where: []database.Condition{
			database.Gte("date", start),
			database.Lte("date", end),
		},
		Sort: []database.Order{database.Desc("date"), database.Desc("time")},
	}, nil
}

// MonthTransactions 某月交易
func (l *Ledger) MonthTransactions(ctx context.Context, month string) ([]*models.Transaction, error) {
	q, err := l.MonthQuery(month)
	if err != nil {
		return nil, err
	}
	records, err := l.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.AsTransactions(records), nil
}

// RecentQuery 最近录入的交易，limit <= 0 时为 DefaultRecentLimit
func RecentQuery(limit int) database.Query {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return database.Query{
		Table: models.TableTransactions,
		Sort:  []database.Order{database.Desc("created_at")},
		Limit: limit,
	}
}

// RecentTransactions 最近录入的交易
func (l *Ledger) RecentTransactions(ctx context.Context, limit int) ([]*models.Transaction, error) {
	records, err := l.store.Query(ctx, RecentQuery(limit))
	if err != nil {
		return nil, err
	}
	return models.AsTransactions(records), nil
}

// CategoriesQuery 启用的类别，typ 为空时不区分类型
func CategoriesQuery(typ models.TransactionType) database.Query {
	q := database.Query{
		Table: models.TableCategories,
		Where: []database.Condition{database.Eq("is_active", true)},
	}
	if typ != "" {
		q.Where = append(q.Where, database.Eq("type", string(typ)))
	}
	return q
}

// ActiveCategories 启用的类别
func (l *Ledger) ActiveCategories(ctx context.Context, typ models.TransactionType) ([]*models.Category, error) {
	if typ != "" && !typ.Valid() {
		return nil, &models.ValidationError{Field: "type", Message: "未知的类别类型: " + string(typ)}
	}
	records, err := l.store.Query(ctx, CategoriesQuery(typ))
	if err != nil {
		return nil, err
	}
	return models.AsCategories(records), nil
}

// AccountsQuery 启用的账户
func AccountsQuery() database.Query {
	return database.Query{
		Table: models.TableAccounts,
		Where: []database.Condition{database.Eq("is_active", true)},
	}
}

// ActiveAccounts 启用的账户
func (l *Ledger) ActiveAccounts(ctx context.Context) ([]*models.Account, error) {
	records, err := l.store.Query(ctx, AccountsQuery())
	if err != nil {
		return nil, err
	}
	return models.AsAccounts(records), nil
}
