package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gastos/config"
	"gastos/database"
	"gastos/format"
	"gastos/logger"
	"gastos/models"
)

// 2025-11-27 14:30 波哥大时间
func testClock() time.Time {
	return time.Date(2025, 11, 27, 19, 30, 0, 0, time.UTC)
}

func setupLedger(t *testing.T) (*Ledger, *database.Store) {
	t.Helper()
	store, err := database.Open(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "gastos.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = database.SeedDefaults(context.Background(), store)
	require.NoError(t, err)

	return NewLedger(store, format.Default().WithClock(testClock), logger.Nop()), store
}

func findCategory(t *testing.T, l *Ledger, name string) *models.Category {
	t.Helper()
	cats, err := l.ActiveCategories(context.Background(), "")
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("类别 %s 不存在", name)
	return nil
}

func firstAccount(t *testing.T, l *Ledger) *models.Account {
	t.Helper()
	accts, err := l.ActiveAccounts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, accts)
	return accts[0]
}

// insert 直接写入指定日期的交易
func insert(t *testing.T, s *database.Store, date, tm string, amount int64, typ models.TransactionType, categoryID, accountID string) *models.Transaction {
	t.Helper()
	rec, err := s.Create(context.Background(), models.TableTransactions, func(r models.Record) error {
		txn := r.(*models.Transaction)
		txn.Date = date
		txn.Time = tm
		txn.Amount = decimal.NewFromInt(amount)
		txn.Description = "Prueba"
		txn.CategoryID = categoryID
		txn.AccountID = accountID
		txn.Type = typ
		txn.PaymentMethod = models.PaymentCash
		txn.Source = models.SourceManual
		txn.Confidence = 1
		return nil
	})
	require.NoError(t, err)
	return rec.(*models.Transaction)
}

func TestLedger_AddTransaction_LogsDateTime(t *testing.T) {
	l, store := setupLedger(t)
	var buf bytes.Buffer
	l = NewLedger(store, l.Locale(), zerolog.New(&buf))

	_, err := l.AddTransaction(context.Background(), TransactionInput{
		Amount:      "8500",
		Description: "Tinto",
		CategoryID:  findCategory(t, l, "Comida").ID,
		AccountID:   firstAccount(t, l).ID,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"at":"2025-11-27 14:30"`)
	assert.Contains(t, buf.String(), "交易已保存")
}

func TestLedger_AddTransaction(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()
	cat := findCategory(t, l, "Comida")
	acc := firstAccount(t, l)

	txn, err := l.AddTransaction(ctx, TransactionInput{
		Amount:      "$1.250.000",
		Description: "  Mercado  ",
		Notes:       "   ",
		CategoryID:  cat.ID,
		AccountID:   acc.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-11-27", txn.Date)
	assert.Equal(t, "14:30", txn.Time)
	assert.True(t, decimal.NewFromInt(1250000).Equal(txn.Amount))
	assert.Equal(t, "Mercado", txn.Description)
	assert.Nil(t, txn.Notes)
	assert.Equal(t, models.TypeExpense, txn.Type)
	assert.Equal(t, models.PaymentDebitCard, txn.PaymentMethod)
	assert.Equal(t, models.SourceManual, txn.Source)
	assert.Equal(t, 1.0, txn.Confidence)
	assert.False(t, txn.IsSynced)

	detail, err := l.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comida", detail.Category.Name)
	assert.Equal(t, acc.ID, detail.Account.ID)
}

func TestLedger_AddTransactionValidation(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()
	cat := findCategory(t, l, "Comida")
	acc := firstAccount(t, l)

	cases := []struct {
		name  string
		in    TransactionInput
		field string
	}{
		{"空金额", TransactionInput{Amount: "", Description: "x", CategoryID: cat.ID, AccountID: acc.ID}, "amount"},
		{"零金额", TransactionInput{Amount: "$0", Description: "x", CategoryID: cat.ID, AccountID: acc.ID}, "amount"},
		{"负金额", TransactionInput{Amount: "-500", Description: "x", CategoryID: cat.ID, AccountID: acc.ID}, "amount"},
		{"空描述", TransactionInput{Amount: "500", Description: "   ", CategoryID: cat.ID, AccountID: acc.ID}, "description"},
		{"未选类别", TransactionInput{Amount: "500", Description: "x", AccountID: acc.ID}, "category_id"},
		{"未选账户", TransactionInput{Amount: "500", Description: "x", CategoryID: cat.ID}, "account_id"},
		{"未知类型", TransactionInput{Amount: "500", Description: "x", CategoryID: cat.ID, AccountID: acc.ID, Type: "refund"}, "type"},
		{"类别不存在", TransactionInput{Amount: "500", Description: "x", CategoryID: "cat_missing", AccountID: acc.ID}, "category_id"},
		{"账户不存在", TransactionInput{Amount: "500", Description: "x", CategoryID: cat.ID, AccountID: "acc_missing"}, "account_id"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := l.AddTransaction(ctx, c.in)
			var ve *models.ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Equal(t, c.field, ve.Field)
		})
	}

	n, err := store.Count(ctx, models.TableTransactions)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLedger_DeleteTransaction(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()
	cat := findCategory(t, l, "Comida")
	acc := firstAccount(t, l)
	txn := insert(t, store, "2025-11-27", "09:00", 20000, models.TypeExpense, cat.ID, acc.ID)

	require.NoError(t, l.DeleteTransaction(ctx, txn.ID))

	_, err := l.GetTransaction(ctx, txn.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, l.DeleteTransaction(ctx, txn.ID), database.ErrNotFound)
}

func TestLedger_GetTransactionWithDeletedCategory(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()
	cat := findCategory(t, l, "Comida")
	acc := firstAccount(t, l)
	txn := insert(t, store, "2025-11-27", "09:00", 20000, models.TypeExpense, cat.ID, acc.ID)

	require.NoError(t, store.Destroy(ctx, models.TableCategories, cat.ID))

	detail, err := l.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Category)
	assert.NotNil(t, detail.Account)
}

func TestLedger_MonthTransactions(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()
	cat := findCategory(t, l, "Comida")
	acc := firstAccount(t, l)

	insert(t, store, "2025-10-31", "10:00", 1000, models.TypeExpense, cat.ID, acc.ID)
	insert(t, store, "2025-11-02", "08:00", 2000, models.TypeExpense, cat.ID, acc.ID)
	insert(t, store, "2025-11-03", "07:00", 3000, models.TypeExpense, cat.ID, acc.ID)
	insert(t, store, "2025-11-03", "21:00", 4000, models.TypeExpense, cat.ID, acc.ID)

	txns, err := l.MonthTransactions(ctx, "2025-11")
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "21:00", txns[0].Time)
	assert.Equal(t, "07:00", txns[1].Time)
	assert.Equal(t, "2025-11-02", txns[2].Date)

	// 为空时取当前月份
	current, err := l.MonthTransactions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, current, 3)

	_, err = l.MonthTransactions(ctx, "noviembre")
	var ve *models.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestLedger_RecentTransactions(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()
	cat := findCategory(t, l, "Comida")
	acc := firstAccount(t, l)

	var last *models.Transaction
	for i := 0; i < 7; i++ {
		last = insert(t, store, "2025-11-01", "10:00", int64(1000*(i+1)), models.TypeExpense, cat.ID, acc.ID)
	}

	recent, err := l.RecentTransactions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, DefaultRecentLimit)
	assert.Equal(t, last.ID, recent[0].ID)

	recent, err = l.RecentTransactions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestLedger_ActiveCategoriesAndAccounts(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()

	expense, err := l.ActiveCategories(ctx, models.TypeExpense)
	require.NoError(t, err)
	assert.Len(t, expense, 11)

	income, err := l.ActiveCategories(ctx, models.TypeIncome)
	require.NoError(t, err)
	assert.Len(t, income, 3)

	_, err = l.ActiveCategories(ctx, "refund")
	assert.Error(t, err)

	// 停用后不再出现
	_, err = store.Update(ctx, models.TableCategories, income[0].ID, func(r models.Record) error {
		r.(*models.Category).IsActive = false
		return nil
	})
	require.NoError(t, err)
	income, err = l.ActiveCategories(ctx, models.TypeIncome)
	require.NoError(t, err)
	assert.Len(t, income, 2)

	accts, err := l.ActiveAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accts, 4)
}

func TestLedger_ExportMonth(t *testing.T) {
	l, store := setupLedger(t)
	ctx := context.Background()
	food := findCategory(t, l, "Comida")
	salary := findCategory(t, l, "Salario")
	acc := firstAccount(t, l)

	insert(t, store, "2025-11-27", "12:00", 45000, models.TypeExpense, food.ID, acc.ID)
	insert(t, store, "2025-11-15", "08:00", 3000000, models.TypeIncome, salary.ID, acc.ID)

	var buf bytes.Buffer
	require.NoError(t, l.ExportMonth(ctx, "2025-11", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetTransactions, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fecha", header)

	first, err := f.GetCellValue(sheetTransactions, "A2")
	require.NoError(t, err)
	assert.Equal(t, "27 nov 2025", first)

	amount, err := f.GetCellValue(sheetTransactions, "C2")
	require.NoError(t, err)
	assert.Equal(t, "$45.000", amount)

	category, err := f.GetCellValue(sheetTransactions, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Comida", category)

	balance, err := f.GetCellValue(sheetTransactions, "C4")
	require.NoError(t, err)
	assert.Equal(t, "$2.955.000", balance)

	top, err := f.GetCellValue(sheetCategories, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Comida", top)
	pct, err := f.GetCellValue(sheetCategories, "D2")
	require.NoError(t, err)
	assert.Equal(t, "100.0%", pct)

	assert.Equal(t, "gastos_2025-11.xlsx", ExportFilename("2025-11"))
}
