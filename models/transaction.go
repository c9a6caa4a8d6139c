package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType 交易类型，同时用于类别类型
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// Valid 是否为已知类型
func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// PaymentMethod 支付方式，开放标签
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentTransfer   PaymentMethod = "transfer"
	PaymentOther      PaymentMethod = "other"
)

// TransactionSource 数据来源标记。外部来源目前没有生产者，只保留标签
type TransactionSource string

const (
	SourceManual           TransactionSource = "manual"
	SourceBancolombiaEmail TransactionSource = "bancolombia_email"
	SourceNequiSMS         TransactionSource = "nequi_sms"
)

// 日期与时间的内部存储格式
const (
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04"
	MonthLayout = "2006-01"
)

// Transaction 一笔收支或转账
// Amount 始终为非负数，正负含义由 Type 决定
type Transaction struct {
	Meta
	ServerID      *string           `json:"server_id" gorm:"column:server_id;size:64"`
	Date          string            `json:"date" gorm:"column:date;size:10;not null"` // YYYY-MM-DD
	Time          string            `json:"time" gorm:"column:time;size:5;not null"`  // HH:mm
	Amount        decimal.Decimal   `json:"amount" gorm:"column:amount;type:decimal(20,2);not null"`
	Description   string            `json:"description" gorm:"column:description;size:255;not null"`
	Notes         *string           `json:"notes" gorm:"column:notes;size:1000"`
	CategoryID    string            `json:"category_id" gorm:"column:category_id;size:64;not null;index"`
	AccountID     string            `json:"account_id" gorm:"column:account_id;size:64;not null;index"`
	Type          TransactionType   `json:"type" gorm:"column:type;size:16;not null"`
	PaymentMethod PaymentMethod     `json:"payment_method" gorm:"column:payment_method;size:32;not null"`
	Source        TransactionSource `json:"source" gorm:"column:source;size:32;not null"`
	Confidence    float64           `json:"confidence" gorm:"column:confidence;not null"`
	IsSynced      bool              `json:"is_synced" gorm:"column:is_synced;not null"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return TableTransactions
}

// Validate 校验字段形态，不做任何修正
func (t Transaction) Validate() error {
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return invalid("date", "日期格式应为 YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, t.Time); err != nil {
		return invalid("time", "时间格式应为 HH:mm")
	}
	if t.Amount.IsNegative() {
		return invalid("amount", "金额不能为负数")
	}
	if strings.TrimSpace(t.Description) == "" {
		return invalid("description", "描述不能为空")
	}
	if t.CategoryID == "" {
		return invalid("category_id", "请选择类别")
	}
	if t.AccountID == "" {
		return invalid("account_id", "请选择账户")
	}
	if !t.Type.Valid() {
		return invalid("type", "未知的交易类型: "+string(t.Type))
	}
	if t.PaymentMethod == "" {
		return invalid("payment_method", "支付方式不能为空")
	}
	if t.Source == "" {
		return invalid("source", "来源不能为空")
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return invalid("confidence", "置信度应在 0 到 1 之间")
	}
	return nil
}

// DateTime 返回 "YYYY-MM-DD HH:mm"
func (t Transaction) DateTime() string {
	return t.Date + " " + t.Time
}

// IsToday 是否为 now 所在日期的交易，now 应已转换到目标时区
func (t Transaction) IsToday(now time.Time) bool {
	return t.Date == now.Format(DateLayout)
}
