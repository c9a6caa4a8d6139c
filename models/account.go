package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType 账户类型
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountCash       AccountType = "cash"
)

// Valid 是否为已知类型
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditCard, AccountCash:
		return true
	}
	return false
}

// Account 资金账户（银行卡、钱包、现金）
// Balance 仅作展示，不会根据交易重新计算
type Account struct {
	Meta
	ServerID    *string         `json:"server_id" gorm:"column:server_id;size:64"`
	Name        string          `json:"name" gorm:"column:name;size:100;not null"`
	Type        AccountType     `json:"type" gorm:"column:type;size:16;not null"`
	Institution string          `json:"institution" gorm:"column:institution;size:50;not null"`
	LastFour    string          `json:"last_four" gorm:"column:last_four;size:4;not null"`
	Balance     decimal.Decimal `json:"balance" gorm:"column:balance;type:decimal(20,2);not null"`
	IsActive    bool            `json:"is_active" gorm:"column:is_active;not null"`
	Color       string          `json:"color" gorm:"column:color;size:20;not null"`
	Icon        string          `json:"icon" gorm:"column:icon;size:16;not null"`
}

// TableName 设置表名
func (Account) TableName() string {
	return TableAccounts
}

// Validate 校验账户
func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name", "名称不能为空")
	}
	if !a.Type.Valid() {
		return invalid("type", "未知的账户类型: "+string(a.Type))
	}
	if len(a.LastFour) != 4 || strings.Trim(a.LastFour, "0123456789") != "" {
		return invalid("last_four", "卡号后四位应为 4 位数字")
	}
	return nil
}

// MaskedNumber 返回掩码卡号，如 *7799
func (a Account) MaskedNumber() string {
	return "*" + a.LastFour
}
