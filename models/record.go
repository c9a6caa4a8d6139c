package models

import "fmt"

// Meta 所有记录共有的主键与时间戳
// 时间戳为毫秒级 Unix 时间，由存储层统一分配，调用方不应修改
type Meta struct {
	ID        string `json:"id" gorm:"column:id;primaryKey;size:64"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt int64  `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// Base 返回记录的公共字段
func (m *Meta) Base() *Meta {
	return m
}

// Record 三张表的记录都实现该接口
type Record interface {
	TableName() string
	Base() *Meta
	Validate() error
}

// 表名
const (
	TableTransactions = "transactions"
	TableCategories   = "categories"
	TableAccounts     = "accounts"
)

// ValidationError 数据形态校验失败（空描述、非法金额、未选择类别等）
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 校验失败: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsTransactions 将查询结果转换为具体类型，忽略其他表的记录
func AsTransactions(records []Record) []*Transaction {
	out := make([]*Transaction, 0, len(records))
	for _, r := range records {
		if t, ok := r.(*Transaction); ok {
			out = append(out, t)
		}
	}
	return out
}

// AsCategories 同 AsTransactions
func AsCategories(records []Record) []*Category {
	out := make([]*Category, 0, len(records))
	for _, r := range records {
		if c, ok := r.(*Category); ok {
			out = append(out, c)
		}
	}
	return out
}

// AsAccounts 同 AsTransactions
func AsAccounts(records []Record) []*Account {
	out := make([]*Account, 0, len(records))
	for _, r := range records {
		if a, ok := r.(*Account); ok {
			out = append(out, a)
		}
	}
	return out
}
