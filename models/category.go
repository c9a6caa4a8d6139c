package models

import "strings"

// Category 交易类别，按交易类型区分
type Category struct {
	Meta
	ServerID *string         `json:"server_id" gorm:"column:server_id;size:64"`
	Name     string          `json:"name" gorm:"column:name;size:50;not null"`
	Type     TransactionType `json:"type" gorm:"column:type;size:16;not null"`
	Icon     string          `json:"icon" gorm:"column:icon;size:16;not null"`
	Color    string          `json:"color" gorm:"column:color;size:20;not null"` // 颜色代码，如 #FF6B6B
	ParentID *string         `json:"parent_id" gorm:"column:parent_id;size:64;index"`
	IsActive bool            `json:"is_active" gorm:"column:is_active;not null"`
}

// TableName 设置表名
func (Category) TableName() string {
	return TableCategories
}

// Validate 校验类别
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "名称不能为空")
	}
	if !c.Type.Valid() {
		return invalid("type", "未知的类别类型: "+string(c.Type))
	}
	return nil
}
