package database

import (
	"fmt"

	"gorm.io/gorm"

	"gastos/models"
)

// SchemaVersion 当前 schema 版本，只增不减
const SchemaVersion = 1

// ColumnType 列的存储类型
type ColumnType string

const (
	ColumnString  ColumnType = "string"
	ColumnNumber  ColumnType = "number"
	ColumnBoolean ColumnType = "boolean"
)

// Column 列定义
type Column struct {
	Name     string
	Type     ColumnType
	Optional bool
	Indexed  bool
}

// TableSchema 表定义
type TableSchema struct {
	Name    string
	Columns []Column
}

// Column 按列名查找
func (t TableSchema) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Schema 应用的完整 schema
type Schema struct {
	Version int
	Tables  []TableSchema
}

// Table 按表名查找
func (s Schema) Table(name string) (TableSchema, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSchema{}, false
}

// AppSchema 三张表的声明，与 models 中的 gorm 列标签一一对应
var AppSchema = Schema{
	Version: SchemaVersion,
	Tables: []TableSchema{
		{
			Name: models.TableTransactions,
			Columns: []Column{
				{Name: "id", Type: ColumnString},
				{Name: "server_id", Type: ColumnString, Optional: true},
				{Name: "date", Type: ColumnString},
				{Name: "time", Type: ColumnString},
				{Name: "amount", Type: ColumnNumber},
				{Name: "description", Type: ColumnString},
				{Name: "notes", Type: ColumnString, Optional: true},
				{Name: "category_id", Type: ColumnString, Indexed: true},
				{Name: "account_id", Type: ColumnString, Indexed: true},
				{Name: "type", Type: ColumnString},
				{Name: "payment_method", Type: ColumnString},
				{Name: "source", Type: ColumnString},
				{Name: "confidence", Type: ColumnNumber},
				{Name: "is_synced", Type: ColumnBoolean},
				{Name: "created_at", Type: ColumnNumber},
				{Name: "updated_at", Type: ColumnNumber},
			},
		},
		{
			Name: models.TableCategories,
			Columns: []Column{
				{Name: "id", Type: ColumnString},
				{Name: "server_id", Type: ColumnString, Optional: true},
				{Name: "name", Type: ColumnString},
				{Name: "type", Type: ColumnString},
				{Name: "icon", Type: ColumnString},
				{Name: "color", Type: ColumnString},
				{Name: "parent_id", Type: ColumnString, Optional: true, Indexed: true},
				{Name: "is_active", Type: ColumnBoolean},
				{Name: "created_at", Type: ColumnNumber},
				{Name: "updated_at", Type: ColumnNumber},
			},
		},
		{
			Name: models.TableAccounts,
			Columns: []Column{
				{Name: "id", Type: ColumnString},
				{Name: "server_id", Type: ColumnString, Optional: true},
				{Name: "name", Type: ColumnString},
				{Name: "type", Type: ColumnString},
				{Name: "institution", Type: ColumnString},
				{Name: "last_four", Type: ColumnString},
				{Name: "balance", Type: ColumnNumber},
				{Name: "is_active", Type: ColumnBoolean},
				{Name: "color", Type: ColumnString},
				{Name: "icon", Type: ColumnString},
				{Name: "created_at", Type: ColumnNumber},
				{Name: "updated_at", Type: ColumnNumber},
			},
		},
	},
}

// SchemaMeta 记录数据库当前的 schema 版本
type SchemaMeta struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

// TableName 设置表名
func (SchemaMeta) TableName() string {
	return "schema_meta"
}

// Migration 从上一个版本升级到 ToVersion
type Migration struct {
	ToVersion int
	Up        func(tx *gorm.DB) error
}

// migrations 按版本升序排列，目前只有版本 1，没有迁移
var migrations []Migration

// migrate 建表并维护 schema 版本
// 新库直接按模型建表；旧库先按顺序执行迁移；库中版本高于代码版本时拒绝打开
func migrate(db *gorm.DB, target int, steps []Migration) error {
	if err := db.AutoMigrate(&SchemaMeta{}); err != nil {
		return storageErr("migrate", "schema_meta", err)
	}

	var meta SchemaMeta
	res := db.Limit(1).Find(&meta)
	if res.Error != nil {
		return storageErr("migrate", "schema_meta", res.Error)
	}
	found := res.RowsAffected > 0

	if found && meta.Version > target {
		return &StorageError{Op: "migrate", Err: fmt.Errorf("数据库 schema 版本 %d 高于程序支持的版本 %d", meta.Version, target)}
	}

	if found {
		for _, m := range steps {
			if m.ToVersion <= meta.Version || m.ToVersion > target {
				continue
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := m.Up(tx); err != nil {
					return err
				}
				return tx.Model(&SchemaMeta{}).Where("id = ?", meta.ID).Update("version", m.ToVersion).Error
			})
			if err != nil {
				return storageErr("migrate", "", fmt.Errorf("升级到版本 %d 失败: %w", m.ToVersion, err))
			}
			meta.Version = m.ToVersion
		}
	}

	if err := db.AutoMigrate(&models.Transaction{}, &models.Category{}, &models.Account{}); err != nil {
		return storageErr("migrate", "", err)
	}

	if !found {
		if err := db.Create(&SchemaMeta{ID: 1, Version: target}).Error; err != nil {
			return storageErr("migrate", "schema_meta", err)
		}
	}
	return nil
}
