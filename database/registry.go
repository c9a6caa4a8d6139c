package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gastos/models"
)

// tableDef 表名到具体模型类型的映射
type tableDef struct {
	schema    TableSchema
	idPrefix  string
	newRecord func() models.Record
	find      func(db *gorm.DB) ([]models.Record, error)
}

func (t *tableDef) name() string {
	return t.schema.Name
}

func (t *tableDef) newID() string {
	return t.idPrefix + "_" + uuid.NewString()
}

// register 为模型 T 生成表描述
func register[T any, PT interface {
	*T
	models.Record
}](name, idPrefix string) *tableDef {
	ts, ok := AppSchema.Table(name)
	if !ok {
		panic("schema 中缺少表 " + name)
	}
	return &tableDef{
		schema:    ts,
		idPrefix:  idPrefix,
		newRecord: func() models.Record { return PT(new(T)) },
		find: func(db *gorm.DB) ([]models.Record, error) {
			var rows []T
			if err := db.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]models.Record, len(rows))
			for i := range rows {
				out[i] = PT(&rows[i])
			}
			return out, nil
		},
	}
}

var tables = map[string]*tableDef{
	models.TableTransactions: register[models.Transaction](models.TableTransactions, "txn"),
	models.TableCategories:   register[models.Category](models.TableCategories, "cat"),
	models.TableAccounts:     register[models.Account](models.TableAccounts, "acc"),
}

// TableNames 全部表名
func TableNames() []string {
	return []string{models.TableTransactions, models.TableCategories, models.TableAccounts}
}

func lookup(op, name string) (*tableDef, error) {
	t, ok := tables[name]
	if !ok {
		return nil, &StorageError{Op: op, Table: name, Err: ErrUnknownTable}
	}
	return t, nil
}
