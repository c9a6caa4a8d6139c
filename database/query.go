package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Op 比较运算符，条件之间只支持 AND
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Condition 单个列比较
type Condition struct {
	Column string
	Op     Op
	Value  interface{}
}

// Eq column = value
func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// Gte column >= value
func Gte(column string, value interface{}) Condition {
	return Condition{Column: column, Op: OpGte, Value: value}
}

// Lte column <= value
func Lte(column string, value interface{}) Condition {
	return Condition{Column: column, Op: OpLte, Value: value}
}

// Order 排序键
type Order struct {
	Column string
	Desc   bool
}

// Asc 升序
func Asc(column string) Order {
	return Order{Column: column}
}

// Desc 降序
func Desc(column string) Order {
	return Order{Column: column, Desc: true}
}

// Query 查询：条件取交集，按 Sort 依次排序，Limit <= 0 表示不限制
type Query struct {
	Table string
	Where []Condition
	Sort  []Order
	Limit int
}

// apply 校验列名并构造 gorm 查询
func (q Query) apply(db *gorm.DB, t *tableDef) (*gorm.DB, error) {
	for _, c := range q.Where {
		if _, ok := t.schema.Column(c.Column); !ok {
			return nil, &StorageError{Op: "query", Table: t.name(), Err: fmt.Errorf("%w: %s", ErrUnknownColumn, c.Column)}
		}
		col := clause.Column{Name: c.Column}
		switch c.Op {
		case OpEq:
			db = db.Where(clause.Eq{Column: col, Value: c.Value})
		case OpGte:
			db = db.Where(clause.Gte{Column: col, Value: c.Value})
		case OpLte:
			db = db.Where(clause.Lte{Column: col, Value: c.Value})
		default:
			return nil, &StorageError{Op: "query", Table: t.name(), Err: fmt.Errorf("不支持的运算符 %q", c.Op)}
		}
	}
	for _, o := range q.Sort {
		if _, ok := t.schema.Column(o.Column); !ok {
			return nil, &StorageError{Op: "query", Table: t.name(), Err: fmt.Errorf("%w: %s", ErrUnknownColumn, o.Column)}
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db, nil
}
