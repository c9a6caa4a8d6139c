package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 记录不存在，可用 errors.Is 判断
	ErrNotFound = errors.New("记录不存在")
	// ErrUnknownTable 表名不在 transactions/categories/accounts 之内
	ErrUnknownTable = errors.New("未知的表")
	// ErrUnknownColumn 查询条件或排序引用了不存在的列
	ErrUnknownColumn = errors.New("未知的列")
	// ErrClosed 数据库已关闭
	ErrClosed = errors.New("数据库已关闭")
)

// NotFoundError 指定 id 在表中不存在
type NotFoundError struct {
	Table string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s 中不存在记录 %s", e.Table, e.ID)
}

// Is 使 errors.Is(err, ErrNotFound) 成立
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError 存储引擎打开、读取、提交失败，或写入的数据不合法
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("存储错误 (%s): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("存储错误 (%s %s): %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr 包装为 StorageError，已是类型化错误时原样返回
func storageErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	var nf *NotFoundError
	if errors.As(err, &se) || errors.As(err, &nf) {
		return err
	}
	return &StorageError{Op: op, Table: table, Err: err}
}
