package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"gastos/models"
)

var errTxDone = errors.New("事务已结束")

// Option Store 可选配置
type Option func(*options)

type options struct {
	log zerolog.Logger
	now func() time.Time
}

func newOptions(opts []Option) options {
	o := options{log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger 设置日志
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithClock 替换时钟，测试中用于固定时间
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Store 本地记录存储
//
// 所有写入经 writeMu 串行化，在单个数据库事务中提交；
// 提交后仍持有 writeMu 时重新执行受影响表上的订阅查询，保证每个订阅看到的结果按提交顺序排列。
// 读取不加锁，只会看到已提交的数据。
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time

	writeMu sync.Mutex
	lastTS  int64
	closed  bool

	subsMu sync.Mutex
	subs   map[*Subscription]struct{}

	// deliverHook 测试用，订阅协程取出结果后、调用回调前执行
	deliverHook func()
}

// NewStore 在已打开的 gorm 连接上建表并初始化
func NewStore(db *gorm.DB, opts ...Option) (*Store, error) {
	s := newStore(db, opts...)
	if err := migrate(db, SchemaVersion, migrations); err != nil {
		return nil, err
	}
	if err := s.loadClock(); err != nil {
		return nil, err
	}
	return s, nil
}

func newStore(db *gorm.DB, opts ...Option) *Store {
	o := newOptions(opts)
	return &Store{
		db:   db,
		log:  o.log,
		now:  o.now,
		subs: make(map[*Subscription]struct{}),
	}
}

// loadClock 时间戳从库中已有的最大值继续递增，重启后也不会倒退
func (s *Store) loadClock() error {
	for _, name := range TableNames() {
		var maxTS int64
		if err := s.db.Table(name).Select("COALESCE(MAX(updated_at), 0)").Scan(&maxTS).Error; err != nil {
			return &StorageError{Op: "open", Table: name, Err: err}
		}
		if maxTS > s.lastTS {
			s.lastTS = maxTS
		}
	}
	return nil
}

// tick 返回严格递增的毫秒时间戳，调用方须持有 writeMu
func (s *Store) tick() int64 {
	ts := s.now().UnixMilli()
	if ts <= s.lastTS {
		ts = s.lastTS + 1
	}
	s.lastTS = ts
	return ts
}

// Close 关闭全部订阅和数据库连接，可重复调用
func (s *Store) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	for _, sub := range s.snapshotSubs("") {
		sub.Unsubscribe()
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	if err := sqlDB.Close(); err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	return nil
}

// Write 在单个事务中执行 fn，fn 返回错误时整体回滚
//
// 写入一旦开始就不受 ctx 取消影响，要么全部提交，要么全部回滚。
// Tx 只在 fn 执行期间有效。
func (s *Store) Write(ctx context.Context, fn func(tx *Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return &StorageError{Op: "write", Err: ErrClosed}
	}

	ctx = context.WithoutCancel(ctx)
	tx := &Tx{store: s, touched: make(map[string]struct{})}
	err := s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		tx.db = gtx
		return fn(tx)
	})
	tx.db = nil
	if err != nil {
		return storageErr("commit", "", err)
	}

	s.publish(ctx, tx.touched)
	return nil
}

// Create 新建一条记录，init 用于填充业务字段
// id 与时间戳由存储层分配，init 中设置的值会被覆盖
func (s *Store) Create(ctx context.Context, table string, init func(models.Record) error) (models.Record, error) {
	var rec models.Record
	err := s.Write(ctx, func(tx *Tx) error {
		var err error
		rec, err = tx.Create(table, init)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update 修改一条记录，不允许修改 id 和 created_at
func (s *Store) Update(ctx context.Context, table, id string, mutate func(models.Record) error) (models.Record, error) {
	var rec models.Record
	err := s.Write(ctx, func(tx *Tx) error {
		var err error
		rec, err = tx.Update(table, id, mutate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Destroy 物理删除一条记录
// 不级联处理引用它的交易，悬挂的 category_id/account_id 保持原样
func (s *Store) Destroy(ctx context.Context, table, id string) error {
	return s.Write(ctx, func(tx *Tx) error {
		return tx.Destroy(table, id)
	})
}

// Find 按 id 读取
func (s *Store) Find(ctx context.Context, table, id string) (models.Record, error) {
	t, err := lookup("find", table)
	if err != nil {
		return nil, err
	}
	return findByID(s.db.WithContext(ctx), t, id)
}

// Query 执行查询，返回当前已提交的数据
func (s *Store) Query(ctx context.Context, q Query) ([]models.Record, error) {
	return runQuery(s.db.WithContext(ctx), q)
}

// Count 满足全部条件的记录数，不传条件时为全表
func (s *Store) Count(ctx context.Context, table string, where ...Condition) (int64, error) {
	t, err := lookup("count", table)
	if err != nil {
		return 0, err
	}
	return countRows(s.db.WithContext(ctx), t, where)
}

// CategoryOf 交易所属类别，类别已被删除时返回 NotFoundError
func (s *Store) CategoryOf(ctx context.Context, txn *models.Transaction) (*models.Category, error) {
	rec, err := s.Find(ctx, models.TableCategories, txn.CategoryID)
	if err != nil {
		return nil, err
	}
	return rec.(*models.Category), nil
}

// AccountOf 交易所属账户，账户已被删除时返回 NotFoundError
func (s *Store) AccountOf(ctx context.Context, txn *models.Transaction) (*models.Account, error) {
	rec, err := s.Find(ctx, models.TableAccounts, txn.AccountID)
	if err != nil {
		return nil, err
	}
	return rec.(*models.Account), nil
}

func findByID(db *gorm.DB, t *tableDef, id string) (models.Record, error) {
	rec := t.newRecord()
	err := db.Where("id = ?", id).Take(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Table: t.name(), ID: id}
	}
	if err != nil {
		return nil, &StorageError{Op: "find", Table: t.name(), Err: err}
	}
	return rec, nil
}

func runQuery(db *gorm.DB, q Query) ([]models.Record, error) {
	t, err := lookup("query", q.Table)
	if err != nil {
		return nil, err
	}
	qdb, err := q.apply(db, t)
	if err != nil {
		return nil, err
	}
	records, err := t.find(qdb)
	if err != nil {
		return nil, &StorageError{Op: "query", Table: t.name(), Err: err}
	}
	return records, nil
}

func countRows(db *gorm.DB, t *tableDef, where []Condition) (int64, error) {
	qdb, err := Query{Table: t.name(), Where: where}.apply(db.Model(t.newRecord()), t)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := qdb.Count(&n).Error; err != nil {
		return 0, &StorageError{Op: "count", Table: t.name(), Err: err}
	}
	return n, nil
}

// Tx 一次写事务，只在 Store.Write 的回调内有效
type Tx struct {
	store   *Store
	db      *gorm.DB
	touched map[string]struct{}
}

func (tx *Tx) conn(op, table string) (*gorm.DB, *tableDef, error) {
	if tx.db == nil {
		return nil, nil, &StorageError{Op: op, Table: table, Err: errTxDone}
	}
	t, err := lookup(op, table)
	if err != nil {
		return nil, nil, err
	}
	return tx.db, t, nil
}

// Create 见 Store.Create
func (tx *Tx) Create(table string, init func(models.Record) error) (models.Record, error) {
	db, t, err := tx.conn("create", table)
	if err != nil {
		return nil, err
	}

	rec := t.newRecord()
	if init != nil {
		if err := init(rec); err != nil {
			return nil, &StorageError{Op: "create", Table: table, Err: err}
		}
	}

	ts := tx.store.tick()
	meta := rec.Base()
	meta.ID = t.newID()
	meta.CreatedAt = ts
	meta.UpdatedAt = ts

	if err := rec.Validate(); err != nil {
		return nil, &StorageError{Op: "create", Table: table, Err: err}
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, &StorageError{Op: "create", Table: table, Err: err}
	}
	tx.touched[table] = struct{}{}
	return rec, nil
}

// Update 见 Store.Update
func (tx *Tx) Update(table, id string, mutate func(models.Record) error) (models.Record, error) {
	db, t, err := tx.conn("update", table)
	if err != nil {
		return nil, err
	}

	rec, err := findByID(db, t, id)
	if err != nil {
		return nil, err
	}
	before := *rec.Base()
	if mutate != nil {
		if err := mutate(rec); err != nil {
			return nil, &StorageError{Op: "update", Table: table, Err: err}
		}
	}

	meta := rec.Base()
	if meta.ID != before.ID {
		return nil, &StorageError{Op: "update", Table: table, Err: &models.ValidationError{Field: "id", Message: "不可修改"}}
	}
	if meta.CreatedAt != before.CreatedAt {
		return nil, &StorageError{Op: "update", Table: table, Err: &models.ValidationError{Field: "created_at", Message: "不可修改"}}
	}
	meta.UpdatedAt = tx.store.tick()

	if err := rec.Validate(); err != nil {
		return nil, &StorageError{Op: "update", Table: table, Err: err}
	}
	if err := db.Model(rec).Select("*").Updates(rec).Error; err != nil {
		return nil, &StorageError{Op: "update", Table: table, Err: err}
	}
	tx.touched[table] = struct{}{}
	return rec, nil
}

// Destroy 见 Store.Destroy
func (tx *Tx) Destroy(table, id string) error {
	db, t, err := tx.conn("destroy", table)
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(t.newRecord())
	if res.Error != nil {
		return &StorageError{Op: "destroy", Table: table, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Table: table, ID: id}
	}
	tx.touched[table] = struct{}{}
	return nil
}

// Find 在事务内按 id 读取，能看到本事务尚未提交的写入
func (tx *Tx) Find(table, id string) (models.Record, error) {
	db, t, err := tx.conn("find", table)
	if err != nil {
		return nil, err
	}
	return findByID(db, t, id)
}

// Count 在事务内统计
func (tx *Tx) Count(table string, where ...Condition) (int64, error) {
	db, t, err := tx.conn("count", table)
	if err != nil {
		return 0, err
	}
	return countRows(db, t, where)
}

// Query 在事务内查询
func (tx *Tx) Query(q Query) ([]models.Record, error) {
	if tx.db == nil {
		return nil, &StorageError{Op: "query", Table: q.Table, Err: errTxDone}
	}
	return runQuery(tx.db, q)
}
