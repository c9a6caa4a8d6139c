package database

import (
	"context"
	"errors"
	"sync"

	"gastos/models"
)

// ChangeFunc 订阅回调，err 不为空时 records 为 nil
type ChangeFunc func(records []models.Record, err error)

type delivery struct {
	records []models.Record
	err     error
}

// Subscription 一个实时查询
//
// 每个订阅有独立的投递协程和无界队列：回调按提交顺序依次执行，不会并发，
// 慢回调不会阻塞写入，也不会丢失或合并中间结果。
type Subscription struct {
	store    *Store
	query    Query
	onChange ChangeFunc

	mu         sync.Mutex
	pending    []delivery
	closed     bool
	inCallback bool
	wake       chan struct{}
	done       chan struct{}

	// deliverMu 投递协程从检查 closed 到回调返回期间持有
	deliverMu     sync.Mutex
	beforeDeliver func()
}

// Subscribe 注册实时查询
//
// 初始结果作为第一次回调投递；之后每次涉及该表的写入提交后，重新执行查询并投递完整结果。
// 初始查询与注册在 writeMu 下完成，不会漏掉注册前后的任何提交。
func (s *Store) Subscribe(ctx context.Context, q Query, onChange ChangeFunc) (*Subscription, error) {
	if onChange == nil {
		return nil, &StorageError{Op: "subscribe", Table: q.Table, Err: errors.New("回调不能为空")}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return nil, &StorageError{Op: "subscribe", Table: q.Table, Err: ErrClosed}
	}

	records, err := runQuery(s.db.WithContext(ctx), q)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		store:    s,
		query:    q,
		onChange: onChange,
		pending:  []delivery{{records: records}},
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),

		beforeDeliver: s.deliverHook,
	}

	s.subsMu.Lock()
	s.subs[sub] = struct{}{}
	s.subsMu.Unlock()

	go sub.run()
	return sub, nil
}

// Subscribers 当前活跃的订阅数
func (s *Store) Subscribers() int {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	return len(s.subs)
}

// snapshotSubs 返回订阅了 table 的订阅，table 为空时返回全部
func (s *Store) snapshotSubs(table string) []*Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	out := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		if table == "" || sub.query.Table == table {
			out = append(out, sub)
		}
	}
	return out
}

// publish 调用方须持有 writeMu
func (s *Store) publish(ctx context.Context, touched map[string]struct{}) {
	for table := range touched {
		for _, sub := range s.snapshotSubs(table) {
			records, err := runQuery(s.db.WithContext(ctx), sub.query)
			if err != nil {
				s.log.Warn().Err(err).Str("table", table).Msg("订阅查询失败")
				records = nil
			}
			sub.enqueue(delivery{records: records, err: err})
		}
	}
}

func (s *Store) removeSub(sub *Subscription) {
	s.subsMu.Lock()
	delete(s.subs, sub)
	s.subsMu.Unlock()
}

func (sub *Subscription) enqueue(d delivery) {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.pending = append(sub.pending, d)
	sub.mu.Unlock()

	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

func (sub *Subscription) run() {
	defer close(sub.done)
	for {
		sub.mu.Lock()
		for !sub.closed && len(sub.pending) == 0 {
			sub.mu.Unlock()
			<-sub.wake
			sub.mu.Lock()
		}
		if sub.closed {
			sub.pending = nil
			sub.mu.Unlock()
			return
		}
		d := sub.pending[0]
		sub.pending[0] = delivery{}
		sub.pending = sub.pending[1:]
		sub.mu.Unlock()

		if sub.beforeDeliver != nil {
			sub.beforeDeliver()
		}
		if !sub.deliver(d) {
			return
		}
	}
}

// deliver 取消订阅后返回 false，不再调用回调
func (sub *Subscription) deliver(d delivery) (ok bool) {
	sub.deliverMu.Lock()
	defer sub.deliverMu.Unlock()

	sub.mu.Lock()
	if sub.closed {
		sub.pending = nil
		sub.mu.Unlock()
		return false
	}
	sub.inCallback = true
	sub.mu.Unlock()

	defer func() {
		sub.mu.Lock()
		sub.inCallback = false
		sub.mu.Unlock()
		if r := recover(); r != nil {
			sub.store.log.Error().Interface("panic", r).Str("table", sub.query.Table).Msg("订阅回调 panic")
		}
	}()
	ok = true
	sub.onChange(d.records, d.err)
	return ok
}

// Unsubscribe 取消订阅，可重复调用，也可以在回调中调用
//
// 返回后不会再派发新的回调。返回时正在执行的回调会继续执行完，
// 需要等待它结束时使用 Done。
func (sub *Subscription) Unsubscribe() {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.closed = true
	sub.pending = nil
	started := sub.inCallback
	sub.mu.Unlock()

	select {
	case sub.wake <- struct{}{}:
	default:
	}
	sub.store.removeSub(sub)

	// 投递协程可能已取出一条结果但还没检查 closed，等它看到 closed 后再返回。
	// 回调已经开始时不等待，回调内调用 Unsubscribe 也因此不会死锁。
	if !started {
		sub.deliverMu.Lock()
		sub.deliverMu.Unlock()
	}
}

// Done 投递协程退出后关闭
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// Query 订阅的查询
func (sub *Subscription) Query() Query {
	return sub.query
}
