package database

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"gastos/config"
)

// State 启动状态
type State int32

const (
	StateInitializing State = iota
	StateReady
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "initializing"
	}
}

// Boot 负责打开数据库并写入默认数据
//
// 无论成功与否 Ready 都会关闭：失败时记录日志并进入 degraded 状态，界面照常进入，只是没有数据。
type Boot struct {
	cfg  config.DatabaseConfig
	log  zerolog.Logger
	opts []Option

	mu    sync.RWMutex
	state State
	store *Store
	err   error

	ready chan struct{}
	once  sync.Once
}

// NewBoot 创建启动器
func NewBoot(cfg config.DatabaseConfig, log zerolog.Logger, opts ...Option) *Boot {
	return &Boot{
		cfg:   cfg,
		log:   log,
		opts:  append([]Option{WithLogger(log)}, opts...),
		ready: make(chan struct{}),
	}
}

// Run 打开数据库并写入默认数据，只执行一次
// ctx 结束时不再等待，直接进入 degraded；之后才打开成功的数据库会被关闭
func (b *Boot) Run(ctx context.Context) State {
	b.once.Do(func() {
		type result struct {
			store *Store
			err   error
		}
		ch := make(chan result, 1)
		go func() {
			s, err := Open(b.cfg, b.opts...)
			if err != nil {
				ch <- result{err: err}
				return
			}
			if _, err := SeedDefaults(context.WithoutCancel(ctx), s); err != nil {
				ch <- result{store: s, err: err}
				return
			}
			ch <- result{store: s}
		}()

		select {
		case r := <-ch:
			b.finish(r.store, r.err)
		case <-ctx.Done():
			b.finish(nil, ctx.Err())
			go func() {
				if r := <-ch; r.store != nil {
					_ = r.store.Close()
				}
			}()
		}
	})
	return b.State()
}

func (b *Boot) finish(s *Store, err error) {
	b.mu.Lock()
	b.store = s
	b.err = err
	if err != nil {
		b.state = StateDegraded
		b.log.Error().Err(err).Msg("数据库初始化失败，以无数据模式继续")
	} else {
		b.state = StateReady
		b.log.Info().Msg("数据库已就绪")
	}
	b.mu.Unlock()
	close(b.ready)
}

// Ready 初始化结束（ready 或 degraded）后关闭
func (b *Boot) Ready() <-chan struct{} {
	return b.ready
}

// State 当前状态
func (b *Boot) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Err 进入 degraded 的原因
func (b *Boot) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

// Store 已打开的存储；打开失败或仍在初始化时为 nil
// 写入默认数据失败时状态为 degraded，但 Store 仍可用
func (b *Boot) Store() *Store {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store
}

// Close 关闭已打开的存储
func (b *Boot) Close() error {
	if s := b.Store(); s != nil {
		return s.Close()
	}
	return nil
}
