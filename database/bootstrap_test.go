package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/config"
	"gastos/logger"
	"gastos/models"
)

func waitReady(t *testing.T, b *Boot) {
	t.Helper()
	select {
	case <-b.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("启动未结束")
	}
}

func TestBoot_Ready(t *testing.T) {
	b := NewBoot(testConfig(t), logger.Nop())
	defer b.Close()
	assert.Equal(t, StateInitializing, b.State())
	assert.Nil(t, b.Store())

	state := b.Run(context.Background())
	assert.Equal(t, StateReady, state)
	waitReady(t, b)
	require.NoError(t, b.Err())
	require.NotNil(t, b.Store())

	n, err := b.Store().Count(context.Background(), models.TableCategories)
	require.NoError(t, err)
	assert.Equal(t, int64(15), n)

	// 重复调用不会再次执行
	assert.Equal(t, StateReady, b.Run(context.Background()))
}

func TestBoot_DegradedOnOpenFailure(t *testing.T) {
	// 父路径是普通文件，无法创建数据目录
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(blocker, "gastos.db")}
	b := NewBoot(cfg, logger.Nop())

	assert.Equal(t, StateDegraded, b.Run(context.Background()))
	waitReady(t, b)
	assert.Error(t, b.Err())
	assert.Nil(t, b.Store())
	assert.NoError(t, b.Close())
}

func TestBoot_DegradedOnUnknownDriver(t *testing.T) {
	b := NewBoot(config.DatabaseConfig{Driver: "postgres"}, logger.Nop())

	assert.Equal(t, StateDegraded, b.Run(context.Background()))
	waitReady(t, b)
	assert.Error(t, b.Err())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "degraded", StateDegraded.String())
}
