package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gastos/config"
)

// MemoryPath 使用 SQLite 内存库，进程退出后数据丢失，测试中使用
const MemoryPath = ":memory:"

// Open 按配置打开数据库，完成建表和版本检查，返回可用的 Store
func Open(cfg config.DatabaseConfig, opts ...Option) (*Store, error) {
	o := newOptions(opts)

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(o.log, cfg.LogLevel),
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("连接数据库失败: %w", err)}
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	switch {
	case cfg.Driver == config.DriverMySQL:
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	case cfg.Path == MemoryPath:
		// 每个连接都是独立的内存库，只能保留一个
		sqlDB.SetMaxOpenConns(1)
	default:
		sqlDB.SetMaxIdleConns(4)
		sqlDB.SetMaxOpenConns(8)
	}

	s, err := NewStore(db, opts...)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	s.log.Info().
		Str("driver", cfg.Driver).
		Int("schema_version", SchemaVersion).
		Msg("数据库初始化成功")
	return s, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverSQLite, "":
		dsn, err := sqliteDSN(cfg.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)}
	}
}

// sqliteDSN 文件库开启 WAL 并设置忙等待，目录不存在时创建
func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", &StorageError{Op: "open", Err: fmt.Errorf("database.path 不能为空")}
	}
	if path == MemoryPath {
		return path, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", &StorageError{Op: "open", Err: fmt.Errorf("创建数据目录失败: %w", err)}
		}
	}
	return path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=off", nil
}

// newGormLogger gorm 的 SQL 日志转发到 zerolog
func newGormLogger(zl zerolog.Logger, level string) gormlogger.Interface {
	return gormlogger.New(
		log.New(zl, "", 0),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
		},
	)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
