package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gastos/config"
	"gastos/database"
	"gastos/format"
	"gastos/logger"
	"gastos/service"
)

// Version 版本号
const Version = "1.0.0"

// bootTimeout 打开数据库并写入默认数据的最长等待时间
const bootTimeout = 30 * time.Second

// NewRootCommand 创建根命令并注册全部子命令
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "gastos",
		Short:   "本地个人记账（哥伦比亚比索）",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "外部配置文件路径（可选）")

	load := func() (*app, error) {
		return loadApp(configPath)
	}
	rootCmd.AddCommand(
		newServeCommand(load),
		newSeedCommand(load),
		newSummaryCommand(load),
		newExportCommand(load),
	)
	return rootCmd
}

// Execute 运行命令行
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// app 各子命令共用的配置、日志和地区设置
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	locale *format.Locale
}

func loadApp(configPath string) (*app, error) {
	// 工作目录下 .env 中的 GASTOS_ 变量，文件不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log)

	locale, err := format.NewLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}
	format.SetDefault(locale)

	return &app{cfg: cfg, log: log, locale: locale}, nil
}

// openLedger 打开数据库并写入默认数据，供一次性命令使用
func (a *app) openLedger(ctx context.Context) (*service.Ledger, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()

	boot := database.NewBoot(a.cfg.Database, a.log)
	boot.Run(ctx)
	store := boot.Store()
	if store == nil {
		return nil, nil, fmt.Errorf("打开数据库失败: %w", boot.Err())
	}
	closeFn := func() {
		if err := boot.Close(); err != nil {
			a.log.Warn().Err(err).Msg("关闭数据库失败")
		}
	}
	return service.NewLedger(store, a.locale, a.log), closeFn, nil
}
