package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gastos/database"
	"gastos/router"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(load func() (*app, error)) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动本地 HTTP 服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			if port != "" {
				a.cfg.Server.Port = listenAddr(port)
			}
			return runServe(cmd.Context(), a)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "监听端口，如 8080 或 127.0.0.1:8080")
	return cmd
}

// listenAddr 只给端口时只监听本机
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return "127.0.0.1:" + port
}

func runServe(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 数据库在后台初始化，期间 /api/v1 返回 503
	boot := database.NewBoot(a.cfg.Database, a.log)
	go func() {
		bootCtx, cancel := context.WithTimeout(ctx, bootTimeout)
		defer cancel()
		state := boot.Run(bootCtx)
		a.log.Info().Str("state", state.String()).Msg("数据库初始化结束")
	}()

	server := &http.Server{
		Addr:              a.cfg.Server.Port,
		Handler:           router.SetupRouter(a.cfg, boot, a.locale, a.log),
		ReadHeaderTimeout: 10 * time.Second,
		// 收到退出信号时结束 SSE 等长连接
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", server.Addr).Msg("服务已启动")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case err := <-errCh:
		serveErr = fmt.Errorf("服务启动失败: %w", err)
	case <-ctx.Done():
		a.log.Info().Msg("正在关闭服务")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("服务关闭超时")
	}

	stop()
	<-boot.Ready()
	if err := boot.Close(); err != nil {
		a.log.Warn().Err(err).Msg("关闭数据库失败")
	}
	return serveErr
}
