package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gastos/service"
)

func newExportCommand(load func() (*app, error)) *cobra.Command {
	var month, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出某月交易为 Excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			ledger, closeFn, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if month == "" {
				month = ledger.Locale().CurrentMonth()
			}
			if out == "" {
				out = service.ExportFilename(month)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("创建文件 %s 失败: %w", out, err)
			}
			if err := ledger.ExportMonth(cmd.Context(), month, f); err != nil {
				_ = f.Close()
				_ = os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("写入文件 %s 失败: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出 %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "月份 (YYYY-MM)，默认为当前月份")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件，默认为 gastos_YYYY-MM.xlsx")
	return cmd
}
