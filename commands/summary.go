package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gastos/format"
	"gastos/service"
)

func newSummaryCommand(load func() (*app, error)) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "打印某月收支汇总和支出类别统计",
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

			return printSummary(cmd.Context(), cmd.OutOrStdout(), ledger, month)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "月份 (YYYY-MM)，默认为当前月份")
	return cmd
}

func printSummary(ctx context.Context, out io.Writer, ledger *service.Ledger, month string) error {
	summary, err := ledger.MonthSummary(ctx, month)
	if err != nil {
		return err
	}
	stats, err := ledger.CategoryStats(ctx, summary.Month)
	if err != nil {
		return err
	}
	l := ledger.Locale()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, format.Capitalize(format.FormatMonth(summary.Month)))
	fmt.Fprintf(w, "Ingresos\t%s\n", l.FormatCurrency(summary.Income))
	fmt.Fprintf(w, "Gastos\t%s\n", l.FormatCurrency(summary.Expenses))
	fmt.Fprintf(w, "Balance\t%s\n", l.FormatCurrency(summary.Balance))
	fmt.Fprintf(w, "Transacciones\t%d\n", summary.Count)

	if len(stats) > 0 {
		fmt.Fprintln(w)
		for _, s := range stats {
			fmt.Fprintf(w, "%s %s\t%s\t%s\t%d\n",
				s.Category.Icon, s.Category.Name,
				l.FormatCurrency(s.Total),
				format.FormatPercentage(s.Percentage/100),
				s.Count)
		}
	}
	return w.Flush()
}
