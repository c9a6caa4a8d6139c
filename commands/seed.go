package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"gastos/database"
)

func newSeedCommand(load func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "写入默认类别和账户（表非空时跳过）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			store, err := database.Open(a.cfg.Database, database.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := database.SeedDefaults(cmd.Context(), store)
			if err != nil {
				return fmt.Errorf("写入默认数据失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "类别新增 %d，账户新增 %d\n", res.Categories, res.Accounts)
			return nil
		},
	}
}
