package database

import (
	"context"

	"gastos/models"
)

// SeedResult 本次写入的默认数据条数，表已有数据时为 0
type SeedResult struct {
	Categories int
	Accounts   int
}

// Seed 写入默认类别和账户（仅当表为空时）
//
// 每张表在各自的事务中先计数再插入，计数与插入之间不会有其他写入；
// 中途失败时该表整体回滚，下次启动会重新写入。
func Seed(ctx context.Context, s *Store, categories []models.Category, accounts []models.Account) (SeedResult, error) {
	var res SeedResult

	n, err := seedTable(ctx, s, models.TableCategories, len(categories), func(i int, rec models.Record) {
		c := rec.(*models.Category)
		*c = categories[i]
	})
	if err != nil {
		return res, err
	}
	res.Categories = n
	if n > 0 {
		s.log.Info().Int("count", n).Msg("已初始化默认类别")
	}

	n, err = seedTable(ctx, s, models.TableAccounts, len(accounts), func(i int, rec models.Record) {
		a := rec.(*models.Account)
		*a = accounts[i]
	})
	if err != nil {
		return res, err
	}
	res.Accounts = n
	if n > 0 {
		s.log.Info().Int("count", n).Msg("已初始化默认账户")
	}
	return res, nil
}

// SeedDefaults 写入内置的默认数据
func SeedDefaults(ctx context.Context, s *Store) (SeedResult, error) {
	return Seed(ctx, s, models.DefaultCategories(), models.DefaultAccounts())
}

func seedTable(ctx context.Context, s *Store, table string, n int, fill func(i int, rec models.Record)) (int, error) {
	inserted := 0
	err := s.Write(ctx, func(tx *Tx) error {
		count, err := tx.Count(table)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for i := 0; i < n; i++ {
			if _, err := tx.Create(table, func(rec models.Record) error {
				fill(i, rec)
				return nil
			}); err != nil {
				return err
			}
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
