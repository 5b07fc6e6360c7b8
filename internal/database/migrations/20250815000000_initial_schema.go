package migrations

import (
	"context"
	"fmt"

	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.ReputationEntry)(nil),
			(*types.ReputationAccount)(nil),
			(*types.UserRestriction)(nil),
			(*types.UserReport)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		// One live vote per giver per post. Admin awards carry no post and
		// are exempt, so they can accumulate without bound.
		_, err := db.NewRaw(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_reputation_entries_giver_post
			ON reputation_entries (giver_id, post_id)
			WHERE NOT is_admin_award AND post_id IS NOT NULL
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create vote uniqueness index: %w", err)
		}

		indexes := []struct {
			name string
			sql  string
		}{
			{
				name: "idx_reputation_entries_receiver",
				sql: `CREATE INDEX IF NOT EXISTS idx_reputation_entries_receiver
					ON reputation_entries (receiver_id, created_at DESC)`,
			},
			{
				name: "idx_reputation_entries_post",
				sql: `CREATE INDEX IF NOT EXISTS idx_reputation_entries_post
					ON reputation_entries (post_id) WHERE post_id IS NOT NULL`,
			},
			{
				name: "idx_user_restrictions_user",
				sql: `CREATE INDEX IF NOT EXISTS idx_user_restrictions_user
					ON user_restrictions (user_id, created_at DESC)`,
			},
			{
				name: "idx_user_restrictions_active",
				sql: `CREATE INDEX IF NOT EXISTS idx_user_restrictions_active
					ON user_restrictions (user_id) WHERE is_active`,
			},
			{
				name: "idx_user_reports_status",
				sql: `CREATE INDEX IF NOT EXISTS idx_user_reports_status
					ON user_reports (status, created_at DESC)`,
			},
		}

		for _, index := range indexes {
			if _, err := db.NewRaw(index.sql).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", index.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"user_reports",
			"user_restrictions",
			"reputation_accounts",
			"reputation_entries",
		}

		for _, table := range tables {
			_, err := db.NewRaw(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
