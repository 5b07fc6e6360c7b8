package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/dbretry"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/reputation"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AccountModel handles database operations for reputation accounts.
type AccountModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAccount creates a new AccountModel instance.
func NewAccount(db *bun.DB, logger *zap.Logger) *AccountModel {
	return &AccountModel{
		db:     db,
		logger: logger.Named("db_account"),
	}
}

// Get retrieves the reputation account for a user.
func (m *AccountModel) Get(ctx context.Context, userID uint64) (*types.ReputationAccount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.ReputationAccount, error) {
		var account types.ReputationAccount

		err := m.db.NewSelect().
			Model(&account).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrAccountNotFound
			}

			return nil, fmt.Errorf("failed to get reputation account: %w", err)
		}

		return &account, nil
	})
}

// GetOrZero retrieves the reputation account for a user, returning a fresh
// zero-point account when none exists yet. Users who never received a vote
// have no row.
func (m *AccountModel) GetOrZero(ctx context.Context, userID uint64) (*types.ReputationAccount, error) {
	account, err := m.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrAccountNotFound) {
			return &types.ReputationAccount{UserID: userID}, nil
		}

		return nil, err
	}

	return account, nil
}

// AdjustPoints applies a signed delta to a user's total as a single atomic
// SQL add and recomputes the cached power tier from the resulting total.
// Runs on the caller's transaction so the adjustment commits together with
// the ledger write that caused it.
func (m *AccountModel) AdjustPoints(
	ctx context.Context, tx bun.IDB, userID uint64, delta int,
) (*types.ReputationAccount, error) {
	account := &types.ReputationAccount{
		UserID:      userID,
		TotalPoints: delta,
		UpdatedAt:   time.Now(),
	}

	// The upsert both creates first-vote accounts and serializes concurrent
	// adds on the row lock, so no increment is ever lost.
	err := tx.NewInsert().
		Model(account).
		On("CONFLICT (user_id) DO UPDATE").
		Set("total_points = reputation_account.total_points + EXCLUDED.total_points").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("total_points").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust reputation account: %w", err)
	}

	account.PowerTier = reputation.Tier(account.TotalPoints)

	_, err = tx.NewUpdate().
		Model((*types.ReputationAccount)(nil)).
		Set("power_tier = ?", account.PowerTier).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update power tier: %w", err)
	}

	return account, nil
}

// Reset zeroes a user's account on the caller's transaction. Used by the
// reputation history purge.
func (m *AccountModel) Reset(ctx context.Context, tx bun.IDB, userID uint64) error {
	_, err := tx.NewUpdate().
		Model((*types.ReputationAccount)(nil)).
		Set("total_points = 0").
		Set("power_tier = 0").
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset reputation account: %w", err)
	}

	return nil
}
