package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/dbretry"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// RestrictionModel handles database operations for user restrictions.
type RestrictionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewRestriction creates a new RestrictionModel instance.
func NewRestriction(db *bun.DB, logger *zap.Logger) *RestrictionModel {
	return &RestrictionModel{
		db:     db,
		logger: logger.Named("db_restriction"),
	}
}

// Create inserts a new active restriction row.
func (m *RestrictionModel) Create(ctx context.Context, restriction *types.UserRestriction) error {
	restriction.ID = uuid.New()
	restriction.IsActive = true
	restriction.CreatedAt = time.Now()

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(restriction).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create restriction: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a restriction row.
func (m *RestrictionModel) GetByID(ctx context.Context, id uuid.UUID) (*types.UserRestriction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserRestriction, error) {
		var restriction types.UserRestriction

		err := m.db.NewSelect().
			Model(&restriction).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrRestrictionNotFound
			}

			return nil, fmt.Errorf("failed to get restriction: %w", err)
		}

		return &restriction, nil
	})
}

// Deactivate flips is_active to false and records the audit fields. The
// conditional update has exactly one winner under concurrent calls on the
// same row: the loser sees zero rows affected and gets
// types.ErrAlreadyDeactivated (or ErrRestrictionNotFound when the row never
// existed).
func (m *RestrictionModel) Deactivate(
	ctx context.Context, id uuid.UUID, deactivatedBy uint64, reason string,
) (*types.UserRestriction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserRestriction, error) {
		now := time.Now()

		result, err := m.db.NewUpdate().
			Model((*types.UserRestriction)(nil)).
			Set("is_active = false").
			Set("deactivated_at = ?", now).
			Set("deactivated_by = ?", deactivatedBy).
			Set("deactivation_reason = ?", reason).
			Where("id = ?", id).
			Where("is_active").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to deactivate restriction: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read deactivation row count: %w", err)
		}

		if affected == 0 {
			// Distinguish a missing row from a lost race.
			if _, err := m.GetByID(ctx, id); err != nil {
				return nil, err
			}

			return nil, types.ErrAlreadyDeactivated
		}

		return m.GetByID(ctx, id)
	})
}

// History lists every restriction ever applied to a user, newest first.
func (m *RestrictionModel) History(ctx context.Context, userID uint64) ([]*types.UserRestriction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.UserRestriction, error) {
		var restrictions []*types.UserRestriction

		err := m.db.NewSelect().
			Model(&restrictions).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list restriction history: %w", err)
		}

		return restrictions, nil
	})
}

// ActiveForUser lists a user's restrictions that are active and unexpired at
// query time. Expiry is evaluated in the query, never written back.
func (m *RestrictionModel) ActiveForUser(ctx context.Context, userID uint64) ([]*types.UserRestriction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.UserRestriction, error) {
		var restrictions []*types.UserRestriction

		err := m.db.NewSelect().
			Model(&restrictions).
			Where("user_id = ?", userID).
			Where("is_active").
			Where("expires_at IS NULL OR expires_at > ?", time.Now()).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active restrictions: %w", err)
		}

		return restrictions, nil
	})
}
