package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/dbretry"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReportModel handles database operations for user reports.
type ReportModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReport creates a new ReportModel instance.
func NewReport(db *bun.DB, logger *zap.Logger) *ReportModel {
	return &ReportModel{
		db:     db,
		logger: logger.Named("db_report"),
	}
}

// Create inserts a new pending report.
func (m *ReportModel) Create(ctx context.Context, report *types.UserReport) error {
	report.ID = uuid.New()
	report.Status = enum.ReportStatusPending
	report.CreatedAt = time.Now()

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(report).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a report row.
func (m *ReportModel) GetByID(ctx context.Context, id uuid.UUID) (*types.UserReport, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserReport, error) {
		var report types.UserReport

		err := m.db.NewSelect().
			Model(&report).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrReportNotFound
			}

			return nil, fmt.Errorf("failed to get report: %w", err)
		}

		return &report, nil
	})
}

// ListByStatus lists reports in a given status, newest first.
func (m *ReportModel) ListByStatus(
	ctx context.Context, status enum.ReportStatus, limit, offset int,
) ([]*types.UserReport, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.UserReport, error) {
		var reports []*types.UserReport

		q := m.db.NewSelect().
			Model(&reports).
			Where("status = ?", status).
			Order("created_at DESC")

		if limit > 0 {
			q = q.Limit(limit).Offset(offset)
		}

		err := q.Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}

		return reports, nil
	})
}

// Resolve moves a pending report into a terminal or reviewed status. The
// pending-only conditional update gives concurrent resolvers exactly one
// winner; the loser gets types.ErrAlreadyResolved.
func (m *ReportModel) Resolve(
	ctx context.Context, id uuid.UUID, resolvedBy uint64, status enum.ReportStatus,
) (*types.UserReport, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserReport, error) {
		result, err := m.db.NewUpdate().
			Model((*types.UserReport)(nil)).
			Set("status = ?", status).
			Set("resolved_by = ?", resolvedBy).
			Set("resolved_at = ?", time.Now()).
			Where("id = ?", id).
			Where("status = ?", enum.ReportStatusPending).
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve report: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read resolve row count: %w", err)
		}

		if affected == 0 {
			if _, err := m.GetByID(ctx, id); err != nil {
				return nil, err
			}

			return nil, types.ErrAlreadyResolved
		}

		return m.GetByID(ctx, id)
	})
}
