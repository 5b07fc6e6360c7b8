package service

import (
	"context"
	"strings"

	"github.com/anglerhub/pondkeeper/internal/database/models"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService handles the moderation report queue.
type ReportService struct {
	reports *models.ReportModel
	logger  *zap.Logger
}

// NewReport creates a new report service.
func NewReport(reports *models.ReportModel, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		logger:  logger.Named("report_service"),
	}
}

// File validates and queues a new report for moderator review.
func (s *ReportService) File(
	ctx context.Context,
	reportedUserID, reportedBy uint64,
	reportType enum.ReportType,
	description string,
	postID *uuid.UUID,
) (*types.UserReport, error) {
	if !reportType.IsValid() {
		return nil, enum.ErrUnknownReportType
	}

	if reportedUserID == reportedBy {
		return nil, types.ErrSelfReport
	}

	trimmed := strings.TrimSpace(description)
	if n := len([]rune(trimmed)); n < types.DescriptionMinLen || n > types.DescriptionMaxLen {
		return nil, types.ErrInvalidDescription
	}

	report := &types.UserReport{
		ReportedUserID: reportedUserID,
		ReportedBy:     reportedBy,
		PostID:         postID,
		ReportType:     reportType,
		Description:    trimmed,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Debug("Report filed",
		zap.Uint64("reportedUserID", reportedUserID),
		zap.Uint64("reportedBy", reportedBy),
		zap.Stringer("type", reportType))

	return report, nil
}

// ListByStatus lists reports awaiting or past moderator action.
func (s *ReportService) ListByStatus(
	ctx context.Context, status enum.ReportStatus, limit, offset int,
) ([]*types.UserReport, error) {
	if !status.IsValid() {
		return nil, enum.ErrUnknownReportStatus
	}

	return s.reports.ListByStatus(ctx, status, limit, offset)
}

// Resolve moves a pending report to reviewed, resolved or dismissed.
// Concurrent resolvers have exactly one winner; the loser gets
// ErrAlreadyResolved.
func (s *ReportService) Resolve(
	ctx context.Context, reportID uuid.UUID, resolvedBy uint64, status enum.ReportStatus,
) (*types.UserReport, error) {
	if status == enum.ReportStatusPending || !status.IsValid() {
		return nil, types.ErrInvalidStatus
	}

	report, err := s.reports.Resolve(ctx, reportID, resolvedBy, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Report resolved",
		zap.String("reportID", reportID.String()),
		zap.Stringer("status", status),
		zap.Uint64("resolvedBy", resolvedBy))

	return report, nil
}
