package handler

import (
	"net/http"

	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/anglerhub/pondkeeper/internal/rest/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportHandler exposes the moderation report queue over HTTP.
type ReportHandler struct {
	reports *service.ReportService
	logger  *zap.Logger
}

// NewReport creates a new report handler.
func NewReport(reports *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.Named("report_handler"),
	}
}

type fileReportReq struct {
	ReportedUserID uint64  `json:"reported_user_id"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	PostID         *string `json:"post_id"`
}

// File queues a new report from the caller for moderator review.
func (h *ReportHandler) File(c echo.Context) error {
	var req fileReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	reportType, err := enum.ReportTypeString(req.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown report type"})
	}

	var postID *uuid.UUID

	if req.PostID != nil {
		parsed, err := uuid.Parse(*req.PostID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post_id"})
		}

		postID = &parsed
	}

	report, err := h.reports.File(
		c.Request().Context(), req.ReportedUserID, middleware.CallerID(c), reportType, req.Description, postID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, report)
}

// List returns reports in the given status, pending by default.
func (h *ReportHandler) List(c echo.Context) error {
	status := enum.ReportStatusPending

	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := enum.ReportStatusString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown report status"})
		}

		status = parsed
	}

	limit, offset := pagination(c)

	reports, err := h.reports.ListByStatus(c.Request().Context(), status, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

type resolveReportReq struct {
	Status string `json:"status"`
}

// Resolve moves a pending report to a terminal status.
func (h *ReportHandler) Resolve(c echo.Context) error {
	reportID, err := pathUUID(c, "reportID")
	if err != nil {
		return err
	}

	var req resolveReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	status, err := enum.ReportStatusString(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown report status"})
	}

	report, err := h.reports.Resolve(c.Request().Context(), reportID, middleware.CallerID(c), status)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
