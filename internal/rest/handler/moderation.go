package handler

import (
	"net/http"

	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/anglerhub/pondkeeper/internal/rest/middleware"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ModerationHandler exposes the restriction lifecycle over HTTP.
type ModerationHandler struct {
	moderation *service.ModerationService
	logger     *zap.Logger
}

// NewModeration creates a new moderation handler.
func NewModeration(moderation *service.ModerationService, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderation: moderation,
		logger:     logger.Named("moderation_handler"),
	}
}

type applyRestrictionReq struct {
	Type         string `json:"type"`
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days"`
}

// Apply places a new restriction on the target user, issued by the caller.
func (h *ModerationHandler) Apply(c echo.Context) error {
	targetID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	var req applyRestrictionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	restrictionType, err := enum.RestrictionTypeString(req.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown restriction type"})
	}

	restriction, err := h.moderation.Apply(
		c.Request().Context(), targetID, restrictionType, req.Reason, middleware.CallerID(c), req.DurationDays)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, restriction)
}

type deactivateRestrictionReq struct {
	Reason string `json:"reason"`
}

// Deactivate revokes an active restriction, recording the caller and
// reason in the audit fields.
func (h *ModerationHandler) Deactivate(c echo.Context) error {
	restrictionID, err := pathUUID(c, "restrictionID")
	if err != nil {
		return err
	}

	var req deactivateRestrictionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	restriction, err := h.moderation.Deactivate(
		c.Request().Context(), restrictionID, middleware.CallerID(c), req.Reason)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, restriction)
}

// History lists every restriction ever applied to a user.
func (h *ModerationHandler) History(c echo.Context) error {
	userID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	restrictions, err := h.moderation.History(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"restrictions": restrictions})
}

// Effective returns the most severe currently binding restriction for a
// user. A user with no binding restriction gets a null body.
func (h *ModerationHandler) Effective(c echo.Context) error {
	userID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	restriction, err := h.moderation.Effective(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"restriction": restriction})
}
