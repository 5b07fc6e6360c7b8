package handler

import (
	"net/http"

	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/anglerhub/pondkeeper/internal/rest/middleware"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminHandler exposes the privileged override operations. The route group
// it registers under is reachable only through the admin-gated upstream,
// so handlers trust the caller identity.
type AdminHandler struct {
	admin  *service.AdminService
	logger *zap.Logger
}

// NewAdmin creates a new admin handler.
func NewAdmin(admin *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		logger: logger.Named("admin_handler"),
	}
}

type awardReq struct {
	ReceiverID uint64 `json:"receiver_id"`
	Points     int    `json:"points"`
	Comment    string `json:"comment"`
}

// Award grants a bounded point delta outside the normal vote rules.
func (h *AdminHandler) Award(c echo.Context) error {
	var req awardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	entry, err := h.admin.Award(
		c.Request().Context(), req.ReceiverID, req.Points, req.Comment, middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

type forceRestrictionReq struct {
	Type         string `json:"type"`
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days"`
}

// ForceRestriction applies a restriction through the admin path.
func (h *AdminHandler) ForceRestriction(c echo.Context) error {
	targetID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	var req forceRestrictionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	restrictionType, err := enum.RestrictionTypeString(req.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown restriction type"})
	}

	restriction, err := h.admin.ForceRestriction(
		c.Request().Context(), targetID, restrictionType, req.Reason, middleware.CallerID(c), req.DurationDays)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, restriction)
}

// PurgeReputation deletes a user's entire ledger history and zeroes their
// account.
func (h *AdminHandler) PurgeReputation(c echo.Context) error {
	userID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	deleted, err := h.admin.PurgeReputation(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	h.logger.Info("Reputation purged",
		zap.Uint64("userID", userID),
		zap.Int64("deleted", deleted),
		zap.Uint64("issuedBy", middleware.CallerID(c)))

	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}
