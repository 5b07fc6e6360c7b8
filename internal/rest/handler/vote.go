package handler

import (
	"net/http"

	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/anglerhub/pondkeeper/internal/rest/middleware"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// VoteHandler exposes the vote ledger over HTTP.
type VoteHandler struct {
	votes  *service.VoteService
	logger *zap.Logger
}

// NewVote creates a new vote handler.
func NewVote(votes *service.VoteService, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		votes:  votes,
		logger: logger.Named("vote_handler"),
	}
}

type castVoteReq struct {
	ReceiverID uint64 `json:"receiver_id"`
	Polarity   int    `json:"polarity"`
	Comment    string `json:"comment"`
}

// Cast records the caller's vote on a post, replacing any previous live
// vote, and returns the updated post summary.
func (h *VoteHandler) Cast(c echo.Context) error {
	postID, err := pathUUID(c, "postID")
	if err != nil {
		return err
	}

	var req castVoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	summary, err := h.votes.Cast(
		c.Request().Context(), middleware.CallerID(c), postID, req.ReceiverID, req.Polarity, req.Comment)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, summary)
}

// Retract removes the caller's live vote on a post.
func (h *VoteHandler) Retract(c echo.Context) error {
	postID, err := pathUUID(c, "postID")
	if err != nil {
		return err
	}

	summary, err := h.votes.Retract(c.Request().Context(), middleware.CallerID(c), postID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// PostReputation returns the live vote summary for a post. Anonymous
// callers get no viewer-vote field.
func (h *VoteHandler) PostReputation(c echo.Context) error {
	postID, err := pathUUID(c, "postID")
	if err != nil {
		return err
	}

	summary, err := h.votes.PostReputation(c.Request().Context(), postID, middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// Stats returns a user's reputation profile numbers.
func (h *VoteHandler) Stats(c echo.Context) error {
	userID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	stats, err := h.votes.Stats(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// Logs lists a user's received ledger entries, newest first, under the
// public row cap.
func (h *VoteHandler) Logs(c echo.Context) error {
	userID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	limit, offset := pagination(c)

	entries, err := h.votes.Logs(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}

// AdminLogs lists a user's received ledger entries without the public row
// cap; with no limit parameter the full history comes back.
func (h *VoteHandler) AdminLogs(c echo.Context) error {
	userID, err := pathUserID(c, "userID")
	if err != nil {
		return err
	}

	limit, offset := adminPagination(c)

	entries, err := h.votes.Logs(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}
