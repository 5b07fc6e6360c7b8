package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Listing defaults and caps shared by paginated endpoints.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// errorStatus maps the service error taxonomy onto HTTP status codes.
// Anything unmapped is treated as an internal failure.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrNoVote),
		errors.Is(err, types.ErrAccountNotFound),
		errors.Is(err, types.ErrRestrictionNotFound),
		errors.Is(err, types.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrDuplicateVote),
		errors.Is(err, types.ErrAlreadyDeactivated),
		errors.Is(err, types.ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, types.ErrInsufficientPower):
		return http.StatusForbidden
	case errors.Is(err, types.ErrSelfVote),
		errors.Is(err, types.ErrInvalidPolarity),
		errors.Is(err, types.ErrInvalidComment),
		errors.Is(err, types.ErrSelfRestriction),
		errors.Is(err, types.ErrInvalidReason),
		errors.Is(err, types.ErrInvalidDuration),
		errors.Is(err, types.ErrInvalidRestrictionType),
		errors.Is(err, types.ErrInvalidPoints),
		errors.Is(err, types.ErrSelfReport),
		errors.Is(err, types.ErrInvalidDescription),
		errors.Is(err, types.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the standard error envelope for a service error. Internal
// errors are masked so storage details never reach clients.
func fail(c echo.Context, err error) error {
	status := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return c.JSON(status, echo.Map{"error": message})
}

// pathUserID parses the named path parameter as a user ID.
func pathUserID(c echo.Context, name string) (uint64, error) {
	userID, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || userID == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	return userID, nil
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return id, nil
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c echo.Context) (limit, offset int) {
	limit = defaultListLimit

	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxListLimit)
		}
	}

	return limit, paginationOffset(c)
}

// adminPagination reads limit/offset without the public row cap. A missing
// or non-positive limit means the whole history.
func adminPagination(c echo.Context) (limit, offset int) {
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return limit, paginationOffset(c)
}

func paginationOffset(c echo.Context) int {
	if raw := c.QueryParam("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}

	return 0
}
