// Package handler translates HTTP requests into roster operations and
// maps domain errors onto the status codes of the activities API.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mergington-high/activities-api/internal/domain"
	"github.com/mergington-high/activities-api/internal/dto"
	"github.com/mergington-high/activities-api/internal/service"
	"github.com/mergington-high/activities-api/pkg/response"
	"github.com/mergington-high/activities-api/pkg/telemetry"
)

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// List handles GET /activities - returns the full roster snapshot keyed
// by activity name
func (h *ActivityHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.activities.list")
	defer span.End()

	snapshot := h.activityService.ListActivities(ctx)
	c.JSON(http.StatusOK, dto.NewActivityMap(snapshot))
}

// Signup handles POST /activities/:name/signup?email=...
func (h *ActivityHandler) Signup(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.activities.signup")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Email is required"))
		return
	}

	conf, err := h.activityService.Signup(ctx, name, email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message(
		fmt.Sprintf("Signed up %s for %s", conf.Student, conf.Activity)))
}

// Unregister handles DELETE /activities/:name/unregister?email=...
func (h *ActivityHandler) Unregister(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.activities.unregister")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Email is required"))
		return
	}

	conf, err := h.activityService.Unregister(ctx, name, email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message(
		fmt.Sprintf("Unregistered %s from %s", conf.Student, conf.Activity)))
}

// handleError converts domain errors to HTTP responses
func (h *ActivityHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		h.fail(c, response.ErrCodeNotFound, "Activity not found")
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		h.fail(c, response.ErrCodeAlreadySignedUp, "Student is already signed up for this activity")
	case errors.Is(err, domain.ErrNotEnrolled):
		h.fail(c, response.ErrCodeNotSignedUp, "Student is not signed up for this activity")
	case errors.Is(err, domain.ErrActivityFull):
		h.fail(c, response.ErrCodeActivityFull, "Activity is full")
	default:
		h.fail(c, response.ErrCodeInternalError, "An internal error occurred")
	}
}

func (h *ActivityHandler) fail(c *gin.Context, code, detail string) {
	c.JSON(response.GetHTTPStatus(code), response.Detail(detail))
}
