package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// NotificationHandler exposes a user's notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/notifications.
//
// @Summary      List own notifications, newest first
// @Tags         notifications
// @Produce      json
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	notifications, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), identity.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/notifications/:id. Deleting a notification
// that belongs to someone else (or does not exist) succeeds without doing
// anything; the delete is scoped to the resolved owner.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), identity.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
