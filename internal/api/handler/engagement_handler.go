package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// EngagementHandler serves saved-creator bookmarks and inbox read markers.
type EngagementHandler struct {
	service ports.EngagementService
}

func NewEngagementHandler(service ports.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

type inboxReadRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// MarkInboxRead handles POST /api/inbox/read, an idempotent upsert of the
// (user, item) read marker.
//
// @Summary      Mark an inbox item as seen
// @Tags         inbox
// @Accept       json
// @Produce      json
// @Param        body  body      inboxReadRequest  true  "Item id"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/inbox/read [post]
func (h *EngagementHandler) MarkInboxRead(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req inboxReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.MarkInboxRead(c.Request().Context(), identity.UserID, req.ItemID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// SaveCreator handles PUT /api/saved-creators/:creatorProfileID. Saving an
// already-saved creator is a no-op.
//
// @Summary      Bookmark a creator profile
// @Tags         saved-creators
// @Produce      json
// @Param        creatorProfileID  path  string  true  "Creator profile id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/saved-creators/{creatorProfileID} [put]
func (h *EngagementHandler) SaveCreator(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.SaveCreator(c.Request().Context(), identity.UserID, c.Param("creatorProfileID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// UnsaveCreator handles DELETE /api/saved-creators/:creatorProfileID.
//
// @Summary      Remove a creator bookmark
// @Tags         saved-creators
// @Produce      json
// @Param        creatorProfileID  path  string  true  "Creator profile id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /api/saved-creators/{creatorProfileID} [delete]
func (h *EngagementHandler) UnsaveCreator(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.UnsaveCreator(c.Request().Context(), identity.UserID, c.Param("creatorProfileID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListSavedCreators handles GET /api/saved-creators.
//
// @Summary      List bookmarked creators
// @Tags         saved-creators
// @Produce      json
// @Success      200  {array}   domain.SavedCreator
// @Failure      401  {object}  errorResponse
// @Router       /api/saved-creators [get]
func (h *EngagementHandler) ListSavedCreators(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	saved, err := h.service.ListSavedCreators(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	if saved == nil {
		saved = []*domain.SavedCreator{}
	}
	return c.JSON(http.StatusOK, saved)
}
