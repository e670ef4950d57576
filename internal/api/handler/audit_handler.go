package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// AuditHandler exposes the read-only audit trail of an entity.
type AuditHandler struct {
	reader ports.AuditReader
}

func NewAuditHandler(reader ports.AuditReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

// History handles GET /api/audit?entity_type=...&entity_id=...
//
// @Summary      List the audit trail for an entity, oldest first
// @Tags         audit
// @Produce      json
// @Param        entity_type  query     string  true  "Entity type"
// @Param        entity_id    query     string  true  "Entity id"
// @Success      200          {array}   domain.AuditLog
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) History(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	entityType := c.QueryParam("entity_type")
	entityID := c.QueryParam("entity_id")
	if entityType == "" || entityID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entity_type and entity_id are required")
	}

	logs, err := h.reader.History(c.Request().Context(), entityType, entityID)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.AuditLog{}
	}
	return c.JSON(http.StatusOK, logs)
}
