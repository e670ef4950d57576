package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// MilestoneHandler handles milestone CRUD and status transitions.
type MilestoneHandler struct {
	service ports.MilestoneService
}

func NewMilestoneHandler(service ports.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{service: service}
}

type createMilestoneRequest struct {
	AgreementID string     `json:"agreement_id" validate:"required"`
	CreatorID   string     `json:"creator_id"   validate:"required"`
	Title       string     `json:"title"        validate:"required"`
	Amount      float64    `json:"amount"       validate:"required,gt=0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed paid"`
}

type addDeliverableRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

// Create handles POST /api/milestones. The acting brand comes from the
// session, never from the body.
//
// @Summary      Create a milestone
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        body  body      createMilestoneRequest  true  "Milestone details"
// @Success      201   {object}  domain.Milestone
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/milestones [post]
func (h *MilestoneHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.Create(c.Request().Context(), ports.CreateMilestoneInput{
		AgreementID: req.AgreementID,
		CreatorID:   req.CreatorID,
		BrandID:     identity.UserID,
		Title:       req.Title,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /api/milestones?agreement_id=...
//
// @Summary      List milestones for an agreement
// @Tags         milestones
// @Produce      json
// @Param        agreement_id  query     string  true  "Agreement id"
// @Success      200           {array}   domain.Milestone
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Router       /api/milestones [get]
func (h *MilestoneHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	agreementID := c.QueryParam("agreement_id")
	if agreementID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "agreement_id is required")
	}

	milestones, err := h.service.ListByAgreement(c.Request().Context(), agreementID)
	if err != nil {
		return err
	}
	if milestones == nil {
		milestones = []*domain.Milestone{}
	}
	return c.JSON(http.StatusOK, milestones)
}

// UpdateStatus handles PATCH /api/milestones/:id/status. Invalid forward
// transitions are rejected with 422.
//
// @Summary      Advance a milestone's status
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Milestone id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Milestone
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/milestones/{id}/status [patch]
func (h *MilestoneHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateMilestoneStatusInput{
		MilestoneID: c.Param("id"),
		Status:      domain.MilestoneStatus(req.Status),
		ActorID:     identity.UserID,
		ActorRole:   identity.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// AddDeliverable handles POST /api/milestones/:id/deliverables.
//
// @Summary      Attach a deliverable file reference
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Milestone id"
// @Param        body  body      addDeliverableRequest  true  "Deliverable"
// @Success      200   {object}  domain.Milestone
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/milestones/{id}/deliverables [post]
func (h *MilestoneHandler) AddDeliverable(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addDeliverableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.AddDeliverable(c.Request().Context(), c.Param("id"), req.FileName, identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}
