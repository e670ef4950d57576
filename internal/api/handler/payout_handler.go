package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// PayoutHandler handles payout requests and listing for creators.
type PayoutHandler struct {
	service ports.PayoutService
}

func NewPayoutHandler(service ports.PayoutService) *PayoutHandler {
	return &PayoutHandler{service: service}
}

type requestPayoutRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Request handles POST /api/payouts.
//
// @Summary      Request a payout
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        body  body      requestPayoutRequest  true  "Amount"
// @Success      201   {object}  domain.Payout
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/payouts [post]
func (h *PayoutHandler) Request(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req requestPayoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Request(c.Request().Context(), identity.UserID, req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /api/payouts.
//
// @Summary      List own payouts, newest first
// @Tags         payouts
// @Produce      json
// @Success      200  {array}   domain.Payout
// @Failure      401  {object}  errorResponse
// @Router       /api/payouts [get]
func (h *PayoutHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	payouts, err := h.service.ListByCreator(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	if payouts == nil {
		payouts = []*domain.Payout{}
	}
	return c.JSON(http.StatusOK, payouts)
}
