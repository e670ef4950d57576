package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/ports"
)

// ProfileHandler serves role-specific profile reads and partial updates.
// The profile document is always keyed by the resolved user id.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type creatorProfileRequest struct {
	DisplayName *string   `json:"display_name,omitempty"`
	Niche       *string   `json:"niche,omitempty"`
	Platforms   *[]string `json:"platforms,omitempty"`
	Rate        *float64  `json:"rate,omitempty" validate:"omitempty,gt=0"`
	Bio         *string   `json:"bio,omitempty"`
}

type agencyProfileRequest struct {
	AgencyName *string `json:"agency_name,omitempty"`
	Website    *string `json:"website,omitempty"`
	TeamSize   *int    `json:"team_size,omitempty" validate:"omitempty,min=1"`
	RosterSize *int    `json:"roster_size,omitempty" validate:"omitempty,min=0"`
}

// GetCreator handles GET /api/profile/creator.
//
// @Summary      Get own creator profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  domain.CreatorProfile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/profile/creator [get]
func (h *ProfileHandler) GetCreator(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetCreator(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateCreator handles PATCH /api/profile/creator, a partial update where
// absent fields stay untouched.
//
// @Summary      Update own creator profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      creatorProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.CreatorProfile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/profile/creator [patch]
func (h *ProfileHandler) UpdateCreator(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req creatorProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.UpdateCreator(c.Request().Context(), identity.UserID, ports.CreatorProfilePatch{
		DisplayName: req.DisplayName,
		Niche:       req.Niche,
		Platforms:   req.Platforms,
		Rate:        req.Rate,
		Bio:         req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetAgency handles GET /api/profile/agency.
//
// @Summary      Get own agency profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  domain.AgencyProfile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/profile/agency [get]
func (h *ProfileHandler) GetAgency(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetAgency(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateAgency handles PATCH /api/profile/agency.
//
// @Summary      Update own agency profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      agencyProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.AgencyProfile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/profile/agency [patch]
func (h *ProfileHandler) UpdateAgency(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req agencyProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.UpdateAgency(c.Request().Context(), identity.UserID, ports.AgencyProfilePatch{
		AgencyName: req.AgencyName,
		Website:    req.Website,
		TeamSize:   req.TeamSize,
		RosterSize: req.RosterSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
