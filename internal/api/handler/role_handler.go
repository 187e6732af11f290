package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/pantry-api/internal/api/metrics"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// Create handles POST /api/roles.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	var req createRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.service.Create(c.Request().Context(), ports.CreateRoleInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	}, claims.SubjectID)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("role", "create").Inc()
	return c.JSON(http.StatusCreated, role)
}

// List handles GET /api/roles.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Rows to skip"
// @Param        limit  query     int  false  "Maximum rows to return"
// @Success      200    {array}   domain.Role
// @Router       /api/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return err
	}

	roles, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Get handles GET /api/roles/:id.
//
// @Summary      Get a role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role id"
// @Success      200  {object}  domain.Role
// @Failure      404  {object}  errorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	role, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Update handles PUT /api/roles/:id.
//
// @Summary      Update a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Role id"
// @Param        body  body      updateRoleRequest  true  "Fields to change"
// @Success      200   {object}  domain.Role
// @Failure      404   {object}  errorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.service.Update(c.Request().Context(), id, ports.UpdateRoleInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	}, claims.SubjectID)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("role", "update").Inc()
	return c.JSON(http.StatusOK, role)
}

// Delete handles DELETE /api/roles/:id.
//
// @Summary      Delete a role
// @Tags         roles
// @Security     BearerAuth
// @Param        id  path  int  true  "Role id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, claims.SubjectID); err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("role", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
