package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/pantry-api/internal/api/metrics"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

type IngredientHandler struct {
	service ports.IngredientService
}

func NewIngredientHandler(service ports.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// Create handles POST /api/ingredients.
//
// @Summary      Create an ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIngredientRequest  true  "Ingredient"
// @Success      201   {object}  domain.Ingredient
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	var req createIngredientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ingredient, err := h.service.Create(c.Request().Context(), ports.CreateIngredientInput{
		Name:              req.Name,
		Description:       req.Description,
		ShelfLife:         req.ShelfLife,
		UnitOfMeasurement: req.UnitOfMeasurement,
	}, claims.SubjectID)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("ingredient", "create").Inc()
	return c.JSON(http.StatusCreated, ingredient)
}

// List handles GET /api/ingredients.
//
// @Summary      List ingredients
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Rows to skip"
// @Param        limit  query     int  false  "Maximum rows to return"
// @Success      200    {array}   domain.Ingredient
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return err
	}

	ingredients, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ingredients)
}

// Get handles GET /api/ingredients/:id.
//
// @Summary      Get an ingredient
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ingredient id"
// @Success      200  {object}  domain.Ingredient
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ingredient, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ingredient)
}

// Update handles PUT /api/ingredients/:id.
//
// @Summary      Update an ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Ingredient id"
// @Param        body  body      updateIngredientRequest  true  "Fields to change"
// @Success      200   {object}  domain.Ingredient
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateIngredientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ingredient, err := h.service.Update(c.Request().Context(), id, ports.UpdateIngredientInput{
		Name:              req.Name,
		Description:       req.Description,
		ShelfLife:         req.ShelfLife,
		UnitOfMeasurement: req.UnitOfMeasurement,
	}, claims.SubjectID)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("ingredient", "update").Inc()
	return c.JSON(http.StatusOK, ingredient)
}

// Delete handles DELETE /api/ingredients/:id.
//
// @Summary      Delete an ingredient
// @Tags         ingredients
// @Security     BearerAuth
// @Param        id  path  int  true  "Ingredient id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
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

	metrics.EntityMutationsTotal.WithLabelValues("ingredient", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
