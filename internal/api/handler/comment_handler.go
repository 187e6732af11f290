package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/pantry-api/internal/api/metrics"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /api/comments.
//
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.Create(c.Request().Context(), ports.CreateCommentInput{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
	}, claims.SubjectID)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("comment", "create").Inc()
	return c.JSON(http.StatusCreated, comment)
}

// List handles GET /api/comments.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Rows to skip"
// @Param        limit  query     int  false  "Maximum rows to return"
// @Success      200    {array}   domain.Comment
// @Failure      400    {object}  errorResponse
// @Router       /api/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return err
	}

	comments, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// ListByUser handles GET /api/comments/user/:user_id.
//
// @Summary      List the comments of a user
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int  true   "Owner id"
// @Param        skip     query     int  false  "Rows to skip"
// @Param        limit    query     int  false  "Maximum rows to return"
// @Success      200      {array}   domain.Comment
// @Failure      400      {object}  errorResponse
// @Router       /api/comments/user/{user_id} [get]
func (h *CommentHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	opts, err := listOptions(c)
	if err != nil {
		return err
	}

	comments, err := h.service.ListByUser(c.Request().Context(), userID, opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Get handles GET /api/comments/:id.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment id"
// @Success      200  {object}  domain.Comment
// @Failure      404  {object}  errorResponse
// @Router       /api/comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Update handles PUT /api/comments/:id.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Comment id"
// @Param        body  body      updateCommentRequest  true  "Fields to change"
// @Success      200   {object}  domain.Comment
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	claims, err := actorClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.Update(c.Request().Context(), id, ports.UpdateCommentInput{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
	}, claims.SubjectID)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("comment", "update").Inc()
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  int  true  "Comment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
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

	metrics.EntityMutationsTotal.WithLabelValues("comment", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
