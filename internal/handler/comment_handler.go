package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest carries the comment body for creation and update.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListComments godoc
// @Summary List comments under a post
// @Tags comments
// @Produce json
// @Param postId path string true "Post ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} PagedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{postId}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return writeError(c, apperrors.ErrPostNotFound)
	}
	page, pageSize := parsePagination(c)

	comments, total, err := h.commentService.ListByPost(c.Request().Context(), postID, (page-1)*pageSize, pageSize)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newPagedResponse(comments, page, pageSize, total))
}

// GetComment godoc
// @Summary Get a comment by id
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrCommentNotFound)
	}

	comment, err := h.commentService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// CreateComment godoc
// @Summary Create a comment under a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Param request body CommentRequest true "Comment data"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/{postId}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return writeError(c, apperrors.ErrPostNotFound)
	}
	p := middleware.PrincipalFrom(c)

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	comment, err := h.commentService.Create(c.Request().Context(), postID, p.ID, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Update a comment (author or admin)
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body CommentRequest true "Comment data"
// @Success 200 {object} model.Comment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [patch]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrCommentNotFound)
	}
	p := middleware.PrincipalFrom(c)

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	comment, err := h.commentService.Update(c.Request().Context(), id, p, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment (author or admin)
// @Tags comments
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrCommentNotFound)
	}
	p := middleware.PrincipalFrom(c)

	if err := h.commentService.Delete(c.Request().Context(), id, p); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
