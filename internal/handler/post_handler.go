package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest carries a partial post update. Omitted fields are left
// untouched.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ListPosts godoc
// @Summary List posts
// @Description Returns published posts. With a valid ADMIN token, drafts are included.
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} PagedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	p := middleware.PrincipalFrom(c)
	page, pageSize := parsePagination(c)

	posts, total, err := h.postService.List(c.Request().Context(), p, (page-1)*pageSize, pageSize)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newPagedResponse(posts, page, pageSize, total))
}

// GetPost godoc
// @Summary Get a post by id
// @Description An unpublished post is reported as not found unless the caller is an admin.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrPostNotFound)
	}

	post, err := h.postService.Get(c.Request().Context(), id, middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetStats godoc
// @Summary Admin dashboard counters
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /posts/stats [get]
func (h *PostHandler) GetStats(c echo.Context) error {
	stats, err := h.postService.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// CreatePost godoc
// @Summary Create a draft post (admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	p := middleware.PrincipalFrom(c)

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}

	post, err := h.postService.Create(c.Request().Context(), p.ID, req.Title, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post's title or content (admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrPostNotFound)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}

	post, err := h.postService.Update(c.Request().Context(), id, service.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post (admin)
// @Tags posts
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrPostNotFound)
	}

	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PublishPost godoc
// @Summary Publish a post (admin)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/publish [put]
func (h *PostHandler) PublishPost(c echo.Context) error {
	return h.setPublished(c, true)
}

// UnpublishPost godoc
// @Summary Unpublish a post (admin)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/unpublish [put]
func (h *PostHandler) UnpublishPost(c echo.Context) error {
	return h.setPublished(c, false)
}

func (h *PostHandler) setPublished(c echo.Context, published bool) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrPostNotFound)
	}

	post, err := h.postService.SetPublished(c.Request().Context(), id, published)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}
