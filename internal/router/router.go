package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.RequireAuth(jwtService, userRepo)
	optionalAuth := middleware.OptionalAuth(jwtService)
	requireAdmin := middleware.RequireRole(model.RoleAdmin)

	// Users
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)

	users.GET("/me", userHandler.GetMe, requireAuth)
	users.PATCH("/me", userHandler.UpdateMe, requireAuth)
	users.DELETE("/me", userHandler.DeleteMe, requireAuth)

	adminUsers := users.Group("", requireAuth, requireAdmin)
	adminUsers.GET("", userHandler.ListUsers)
	adminUsers.GET("/:id", userHandler.GetUser)
	adminUsers.PATCH("/:id", userHandler.UpdateUser)
	adminUsers.DELETE("/:id", userHandler.DeleteUser)

	// Posts: public reads carry optional auth so admins see drafts.
	posts := e.Group("/posts")
	posts.GET("", postHandler.ListPosts, optionalAuth)
	posts.GET("/stats", postHandler.GetStats, requireAuth, requireAdmin)
	posts.GET("/:id", postHandler.GetPost, optionalAuth)

	adminPosts := posts.Group("", requireAuth, requireAdmin)
	adminPosts.POST("", postHandler.CreatePost)
	adminPosts.PATCH("/:id", postHandler.UpdatePost)
	adminPosts.DELETE("/:id", postHandler.DeletePost)
	adminPosts.PUT("/:id/publish", postHandler.PublishPost)
	adminPosts.PUT("/:id/unpublish", postHandler.UnpublishPost)

	// Comments
	e.GET("/posts/:postId/comments", commentHandler.ListComments)
	e.GET("/comments/:id", commentHandler.GetComment)
	e.POST("/posts/:postId/comments", commentHandler.CreateComment, requireAuth)
	e.PATCH("/comments/:id", commentHandler.UpdateComment, requireAuth)
	e.DELETE("/comments/:id", commentHandler.DeleteComment, requireAuth)
}

// errorHandler is the process-wide fallback: anything a handler does not map
// itself is collapsed to a uniform {error} body, 500 unless a status was set.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	_ = c.JSON(code, apperrors.ErrorResponse{Error: msg})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
