package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// principalKey is the echo context key under which the resolved principal is
// stored for the duration of one request.
const principalKey = "principal"

// PrincipalFrom returns the authenticated principal attached to the request,
// or nil for anonymous requests.
func PrincipalFrom(c echo.Context) *auth.Principal {
	p, _ := c.Get(principalKey).(*auth.Principal)
	return p
}

// RequireAuth rejects requests without a valid Bearer token. The token's
// claims alone are not trusted: the referenced user is re-fetched, so a token
// for a deleted user is rejected as unauthenticated.
func RequireAuth(jwtService *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  principalKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return nil, err
			}
			return &auth.Principal{ID: user.ID, Role: user.Role}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Missing header, malformed header, bad signature, expired token
			// and vanished user all collapse to the same 401.
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthenticated.Error(),
			})
		},
	})
}

// OptionalAuth attaches a principal when a valid Bearer token is present and
// otherwise lets the request through anonymously. Claims are trusted as-is
// with no user re-fetch; routes using this middleware only widen what an
// admin can see, they never gate access.
func OptionalAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             principalKey,
		TokenLookup:            "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContinueOnIgnoredError: true,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			return &auth.Principal{ID: claims.UserID, Role: claims.Role}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// RequireRole gates a route group on an exact role match. It must run after
// RequireAuth so a principal is present.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil || p.Role != role {
				return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
					Error: apperrors.ErrForbidden.Error(),
				})
			}
			return next(c)
		}
	}
}
