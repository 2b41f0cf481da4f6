package http

import (
	"errors"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Caller roles carried in the JWT role claim.
const (
	RoleAdmin   = "admin"
	RoleEndUser = "enduser"
	RoleDrone   = "drone"
)

const principalContextKey = "principal"

// Principal is the authenticated caller resolved from a bearer token.
// Name is the owner identity for end users and the external identity
// for drones.
type Principal struct {
	Name string
	Role string
}

// AuthMiddleware validates the Bearer JWT on every request and stores the
// resulting Principal in the echo context. Token issuance happens elsewhere;
// this middleware only verifies.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := parseBearer(ctx.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}

			ctx.Set(principalContextKey, principal)

			return next(ctx)
		}
	}
}

// RequireRole rejects callers whose role is not one of the allowed roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, ok := principalFrom(ctx)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "authentication required",
				})
			}

			for _, role := range roles {
				if principal.Role == role {
					return next(ctx)
				}
			}

			return ctx.JSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "insufficient role",
			})
		}
	}
}

func principalFrom(ctx echo.Context) (Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(Principal)
	return principal, ok
}

func parseBearer(header string, secret string) (Principal, error) {
	if secret == "" {
		return Principal{}, errors.New("jwt secret is empty")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Principal{}, errors.New("missing or malformed authorization header")
	}

	type authClaims struct {
		Name string `json:"name"`
		Role string `json:"role"`
		jwt.RegisteredClaims
	}

	token, err := jwt.ParseWithClaims(
		strings.TrimSpace(parts[1]),
		&authClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return Principal{}, err
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || claims.Name == "" || claims.Role == "" {
		return Principal{}, errors.New("token is missing name or role claim")
	}

	return Principal{
		Name: claims.Name,
		Role: strings.ToLower(claims.Role),
	}, nil
}
