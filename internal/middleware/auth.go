package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/models"
)

const actorKey = "actor"

// SupabaseClaims is the payload of an access token issued by Supabase Auth.
type SupabaseClaims struct {
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	AppMetadata map[string]any `json:"app_metadata,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens signed with the project's JWT
// secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) Parse(raw string) (*models.Actor, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("token verification is not configured")
	}

	var claims SupabaseClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	role, _ := claims.AppMetadata["role"].(string)
	return &models.Actor{UserID: userID, Email: claims.Email, IsAdmin: role == "admin"}, nil
}

func bearer(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// OptionalAuth attaches the caller when a token is present. A token that
// fails verification is rejected rather than treated as anonymous.
func (a *Authenticator) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearer(c)
		if raw == "" {
			return next(c)
		}
		actor, err := a.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		SetActor(c, actor)
		return next(c)
	}
}

func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return a.OptionalAuth(func(c echo.Context) error {
		if ActorFrom(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	})
}

func SetActor(c echo.Context, actor *models.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the authenticated caller, or nil for anonymous requests.
func ActorFrom(c echo.Context) *models.Actor {
	actor, _ := c.Get(actorKey).(*models.Actor)
	return actor
}
