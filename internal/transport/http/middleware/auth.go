package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"team-todo-service/internal/api"
	"team-todo-service/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CallerKey is the fiber Locals key holding the resolved caller identity.
const CallerKey = "caller"

// TokenVerifier resolves a bearer token into a caller identity. Token
// issuance belongs to the external identity provider.
type TokenVerifier interface {
	Verify(token string) (entities.Caller, error)
}

// JWTVerifier validates HS256 tokens signed with a shared secret and
// reads the identity from the sub and email claims.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier constructs a verifier for the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify implements TokenVerifier.
func (v *JWTVerifier) Verify(token string) (entities.Caller, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return entities.Caller{}, fmt.Errorf("%w: %s", entities.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return entities.Caller{}, fmt.Errorf("%w: malformed claims", entities.ErrUnauthenticated)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return entities.Caller{}, fmt.Errorf("%w: missing identity claims", entities.ErrUnauthenticated)
	}

	return entities.Caller{ID: sub, Email: email}, nil
}

// UserDirectory provisions verified callers into the user directory.
type UserDirectory interface {
	EnsureUser(ctx context.Context, caller entities.Caller) (*entities.User, error)
}

// Auth extracts the bearer token, resolves the caller identity,
// provisions it in the directory and stores it in Locals. Requests
// without a valid identity get 401.
func Auth(verifier TokenVerifier, directory UserDirectory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			return unauthenticated(c, "missing bearer token")
		}

		caller, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, entities.ErrUnauthenticated) {
				return unauthenticated(c, "invalid token")
			}
			return unauthenticated(c, err.Error())
		}

		if _, err := directory.EnsureUser(c.Context(), caller); err != nil {
			return c.Status(http.StatusInternalServerError).
				JSON(api.Response{Success: false, Error: "internal error"})
		}

		c.Locals(CallerKey, caller)
		return c.Next()
	}
}

// CallerFrom reads the resolved identity set by Auth.
func CallerFrom(c *fiber.Ctx) (entities.Caller, bool) {
	caller, ok := c.Locals(CallerKey).(entities.Caller)
	return caller, ok && caller.ID != ""
}

func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusUnauthorized).JSON(api.Response{Success: false, Error: msg})
}
