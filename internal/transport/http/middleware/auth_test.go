package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"team-todo-service/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

type directoryStub struct {
	ensured []entities.Caller
	err     error
}

func (d *directoryStub) EnsureUser(_ context.Context, caller entities.Caller) (*entities.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.ensured = append(d.ensured, caller)
	return &entities.User{ID: caller.ID, Email: caller.Email}, nil
}

func authApp(directory UserDirectory) *fiber.App {
	app := fiber.New()
	app.Use(Auth(NewJWTVerifier(testSecret), directory))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(caller)
	})
	return app
}

func TestAuthResolvesAndProvisionsCaller(t *testing.T) {
	directory := &directoryStub{}
	app := authApp(directory)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "9f0d3c3a-0f6a-4c58-8f58-2f0a1b2c3d4e",
		"email": "dev@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var caller entities.Caller
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&caller))
	require.Equal(t, "9f0d3c3a-0f6a-4c58-8f58-2f0a1b2c3d4e", caller.ID)
	require.Equal(t, "dev@example.com", caller.Email)

	// first authenticated request upserts the caller's directory row
	require.Len(t, directory.ensured, 1)
	require.Equal(t, caller, directory.ensured[0])
}

func TestAuthDirectoryFailure(t *testing.T) {
	app := authApp(&directoryStub{err: errors.New("pool exhausted")})
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "9f0d3c3a-0f6a-4c58-8f58-2f0a1b2c3d4e",
		"email": "dev@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAuthMissingHeader(t *testing.T) {
	directory := &directoryStub{}
	app := authApp(directory)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, directory.ensured)
}

func TestAuthNonBearerHeader(t *testing.T) {
	app := authApp(&directoryStub{})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthWrongSecret(t *testing.T) {
	directory := &directoryStub{}
	app := authApp(directory)
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":   "9f0d3c3a-0f6a-4c58-8f58-2f0a1b2c3d4e",
		"email": "dev@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, directory.ensured)
}

func TestAuthExpiredToken(t *testing.T) {
	app := authApp(&directoryStub{})
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "9f0d3c3a-0f6a-4c58-8f58-2f0a1b2c3d4e",
		"email": "dev@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyMissingIdentityClaims(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	noSub := signToken(t, testSecret, jwt.MapClaims{
		"email": "dev@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	_, err := v.Verify(noSub)
	require.ErrorIs(t, err, entities.ErrUnauthenticated)

	noEmail := signToken(t, testSecret, jwt.MapClaims{
		"sub": "9f0d3c3a-0f6a-4c58-8f58-2f0a1b2c3d4e",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = v.Verify(noEmail)
	require.ErrorIs(t, err, entities.ErrUnauthenticated)
}
