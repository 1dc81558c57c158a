package handlers_fiber

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"team-todo-service/internal/api"
	"team-todo-service/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "invalid_argument",
			err:     fmt.Errorf("%w: name is required", entities.ErrInvalidArgument),
			status:  http.StatusBadRequest,
			message: "invalid argument: name is required",
		},
		{
			name:    "unauthenticated",
			err:     entities.ErrUnauthenticated,
			status:  http.StatusUnauthorized,
			message: "user not authenticated",
		},
		{
			name:    "access_denied",
			err:     entities.ErrAccessDenied,
			status:  http.StatusForbidden,
			message: "access denied",
		},
		{
			name:    "team_not_found",
			err:     entities.ErrTeamNotFound,
			status:  http.StatusNotFound,
			message: entities.ErrTeamNotFound.Error(),
		},
		{
			name:    "invitation_not_found",
			err:     entities.ErrInvitationNotFound,
			status:  http.StatusNotFound,
			message: "invitation not found or already processed",
		},
		{
			name:    "session_not_found",
			err:     entities.ErrSessionNotFound,
			status:  http.StatusNotFound,
			message: "work session not found or access denied",
		},
		{
			name:    "team_full",
			err:     entities.ErrTeamFull,
			status:  http.StatusBadRequest,
			message: "team is full",
		},
		{
			name:    "already_member",
			err:     entities.ErrAlreadyMember,
			status:  http.StatusBadRequest,
			message: "user is already a member of this team",
		},
		{
			name:    "duplicate_invitation",
			err:     entities.ErrDuplicateInvitation,
			status:  http.StatusBadRequest,
			message: "an invitation has already been sent to this user",
		},
		{
			name:    "session_active",
			err:     entities.ErrSessionActive,
			status:  http.StatusBadRequest,
			message: "you already have an active work session for this todo",
		},
		{
			name:    "session_ended",
			err:     entities.ErrSessionEnded,
			status:  http.StatusBadRequest,
			message: "work session already ended",
		},
		{
			name:    "unknown",
			err:     fmt.Errorf("pool exhausted"),
			status:  http.StatusInternalServerError,
			message: "pool exhausted",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body api.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.False(t, body.Success)
			require.Equal(t, tt.message, body.Error)
		})
	}
}

func TestWriteDataEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeData(c, http.StatusCreated, map[string]string{"id": "abc"})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "abc", body.Data["id"])
}

func TestWriteMessageEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeMessage(c, "team deleted successfully")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "team deleted successfully", body.Message)
}
