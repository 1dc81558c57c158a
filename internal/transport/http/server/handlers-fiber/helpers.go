package handlers_fiber

import (
	"errors"
	"net/http"

	"team-todo-service/internal/api"
	"team-todo-service/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthenticated):
		status = http.StatusUnauthorized
		msg = "user not authenticated"
	case errors.Is(err, entities.ErrAccessDenied):
		status = http.StatusForbidden
		msg = "access denied"
	case errors.Is(err, entities.ErrTeamNotFound),
		errors.Is(err, entities.ErrTodoNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, entities.ErrInvitationNotFound):
		status = http.StatusNotFound
		msg = "invitation not found or already processed"
	case errors.Is(err, entities.ErrSessionNotFound):
		status = http.StatusNotFound
		msg = "work session not found or access denied"
	case errors.Is(err, entities.ErrTeamFull):
		status = http.StatusBadRequest
		msg = "team is full"
	case errors.Is(err, entities.ErrAlreadyMember):
		status = http.StatusBadRequest
		msg = "user is already a member of this team"
	case errors.Is(err, entities.ErrDuplicateInvitation):
		status = http.StatusBadRequest
		msg = "an invitation has already been sent to this user"
	case errors.Is(err, entities.ErrSessionActive):
		status = http.StatusBadRequest
		msg = "you already have an active work session for this todo"
	case errors.Is(err, entities.ErrSessionEnded):
		status = http.StatusBadRequest
		msg = "work session already ended"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(api.Response{Success: false, Error: msg})
}

func writeData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(api.Response{Success: true, Data: data})
}

func writeMessage(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusOK).JSON(api.Response{Success: true, Message: msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(api.Response{Success: false, Error: msg})
}
