package handlers_fiber

import (
	"net/http"

	"team-todo-service/internal/api"
	"team-todo-service/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// StartSession opens a work session on a todo.
func (h *Handler) StartSession(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	var body api.StartSessionRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if body.TodoID == "" {
		return badRequest(c, "todo_id is required")
	}

	session, err := h.uc.StartSession(c.Context(), body.TodoID, id.ID)
	if err != nil {
		h.log.Infow("failed to start session", "todo_id", body.TodoID, "error", err.Error())
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPISession(*session))
}

// StopSession closes the caller's session and returns the duration.
func (h *Handler) StopSession(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	session, err := h.uc.StopSession(c.Context(), c.Params("sessionId"), id.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPISession(*session))
}

// ListSessions returns a todo's sessions, newest first.
func (h *Handler) ListSessions(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	sessions, err := h.uc.ListSessions(c.Context(), c.Params("todoId"), id.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPISessionList(sessions))
}

// SessionSummary returns total and per-user tracked minutes for a todo.
func (h *Handler) SessionSummary(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	summary, err := h.uc.SessionSummary(c.Context(), c.Params("todoId"), id.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPISessionSummary(*summary))
}

// ListActiveSessions returns the caller's open sessions with todos.
func (h *Handler) ListActiveSessions(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	sessions, err := h.uc.ListActiveSessions(c.Context(), id.ID)
	if err != nil {
		h.log.Errorw("failed to list active sessions", "error", err.Error())
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPIActiveSessionList(sessions))
}
