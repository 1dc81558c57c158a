package handlers_fiber

import (
	"net/http"
	"time"

	"team-todo-service/internal/api"
	"team-todo-service/internal/entities"
	"team-todo-service/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// ListTodos returns the caller's personal and team todos.
func (h *Handler) ListTodos(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	filter := entities.TodoFilter{
		Status:   entities.TodoStatus(c.Query("status")),
		SortBy:   c.Query("sort_by", "created_at"),
		SortDesc: c.Query("sort_order", "desc") != "asc",
	}
	if from := c.Query("due_date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return badRequest(c, "due_date_from must be RFC3339")
		}
		filter.DueDateFrom = &t
	}
	if to := c.Query("due_date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return badRequest(c, "due_date_to must be RFC3339")
		}
		filter.DueDateTo = &t
	}

	todos, err := h.uc.ListTodos(c.Context(), id.ID, filter)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPITodoList(todos))
}

// CreateTodo creates a personal or team todo.
func (h *Handler) CreateTodo(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	var body api.CreateTodoRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	todo := entities.Todo{
		Name:        body.Name,
		Description: body.Description,
		Status:      entities.TodoStatus(body.Status),
		TeamID:      body.TeamID,
	}
	if body.DueDate != nil {
		todo.DueDate = *body.DueDate
	}

	created, err := h.uc.CreateTodo(c.Context(), id.ID, todo)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusCreated, mapper.ToAPITodo(*created))
}

// GetTodo returns a single todo the caller can see.
func (h *Handler) GetTodo(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	todo, err := h.uc.GetTodo(c.Context(), c.Params("todoId"), id.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPITodo(*todo))
}

// UpdateTodo applies a partial update.
func (h *Handler) UpdateTodo(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	var body api.UpdateTodoRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	upd := entities.TodoUpdate{
		Name:        body.Name,
		Description: body.Description,
		DueDate:     body.DueDate,
	}
	if body.Status != nil {
		status := entities.TodoStatus(*body.Status)
		upd.Status = &status
	}

	todo, err := h.uc.UpdateTodo(c.Context(), c.Params("todoId"), id.ID, upd)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPITodo(*todo))
}

// DeleteTodo removes a todo, owner only.
func (h *Handler) DeleteTodo(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteTodo(c.Context(), c.Params("todoId"), id.ID); err != nil {
		return writeError(c, err)
	}

	return writeMessage(c, "Todo deleted successfully")
}
