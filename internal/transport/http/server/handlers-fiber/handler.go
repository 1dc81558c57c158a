// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"team-todo-service/internal/entities"
	"team-todo-service/internal/transport/http/middleware"
	"team-todo-service/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler implements api.ServerInterface using service layer interfaces.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
	}
}

// caller returns the authenticated identity or an unauthenticated error.
func caller(c *fiber.Ctx) (entities.Caller, error) {
	id, ok := middleware.CallerFrom(c)
	if !ok {
		return entities.Caller{}, entities.ErrUnauthenticated
	}
	return id, nil
}
