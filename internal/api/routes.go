package api

import "github.com/gofiber/fiber/v2"

// ServerInterface lists the handlers the delivery layer must provide.
type ServerInterface interface {
	ListTeams(c *fiber.Ctx) error
	CreateTeam(c *fiber.Ctx) error
	UpdateTeam(c *fiber.Ctx) error
	DeleteTeam(c *fiber.Ctx) error
	ListMembers(c *fiber.Ctx) error
	InviteMember(c *fiber.Ctx) error
	ListTeamInvitations(c *fiber.Ctx) error

	ListMyInvitations(c *fiber.Ctx) error
	AcceptInvitation(c *fiber.Ctx) error
	DeclineInvitation(c *fiber.Ctx) error

	ListTodos(c *fiber.Ctx) error
	CreateTodo(c *fiber.Ctx) error
	GetTodo(c *fiber.Ctx) error
	UpdateTodo(c *fiber.Ctx) error
	DeleteTodo(c *fiber.Ctx) error

	StartSession(c *fiber.Ctx) error
	StopSession(c *fiber.Ctx) error
	ListSessions(c *fiber.Ctx) error
	SessionSummary(c *fiber.Ctx) error
	ListActiveSessions(c *fiber.Ctx) error
}

// RegisterHandlers wires all authenticated routes onto the app.
func RegisterHandlers(app fiber.Router, h ServerInterface, auth fiber.Handler) {
	teams := app.Group("/teams", auth)
	teams.Get("/", h.ListTeams)
	teams.Post("/", h.CreateTeam)
	teams.Put("/:teamId", h.UpdateTeam)
	teams.Delete("/:teamId", h.DeleteTeam)
	teams.Get("/:teamId/members", h.ListMembers)
	teams.Post("/:teamId/invite", h.InviteMember)
	teams.Get("/:teamId/invitations", h.ListTeamInvitations)

	invitations := app.Group("/invitations", auth)
	invitations.Get("/", h.ListMyInvitations)
	invitations.Post("/:invitationId/accept", h.AcceptInvitation)
	invitations.Post("/:invitationId/decline", h.DeclineInvitation)

	todos := app.Group("/todos", auth)
	todos.Get("/", h.ListTodos)
	todos.Post("/", h.CreateTodo)
	todos.Get("/:todoId", h.GetTodo)
	todos.Put("/:todoId", h.UpdateTodo)
	todos.Delete("/:todoId", h.DeleteTodo)

	sessions := app.Group("/work-sessions", auth)
	sessions.Post("/start", h.StartSession)
	sessions.Post("/stop/:sessionId", h.StopSession)
	sessions.Get("/todo/:todoId", h.ListSessions)
	sessions.Get("/todo/:todoId/summary", h.SessionSummary)
	sessions.Get("/active", h.ListActiveSessions)
}
