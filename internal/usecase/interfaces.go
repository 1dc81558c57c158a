package usecase

import (
	"context"

	"team-todo-service/internal/entities"
)

// TeamUsecaseInterface abstracts team and membership operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, callerID, name, description string, maxMembers int, inviteEmails []string) (*entities.Team, []entities.InviteOutcome, error)
	ListTeams(ctx context.Context, callerID string) ([]entities.Team, error)
	UpdateTeam(ctx context.Context, teamID, callerID string, upd entities.TeamUpdate) (*entities.Team, error)
	DeleteTeam(ctx context.Context, teamID, callerID string) error
	ListMembers(ctx context.Context, teamID, callerID string) ([]entities.TeamMember, error)
}

// InvitationUsecaseInterface abstracts the invitation lifecycle.
type InvitationUsecaseInterface interface {
	InviteMember(ctx context.Context, teamID, email, callerID string) (*entities.Invitation, error)
	ListTeamInvitations(ctx context.Context, teamID, callerID string) ([]entities.Invitation, error)
	ListMyInvitations(ctx context.Context, callerID string) ([]entities.InvitationSummary, error)
	AcceptInvitation(ctx context.Context, invitationID, callerID string) error
	DeclineInvitation(ctx context.Context, invitationID, callerID string) error
}

// TodoUsecaseInterface abstracts todo operations.
type TodoUsecaseInterface interface {
	CreateTodo(ctx context.Context, callerID string, todo entities.Todo) (*entities.Todo, error)
	GetTodo(ctx context.Context, todoID, callerID string) (*entities.Todo, error)
	ListTodos(ctx context.Context, callerID string, filter entities.TodoFilter) ([]entities.Todo, error)
	UpdateTodo(ctx context.Context, todoID, callerID string, upd entities.TodoUpdate) (*entities.Todo, error)
	DeleteTodo(ctx context.Context, todoID, callerID string) error
}

// SessionUsecaseInterface abstracts work session tracking.
type SessionUsecaseInterface interface {
	StartSession(ctx context.Context, todoID, callerID string) (*entities.WorkSession, error)
	StopSession(ctx context.Context, sessionID, callerID string) (*entities.WorkSession, error)
	ListSessions(ctx context.Context, todoID, callerID string) ([]entities.WorkSession, error)
	ListActiveSessions(ctx context.Context, callerID string) ([]entities.ActiveSession, error)
	SessionSummary(ctx context.Context, todoID, callerID string) (*entities.SessionSummary, error)
}
