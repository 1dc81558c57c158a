// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"team-todo-service/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// DirectoryInterface provisions verified callers into the local user
// directory. Identity lives with the external token issuer; this keeps
// a row per caller so foreign keys and email joins resolve.
type DirectoryInterface interface {
	EnsureUser(ctx context.Context, caller entities.Caller) (*entities.User, error)
}

// TeamInterface exposes team and membership operations.
type TeamInterface interface {
	CreateTeam(ctx context.Context, team entities.Team, ownerID string) (*entities.Team, error)
	GetTeam(ctx context.Context, teamID string) (*entities.Team, error)
	ListTeams(ctx context.Context, userID string) ([]entities.Team, error)
	UpdateTeam(ctx context.Context, teamID string, upd entities.TeamUpdate) (*entities.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error
	// GetMembership is the authorization primitive: it returns
	// ErrAccessDenied when the user has no membership row.
	GetMembership(ctx context.Context, teamID, userID string) (*entities.TeamMember, error)
	ListMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error)
}

// InvitationInterface exposes invitation lifecycle operations.
type InvitationInterface interface {
	CreateInvitation(ctx context.Context, teamID, email, inviterID string) (*entities.Invitation, error)
	ListTeamInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error)
	ListUserInvitations(ctx context.Context, userID string) ([]entities.InvitationSummary, error)
	AcceptInvitation(ctx context.Context, invitationID, userID string) error
	DeclineInvitation(ctx context.Context, invitationID, userID string) error
}

// TodoInterface exposes todo CRUD operations.
type TodoInterface interface {
	CreateTodo(ctx context.Context, todo entities.Todo) (*entities.Todo, error)
	GetTodo(ctx context.Context, todoID string) (*entities.Todo, error)
	ListTodos(ctx context.Context, userID string, filter entities.TodoFilter) ([]entities.Todo, error)
	UpdateTodo(ctx context.Context, todoID string, upd entities.TodoUpdate) (*entities.Todo, error)
	DeleteTodo(ctx context.Context, todoID string) error
}

// SessionInterface exposes work session operations.
type SessionInterface interface {
	StartSession(ctx context.Context, todoID, userID string) (*entities.WorkSession, error)
	StopSession(ctx context.Context, sessionID, userID string) (*entities.WorkSession, error)
	ListSessionsByTodo(ctx context.Context, todoID string) ([]entities.WorkSession, error)
	ListActiveSessions(ctx context.Context, userID string) ([]entities.ActiveSession, error)
}
