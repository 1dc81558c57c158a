// Package api defines the HTTP transport contract: request and
// response DTOs, the response envelope and route registration.
package api

import "time"

// Response is the envelope returned by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Team is the transport representation of a team.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MaxMembers  int       `json:"max_members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamMember is a roster entry with the member's resolved email.
type TeamMember struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	Email    string    `json:"email"`
}

// Invitation is the transport representation of a team invitation.
type Invitation struct {
	ID            string     `json:"id"`
	TeamID        string     `json:"team_id"`
	InvitedEmail  string     `json:"invited_email"`
	InvitedUserID string     `json:"invited_user_id"`
	InvitedBy     string     `json:"invited_by"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

// InvitationSummary is an inbox entry for the invited user.
type InvitationSummary struct {
	ID              string    `json:"id"`
	TeamID          string    `json:"team_id"`
	TeamName        string    `json:"team_name"`
	TeamDescription string    `json:"team_description"`
	InvitedBy       string    `json:"invited_by"`
	InvitedByEmail  string    `json:"invited_by_email"`
	CreatedAt       time.Time `json:"created_at"`
}

// InviteOutcome reports one email's result in a bulk invite.
type InviteOutcome struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Todo is the transport representation of a todo.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TeamID      string    `json:"team_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkSession is the transport representation of a work session.
type WorkSession struct {
	ID              string     `json:"id"`
	TodoID          string     `json:"todo_id"`
	UserID          string     `json:"user_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	UserEmail       string     `json:"user_email,omitempty"`
}

// ActiveSession pairs an open session with its todo.
type ActiveSession struct {
	Session WorkSession `json:"session"`
	Todo    Todo        `json:"todo"`
}

// UserContribution is one user's share of tracked time.
type UserContribution struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	Minutes    int64   `json:"minutes"`
	Proportion float64 `json:"proportion"`
}

// SessionSummary aggregates a todo's ended sessions.
type SessionSummary struct {
	TodoID        string             `json:"todo_id"`
	TotalMinutes  int64              `json:"total_minutes"`
	Contributions []UserContribution `json:"contributions"`
}

// CreateTeamRequest is the POST /teams body.
type CreateTeamRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MaxMembers   int      `json:"max_members"`
	InviteEmails []string `json:"invite_emails"`
}

// UpdateTeamRequest is the PUT /teams/:teamId body. Absent fields
// keep their value.
type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxMembers  *int    `json:"max_members"`
}

// InviteRequest is the POST /teams/:teamId/invite body.
type InviteRequest struct {
	Email string `json:"email"`
}

// CreateTodoRequest is the POST /todos body.
type CreateTodoRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	TeamID      string     `json:"team_id"`
}

// UpdateTodoRequest is the PUT /todos/:todoId body. Absent fields
// keep their value.
type UpdateTodoRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
}

// StartSessionRequest is the POST /work-sessions/start body.
type StartSessionRequest struct {
	TodoID string `json:"todo_id"`
}
