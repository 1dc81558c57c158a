// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated signals a missing or unusable caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAccessDenied signals the caller lacks the required role or membership.
	ErrAccessDenied = errors.New("access denied")
	// ErrUserNotFound is returned when an email resolves to no known user.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamFull signals the team is at max_members capacity.
	ErrTeamFull = errors.New("team full")
	// ErrAlreadyMember signals the invited user already belongs to the team.
	ErrAlreadyMember = errors.New("already a member")
	// ErrDuplicateInvitation signals a pending invitation already exists for the email.
	ErrDuplicateInvitation = errors.New("invitation already sent")
	// ErrInvitationNotFound signals a missing, foreign or already processed invitation.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrTodoNotFound signals missing todo.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrSessionNotFound signals a missing or foreign work session.
	ErrSessionNotFound = errors.New("work session not found")
	// ErrSessionActive signals the user already has an open session on the todo.
	ErrSessionActive = errors.New("work session already active")
	// ErrSessionEnded signals a stop attempt on an already ended session.
	ErrSessionEnded = errors.New("work session already ended")
)
