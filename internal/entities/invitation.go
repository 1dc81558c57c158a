// Package entities contains core business entities.
package entities

import "time"

// InvitationStatus enumerates invitation lifecycle states.
type InvitationStatus string

const (
	// InvitationPending marks an invitation awaiting a response.
	InvitationPending InvitationStatus = "pending"
	// InvitationAccepted is terminal; a membership row was created.
	InvitationAccepted InvitationStatus = "accepted"
	// InvitationDeclined is terminal; no membership side effect.
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation is a pending offer of team membership tied to an email.
// Invitations are never deleted, only transitioned out of pending.
type Invitation struct {
	ID            string
	TeamID        string
	InvitedEmail  string
	InvitedUserID string
	InvitedBy     string
	Status        InvitationStatus
	CreatedAt     time.Time
	RespondedAt   *time.Time
}

// InvitationSummary is an invitation joined with its team and inviter
// identity, shaped for the caller's inbox listing.
type InvitationSummary struct {
	ID              string
	TeamID          string
	TeamName        string
	TeamDescription string
	InvitedBy       string
	InvitedByEmail  string
	CreatedAt       time.Time
}
