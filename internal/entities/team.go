// Package entities contains core business entities.
package entities

import "time"

// MemberRole enumerates team membership roles.
type MemberRole string

const (
	// RoleOwner marks the team creator.
	RoleOwner MemberRole = "owner"
	// RoleMember marks a regular member.
	RoleMember MemberRole = "member"
)

// Team capacity bounds.
const (
	MinTeamCapacity = 1
	MaxTeamCapacity = 100

	// DefaultTeamCapacity applies when a create request omits max_members.
	DefaultTeamCapacity = 10
)

// Team is a named group of users sharing visibility into todos.
type Team struct {
	ID          string
	Name        string
	Description string
	MaxMembers  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember is the (team, user, role) relation granting access.
type TeamMember struct {
	ID       string
	TeamID   string
	UserID   string
	Role     MemberRole
	JoinedAt time.Time
	// Email is resolved from the user directory; "Unknown" when the
	// lookup fails.
	Email string
}

// TeamUpdate carries the owner-editable team fields. Nil means unchanged.
type TeamUpdate struct {
	Name        *string
	Description *string
	MaxMembers  *int
}

// InviteOutcome reports the per-email result of a best-effort bulk invite.
type InviteOutcome struct {
	Email  string
	Status InviteStatus
}

// InviteStatus enumerates bulk-invite outcomes.
type InviteStatus string

const (
	// InviteSent means a pending invitation was created.
	InviteSent InviteStatus = "invited"
	// InviteAlreadyMember means the email resolved to an existing member.
	InviteAlreadyMember InviteStatus = "already_member"
	// InviteUserNotFound means the email resolved to no known user.
	InviteUserNotFound InviteStatus = "user_not_found"
	// InviteFailed means the store rejected the invitation.
	InviteFailed InviteStatus = "error"
)
