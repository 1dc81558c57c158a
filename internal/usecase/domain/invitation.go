// Package domain contains application Usecases orchestrating domain logic by invitation.
package domain

import (
	"context"
	"fmt"

	"team-todo-service/internal/entities"
)

// InviteMember invites an email into a team. Any member may invite;
// capacity and duplicate checks run atomically in the store.
func (u *Usecase) InviteMember(ctx context.Context, teamID, email, callerID string) (*entities.Invitation, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(teamID, "team_id"); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", entities.ErrInvalidArgument)
	}
	if _, err := u.repo.GetMembership(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	inv, err := u.repo.CreateInvitation(ctx, teamID, email, callerID)
	if err != nil {
		return nil, err
	}

	u.log.Infow("member invited", "team_id", teamID, "email", email, "invited_by", callerID)
	return inv, nil
}

// ListTeamInvitations returns a team's pending invitations, members only.
func (u *Usecase) ListTeamInvitations(ctx context.Context, teamID, callerID string) ([]entities.Invitation, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(teamID, "team_id"); err != nil {
		return nil, err
	}
	if _, err := u.repo.GetMembership(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	return u.repo.ListTeamInvitations(ctx, teamID)
}

// ListMyInvitations returns the caller's pending invitations.
func (u *Usecase) ListMyInvitations(ctx context.Context, callerID string) ([]entities.InvitationSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListUserInvitations(ctx, callerID)
}

// AcceptInvitation joins the caller to the team. Capacity is
// re-checked at accept time against membership changes since the
// invitation was issued.
func (u *Usecase) AcceptInvitation(ctx context.Context, invitationID, callerID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(invitationID, "invitation_id"); err != nil {
		return err
	}

	return u.repo.AcceptInvitation(ctx, invitationID, callerID)
}

// DeclineInvitation marks the invitation declined, terminal.
func (u *Usecase) DeclineInvitation(ctx context.Context, invitationID, callerID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(invitationID, "invitation_id"); err != nil {
		return err
	}

	return u.repo.DeclineInvitation(ctx, invitationID, callerID)
}
