// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"errors"
	"fmt"

	"team-todo-service/internal/entities"
)

// CreateTeam persists the team with the caller as owner, then runs the
// best-effort invite loop. Invite failures never roll back the team;
// each email gets its own outcome.
func (u *Usecase) CreateTeam(ctx context.Context, callerID, name, description string, maxMembers int, inviteEmails []string) (*entities.Team, []entities.InviteOutcome, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	if maxMembers == 0 {
		maxMembers = entities.DefaultTeamCapacity
	}
	if maxMembers < entities.MinTeamCapacity || maxMembers > entities.MaxTeamCapacity {
		return nil, nil, fmt.Errorf("%w: max_members must be between %d and %d",
			entities.ErrInvalidArgument, entities.MinTeamCapacity, entities.MaxTeamCapacity)
	}

	team, err := u.repo.CreateTeam(ctx, entities.Team{
		Name:        name,
		Description: description,
		MaxMembers:  maxMembers,
	}, callerID)
	if err != nil {
		return nil, nil, err
	}

	outcomes := make([]entities.InviteOutcome, 0, len(inviteEmails))
	for _, email := range inviteEmails {
		outcomes = append(outcomes, entities.InviteOutcome{
			Email:  email,
			Status: u.inviteForCreate(ctx, team.ID, email, callerID),
		})
	}

	return team, outcomes, nil
}

func (u *Usecase) inviteForCreate(ctx context.Context, teamID, email, inviterID string) entities.InviteStatus {
	if email == "" {
		return entities.InviteUserNotFound
	}
	_, err := u.repo.CreateInvitation(ctx, teamID, email, inviterID)
	switch {
	case err == nil:
		return entities.InviteSent
	case errors.Is(err, entities.ErrUserNotFound):
		return entities.InviteUserNotFound
	case errors.Is(err, entities.ErrAlreadyMember):
		return entities.InviteAlreadyMember
	default:
		u.log.Errorw("failed to invite during team creation", "team_id", teamID, "email", email, "error", err)
		return entities.InviteFailed
	}
}

// ListTeams returns the caller's teams, newest first.
func (u *Usecase) ListTeams(ctx context.Context, callerID string) ([]entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListTeams(ctx, callerID)
}

// UpdateTeam applies owner-only partial updates to team settings.
func (u *Usecase) UpdateTeam(ctx context.Context, teamID, callerID string, upd entities.TeamUpdate) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(teamID, "team_id"); err != nil {
		return nil, err
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", entities.ErrInvalidArgument)
	}
	if upd.MaxMembers != nil && (*upd.MaxMembers < entities.MinTeamCapacity || *upd.MaxMembers > entities.MaxTeamCapacity) {
		return nil, fmt.Errorf("%w: max_members must be between %d and %d",
			entities.ErrInvalidArgument, entities.MinTeamCapacity, entities.MaxTeamCapacity)
	}

	if err := u.requireOwner(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	return u.repo.UpdateTeam(ctx, teamID, upd)
}

// DeleteTeam removes the team and its memberships, owner only.
func (u *Usecase) DeleteTeam(ctx context.Context, teamID, callerID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(teamID, "team_id"); err != nil {
		return err
	}
	if err := u.requireOwner(ctx, teamID, callerID); err != nil {
		return err
	}

	return u.repo.DeleteTeam(ctx, teamID)
}

// ListMembers returns the roster, visible to members only.
func (u *Usecase) ListMembers(ctx context.Context, teamID, callerID string) ([]entities.TeamMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(teamID, "team_id"); err != nil {
		return nil, err
	}
	if _, err := u.repo.GetMembership(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	return u.repo.ListMembers(ctx, teamID)
}

func (u *Usecase) requireOwner(ctx context.Context, teamID, callerID string) error {
	m, err := u.repo.GetMembership(ctx, teamID, callerID)
	if err != nil {
		return err
	}
	if m.Role != entities.RoleOwner {
		return fmt.Errorf("%w: owner role required", entities.ErrAccessDenied)
	}
	return nil
}
