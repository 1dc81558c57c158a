package postgres

import (
	"context"
	"errors"
	"fmt"

	"team-todo-service/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const (
	lockTeamQuery     = `SELECT max_members FROM teams WHERE id=$1 FOR UPDATE`
	countMembersQuery = `SELECT count(*) FROM team_members WHERE team_id=$1`
	memberExistsQuery = `SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id=$1 AND user_id=$2)`
	insertInviteQuery = `
INSERT INTO team_invitations(team_id, invited_email, invited_user_id, invited_by)
VALUES ($1, $2, $3, $4)
RETURNING id, team_id, invited_email, invited_user_id, invited_by, status, created_at, responded_at`
	lockInviteQuery = `
SELECT id, team_id FROM team_invitations
WHERE id=$1 AND invited_user_id=$2 AND status='pending'
FOR UPDATE`
	insertMemberQuery = `INSERT INTO team_members(team_id, user_id, role) VALUES ($1, $2, 'member')`
	// Status-guarded transition: the first writer out of pending wins,
	// a loser affects zero rows.
	transitionInviteQuery = `
UPDATE team_invitations SET status=$2, responded_at=now()
WHERE id=$1 AND status='pending'`
	declineInviteQuery = `
UPDATE team_invitations SET status='declined', responded_at=now()
WHERE id=$1 AND invited_user_id=$2 AND status='pending'`
	listTeamInvitesQuery = `
SELECT id, team_id, invited_email, invited_user_id, invited_by, status, created_at, responded_at
FROM team_invitations
WHERE team_id=$1 AND status='pending'
ORDER BY created_at DESC`
	listUserInvitesQuery = `
SELECT i.id, i.team_id, t.name, t.description, i.invited_by, COALESCE(u.email, 'Unknown'), i.created_at
FROM team_invitations i
JOIN teams t ON t.id = i.team_id
LEFT JOIN users u ON u.id = i.invited_by
WHERE i.invited_user_id=$1 AND i.status='pending'
ORDER BY i.created_at DESC`
)

// CreateInvitation checks capacity, resolves the email and inserts a
// pending invitation, all inside one transaction. The team row is
// locked so the capacity count cannot race a concurrent accept.
func (p *Postgres) CreateInvitation(ctx context.Context, teamID, email, inviterID string) (*entities.Invitation, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxMembers int
	if err := tx.QueryRow(ctx, lockTeamQuery, teamID).Scan(&maxMembers); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("lock team: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, countMembersQuery, teamID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if count >= maxMembers {
		return nil, entities.ErrTeamFull
	}

	var invitedUserID string
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email=$1`, email).Scan(&invitedUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve email: %w", err)
	}

	var isMember bool
	if err := tx.QueryRow(ctx, memberExistsQuery, teamID, invitedUserID).Scan(&isMember); err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if isMember {
		return nil, entities.ErrAlreadyMember
	}

	var inv entities.Invitation
	err = tx.QueryRow(ctx, insertInviteQuery, teamID, email, invitedUserID, inviterID).
		Scan(&inv.ID, &inv.TeamID, &inv.InvitedEmail, &inv.InvitedUserID, &inv.InvitedBy, &inv.Status, &inv.CreatedAt, &inv.RespondedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, entities.ErrDuplicateInvitation
		}
		return nil, fmt.Errorf("insert invitation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("invitation created", "team_id", teamID, "email", email)
	return &inv, nil
}

// AcceptInvitation inserts the membership and transitions the
// invitation in one transaction, re-checking capacity at accept time.
func (p *Postgres) AcceptInvitation(ctx context.Context, invitationID, userID string) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var invID, teamID string
	err = tx.QueryRow(ctx, lockInviteQuery, invitationID, userID).Scan(&invID, &teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrInvitationNotFound
		}
		return fmt.Errorf("lock invitation: %w", err)
	}

	var maxMembers int
	if err := tx.QueryRow(ctx, lockTeamQuery, teamID).Scan(&maxMembers); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrTeamNotFound
		}
		return fmt.Errorf("lock team: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, countMembersQuery, teamID).Scan(&count); err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if count >= maxMembers {
		return entities.ErrTeamFull
	}

	if _, err := tx.Exec(ctx, insertMemberQuery, teamID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entities.ErrAlreadyMember
		}
		return fmt.Errorf("insert membership: %w", err)
	}

	tag, err := tx.Exec(ctx, transitionInviteQuery, invitationID, entities.InvitationAccepted)
	if err != nil {
		return fmt.Errorf("transition invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrInvitationNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	p.log.Infow("invitation accepted", "invitation_id", invitationID, "team_id", teamID, "user_id", userID)
	return nil
}

// DeclineInvitation is a single status-guarded update; a lost race or a
// foreign invitation both surface as not found.
func (p *Postgres) DeclineInvitation(ctx context.Context, invitationID, userID string) error {
	tag, err := p.db.Exec(ctx, declineInviteQuery, invitationID, userID)
	if err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrInvitationNotFound
	}

	p.log.Infow("invitation declined", "invitation_id", invitationID, "user_id", userID)
	return nil
}

// ListTeamInvitations returns a team's pending invitations, newest first.
func (p *Postgres) ListTeamInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error) {
	rows, err := p.db.Query(ctx, listTeamInvitesQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team invitations: %w", err)
	}
	defer rows.Close()

	invs := make([]entities.Invitation, 0)
	for rows.Next() {
		var inv entities.Invitation
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.InvitedEmail, &inv.InvitedUserID, &inv.InvitedBy, &inv.Status, &inv.CreatedAt, &inv.RespondedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invitations: %w", err)
	}
	return invs, nil
}

// ListUserInvitations returns the caller's pending invitations joined
// with team and inviter identity.
func (p *Postgres) ListUserInvitations(ctx context.Context, userID string) ([]entities.InvitationSummary, error) {
	rows, err := p.db.Query(ctx, listUserInvitesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list user invitations: %w", err)
	}
	defer rows.Close()

	invs := make([]entities.InvitationSummary, 0)
	for rows.Next() {
		var inv entities.InvitationSummary
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.TeamName, &inv.TeamDescription, &inv.InvitedBy, &inv.InvitedByEmail, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invitation summary: %w", err)
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invitation summaries: %w", err)
	}
	return invs, nil
}
