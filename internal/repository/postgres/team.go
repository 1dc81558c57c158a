package postgres

import (
	"context"
	"errors"
	"fmt"

	"team-todo-service/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertTeamQuery = `
INSERT INTO teams(name, description, max_members)
VALUES ($1, $2, $3)
RETURNING id, name, description, max_members, created_at, updated_at`
	insertOwnerQuery = `INSERT INTO team_members(team_id, user_id, role) VALUES ($1, $2, 'owner')`
	selectTeamQuery  = `SELECT id, name, description, max_members, created_at, updated_at FROM teams WHERE id=$1`
	listTeamsQuery   = `
SELECT t.id, t.name, t.description, t.max_members, t.created_at, t.updated_at
FROM teams t
JOIN team_members m ON m.team_id = t.id
WHERE m.user_id = $1
ORDER BY t.created_at DESC`
	updateTeamQuery = `
UPDATE teams
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    max_members = COALESCE($4, max_members),
    updated_at = now()
WHERE id = $1
RETURNING id, name, description, max_members, created_at, updated_at`
	deleteTeamSessionsQuery    = `DELETE FROM work_sessions WHERE todo_id IN (SELECT id FROM todos WHERE team_id=$1)`
	deleteTeamTodosQuery       = `DELETE FROM todos WHERE team_id=$1`
	deleteTeamMembersQuery     = `DELETE FROM team_members WHERE team_id=$1`
	deleteTeamInvitationsQuery = `DELETE FROM team_invitations WHERE team_id=$1`
	deleteTeamQuery            = `DELETE FROM teams WHERE id=$1`
	selectMembershipQuery      = `
SELECT id, team_id, user_id, role, joined_at FROM team_members WHERE team_id=$1 AND user_id=$2`
	listMembersQuery = `
SELECT m.id, m.team_id, m.user_id, m.role, m.joined_at, COALESCE(u.email, 'Unknown')
FROM team_members m
LEFT JOIN users u ON u.id = m.user_id
WHERE m.team_id = $1
ORDER BY m.joined_at ASC`
)

// CreateTeam inserts the team row and the creator's owner membership in
// one transaction.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team, ownerID string) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var created entities.Team
	err = tx.QueryRow(ctx, insertTeamQuery, team.Name, team.Description, team.MaxMembers).
		Scan(&created.ID, &created.Name, &created.Description, &created.MaxMembers, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}

	if _, err := tx.Exec(ctx, insertOwnerQuery, created.ID, ownerID); err != nil {
		return nil, fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team created", "team_id", created.ID, "owner_id", ownerID)
	return &created, nil
}

// GetTeam fetches a team by id.
func (p *Postgres) GetTeam(ctx context.Context, teamID string) (*entities.Team, error) {
	var t entities.Team
	err := p.db.QueryRow(ctx, selectTeamQuery, teamID).
		Scan(&t.ID, &t.Name, &t.Description, &t.MaxMembers, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// ListTeams returns the teams the user belongs to, newest first.
func (p *Postgres) ListTeams(ctx context.Context, userID string) ([]entities.Team, error) {
	rows, err := p.db.Query(ctx, listTeamsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.MaxMembers, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam applies a partial update. Nil fields keep their value.
// Lowering max_members below the current member count is rejected; the
// team row is locked so the count cannot race a concurrent accept.
func (p *Postgres) UpdateTeam(ctx context.Context, teamID string, upd entities.TeamUpdate) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if upd.MaxMembers != nil {
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
		if *upd.MaxMembers < count {
			return nil, fmt.Errorf("%w: max_members cannot be set below the current member count", entities.ErrInvalidArgument)
		}
	}

	var t entities.Team
	err = tx.QueryRow(ctx, updateTeamQuery, teamID, upd.Name, upd.Description, upd.MaxMembers).
		Scan(&t.ID, &t.Name, &t.Description, &t.MaxMembers, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("update team: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team updated", "team_id", teamID)
	return &t, nil
}

// DeleteTeam removes the team's todos with their sessions, then
// memberships and invitations, before the team row itself, so no
// dangling references survive a partial failure.
func (p *Postgres) DeleteTeam(ctx context.Context, teamID string) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, deleteTeamSessionsQuery, teamID); err != nil {
		return fmt.Errorf("delete todo sessions: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteTeamTodosQuery, teamID); err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteTeamMembersQuery, teamID); err != nil {
		return fmt.Errorf("delete members: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteTeamInvitationsQuery, teamID); err != nil {
		return fmt.Errorf("delete invitations: %w", err)
	}

	tag, err := tx.Exec(ctx, deleteTeamQuery, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	p.log.Infow("team deleted", "team_id", teamID)
	return nil
}

// GetMembership returns the caller's membership row for a team.
// ErrAccessDenied when no row exists.
func (p *Postgres) GetMembership(ctx context.Context, teamID, userID string) (*entities.TeamMember, error) {
	var m entities.TeamMember
	err := p.db.QueryRow(ctx, selectMembershipQuery, teamID, userID).
		Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrAccessDenied
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListMembers returns the roster with emails resolved from the
// directory; unknown users degrade to a placeholder.
func (p *Postgres) ListMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error) {
	rows, err := p.db.Query(ctx, listMembersQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.TeamMember, 0)
	for rows.Next() {
		var m entities.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt, &m.Email); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}
