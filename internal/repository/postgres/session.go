package postgres

import (
	"context"
	"errors"
	"fmt"

	"team-todo-service/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertSessionQuery = `
INSERT INTO work_sessions(todo_id, user_id, started_at)
VALUES ($1, $2, now())
RETURNING id, todo_id, user_id, started_at, ended_at, duration_minutes`
	lockSessionQuery = `
SELECT id, todo_id, user_id, started_at, ended_at
FROM work_sessions
WHERE id=$1 AND user_id=$2
FOR UPDATE`
	// Null-sentinel guard: only an open session can be closed, the
	// second stopper affects zero rows. Duration comes from the database
	// clock so it cannot go negative against started_at; GREATEST keeps
	// the non-negative CHECK satisfiable even across clock adjustments.
	endSessionQuery = `
UPDATE work_sessions
SET ended_at = now(),
    duration_minutes = GREATEST(0, floor(extract(epoch FROM now() - started_at) / 60))::BIGINT
WHERE id=$1 AND ended_at IS NULL
RETURNING id, todo_id, user_id, started_at, ended_at, duration_minutes`
	listSessionsQuery = `
SELECT s.id, s.todo_id, s.user_id, s.started_at, s.ended_at, s.duration_minutes, COALESCE(u.email, 'Unknown')
FROM work_sessions s
LEFT JOIN users u ON u.id = s.user_id
WHERE s.todo_id = $1
ORDER BY s.started_at DESC`
	listActiveSessionsQuery = `
SELECT s.id, s.todo_id, s.user_id, s.started_at, s.ended_at, s.duration_minutes,
       t.id, t.user_id, t.team_id, t.name, t.description, t.due_date, t.status, t.created_at, t.updated_at
FROM work_sessions s
JOIN todos t ON t.id = s.todo_id
WHERE s.user_id = $1 AND s.ended_at IS NULL
ORDER BY s.started_at DESC`
)

// StartSession opens a session for (todo, user). The partial unique
// index on open sessions rejects a concurrent duplicate.
func (p *Postgres) StartSession(ctx context.Context, todoID, userID string) (*entities.WorkSession, error) {
	var s entities.WorkSession
	err := p.db.QueryRow(ctx, insertSessionQuery, todoID, userID).
		Scan(&s.ID, &s.TodoID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.DurationMinutes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, entities.ErrSessionActive
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}

	p.log.Infow("work session started", "session_id", s.ID, "todo_id", todoID, "user_id", userID)
	return &s, nil
}

// StopSession closes the caller's session and records the duration in
// whole minutes, computed on the database clock.
func (p *Postgres) StopSession(ctx context.Context, sessionID, userID string) (*entities.WorkSession, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var s entities.WorkSession
	err = tx.QueryRow(ctx, lockSessionQuery, sessionID, userID).
		Scan(&s.ID, &s.TodoID, &s.UserID, &s.StartedAt, &s.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("lock session: %w", err)
	}
	if s.EndedAt != nil {
		return nil, entities.ErrSessionEnded
	}

	var updated entities.WorkSession
	err = tx.QueryRow(ctx, endSessionQuery, sessionID).
		Scan(&updated.ID, &updated.TodoID, &updated.UserID, &updated.StartedAt, &updated.EndedAt, &updated.DurationMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSessionEnded
		}
		return nil, fmt.Errorf("end session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("work session stopped", "session_id", sessionID, "duration_minutes", *updated.DurationMinutes)
	return &updated, nil
}

// ListSessionsByTodo returns a todo's sessions, newest first, with
// user emails resolved from the directory.
func (p *Postgres) ListSessionsByTodo(ctx context.Context, todoID string) ([]entities.WorkSession, error) {
	rows, err := p.db.Query(ctx, listSessionsQuery, todoID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]entities.WorkSession, 0)
	for rows.Next() {
		var s entities.WorkSession
		if err := rows.Scan(&s.ID, &s.TodoID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.DurationMinutes, &s.UserEmail); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ListActiveSessions returns the user's open sessions joined with
// their parent todos.
func (p *Postgres) ListActiveSessions(ctx context.Context, userID string) ([]entities.ActiveSession, error) {
	rows, err := p.db.Query(ctx, listActiveSessionsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]entities.ActiveSession, 0)
	for rows.Next() {
		var as entities.ActiveSession
		var teamID *string
		err := rows.Scan(
			&as.Session.ID, &as.Session.TodoID, &as.Session.UserID, &as.Session.StartedAt, &as.Session.EndedAt, &as.Session.DurationMinutes,
			&as.Todo.ID, &as.Todo.UserID, &teamID, &as.Todo.Name, &as.Todo.Description, &as.Todo.DueDate, &as.Todo.Status, &as.Todo.CreatedAt, &as.Todo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan active session: %w", err)
		}
		if teamID != nil {
			as.Todo.TeamID = *teamID
		}
		sessions = append(sessions, as)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active sessions: %w", err)
	}
	return sessions, nil
}
