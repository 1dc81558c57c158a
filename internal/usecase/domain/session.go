// Package domain contains application Usecases orchestrating domain logic by work session.
package domain

import (
	"context"
	"sort"

	"team-todo-service/internal/entities"
)

// StartSession opens a work session for the caller on a todo they can
// access. A second start for the same (todo, caller) pair fails.
func (u *Usecase) StartSession(ctx context.Context, todoID, callerID string) (*entities.WorkSession, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(todoID, "todo_id"); err != nil {
		return nil, err
	}

	todo, err := u.repo.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeTodo(ctx, todo, callerID); err != nil {
		return nil, err
	}

	return u.repo.StartSession(ctx, todoID, callerID)
}

// StopSession closes the caller's session and records its duration.
func (u *Usecase) StopSession(ctx context.Context, sessionID, callerID string) (*entities.WorkSession, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(sessionID, "session_id"); err != nil {
		return nil, err
	}

	return u.repo.StopSession(ctx, sessionID, callerID)
}

// ListSessions returns a todo's sessions, newest first, for callers
// with access to the todo.
func (u *Usecase) ListSessions(ctx context.Context, todoID, callerID string) ([]entities.WorkSession, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(todoID, "todo_id"); err != nil {
		return nil, err
	}

	todo, err := u.repo.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeTodo(ctx, todo, callerID); err != nil {
		return nil, err
	}

	return u.repo.ListSessionsByTodo(ctx, todoID)
}

// ListActiveSessions returns the caller's open sessions with their todos.
func (u *Usecase) ListActiveSessions(ctx context.Context, callerID string) ([]entities.ActiveSession, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListActiveSessions(ctx, callerID)
}

// SessionSummary aggregates ended sessions of a todo into total and
// per-user minutes. Open sessions contribute nothing until stopped;
// proportions are zero while no session has ended.
func (u *Usecase) SessionSummary(ctx context.Context, todoID, callerID string) (*entities.SessionSummary, error) {
	sessions, err := u.ListSessions(ctx, todoID, callerID)
	if err != nil {
		return nil, err
	}

	return summarize(todoID, sessions), nil
}

func summarize(todoID string, sessions []entities.WorkSession) *entities.SessionSummary {
	byUser := make(map[string]*entities.UserContribution)
	var total int64
	for _, s := range sessions {
		if s.EndedAt == nil || s.DurationMinutes == nil {
			continue
		}
		c, ok := byUser[s.UserID]
		if !ok {
			c = &entities.UserContribution{UserID: s.UserID, Email: s.UserEmail}
			byUser[s.UserID] = c
		}
		c.Minutes += *s.DurationMinutes
		total += *s.DurationMinutes
	}

	contributions := make([]entities.UserContribution, 0, len(byUser))
	for _, c := range byUser {
		if total > 0 {
			c.Proportion = float64(c.Minutes) / float64(total)
		}
		contributions = append(contributions, *c)
	}
	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].Minutes != contributions[j].Minutes {
			return contributions[i].Minutes > contributions[j].Minutes
		}
		return contributions[i].UserID < contributions[j].UserID
	})

	return &entities.SessionSummary{
		TodoID:        todoID,
		TotalMinutes:  total,
		Contributions: contributions,
	}
}
