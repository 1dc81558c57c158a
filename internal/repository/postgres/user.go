package postgres

import (
	"context"
	"fmt"

	"team-todo-service/internal/entities"
)

// Upsert keyed on the token subject so a caller's first request
// provisions their row and later requests pick up email changes.
const upsertUserQuery = `
INSERT INTO users(id, email)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
RETURNING id, email, created_at`

// EnsureUser provisions the caller's directory entry from verified
// token claims, updating the email if it changed.
func (p *Postgres) EnsureUser(ctx context.Context, caller entities.Caller) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, upsertUserQuery, caller.ID, caller.Email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return &u, nil
}
