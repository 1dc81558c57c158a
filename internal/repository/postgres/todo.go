package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"team-todo-service/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertTodoQuery = `
INSERT INTO todos(user_id, team_id, name, description, due_date, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, user_id, team_id, name, description, due_date, status, created_at, updated_at`
	selectTodoQuery = `
SELECT id, user_id, team_id, name, description, due_date, status, created_at, updated_at
FROM todos WHERE id=$1`
	updateTodoQuery = `
UPDATE todos
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    due_date = COALESCE($4, due_date),
    status = COALESCE($5, status),
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, team_id, name, description, due_date, status, created_at, updated_at`
	deleteTodoSessionsQuery = `DELETE FROM work_sessions WHERE todo_id=$1`
	deleteTodoQuery         = `DELETE FROM todos WHERE id=$1`
)

var todoSortColumns = map[string]string{
	"created_at": "created_at",
	"due_date":   "due_date",
	"name":       "name",
	"status":     "status",
}

// CreateTodo inserts a todo. TeamID empty means personal.
func (p *Postgres) CreateTodo(ctx context.Context, todo entities.Todo) (*entities.Todo, error) {
	var teamID *string
	if todo.TeamID != "" {
		teamID = &todo.TeamID
	}

	created, err := scanTodo(p.db.QueryRow(ctx, insertTodoQuery,
		todo.UserID, teamID, todo.Name, todo.Description, todo.DueDate, todo.Status))
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	p.log.Infow("todo created", "todo_id", created.ID, "user_id", todo.UserID)
	return created, nil
}

// GetTodo fetches a todo by id.
func (p *Postgres) GetTodo(ctx context.Context, todoID string) (*entities.Todo, error) {
	t, err := scanTodo(p.db.QueryRow(ctx, selectTodoQuery, todoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// ListTodos returns the user's personal todos plus todos of teams they
// belong to, narrowed by filter.
func (p *Postgres) ListTodos(ctx context.Context, userID string, filter entities.TodoFilter) ([]entities.Todo, error) {
	var sb strings.Builder
	sb.WriteString(`
SELECT id, user_id, team_id, name, description, due_date, status, created_at, updated_at
FROM todos
WHERE ((user_id = $1 AND team_id IS NULL)
   OR team_id IN (SELECT team_id FROM team_members WHERE user_id = $1))`)

	args := []any{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.DueDateFrom != nil {
		args = append(args, *filter.DueDateFrom)
		fmt.Fprintf(&sb, " AND due_date >= $%d", len(args))
	}
	if filter.DueDateTo != nil {
		args = append(args, *filter.DueDateTo)
		fmt.Fprintf(&sb, " AND due_date <= $%d", len(args))
	}

	col, ok := todoSortColumns[filter.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s", col, dir)

	rows, err := p.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]entities.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

// UpdateTodo applies a partial update. Nil fields keep their value.
func (p *Postgres) UpdateTodo(ctx context.Context, todoID string, upd entities.TodoUpdate) (*entities.Todo, error) {
	t, err := scanTodo(p.db.QueryRow(ctx, updateTodoQuery,
		todoID, upd.Name, upd.Description, upd.DueDate, upd.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return t, nil
}

// DeleteTodo removes the todo and its work sessions.
func (p *Postgres) DeleteTodo(ctx context.Context, todoID string) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, deleteTodoSessionsQuery, todoID); err != nil {
		return fmt.Errorf("delete todo sessions: %w", err)
	}

	tag, err := tx.Exec(ctx, deleteTodoQuery, todoID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTodoNotFound
	}

	return tx.Commit(ctx)
}

func scanTodo(row pgx.Row) (*entities.Todo, error) {
	var t entities.Todo
	var teamID *string
	err := row.Scan(&t.ID, &t.UserID, &teamID, &t.Name, &t.Description, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if teamID != nil {
		t.TeamID = *teamID
	}
	return &t, nil
}
