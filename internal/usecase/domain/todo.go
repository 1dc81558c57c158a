// Package domain contains application Usecases orchestrating domain logic by todo.
package domain

import (
	"context"
	"fmt"

	"team-todo-service/internal/entities"
)

// CreateTodo validates and persists a todo. Team todos require the
// caller to be a member of that team.
func (u *Usecase) CreateTodo(ctx context.Context, callerID string, todo entities.Todo) (*entities.Todo, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if todo.Name == "" || todo.Description == "" || todo.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: name, description and due_date are required", entities.ErrInvalidArgument)
	}
	if todo.Status == "" {
		todo.Status = entities.StatusNotStarted
	}
	if !entities.ValidTodoStatus(todo.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, todo.Status)
	}
	if todo.TeamID != "" {
		if err := requireID(todo.TeamID, "team_id"); err != nil {
			return nil, err
		}
		if _, err := u.repo.GetMembership(ctx, todo.TeamID, callerID); err != nil {
			return nil, err
		}
	}

	todo.UserID = callerID
	return u.repo.CreateTodo(ctx, todo)
}

// GetTodo fetches a todo the caller can see.
func (u *Usecase) GetTodo(ctx context.Context, todoID, callerID string) (*entities.Todo, error) {
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
	return todo, nil
}

// ListTodos returns the caller's personal and team todos.
func (u *Usecase) ListTodos(ctx context.Context, callerID string, filter entities.TodoFilter) ([]entities.Todo, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Status != "" && !entities.ValidTodoStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, filter.Status)
	}

	return u.repo.ListTodos(ctx, callerID, filter)
}

// UpdateTodo applies a partial update; caller needs access to the todo.
func (u *Usecase) UpdateTodo(ctx context.Context, todoID, callerID string, upd entities.TodoUpdate) (*entities.Todo, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(todoID, "todo_id"); err != nil {
		return nil, err
	}
	if upd.Status != nil && !entities.ValidTodoStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, *upd.Status)
	}

	todo, err := u.repo.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeTodo(ctx, todo, callerID); err != nil {
		return nil, err
	}

	return u.repo.UpdateTodo(ctx, todoID, upd)
}

// DeleteTodo removes the todo, restricted to its owner.
func (u *Usecase) DeleteTodo(ctx context.Context, todoID, callerID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := requireID(todoID, "todo_id"); err != nil {
		return err
	}

	todo, err := u.repo.GetTodo(ctx, todoID)
	if err != nil {
		return err
	}
	if todo.UserID != callerID {
		return entities.ErrAccessDenied
	}

	return u.repo.DeleteTodo(ctx, todoID)
}

// authorizeTodo grants access to team members for team todos and to
// the owner for personal ones.
func (u *Usecase) authorizeTodo(ctx context.Context, todo *entities.Todo, callerID string) error {
	if todo.TeamID != "" {
		_, err := u.repo.GetMembership(ctx, todo.TeamID, callerID)
		return err
	}
	if todo.UserID != callerID {
		return entities.ErrAccessDenied
	}
	return nil
}
