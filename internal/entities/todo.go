// Package entities contains core business entities.
package entities

import "time"

// TodoStatus enumerates todo lifecycle states.
type TodoStatus string

const (
	// StatusNotStarted marks a todo without progress.
	StatusNotStarted TodoStatus = "NOT_STARTED"
	// StatusInProgress marks a todo being worked on.
	StatusInProgress TodoStatus = "IN_PROGRESS"
	// StatusCompleted marks a finished todo.
	StatusCompleted TodoStatus = "COMPLETED"
)

// ValidTodoStatus reports whether s is one of the known statuses.
func ValidTodoStatus(s TodoStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Todo is a task owned personally or scoped to a team. TeamID empty
// means personal: visible to the owner only.
type Todo struct {
	ID          string
	UserID      string
	TeamID      string
	Name        string
	Description string
	DueDate     time.Time
	Status      TodoStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoUpdate carries the editable todo fields. Nil means unchanged.
type TodoUpdate struct {
	Name        *string
	Description *string
	DueDate     *time.Time
	Status      *TodoStatus
}

// TodoFilter narrows and orders todo listings.
type TodoFilter struct {
	Status      TodoStatus
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	SortBy      string
	SortDesc    bool
}
