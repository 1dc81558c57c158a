// Package entities contains core business entities.
package entities

import "time"

// WorkSession is a timed interval during which a user worked on a todo.
// EndedAt nil means the session is still running; at most one open
// session exists per (todo, user) pair.
type WorkSession struct {
	ID              string
	TodoID          string
	UserID          string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes *int64
	// UserEmail is resolved per session for listings; "Unknown" when
	// the directory lookup fails.
	UserEmail string
}

// ActiveSession is an open session joined with its parent todo.
type ActiveSession struct {
	Session WorkSession
	Todo    Todo
}

// UserContribution is one user's share of the tracked time on a todo.
type UserContribution struct {
	UserID     string
	Email      string
	Minutes    int64
	Proportion float64
}

// SessionSummary aggregates ended sessions of a todo. Open sessions
// contribute nothing until stopped.
type SessionSummary struct {
	TodoID        string
	TotalMinutes  int64
	Contributions []UserContribution
}
