// Package entities contains core business entities.
package entities

import "time"

// UnknownEmail is the placeholder identity used when a directory lookup
// fails; listings degrade to it instead of failing as a whole.
const UnknownEmail = "Unknown"

// User is a directory entry resolved from the identity provider.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Caller is the resolved identity of an authenticated request.
type Caller struct {
	ID    string
	Email string
}
