// Package auth contains authentication and authorization logic: the
// credential store (registration and password verification), the signed
// session cookie, the identity middleware, and the two access-policy guards.
// This file defines the User entity and the administrator rule.
package auth

import "time"

// User represents a registered account. HashedPassword holds the salted
// bcrypt digest; the plaintext password exists only transiently inside
// Register and Authenticate and is never stored or logged.
type User struct {
	ID             int
	Name           string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

// administratorID is the identifier of the sole administrator: the
// first-ever-issued account. There is no role column; the rule is identifier
// equality, kept behind IsAdministrator so a future role attribute changes
// exactly one predicate.
const administratorID = 1

// IsAdministrator reports whether the given user is the designated
// administrator. A nil user (anonymous caller) is never the administrator.
func IsAdministrator(u *User) bool {
	return u != nil && u.ID == administratorID
}
