package domain

import (
	"errors"
	"time"
)

// Role determines what a user can see and do.
//
// Admin: full access to club operations.
// Athlete: limited access to personal data and club information.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAthlete Role = "ATHLETE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAthlete
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDisabled = errors.New("account disabled")
var ErrUserNotFound = errors.New("user not found")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenRevoked = errors.New("token revoked")

// User models a club member, admin or athlete. Immutable in Phase 1; there is
// no update path.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns the display name used by the client shell.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Credential pairs a user with its bcrypt secret hash. The hash belongs to the
// credential store layer and is never serialized or returned past it.
type Credential struct {
	User
	SecretHash string `json:"-"`
}

// AthleteProfile is the extended athlete record (Phase 2, declaration only).
type AthleteProfile struct {
	UserID           string     `json:"userId"`
	PhoneNumber      string     `json:"phoneNumber,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	EmergencyContact string     `json:"emergencyContact,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}
