package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid role")
)

// Role determines which part of the platform a user acts in.
type Role string

const (
	RoleOrganizer       Role = "organizer"
	RoleVenueProvider   Role = "venue_provider"
	RoleServiceProvider Role = "service_provider"
)

// ValidRoles lists the accepted role values.
var ValidRoles = []Role{RoleOrganizer, RoleVenueProvider, RoleServiceProvider}

// User represents an account in the system.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	DisplayName   *string
	Role          Role
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	IsActive      bool
	IsSystemAdmin bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        string
	IsActive    *bool // pointer to distinguish between false and not set

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
