// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser     Role = "USER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole matches a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleUser, RoleEmployee, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// User is a credential record. Digest is derived from password+pepper with Salt.
type User struct {
	ID        int64
	UserName  string
	Salt      []byte
	Digest    []byte
	Role      Role
	CreatedAt time.Time
}
