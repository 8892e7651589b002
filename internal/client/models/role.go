package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a role label is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// Role selects which dashboard panels a user sees. It carries no
// access-control weight on this side; the API enforces permissions.
type Role string

const (
	RoleAnalyst Role = "analyst"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists the known roles in display order.
var Roles = []Role{RoleAnalyst, RoleManager, RoleAdmin}

// ParseRole case-folds and trims s and maps it onto a known role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAnalyst, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Label is the capitalized form, which is also what the authentication API
// expects on signup ("Analyst", "Manager", "Admin").
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

func (r Role) String() string { return string(r) }
