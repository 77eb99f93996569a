package domain

import "errors"

// Role is the closed set of authorization levels an account can hold.
// Exactly one role is attached to an account at a time; membership changes
// only through an explicit account update performed by an ADMIN.
type Role string

const (
	// RoleAdmin manages accounts, clients, and every other resource.
	RoleAdmin Role = "ADMIN"
	// RoleContador handles clients, fiscal obligations, and documents.
	RoleContador Role = "CONTADOR"
	// RoleAssistente has read access plus document uploads.
	RoleAssistente Role = "ASSISTENTE"
)

// AllRoles lists every valid role, for validation and seeding.
var AllRoles = []Role{RoleAdmin, RoleContador, RoleAssistente}

// ErrInvalidRole rejects a role outside the closed set.
var ErrInvalidRole = errors.New("invalid role")

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleContador, RoleAssistente:
		return true
	}
	return false
}

// In reports whether r is a member of the allowed set. This is the role
// gate: pure, deterministic, no I/O. Every protected operation consults it
// through the RBAC middleware instead of comparing strings at call sites.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
