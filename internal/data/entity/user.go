package entity

import "strings"

// UserRole is a closed enumeration. Roles are normalized to upper case at
// the boundary (token issue and parse) so comparisons here are exact.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
	RoleOwner UserRole = "OWNER"
)

// NormalizeRole maps an arbitrary-cased role string onto the enumeration
func NormalizeRole(role string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(role)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	case RoleOwner:
		return RoleOwner, true
	default:
		return "", false
	}
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Address      *string  `db:"address"`
	Role         UserRole `db:"role"`
	// OwnerID is the admin-assigned business identifier, distinct from the
	// internal user id. Only valid when Role is OWNER, unique across users.
	OwnerID *string `db:"owner_id"`
}
