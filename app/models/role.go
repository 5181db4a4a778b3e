package models

import "strings"

// Role is the access class carried in every session token.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleLecturer Role = "LECTURER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole accepts any casing and rejects unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return r, true
	}
	return "", false
}
