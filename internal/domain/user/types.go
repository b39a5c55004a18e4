package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is issued by the identity provider; this service only consumes it.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperuser:
		return true
	default:
		return false
	}
}

// CanManageClasses reports whether the role may create, update or delete classes.
func (r Role) CanManageClasses() bool {
	return r == RoleAdmin || r == RoleSuperuser
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
