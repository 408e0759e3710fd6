package auth

import (
	"slices"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessRoles
)

// Policy is the per-route access rule the gate consults.
type Policy struct {
	Access Access
	Roles  []models.Role
}

func Public() Policy { return Policy{Access: AccessPublic} }

func Authenticated() Policy { return Policy{Access: AccessAuthenticated} }

func Roles(roles ...models.Role) Policy {
	return Policy{Access: AccessRoles, Roles: roles}
}

func (p Policy) Allows(role models.Role) bool {
	if p.Access != AccessRoles {
		return true
	}
	return slices.Contains(p.Roles, role)
}

func (p Policy) String() string {
	switch p.Access {
	case AccessPublic:
		return "public"
	case AccessAuthenticated:
		return "authenticated"
	}
	out := "roles:"
	for i, r := range p.Roles {
		if i > 0 {
			out += ","
		}
		out += string(r)
	}
	return out
}
