package domain

// Role is the authorization level of a user. There are exactly two.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole accepts only the known roles.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleMember:
		return r, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }
