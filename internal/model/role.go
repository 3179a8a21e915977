package model

type UserRole int8

const (
	UserRoleDefault = UserRole(iota)
	UserRoleAdmin
)

func ParseUserRole(s string) UserRole {
	switch s {
	case "admin":
		return UserRoleAdmin
	default:
		return UserRoleDefault
	}
}

func ParseUserRoles(ss []string) []UserRole {
	roles := []UserRole{UserRoleDefault}
	for _, s := range ss {
		if role := ParseUserRole(s); role != UserRoleDefault {
			roles = append(roles, role)
		}
	}
	return roles
}

func (r UserRole) String() string {
	switch r {
	case UserRoleAdmin:
		return "admin"
	default:
		return "default"
	}
}
