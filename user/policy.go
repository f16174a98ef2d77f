package user

// Action names a privileged operation gated by role. Authorization decisions
// go through Allowed so the role rules live in one place.
type Action string

const (
	ActionManageUsers     Action = "manage_users"
	ActionAssignRole      Action = "assign_role"
	ActionGrantSuperAdmin Action = "grant_super_admin"
	ActionManageAPIKeys   Action = "manage_api_keys"
	ActionViewAllCoaches  Action = "view_all_coaches"
)

func Allowed(role Role, action Action) bool {
	switch action {
	case ActionManageUsers, ActionAssignRole, ActionViewAllCoaches:
		return role == RoleAdmin || role == RoleSuperAdmin
	case ActionGrantSuperAdmin, ActionManageAPIKeys:
		return role == RoleSuperAdmin
	}
	return false
}
