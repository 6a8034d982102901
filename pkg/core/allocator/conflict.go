package allocator

import "github.com/jakechorley/duty-roster/pkg/core/model"

// stackable reports whether a role may be held alongside another stackable role.
// Only OPENING and ASSIST stack; every other role is held alone.
func stackable(role model.Role) bool {
	return role == model.RoleOpening || role == model.RoleAssist
}

// Reconcile returns the role set that results from selecting toggled on top of current.
//
//   - Selecting a role that does not stack clears everything else
//   - Selecting OPENING or ASSIST keeps the other of the pair and drops any non-stacking role
//
// current is never modified.
func Reconcile(current model.RoleSet, toggled model.Role) model.RoleSet {
	if !stackable(toggled) {
		return model.NewRoleSet(toggled)
	}

	kept := make([]model.Role, 0, len(current)+1)
	for _, role := range current {
		if stackable(role) {
			kept = append(kept, role)
		}
	}
	kept = append(kept, toggled)
	return model.NewRoleSet(kept...)
}

// ToggleRole is the manual edit: a held role is removed, otherwise it is selected through Reconcile
func ToggleRole(current model.RoleSet, role model.Role) model.RoleSet {
	if current.Contains(role) {
		return current.Without(role)
	}
	return Reconcile(current, role)
}

// IsConsistent returns true if the set could have been produced by Reconcile:
// at most one role, or only OPENING and ASSIST together.
func IsConsistent(roles model.RoleSet) bool {
	if len(roles) <= 1 {
		return true
	}
	for _, role := range roles {
		if !stackable(role) {
			return false
		}
	}
	return true
}
