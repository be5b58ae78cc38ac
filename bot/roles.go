package bot

import (
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/utils"
)

// RoleOf resolves an identity to its role: the static allow-list wins, then
// the persisted row. No caching — a role change is visible on the very next
// event.
func (r *Router) RoleOf(id int64) models.Role {
	if r.cfg.AdminIDs[id] {
		return models.RoleAdmin
	}
	user, err := r.store.GetUser(id)
	if err != nil {
		utils.ErrorLogger.Errorf("role lookup for %d: %v", id, err)
		return models.RoleGuest
	}
	if user == nil {
		return models.RoleGuest
	}
	return user.Role
}

func (r *Router) isStaff(id int64) bool {
	return r.RoleOf(id) >= models.RoleStaff
}

func (r *Router) isAdmin(id int64) bool {
	return r.RoleOf(id) == models.RoleAdmin
}

// AdminTargets lists everyone who should receive admin notifications: the
// configured allow-list plus persisted admins, deduplicated.
func (r *Router) AdminTargets() []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for id := range r.cfg.AdminIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	admins, err := r.store.ListUsersByRole(models.RoleAdmin)
	if err != nil {
		utils.ErrorLogger.Errorf("list admins: %v", err)
		return out
	}
	for _, a := range admins {
		if !seen[a.ID] {
			seen[a.ID] = true
			out = append(out, a.ID)
		}
	}
	return out
}
