package handlers

import (
	"testing"

	"backend/utils"
)

func hasLink(links []NavLink, label string) bool {
	for _, l := range links {
		if l.Label == label {
			return true
		}
	}
	return false
}

func TestNavigationForRoleAdmin(t *testing.T) {
	links := NavigationForRole(utils.RoleAdmin)
	for _, label := range []string{"Add Main User", "Add Freight Agent", "Users"} {
		if !hasLink(links, label) {
			t.Fatalf("admin missing %q: %v", label, links)
		}
	}
}

func TestNavigationForRoleHidesAdminLinks(t *testing.T) {
	for _, role := range []string{utils.RoleMainUser, utils.RoleFreightAgent, utils.RoleCoordinator} {
		links := NavigationForRole(role)
		if hasLink(links, "Add Main User") || hasLink(links, "Add Freight Agent") {
			t.Fatalf("role %q sees admin links: %v", role, links)
		}
	}
}

func TestNavigationForRoleFailsClosed(t *testing.T) {
	for _, role := range []string{utils.RoleUnknown, "superuser", "Admin"} {
		if links := NavigationForRole(role); len(links) != 0 {
			t.Fatalf("role %q got links %v, want none", role, links)
		}
	}
}
