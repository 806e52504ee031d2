package handlers

import (
	"net/http"

	"backend/utils"

	"github.com/gin-gonic/gin"
)

// NavLink is one navigation entry the client may render.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// roleNavigation is the static role to visible-links mapping. An unknown or
// missing role gets nothing: gating fails closed.
var roleNavigation = map[string][]NavLink{
	utils.RoleAdmin: {
		{Label: "Export Orders", Path: "/orders/export"},
		{Label: "Import Orders", Path: "/orders/import"},
		{Label: "Add Freight Agent", Path: "/admin/add-freight-agent"},
		{Label: "Add Main User", Path: "/admin/add-main-user"},
		{Label: "Users", Path: "/admin/users"},
		{Label: "Activity Logs", Path: "/admin/activity-logs"},
	},
	utils.RoleMainUser: {
		{Label: "Export Orders", Path: "/orders/export"},
		{Label: "Import Orders", Path: "/orders/import"},
		{Label: "New Order", Path: "/orders/new"},
	},
	utils.RoleFreightAgent: {
		{Label: "Open Orders", Path: "/agent/orders"},
		{Label: "My Quotes", Path: "/agent/quotes"},
	},
	utils.RoleCoordinator: {
		{Label: "Export Orders", Path: "/orders/export"},
		{Label: "Import Orders", Path: "/orders/import"},
		{Label: "Quote Review", Path: "/orders/review"},
	},
}

// NavigationForRole resolves the visible links for a role name.
func NavigationForRole(roleName string) []NavLink {
	links, ok := roleNavigation[roleName]
	if !ok {
		return []NavLink{}
	}
	return links
}

// GetNavigation returns the navigation entries for the caller's role
// @Summary Navigation links
// @Description Role-gated navigation. The role comes from the session, not from client-decoded claims; a malformed token yields an empty list.
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /api/navigation [get]
func GetNavigation() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName := utils.RoleUnknown
		if user := currentUser(c); user != nil {
			roleName = user.RoleName
		}

		c.JSON(http.StatusOK, gin.H{
			"role":  roleName,
			"links": NavigationForRole(roleName),
		})
	}
}
