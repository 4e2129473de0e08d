package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/auth"
)

type Permission string

const (
	PermDashboardView    Permission = "dashboard:view"
	PermFarmersList      Permission = "farmers:list"
	PermLandlordsList    Permission = "landlords:list"
	PermFarmerRegister   Permission = "farmer:register"
	PermFarmerUpdate     Permission = "farmer:update"
	PermLandlordRegister Permission = "landlord:register"
	PermLandlordUpdate   Permission = "landlord:update"
	PermAdminManage      Permission = "admin:manage"
	PermSpaceView        Permission = "space:view"
	PermSpaceUpdate      Permission = "space:update"
	PermCropWrite        Permission = "crop:write"
	PermCropView         Permission = "crop:view"
	PermProofUpload      Permission = "proof:upload"
	PermMediaUpload      Permission = "media:upload"
	PermNotifications    Permission = "notifications"
)

var (
	everyone     = []auth.Role{auth.RoleAdmin, auth.RoleFarmer, auth.RoleLandlord}
	adminOnly    = []auth.Role{auth.RoleAdmin}
	withFarmer   = []auth.Role{auth.RoleAdmin, auth.RoleFarmer}
	withLandlord = []auth.Role{auth.RoleAdmin, auth.RoleLandlord}
)

// permissionRoles is the role gate per permission. Ownership checks
// (self, space participant) happen in the services once rows are loaded.
var permissionRoles = map[Permission][]auth.Role{
	PermDashboardView:    everyone,
	PermFarmersList:      withFarmer,
	PermLandlordsList:    withLandlord,
	PermFarmerRegister:   withFarmer,
	PermFarmerUpdate:     withFarmer,
	PermLandlordRegister: withLandlord,
	PermLandlordUpdate:   withLandlord,
	PermAdminManage:      adminOnly,
	PermSpaceView:        everyone,
	PermSpaceUpdate:      adminOnly,
	PermCropWrite:        withFarmer,
	PermCropView:         everyone,
	PermProofUpload:      everyone,
	PermMediaUpload:      everyone,
	PermNotifications:    everyone,
}

// RolesFor returns the roles granted a permission. Unknown permissions
// grant nothing.
func RolesFor(p Permission) []auth.Role {
	return permissionRoles[p]
}

// Allowed reports whether role holds permission p.
func Allowed(role auth.Role, p Permission) bool {
	for _, r := range permissionRoles[p] {
		if r == role {
			return true
		}
	}
	return false
}

// RequirePermission gates a route on the permission table.
func RequirePermission(p Permission) gin.HandlerFunc {
	return RBACMiddleware(RolesFor(p)...)
}
