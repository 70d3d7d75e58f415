package shared

// PermWildcard satisfies every permission check at the guard.
const PermWildcard = "*"

// Catalog and admin permissions.
const (
	PermViewUsers        = "view_users"
	PermViewPermissions  = "view_permissions"
	PermGrantPermissions = "grant_permissions"

	PermViewProducts = "view_products"
	PermViewStock    = "view_stock"
	PermEditStock    = "edit_stock"

	PermMakeOrders    = "make_orders"
	PermApproveOrders = "approve_orders"
	PermViewReports   = "view_reports"
)

// AllScopes lists every known permission name, wildcard excluded.
func AllScopes() []string {
	return []string{
		PermViewUsers,
		PermViewPermissions,
		PermGrantPermissions,
		PermViewProducts,
		PermViewStock,
		PermEditStock,
		PermMakeOrders,
		PermApproveOrders,
		PermViewReports,
	}
}
