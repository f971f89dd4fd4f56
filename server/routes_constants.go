package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Session routes
	RouteAuthLogin   = "/auth/login"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthSession = "/auth/session"

	// User directory routes
	RouteAPIMe              = "/api/me"
	RouteAPIUsers           = "/api/users"
	RouteAPIUser            = "/api/users/{id}"
	RouteAPIUserPasses      = "/api/users/{id}/access-passes"
	RouteAPIUserPassMethods = "/api/users/{id}/access-pass-methods"

	// Service principal routes
	RouteAPIPrincipals        = "/api/service-principals"
	RouteAPIManagedIdentities = "/api/service-principals/managed-identities"
	RouteAPIPrincipal         = "/api/service-principals/{id}"
	RouteAPIPrincipalRoles    = "/api/service-principals/{id}/app-role-assignments"
)
