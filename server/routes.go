package server

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	authed := append(s.APIMiddleware(), s.RequireSession())

	// Session
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthSession, ChainMiddleware(s.SessionHandler(), api...))

	// User directory
	s.RegisterRouteHandler("GET "+RouteAPIMe, ChainMiddleware(s.MeHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteAPIUsers, ChainMiddleware(s.UserSearchHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteAPIUser, ChainMiddleware(s.UserGetHandler(), authed...))
	s.RegisterRouteHandler("PATCH "+RouteAPIUser, ChainMiddleware(s.UserUpdateHandler(), authed...))
	s.RegisterRouteHandler("POST "+RouteAPIUserPasses, ChainMiddleware(s.CreatePassHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteAPIUserPassMethods, ChainMiddleware(s.PassMethodsHandler(), authed...))

	// Service principals
	s.RegisterRouteHandler("GET "+RouteAPIPrincipals, ChainMiddleware(s.PrincipalsHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteAPIManagedIdentities, ChainMiddleware(s.ManagedIdentitiesHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteAPIPrincipal, ChainMiddleware(s.PrincipalGetHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteAPIPrincipalRoles, ChainMiddleware(s.AssignmentsHandler(), authed...))
	s.RegisterRouteHandler("POST "+RouteAPIPrincipalRoles, ChainMiddleware(s.GrantRoleHandler(), authed...))
}
