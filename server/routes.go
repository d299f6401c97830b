package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAuthMe, ChainMiddleware(s.UpdateMeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAuthNotifications, ChainMiddleware(s.NotificationsHandler(), s.ProtectedAPIMiddleware()...))

	// USERS
	s.RegisterRouteHandler("GET "+RouteAPIUsers, ChainMiddleware(s.ListUsersHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPIUser, ChainMiddleware(s.UpdateUserHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPIUser, ChainMiddleware(s.DeleteUserHandler(), s.ProtectedAPIMiddleware()...))

	// CODES
	s.RegisterRouteHandler("POST "+RouteAPICodes, ChainMiddleware(s.CreateCodeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPICode, ChainMiddleware(s.UpdateCodeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPICode, ChainMiddleware(s.DeleteCodeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPICode, ChainMiddleware(s.GetCodeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPICodeLike, ChainMiddleware(s.LikeCodeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPICodeView, ChainMiddleware(s.ViewCodeHandler(), s.ProtectedAPIMiddleware()...))

	// PLAYGROUND
	s.RegisterRouteHandler("POST "+RouteAPIExecute, ChainMiddleware(s.ExecuteHandler(), s.ProtectedAPIMiddleware()...))
}
