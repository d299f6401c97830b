package server

const (
	RouteHealth            = "/health"
	RouteAuthRegister      = "/auth/register"
	RouteAuthLogin         = "/auth/login"
	RouteAuthMe            = "/auth/me"
	RouteAuthNotifications = "/auth/notifications"
	RouteAPIUsers          = "/api/users"
	RouteAPIUser           = "/api/users/{userId}"
	RouteAPICodes          = "/api/codes"
	RouteAPICode           = "/api/codes/{codeId}"
	RouteAPICodeLike       = "/api/codes/{codeId}/like"
	RouteAPICodeView       = "/api/codes/{codeId}/view"
	RouteAPIExecute        = "/api/execute"
)

const contentTypeJSON = "application/json; charset=utf-8"
