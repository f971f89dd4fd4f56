package session

const graphResource = "https://graph.microsoft.com"

// Scopes returns the fixed delegated permission set the operator consents to
// at sign-in. Token acquisition uses the same set verbatim: no operation ever
// requests a scope that was not consented at login.
func Scopes() []string {
	return []string{
		graphResource + "/User.Read",
		graphResource + "/User.ReadWrite.All",
		graphResource + "/UserAuthenticationMethod.ReadWrite.All",
		graphResource + "/Application.ReadWrite.All",
		graphResource + "/AppRoleAssignment.ReadWrite.All",
	}
}
