package config

const (
	clientIDEnvVar    = "ENTRA_CLIENT_ID"
	tenantIDEnvVar    = "ENTRA_TENANT_ID"
	redirectURLEnvVar = "ENTRA_REDIRECT_URL"
	graphBaseEnvVar   = "GRAPH_BASE_URL"
	passWebhookEnvVar = "PASS_WEBHOOK_URL"

	// Default base of the Microsoft Graph v1.0 endpoint. Overridable for
	// sovereign clouds and for tests.
	defaultGraphBaseURL = "https://graph.microsoft.com/v1.0"
)

type Entra struct{}

var _ EntraConfig = Entra{}

func (Entra) GetClientID() string {
	return GetEnv(clientIDEnvVar, "")
}

func (Entra) GetTenantID() string {
	return GetEnv(tenantIDEnvVar, "")
}

func (Entra) GetRedirectURL() string {
	return GetEnv(redirectURLEnvVar, "")
}

func (Entra) GetGraphBaseURL() string {
	return GetEnv(graphBaseEnvVar, defaultGraphBaseURL)
}

// GetPassWebhookURL returns the optional automation endpoint for issuing
// temporary access passes. Empty means the webhook path is disabled.
func (Entra) GetPassWebhookURL() string {
	return GetEnv(passWebhookEnvVar, "")
}
