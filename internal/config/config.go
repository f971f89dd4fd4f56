package config

type Config interface {
	EnvConfig
	EntraConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type EntraConfig interface {
	GetClientID() string
	GetTenantID() string
	GetRedirectURL() string
	GetGraphBaseURL() string
	GetPassWebhookURL() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Entra
	Cors
}

func New() Config {
	return mainConfig{}
}
