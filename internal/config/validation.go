package config

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Validate checks the required Entra registration values before anything
// else starts. The process must not come up with a half-configured identity
// client, so callers are expected to abort on a non-nil return.
func Validate(c Config) error {
	if err := validateGUID(clientIDEnvVar, c.GetClientID()); err != nil {
		return err
	}
	if err := validateGUID(tenantIDEnvVar, c.GetTenantID()); err != nil {
		return err
	}
	if err := validateURL(redirectURLEnvVar, c.GetRedirectURL()); err != nil {
		return err
	}
	// Optional values only need checking when set.
	if webhook := c.GetPassWebhookURL(); webhook != "" {
		if err := validateURL(passWebhookEnvVar, webhook); err != nil {
			return err
		}
	}
	return nil
}

func validateGUID(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%s must be a GUID, got %q: %w", name, value, err)
	}
	return nil
}

func validateURL(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s must be a URL, got %q: %w", name, value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, value)
	}
	return nil
}
