package session

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/pkg/errors"

	"github.com/stafftools/entra-admin/internal/config"
)

// Credential is the slice of the azidentity interactive credential surface
// the Manager depends on. GetToken attempts silent acquisition; Authenticate
// runs the interactive browser flow.
type Credential interface {
	GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error)
	Authenticate(ctx context.Context, opts *policy.TokenRequestOptions) (azidentity.AuthenticationRecord, error)
}

var _ Credential = (*azidentity.InteractiveBrowserCredential)(nil)

// NewInteractiveCredential builds the browser popup credential from the
// validated Entra registration values. Automatic authentication is disabled
// so that silent token acquisition never opens a browser behind the
// operator's back: interaction happens only through Login or the one
// consent-required fallback in AcquireToken.
func NewInteractiveCredential(c config.EntraConfig) (*azidentity.InteractiveBrowserCredential, error) {
	cred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
		ClientID:                       c.GetClientID(),
		TenantID:                       c.GetTenantID(),
		RedirectURL:                    c.GetRedirectURL(),
		DisableAutomaticAuthentication: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[NewInteractiveCredential] azidentity.NewInteractiveBrowserCredential")
	}
	return cred, nil
}
