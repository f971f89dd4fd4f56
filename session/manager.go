// Package session owns the operator's sign-in state: one interactive account
// at a time, obtained through the vendor credential library and replaced
// wholesale on login/logout.
package session

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/stafftools/entra-admin/internal/apierror"
)

// Account identifies the signed-in operator.
type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	TenantID    string `json:"tenantId"`
	DisplayName string `json:"displayName,omitempty"`
}

// Manager wraps the interactive credential. It is constructed once by the
// composition root and handed to whoever needs session state; construction
// completes before the first caller can observe it, so there is no
// initialization gate to race against.
type Manager struct {
	cred   Credential
	scopes []string

	lock    sync.RWMutex
	account *Account
}

// ManagerOption modifies a Manager during construction.
type ManagerOption func(*Manager)

// WithScopes overrides the default delegated scope set (primarily for tests).
func WithScopes(scopes []string) ManagerOption {
	return func(m *Manager) {
		m.scopes = scopes
	}
}

func NewManager(cred Credential, options ...ManagerOption) (*Manager, error) {
	if cred == nil {
		return nil, errors.New("[NewManager] credential is required")
	}

	m := &Manager{
		cred:   cred,
		scopes: Scopes(),
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// Login runs the interactive sign-in flow for the fixed scope set and caches
// the resulting account. A dismissed or rejected flow surfaces as an
// AuthenticationError; it is never retried automatically.
func (m *Manager) Login(ctx context.Context) (Account, error) {
	record, err := m.cred.Authenticate(ctx, &policy.TokenRequestOptions{Scopes: m.scopes})
	if err != nil {
		return Account{}, &apierror.AuthenticationError{Op: "Login", Err: err}
	}

	account := Account{
		ID:       record.HomeAccountID,
		Username: record.Username,
		TenantID: record.TenantID,
	}

	// The authentication record carries no display name. Read it from the
	// token claims; a failure here only costs the label.
	if tok, err := m.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: m.scopes}); err == nil {
		if claims, err := parseClaims(tok.Token); err == nil {
			account.DisplayName = claims.Name
			if account.ID == "" {
				account.ID = claims.ObjectID
			}
		}
	} else {
		log.Debug().Err(err).Msg("post-login token fetch failed, no display name")
	}

	m.lock.Lock()
	m.account = &account
	m.lock.Unlock()

	log.Info().Str("username", account.Username).Str("tenant", account.TenantID).Msg("operator signed in")
	return account, nil
}

// Logout drops the cached account. Calling it with no account present is a
// no-op, not an error. Token cache eviction is left to the credential
// library's own storage.
func (m *Manager) Logout() {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.account == nil {
		return
	}
	log.Info().Str("username", m.account.Username).Msg("operator signed out")
	m.account = nil
}

// Account returns the signed-in operator, if any.
func (m *Manager) Account() (Account, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.account == nil {
		return Account{}, false
	}
	return *m.account, true
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Account()
	return ok
}

// AcquireToken returns a bearer token for the fixed scope set. One silent
// attempt; iff the credential reports that interaction is required, one
// interactive consent prompt with the same scopes and a final silent
// attempt. Every other failure propagates as an AuthenticationError.
func (m *Manager) AcquireToken(ctx context.Context) (string, error) {
	tok, err := m.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: m.scopes})
	if err == nil {
		return tok.Token, nil
	}

	var required *azidentity.AuthenticationRequiredError
	if !stderrors.As(err, &required) {
		return "", &apierror.AuthenticationError{Op: "AcquireToken", Err: err}
	}

	log.Info().Msg("silent token acquisition needs consent, prompting interactively")
	if _, err := m.cred.Authenticate(ctx, &policy.TokenRequestOptions{Scopes: m.scopes}); err != nil {
		return "", &apierror.AuthenticationError{Op: "AcquireToken", Err: err}
	}

	tok, err = m.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: m.scopes})
	if err != nil {
		return "", &apierror.AuthenticationError{Op: "AcquireToken", Err: err}
	}
	return tok.Token, nil
}
