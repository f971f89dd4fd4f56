package credfakes

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/stafftools/entra-admin/session"
)

var _ session.Credential = (*FakeCredential)(nil)

// TokenResult is one scripted response for a GetToken call.
type TokenResult struct {
	Token azcore.AccessToken
	Err   error
}

// FakeCredential scripts the credential surface for tests. GetToken consumes
// TokenResults in order (the last result repeats once exhausted);
// Authenticate returns the configured record/error. Both record the options
// they were called with.
type FakeCredential struct {
	lock sync.Mutex

	TokenResults []TokenResult
	AuthRecord   azidentity.AuthenticationRecord
	AuthErr      error

	GetTokenCalls     []policy.TokenRequestOptions
	AuthenticateCalls []policy.TokenRequestOptions

	tokenIndex int
}

func (f *FakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.GetTokenCalls = append(f.GetTokenCalls, opts)
	if len(f.TokenResults) == 0 {
		return azcore.AccessToken{}, nil
	}

	result := f.TokenResults[f.tokenIndex]
	if f.tokenIndex < len(f.TokenResults)-1 {
		f.tokenIndex++
	}
	return result.Token, result.Err
}

func (f *FakeCredential) Authenticate(_ context.Context, opts *policy.TokenRequestOptions) (azidentity.AuthenticationRecord, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if opts != nil {
		f.AuthenticateCalls = append(f.AuthenticateCalls, *opts)
	} else {
		f.AuthenticateCalls = append(f.AuthenticateCalls, policy.TokenRequestOptions{})
	}
	return f.AuthRecord, f.AuthErr
}
