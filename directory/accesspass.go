package directory

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const defaultPassLifetimeMinutes = 60

// Issuing passes needs this delegated grant; the 403 error names it so the
// operator knows what to ask their admin for.
const passMethodGrant = "UserAuthenticationMethod.ReadWrite.All"

// PassOptions tune a temporary access pass. The zero value issues a
// single-use pass with the 60-minute default lifetime.
type PassOptions struct {
	LifetimeMinutes int
	Reusable        bool
}

func passMethodsPath(userID string) string {
	return "/users/" + url.PathEscape(userID) + "/authentication/temporaryAccessPassMethods"
}

// CreateAccessPass issues a fresh temporary access pass for the user. The
// returned secret is shown once and never re-readable; callers must not
// persist it.
func (c *Client) CreateAccessPass(ctx context.Context, userID string, opts PassOptions) (*TemporaryAccessPass, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("[CreateAccessPass] user identifier is required")
	}
	if opts.LifetimeMinutes < 0 {
		return nil, errors.New("[CreateAccessPass] lifetime must be a positive number of minutes")
	}

	lifetime := opts.LifetimeMinutes
	if lifetime == 0 {
		lifetime = defaultPassLifetimeMinutes
	}

	body := map[string]any{
		"lifetimeInMinutes": lifetime,
		"isUsableOnce":      !opts.Reusable,
	}

	var pass TemporaryAccessPass
	err := c.call(ctx, callSpec{
		op:     "CreateAccessPass",
		method: http.MethodPost,
		path:   passMethodsPath(userID),
		body:   body,
		out:    &pass,
		grants: []string{passMethodGrant},
	})
	if err != nil {
		return nil, err
	}
	return &pass, nil
}

// ListAccessPassMethods returns the metadata of the user's configured pass
// methods. Secrets are never part of the listing.
func (c *Client) ListAccessPassMethods(ctx context.Context, userID string) ([]AccessPassMethod, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("[ListAccessPassMethods] user identifier is required")
	}

	var list listResponse[AccessPassMethod]
	err := c.call(ctx, callSpec{
		op:     "ListAccessPassMethods",
		method: http.MethodGet,
		path:   passMethodsPath(userID),
		out:    &list,
		grants: []string{passMethodGrant},
	})
	if err != nil {
		return nil, err
	}
	return list.Value, nil
}
