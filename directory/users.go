package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const profileSelect = "id,displayName,mail,userPrincipalName,jobTitle,department,mobilePhone,officeLocation"

const searchResultLimit = 10

// CurrentProfile returns the signed-in operator's own profile.
func (c *Client) CurrentProfile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	err := c.call(ctx, callSpec{
		op:     "CurrentProfile",
		method: http.MethodGet,
		path:   "/me?$select=" + profileSelect,
		out:    &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Profile returns the profile of the user with the given identifier.
func (c *Client) Profile(ctx context.Context, id string) (*UserProfile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("[Profile] user identifier is required")
	}

	var profile UserProfile
	err := c.call(ctx, callSpec{
		op:     "Profile",
		method: http.MethodGet,
		path:   "/users/" + url.PathEscape(id) + "?$select=" + profileSelect,
		out:    &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches the updatable fields of a user's profile. Fields left
// nil in the update are untouched.
func (c *Client) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("[UpdateProfile] user identifier is required")
	}
	if update.isEmpty() {
		return errors.New("[UpdateProfile] update contains no fields")
	}

	return c.call(ctx, callSpec{
		op:     "UpdateProfile",
		method: http.MethodPatch,
		path:   "/users/" + url.PathEscape(id),
		body:   update,
	})
}

// SearchUsers returns up to ten users whose display name or principal name
// starts with term. Prefix-match semantics are the backing API's.
func (c *Client) SearchUsers(ctx context.Context, term string) ([]UserProfile, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errors.New("[SearchUsers] search term is required")
	}

	// Single quotes are doubled per odata literal escaping.
	escaped := strings.ReplaceAll(term, "'", "''")
	query := url.Values{
		"$filter": {fmt.Sprintf("startswith(displayName,'%s') or startswith(userPrincipalName,'%s')", escaped, escaped)},
		"$select": {profileSelect},
		"$top":    {fmt.Sprintf("%d", searchResultLimit)},
	}

	var list listResponse[UserProfile]
	err := c.call(ctx, callSpec{
		op:     "SearchUsers",
		method: http.MethodGet,
		path:   "/users?" + query.Encode(),
		out:    &list,
	})
	if err != nil {
		return nil, err
	}
	return list.Value, nil
}
