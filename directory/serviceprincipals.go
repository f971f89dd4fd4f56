package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/stafftools/entra-admin/internal/apierror"
)

// GraphAppID is the directory API's own application identifier. It is a
// constant published by the API vendor, identical in every tenant, and
// therefore not configuration.
const GraphAppID = "00000003-0000-0000-c000-000000000000"

const (
	principalSummarySelect = "id,appId,displayName,servicePrincipalType,tags"
	principalDetailSelect  = principalSummarySelect + ",appRoles"
	principalPageSize      = 999

	managedIdentityType = "ManagedIdentity"
	// Pre-managed-identity service principals carry this tag instead of the
	// dedicated type.
	legacyManagedIdentityTag = "WindowsAzureActiveDirectoryIntegratedApp"

	enrichmentConcurrency = 4
)

var (
	principalReadGrants  = []string{"Application.Read.All"}
	roleAssignmentGrants = []string{"AppRoleAssignment.ReadWrite.All", "Application.Read.All"}
)

// ServicePrincipal returns one principal with its role catalog.
func (c *Client) ServicePrincipal(ctx context.Context, objectID string) (*ServicePrincipal, error) {
	if strings.TrimSpace(objectID) == "" {
		return nil, errors.New("[ServicePrincipal] object identifier is required")
	}

	var principal ServicePrincipal
	err := c.call(ctx, callSpec{
		op:       "ServicePrincipal",
		method:   http.MethodGet,
		path:     "/servicePrincipals/" + url.PathEscape(objectID) + "?$select=" + principalDetailSelect,
		out:      &principal,
		grants:   principalReadGrants,
		notFound: "service principal " + objectID,
	})
	if err != nil {
		return nil, err
	}
	return &principal, nil
}

// ListServicePrincipals returns up to one page of principal summaries.
func (c *Client) ListServicePrincipals(ctx context.Context) ([]ServicePrincipal, error) {
	query := url.Values{
		"$select": {principalSummarySelect},
		"$top":    {fmt.Sprintf("%d", principalPageSize)},
	}

	var list listResponse[ServicePrincipal]
	err := c.call(ctx, callSpec{
		op:     "ListServicePrincipals",
		method: http.MethodGet,
		path:   "/servicePrincipals?" + query.Encode(),
		out:    &list,
		grants: principalReadGrants,
	})
	if err != nil {
		return nil, err
	}
	return list.Value, nil
}

// ListManagedIdentities returns the principals the platform manages on
// behalf of hosted resources: typed as managed identities, plus the ones
// only recognizable by the legacy integrated-app tag.
func (c *Client) ListManagedIdentities(ctx context.Context) ([]ServicePrincipal, error) {
	principals, err := c.ListServicePrincipals(ctx)
	if err != nil {
		return nil, err
	}

	identities := make([]ServicePrincipal, 0)
	for _, sp := range principals {
		if sp.ServicePrincipalType == managedIdentityType || hasTag(sp.Tags, legacyManagedIdentityTag) {
			identities = append(identities, sp)
		}
	}
	return identities, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GrantAppRole grants the named directory API permission to a service
// principal. The role name is resolved case-sensitively against the
// directory API's own role catalog. Granting a role the principal already
// holds yields an AlreadyGrantedError, which callers should treat as
// idempotent success.
func (c *Client) GrantAppRole(ctx context.Context, principalObjectID, roleName string) (*AppRoleAssignment, error) {
	if strings.TrimSpace(principalObjectID) == "" {
		return nil, errors.New("[GrantAppRole] principal object identifier is required")
	}
	if strings.TrimSpace(roleName) == "" {
		return nil, errors.New("[GrantAppRole] role name is required")
	}

	resource, err := c.directoryAPIPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	var role *AppRole
	for i := range resource.AppRoles {
		if resource.AppRoles[i].Value == roleName {
			role = &resource.AppRoles[i]
			break
		}
	}
	if role == nil {
		return nil, &apierror.NotFoundError{
			Op:       "GrantAppRole",
			Resource: fmt.Sprintf("app role %q on %s", roleName, resource.DisplayName),
		}
	}

	body := map[string]string{
		"principalId": principalObjectID,
		"resourceId":  resource.ID,
		"appRoleId":   role.ID,
	}

	var assignment AppRoleAssignment
	err = c.call(ctx, callSpec{
		op:     "GrantAppRole",
		method: http.MethodPost,
		path:   "/servicePrincipals/" + url.PathEscape(principalObjectID) + "/appRoleAssignments",
		body:   body,
		out:    &assignment,
		grants: roleAssignmentGrants,
		alreadyGranted: &apierror.AlreadyGrantedError{
			PrincipalID: principalObjectID,
			RoleName:    roleName,
		},
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// directoryAPIPrincipal resolves the directory API's service principal in
// this tenant via its well-known appId.
func (c *Client) directoryAPIPrincipal(ctx context.Context) (*ServicePrincipal, error) {
	query := url.Values{
		"$filter": {fmt.Sprintf("appId eq '%s'", GraphAppID)},
		"$select": {principalDetailSelect},
	}

	var list listResponse[ServicePrincipal]
	err := c.call(ctx, callSpec{
		op:     "GrantAppRole",
		method: http.MethodGet,
		path:   "/servicePrincipals?" + query.Encode(),
		out:    &list,
		grants: roleAssignmentGrants,
	})
	if err != nil {
		return nil, err
	}
	if len(list.Value) == 0 {
		return nil, &apierror.NotFoundError{Op: "GrantAppRole", Resource: "directory API service principal"}
	}
	return &list.Value[0], nil
}

// AppRoleAssignments lists a principal's assignments, each enriched with the
// resource's display name and the specific role's value, display name and
// description. Enrichment lookups run concurrently and complete in no
// particular order; a failed lookup degrades only the assignments that
// needed it.
func (c *Client) AppRoleAssignments(ctx context.Context, objectID string) ([]AppRoleAssignment, error) {
	if strings.TrimSpace(objectID) == "" {
		return nil, errors.New("[AppRoleAssignments] object identifier is required")
	}

	var list listResponse[AppRoleAssignment]
	err := c.call(ctx, callSpec{
		op:     "AppRoleAssignments",
		method: http.MethodGet,
		path:   "/servicePrincipals/" + url.PathEscape(objectID) + "/appRoleAssignments",
		out:    &list,
		grants: principalReadGrants,
	})
	if err != nil {
		return nil, err
	}

	assignments := list.Value
	resources := c.fetchResourcePrincipals(ctx, assignments)

	for i := range assignments {
		a := &assignments[i]
		resource, ok := resources[a.ResourceID]
		if !ok {
			continue
		}
		if a.ResourceDisplayName == "" {
			a.ResourceDisplayName = resource.DisplayName
		}
		for _, role := range resource.AppRoles {
			if role.ID == a.AppRoleID {
				a.RoleValue = role.Value
				a.RoleDisplayName = role.DisplayName
				a.RoleDescription = role.Description
				break
			}
		}
	}
	return assignments, nil
}

// fetchResourcePrincipals looks up each distinct resource once. Failures are
// logged and dropped; the affected assignments stay un-enriched.
func (c *Client) fetchResourcePrincipals(ctx context.Context, assignments []AppRoleAssignment) map[string]*ServicePrincipal {
	ids := make(map[string]struct{})
	for _, a := range assignments {
		if a.ResourceID != "" {
			ids[a.ResourceID] = struct{}{}
		}
	}

	var lock sync.Mutex
	fetched := make(map[string]*ServicePrincipal, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentConcurrency)
	for id := range ids {
		g.Go(func() error {
			principal, err := c.ServicePrincipal(gctx, id)
			if err != nil {
				log.Debug().Err(err).Str("resourceId", id).Msg("assignment enrichment lookup failed")
				return nil
			}
			lock.Lock()
			fetched[id] = principal
			lock.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return fetched
}
