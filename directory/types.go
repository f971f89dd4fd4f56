package directory

import "time"

// UserProfile is a directory user as this application cares about it.
type UserProfile struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName"`
	JobTitle          string `json:"jobTitle,omitempty"`
	Department        string `json:"department,omitempty"`
	MobilePhone       string `json:"mobilePhone,omitempty"`
	OfficeLocation    string `json:"officeLocation,omitempty"`
}

// ProfileUpdate carries the updatable profile fields. Nil means "leave
// unchanged"; only non-nil fields are sent to the directory.
type ProfileUpdate struct {
	DisplayName    *string `json:"displayName,omitempty"`
	JobTitle       *string `json:"jobTitle,omitempty"`
	Department     *string `json:"department,omitempty"`
	MobilePhone    *string `json:"mobilePhone,omitempty"`
	OfficeLocation *string `json:"officeLocation,omitempty"`
}

func (u ProfileUpdate) isEmpty() bool {
	return u.DisplayName == nil && u.JobTitle == nil && u.Department == nil &&
		u.MobilePhone == nil && u.OfficeLocation == nil
}

// TemporaryAccessPass is a freshly issued pass. TemporaryAccessPass holds the
// generated secret; it exists only in this value and is never persisted or
// re-readable, so callers must show it once and drop it.
type TemporaryAccessPass struct {
	ID                  string    `json:"id"`
	TemporaryAccessPass string    `json:"temporaryAccessPass"`
	LifetimeInMinutes   int       `json:"lifetimeInMinutes"`
	IsUsableOnce        bool      `json:"isUsableOnce"`
	StartDateTime       time.Time `json:"startDateTime,omitempty"`
}

// AccessPassMethod is the metadata of a configured pass. There is
// deliberately no secret field: the directory never returns the secret after
// creation and neither does this type.
type AccessPassMethod struct {
	ID                    string    `json:"id"`
	StartDateTime         time.Time `json:"startDateTime,omitempty"`
	LifetimeInMinutes     int       `json:"lifetimeInMinutes"`
	IsUsableOnce          bool      `json:"isUsableOnce"`
	IsUsable              bool      `json:"isUsable"`
	MethodUsabilityReason string    `json:"methodUsabilityReason,omitempty"`
}

// AppRole is a permission an application exposes to its clients.
type AppRole struct {
	ID          string `json:"id"`
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}

// ServicePrincipal is a directory entry for an application or managed
// identity.
type ServicePrincipal struct {
	ID                   string    `json:"id"`
	AppID                string    `json:"appId"`
	DisplayName          string    `json:"displayName"`
	ServicePrincipalType string    `json:"servicePrincipalType,omitempty"`
	Tags                 []string  `json:"tags,omitempty"`
	AppRoles             []AppRole `json:"appRoles,omitempty"`
}

// AppRoleAssignment links a service principal to a role on a resource. The
// Role* fields are enrichment resolved from the resource's role catalog in a
// secondary lookup; when that lookup fails for one assignment the record is
// returned un-enriched rather than failing the batch.
type AppRoleAssignment struct {
	ID                   string `json:"id"`
	AppRoleID            string `json:"appRoleId"`
	PrincipalID          string `json:"principalId"`
	PrincipalDisplayName string `json:"principalDisplayName,omitempty"`
	ResourceID           string `json:"resourceId"`
	ResourceDisplayName  string `json:"resourceDisplayName,omitempty"`
	RoleValue            string `json:"roleValue,omitempty"`
	RoleDisplayName      string `json:"roleDisplayName,omitempty"`
	RoleDescription      string `json:"roleDescription,omitempty"`
}

// listResponse is the odata collection envelope.
type listResponse[T any] struct {
	Value []T `json:"value"`
}
