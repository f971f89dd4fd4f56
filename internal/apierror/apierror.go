// Package apierror defines the closed set of error variants the directory
// layer produces. Errors are constructed once at the HTTP boundary from the
// response status and odata error body; callers discriminate with errors.As
// and never inspect message text.
package apierror

import (
	"fmt"
	"strings"
)

// AuthenticationError indicates the interactive sign-in flow failed or was
// dismissed by the operator. Callers must surface it and must not retry
// automatically.
type AuthenticationError struct {
	Op  string
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] authentication failed", e.Op)
	}
	return fmt.Sprintf("[%s] authentication failed: %v", e.Op, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// SessionExpiredError maps a 401 from the directory API. The operator has to
// sign in again.
type SessionExpiredError struct {
	Op string
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("[%s] session expired, sign in again", e.Op)
}

// PermissionDeniedError maps a 403 and names the delegated grant(s) the
// signed-in operator is missing.
type PermissionDeniedError struct {
	Op            string
	MissingGrants []string
}

func (e *PermissionDeniedError) Error() string {
	if len(e.MissingGrants) == 0 {
		return fmt.Sprintf("[%s] permission denied", e.Op)
	}
	return fmt.Sprintf("[%s] permission denied, requires %s", e.Op, strings.Join(e.MissingGrants, " and "))
}

// NotFoundError maps a 404 for a specific resource.
type NotFoundError struct {
	Op       string
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("[%s] %s not found", e.Op, e.Resource)
}

// AlreadyGrantedError maps the directory API's 400 "already exists" response
// to a role-assignment create. Well-behaved callers treat it as idempotent
// success, not as a failure.
type AlreadyGrantedError struct {
	PrincipalID string
	RoleName    string
}

func (e *AlreadyGrantedError) Error() string {
	return fmt.Sprintf("role %q is already granted to principal %s", e.RoleName, e.PrincipalID)
}

// WrappedError is the catch-all for any directory API failure that does not
// map to a more specific variant. Code and Message carry the odata error
// fields when the body had them.
type WrappedError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *WrappedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] directory API error %d (%s): %s", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] directory API error %d: %s", e.Op, e.StatusCode, e.Message)
}
