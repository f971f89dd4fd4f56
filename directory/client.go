// Package directory is the typed client for the external directory API. It
// translates domain operations into authenticated HTTPS calls and builds the
// closed apierror set at the HTTP boundary; nothing above this package ever
// inspects a status code or an error message.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/stafftools/entra-admin/internal/apierror"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// Error bodies are small; anything past this is noise.
const maxErrorBody = 64 << 10

// TokenProvider resolves a bearer token for one request. It is invoked per
// call, so a token refreshed by the session layer is picked up immediately
// instead of a stale snapshot being replayed until it expires.
type TokenProvider func(ctx context.Context) (string, error)

// Doer is the subset of *http.Client the client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues authenticated requests to the directory API. It is an
// explicitly constructed, dependency-injected service owned by the
// composition root; it holds no session state of its own.
type Client struct {
	baseURL string
	token   TokenProvider
	http    Doer
}

type ClientOption func(*Client)

// WithBaseURL points the client at a different API base (tests, sovereign
// clouds).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDoer replaces the underlying HTTP client.
func WithDoer(doer Doer) ClientOption {
	return func(c *Client) {
		c.http = doer
	}
}

func NewClient(token TokenProvider, options ...ClientOption) (*Client, error) {
	if token == nil {
		return nil, errors.New("[NewClient] token provider is required")
	}

	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{},
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// callSpec describes one API call and how its failures map onto the apierror
// set.
type callSpec struct {
	op     string
	method string
	path   string
	body   any
	out    any

	// grants are named in the PermissionDeniedError built on a 403.
	grants []string
	// notFound, when set, turns a 404 into a NotFoundError for this resource.
	notFound string
	// alreadyGranted, when set, is returned for the 400 "already exists"
	// response to an assignment create.
	alreadyGranted *apierror.AlreadyGrantedError
}

func (c *Client) call(ctx context.Context, spec callSpec) error {
	token, err := c.token(ctx)
	if err != nil {
		return errors.Wrapf(err, "[%s] acquire token", spec.op)
	}

	var reader io.Reader = http.NoBody
	if spec.body != nil {
		encoded, err := json.Marshal(spec.body)
		if err != nil {
			return errors.Wrapf(err, "[%s] encode request body", spec.op)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, c.baseURL+spec.path, reader)
	if err != nil {
		return errors.Wrapf(err, "[%s] build request", spec.op)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[%s] %s %s", spec.op, spec.method, spec.path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapError(spec, resp)
	}

	if spec.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(spec.out); err != nil {
		return errors.Wrapf(err, "[%s] decode response", spec.op)
	}
	return nil
}

// odataError is the directory API's error envelope.
type odataError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// mapError is the single place a response status and error body become a
// typed error. The "already exists" message check lives here and nowhere
// else.
func mapError(spec callSpec, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var odata odataError
	_ = json.Unmarshal(raw, &odata)
	code := odata.Error.Code
	message := odata.Error.Message

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &apierror.SessionExpiredError{Op: spec.op}
	case http.StatusForbidden:
		return &apierror.PermissionDeniedError{Op: spec.op, MissingGrants: spec.grants}
	case http.StatusNotFound:
		if spec.notFound != "" {
			return &apierror.NotFoundError{Op: spec.op, Resource: spec.notFound}
		}
	case http.StatusBadRequest:
		if spec.alreadyGranted != nil && strings.Contains(message, "already exists") {
			return spec.alreadyGranted
		}
	}

	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	return &apierror.WrappedError{
		Op:         spec.op,
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    message,
	}
}
