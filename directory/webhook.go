package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// PassWebhook is the alternate, pre-provisioned automation path for issuing
// a temporary access pass: one fire-and-forget POST carrying only the target
// user's identifier.
type PassWebhook struct {
	endpoint string
	http     Doer
}

type WebhookOption func(*PassWebhook)

func WithWebhookDoer(doer Doer) WebhookOption {
	return func(w *PassWebhook) {
		w.http = doer
	}
}

func NewPassWebhook(endpoint string, options ...WebhookOption) (*PassWebhook, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("[NewPassWebhook] endpoint is required")
	}

	w := &PassWebhook{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range options {
		opt(w)
	}
	return w, nil
}

// webhookResponse is the explicit contract for the automation endpoint's
// reply. The upstream has shipped the secret under both names at different
// times; exactly one must be present.
type webhookResponse struct {
	TemporaryAccessPass string `json:"temporaryAccessPass"`
	Tap                 string `json:"tap"`
}

// IssuePass asks the automation endpoint to generate a pass for the user and
// returns the secret. There is no retry: the request runs once to completion
// or failure. An unrecognized or ambiguous response shape is an error, never
// a guess.
func (w *PassWebhook) IssuePass(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("[IssuePass] user identifier is required")
	}

	payload, err := json.Marshal(map[string]string{"userId": userID})
	if err != nil {
		return "", errors.Wrap(err, "[IssuePass] encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "[IssuePass] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "[IssuePass] webhook request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.Errorf("[IssuePass] webhook returned status %d", resp.StatusCode)
	}

	var body webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "[IssuePass] decode webhook response")
	}

	switch {
	case body.TemporaryAccessPass != "" && body.Tap != "" && body.TemporaryAccessPass != body.Tap:
		return "", errors.New("[IssuePass] webhook response is ambiguous: temporaryAccessPass and tap differ")
	case body.TemporaryAccessPass != "":
		return body.TemporaryAccessPass, nil
	case body.Tap != "":
		return body.Tap, nil
	default:
		return "", errors.New("[IssuePass] webhook response has no recognized secret field (expected temporaryAccessPass or tap)")
	}
}
