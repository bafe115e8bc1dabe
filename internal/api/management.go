package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"gamgmt/internal/management"
)

// DefaultBaseURL is the Management API v3 root
const DefaultBaseURL = "https://www.googleapis.com/analytics/v3"

// HTTPClientProvider hands out an authorised HTTP client; *AuthClient is one
type HTTPClientProvider interface {
	AuthenticatedHTTPClient(ctx context.Context) (*http.Client, error)
}

// ManagementClient reads the Management API account hierarchy and segments
type ManagementClient struct {
	clients HTTPClientProvider
	baseURL string
}

var _ management.Service = (*ManagementClient)(nil)

// NewManagementClient creates a client rooted at baseURL, DefaultBaseURL when empty
func NewManagementClient(clients HTTPClientProvider, baseURL string) *ManagementClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ManagementClient{
		clients: clients,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ListAccounts lists the accounts visible to the authorised user
func (c *ManagementClient) ListAccounts(ctx context.Context) (*management.Accounts, error) {
	var out management.Accounts
	if err := c.list(ctx, "list accounts", "/management/accounts", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWebProperties lists the web properties of an account
func (c *ManagementClient) ListWebProperties(ctx context.Context, accountID string) (*management.WebProperties, error) {
	const op = "list webproperties"

	path, err := buildPath(op, "accounts", accountID, "webproperties")
	if err != nil {
		return nil, err
	}

	var out management.WebProperties
	if err := c.list(ctx, op, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProfiles lists the profiles of a web property
func (c *ManagementClient) ListProfiles(ctx context.Context, accountID, webPropertyID string) (*management.Profiles, error) {
	const op = "list profiles"

	path, err := buildPath(op, "accounts", accountID, "webproperties", webPropertyID, "profiles")
	if err != nil {
		return nil, err
	}

	var out management.Profiles
	if err := c.list(ctx, op, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGoals lists the goals of a profile
func (c *ManagementClient) ListGoals(ctx context.Context, accountID, webPropertyID, profileID string) (*management.Goals, error) {
	const op = "list goals"

	path, err := buildPath(op, "accounts", accountID, "webproperties", webPropertyID, "profiles", profileID, "goals")
	if err != nil {
		return nil, err
	}

	var out management.Goals
	if err := c.list(ctx, op, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSegments lists every segment available to the user
func (c *ManagementClient) ListSegments(ctx context.Context) (*management.Segments, error) {
	var out management.Segments
	if err := c.list(ctx, "list segments", "/management/segments", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var idParams = map[string]string{
	"accounts":      "accountId",
	"webproperties": "webPropertyId",
	"profiles":      "profileId",
}

// buildPath joins collection/id pairs under /management. segments
// alternates collection name and identifier, ending with the listed collection.
func buildPath(op string, segments ...string) (string, error) {
	var b strings.Builder
	b.WriteString("/management")

	for i, seg := range segments {
		if i%2 == 0 {
			b.WriteString("/" + seg)
			continue
		}

		param := idParams[segments[i-1]]
		if seg == "" {
			return "", &management.Error{
				Kind: management.KindQuery,
				Op:   op,
				Err:  fmt.Errorf("missing required parameter %s", param),
			}
		}
		if strings.ContainsAny(seg, "/?#") {
			return "", &management.Error{
				Kind: management.KindQuery,
				Op:   op,
				Err:  fmt.Errorf("parameter %s has invalid value %q", param, seg),
			}
		}
		b.WriteString("/" + url.PathEscape(seg))
	}

	return b.String(), nil
}

func (c *ManagementClient) list(ctx context.Context, op, path string, out any) error {
	httpClient, err := c.clients.AuthenticatedHTTPClient(ctx)
	if err != nil {
		return classifyTransportError(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &management.Error{Kind: management.KindQuery, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return classifyTransportError(op, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return classifyResponseError(op, resp.StatusCode, err)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &management.Error{
			Kind:   management.KindAPI,
			Op:     op,
			Status: resp.StatusCode,
			Reason: fmt.Sprintf("failed to decode response: %v", err),
			Err:    err,
		}
	}

	return nil
}

// classifyTransportError maps failures that produced no API response. A
// rejected refresh grant means the stored credentials are unusable.
func classifyTransportError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &management.Error{Kind: management.KindCredential, Op: op, Err: err}
	}

	return &management.Error{
		Kind:   management.KindAPI,
		Op:     op,
		Reason: err.Error(),
		Err:    err,
	}
}

func classifyResponseError(op string, status int, err error) error {
	merr := &management.Error{
		Kind:   management.KindAPI,
		Op:     op,
		Status: status,
		Reason: http.StatusText(status),
		Err:    err,
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code != 0 {
			merr.Status = gerr.Code
		}
		if reason := googleReason(gerr); reason != "" {
			merr.Reason = reason
		}
	}

	return merr
}

func googleReason(gerr *googleapi.Error) string {
	if gerr.Message != "" {
		return gerr.Message
	}
	for _, item := range gerr.Errors {
		if item.Message != "" {
			return item.Message
		}
		if item.Reason != "" {
			return item.Reason
		}
	}
	return ""
}
