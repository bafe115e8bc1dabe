package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"gamgmt/internal/management"
)

func newTokenServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testEndpoint(srv *httptest.Server) oauth2.Endpoint {
	return oauth2.Endpoint{
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func TestNewAuthClientRequiresCredentials(t *testing.T) {
	_, err := NewAuthClient("", "secret", "1//token")
	assert.Error(t, err)

	_, err = NewAuthClient("id", "", "1//token")
	assert.Error(t, err)
}

func TestGetAccessTokenCachesToken(t *testing.T) {
	srv, calls := newTokenServer(t, http.StatusOK, `{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`)

	auth, err := NewAuthClientWithEndpoint("id", "secret", "1//refresh", testEndpoint(srv))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := auth.GetAccessToken(ctx)
	require.NoError(t, err)
	second, err := auth.GetAccessToken(ctx)
	require.NoError(t, err)

	assert.Equal(t, "at-1", first.AccessToken)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.True(t, auth.GetTokenInfo().HasCachedToken)

	auth.ClearTokenCache()
	assert.False(t, auth.GetTokenInfo().HasCachedToken)
	_, err = auth.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestGetAccessTokenWithoutRefreshToken(t *testing.T) {
	auth, err := NewAuthClient("id", "secret", "  ")
	require.NoError(t, err)

	_, err = auth.GetAccessToken(context.Background())
	assert.ErrorContains(t, err, "no refresh token")
}

func TestRevokedRefreshTokenBecomesCredentialError(t *testing.T) {
	srv, _ := newTokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)

	auth, err := NewAuthClientWithEndpoint("id", "secret", "1//revoked", testEndpoint(srv))
	require.NoError(t, err)

	client := NewManagementClient(auth, "http://unused")
	_, err = client.ListAccounts(context.Background())

	kind, ok := management.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, management.KindCredential, kind)
}

func TestAuthenticatedClientSendsBearerToken(t *testing.T) {
	tokenSrv, _ := newTokenServer(t, http.StatusOK, `{"access_token":"at-xyz","token_type":"Bearer","expires_in":3600}`)

	var authHeader string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"items":[{"id":"A1"}]}`)
	}))
	t.Cleanup(apiSrv.Close)

	auth, err := NewAuthClientWithEndpoint("id", "secret", "1//refresh", testEndpoint(tokenSrv))
	require.NoError(t, err)

	accounts, err := NewManagementClient(auth, apiSrv.URL).ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer at-xyz", authHeader)
	require.Equal(t, 1, accounts.Len())
}

func TestValidateRefreshToken(t *testing.T) {
	srv, calls := newTokenServer(t, http.StatusOK, `{"access_token":"at","token_type":"Bearer","expires_in":3600}`)

	auth, err := NewAuthClientWithEndpoint("id", "secret", "", testEndpoint(srv))
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorContains(t, auth.ValidateRefreshToken(ctx, ""), "empty")
	assert.ErrorContains(t, auth.ValidateRefreshToken(ctx, "abc"), "1//")
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))

	require.NoError(t, auth.ValidateRefreshToken(ctx, "1//good"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.False(t, auth.GetTokenInfo().HasCachedToken)
}
