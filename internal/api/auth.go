package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// OAuth2 scope required for read access to the Management API
	AnalyticsReadOnlyScope = "https://www.googleapis.com/auth/analytics.readonly"

	// Token refresh buffer - refresh tokens 5 minutes before expiry
	TokenRefreshBuffer = 5 * time.Minute
)

// AuthClient exchanges a stored refresh token for access tokens
type AuthClient struct {
	config       *oauth2.Config
	refreshToken string

	// Token cache to avoid repeated refresh calls
	tokenMutex  sync.RWMutex
	cachedToken *oauth2.Token
	cacheExpiry time.Time
}

// NewAuthClient creates an auth client for the Google token endpoint
func NewAuthClient(clientID, clientSecret, refreshToken string) (*AuthClient, error) {
	return NewAuthClientWithEndpoint(clientID, clientSecret, refreshToken, google.Endpoint)
}

// NewAuthClientWithEndpoint creates an auth client for an arbitrary token endpoint
func NewAuthClientWithEndpoint(clientID, clientSecret, refreshToken string, endpoint oauth2.Endpoint) (*AuthClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("OAuth credentials not configured - run 'gamgmt config set' first")
	}

	return &AuthClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{AnalyticsReadOnlyScope},
		},
		refreshToken: strings.TrimSpace(refreshToken),
	}, nil
}

// GetAccessToken returns a cached access token or refreshes a new one
func (a *AuthClient) GetAccessToken(ctx context.Context) (*oauth2.Token, error) {
	if a.refreshToken == "" {
		return nil, fmt.Errorf("no refresh token available - create a preset or set GAMGMT_REFRESH_TOKEN")
	}

	a.tokenMutex.RLock()
	if a.cachedToken != nil && time.Now().Before(a.cacheExpiry) {
		token := a.cachedToken
		a.tokenMutex.RUnlock()
		return token, nil
	}
	a.tokenMutex.RUnlock()

	return a.refresh(ctx)
}

func (a *AuthClient) refresh(ctx context.Context) (*oauth2.Token, error) {
	a.tokenMutex.Lock()
	defer a.tokenMutex.Unlock()

	// Double-check cache after acquiring write lock
	if a.cachedToken != nil && time.Now().Before(a.cacheExpiry) {
		return a.cachedToken, nil
	}

	newToken, err := a.exchange(ctx, a.refreshToken)
	if err != nil {
		return nil, err
	}

	cacheExpiry := newToken.Expiry
	if !cacheExpiry.IsZero() {
		cacheExpiry = cacheExpiry.Add(-TokenRefreshBuffer)
	} else {
		// Default 1-hour cache if no expiry provided
		cacheExpiry = time.Now().Add(1 * time.Hour)
	}

	a.cachedToken = newToken
	a.cacheExpiry = cacheExpiry

	return newToken, nil
}

// exchange performs one refresh grant. The *oauth2.RetrieveError of a
// rejected grant stays in the chain.
func (a *AuthClient) exchange(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	tokenSource := a.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	if newToken.AccessToken == "" {
		return nil, fmt.Errorf("received empty access token")
	}
	if !newToken.Valid() {
		return nil, fmt.Errorf("received invalid token")
	}

	return newToken, nil
}

// AuthenticatedHTTPClient returns an HTTP client that attaches and renews
// the access token
func (a *AuthClient) AuthenticatedHTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := a.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	tokenSource := oauth2.ReuseTokenSource(token, &refreshTokenSource{
		authClient: a,
		ctx:        ctx,
	})

	return oauth2.NewClient(ctx, tokenSource), nil
}

// ClearTokenCache clears the cached access token
func (a *AuthClient) ClearTokenCache() {
	a.tokenMutex.Lock()
	defer a.tokenMutex.Unlock()

	a.cachedToken = nil
	a.cacheExpiry = time.Time{}
}

// ValidateRefreshToken checks the token format and performs a test refresh.
// The client's own token cache is left untouched.
func (a *AuthClient) ValidateRefreshToken(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("refresh token is empty")
	}

	// Google refresh tokens start with "1//"
	if !strings.HasPrefix(refreshToken, "1//") {
		return fmt.Errorf("invalid refresh token format - Google refresh tokens start with '1//'")
	}

	if _, err := a.exchange(ctx, refreshToken); err != nil {
		return fmt.Errorf("refresh token validation failed: %w", err)
	}

	return nil
}

// TokenInfo describes the cached token for `config show`
type TokenInfo struct {
	HasCachedToken bool
	CacheExpiry    time.Time
	TokenExpiry    time.Time
	NeedsRefresh   bool
}

// GetTokenInfo returns information about the current cached token
func (a *AuthClient) GetTokenInfo() TokenInfo {
	a.tokenMutex.RLock()
	defer a.tokenMutex.RUnlock()

	info := TokenInfo{
		HasCachedToken: a.cachedToken != nil,
		CacheExpiry:    a.cacheExpiry,
		NeedsRefresh:   true,
	}
	if a.cachedToken != nil {
		info.TokenExpiry = a.cachedToken.Expiry
		info.NeedsRefresh = time.Now().After(a.cacheExpiry)
	}
	return info
}

// refreshTokenSource implements oauth2.TokenSource for automatic token refresh
type refreshTokenSource struct {
	authClient *AuthClient
	ctx        context.Context
}

func (r *refreshTokenSource) Token() (*oauth2.Token, error) {
	return r.authClient.GetAccessToken(r.ctx)
}
