package management

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import "context"

// Service is the read-only view of the Management API used by the report.
// Implementations return *Error for every failure.
type Service interface {
	ListAccounts(ctx context.Context) (*Accounts, error)
	ListWebProperties(ctx context.Context, accountID string) (*WebProperties, error)
	ListProfiles(ctx context.Context, accountID, webPropertyID string) (*Profiles, error)
	ListGoals(ctx context.Context, accountID, webPropertyID, profileID string) (*Goals, error)
	ListSegments(ctx context.Context) (*Segments, error)
}
