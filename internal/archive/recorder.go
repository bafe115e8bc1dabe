package archive

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gamgmt/internal/management"
)

// Collection names stored with each snapshot
const (
	CollectionAccounts      = "accounts"
	CollectionWebProperties = "webproperties"
	CollectionProfiles      = "profiles"
	CollectionGoals         = "goals"
	CollectionSegments      = "segments"
)

// RecordingService passes calls through to a management.Service and
// stores every successful response under one run. Archive failures are
// logged and never surface to the caller.
type RecordingService struct {
	next   management.Service
	store  *Store
	runID  string
	logger *zap.Logger

	mu  sync.Mutex
	seq int
}

var _ management.Service = (*RecordingService)(nil)

// NewRecordingService wraps next so its responses are archived under runID
func NewRecordingService(next management.Service, store *Store, runID string, logger *zap.Logger) *RecordingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordingService{
		next:   next,
		store:  store,
		runID:  runID,
		logger: logger.With(zap.String("run_id", runID)),
	}
}

// RunID returns the run the snapshots are recorded under
func (r *RecordingService) RunID() string {
	return r.runID
}

func (r *RecordingService) ListAccounts(ctx context.Context) (*management.Accounts, error) {
	accounts, err := r.next.ListAccounts(ctx)
	if err == nil {
		r.record(ctx, CollectionAccounts, Scope{}, accounts.Len(), accounts)
	}
	return accounts, err
}

func (r *RecordingService) ListWebProperties(ctx context.Context, accountID string) (*management.WebProperties, error) {
	webProperties, err := r.next.ListWebProperties(ctx, accountID)
	if err == nil {
		r.record(ctx, CollectionWebProperties, Scope{AccountID: accountID}, webProperties.Len(), webProperties)
	}
	return webProperties, err
}

func (r *RecordingService) ListProfiles(ctx context.Context, accountID, webPropertyID string) (*management.Profiles, error) {
	profiles, err := r.next.ListProfiles(ctx, accountID, webPropertyID)
	if err == nil {
		scope := Scope{AccountID: accountID, WebPropertyID: webPropertyID}
		r.record(ctx, CollectionProfiles, scope, profiles.Len(), profiles)
	}
	return profiles, err
}

func (r *RecordingService) ListGoals(ctx context.Context, accountID, webPropertyID, profileID string) (*management.Goals, error) {
	goals, err := r.next.ListGoals(ctx, accountID, webPropertyID, profileID)
	if err == nil {
		scope := Scope{AccountID: accountID, WebPropertyID: webPropertyID, ProfileID: profileID}
		r.record(ctx, CollectionGoals, scope, goals.Len(), goals)
	}
	return goals, err
}

func (r *RecordingService) ListSegments(ctx context.Context) (*management.Segments, error) {
	segments, err := r.next.ListSegments(ctx)
	if err == nil {
		r.record(ctx, CollectionSegments, Scope{}, segments.Len(), segments)
	}
	return segments, err
}

func (r *RecordingService) record(ctx context.Context, collection string, scope Scope, itemCount int, payload any) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	if err := r.store.RecordSnapshot(ctx, r.runID, seq, collection, scope, itemCount, payload); err != nil {
		r.logger.Warn("failed to archive response",
			zap.String("collection", collection),
			zap.Int("seq", seq),
			zap.Error(err))
	}
}
