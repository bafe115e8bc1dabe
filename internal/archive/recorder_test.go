package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gamgmt/internal/management"
	"gamgmt/internal/management/mocks"
)

type RecordingServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	next     *mocks.MockService
	store    *Store
	runID    string
	logs     *observer.ObservedLogs
	recorder *RecordingService
}

func (s *RecordingServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.next = mocks.NewMockService(s.ctrl)

	store, err := Open(filepath.Join(s.T().TempDir(), "archive.db"))
	s.Require().NoError(err)
	s.store = store

	s.runID, err = store.StartRun(context.Background(), "work")
	s.Require().NoError(err)

	core, logs := observer.New(zapcore.WarnLevel)
	s.logs = logs
	s.recorder = NewRecordingService(s.next, store, s.runID, zap.New(core))
}

func (s *RecordingServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.store.Close()
}

func TestRecordingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordingServiceTestSuite))
}

func (s *RecordingServiceTestSuite) TestRecordsEveryLevelInOrder() {
	ctx := context.Background()

	accounts := &management.Accounts{Items: []management.Account{{ID: management.String("1")}}}
	webProperties := &management.WebProperties{Items: []management.WebProperty{{ID: management.String("UA-1-1")}}}
	profiles := &management.Profiles{Items: []management.Profile{{ID: management.String("P1")}}}
	goals := &management.Goals{}
	segments := &management.Segments{Items: []management.Segment{{ID: management.String("-1")}, {ID: management.String("-2")}}}

	gomock.InOrder(
		s.next.EXPECT().ListAccounts(ctx).Return(accounts, nil),
		s.next.EXPECT().ListWebProperties(ctx, "1").Return(webProperties, nil),
		s.next.EXPECT().ListProfiles(ctx, "1", "UA-1-1").Return(profiles, nil),
		s.next.EXPECT().ListGoals(ctx, "1", "UA-1-1", "P1").Return(goals, nil),
		s.next.EXPECT().ListSegments(ctx).Return(segments, nil),
	)

	gotAccounts, err := s.recorder.ListAccounts(ctx)
	s.Require().NoError(err)
	s.Same(accounts, gotAccounts)

	_, err = s.recorder.ListWebProperties(ctx, "1")
	s.Require().NoError(err)
	_, err = s.recorder.ListProfiles(ctx, "1", "UA-1-1")
	s.Require().NoError(err)
	_, err = s.recorder.ListGoals(ctx, "1", "UA-1-1", "P1")
	s.Require().NoError(err)
	gotSegments, err := s.recorder.ListSegments(ctx)
	s.Require().NoError(err)
	s.Same(segments, gotSegments)

	snapshots, err := s.store.Snapshots(ctx, s.runID)
	s.Require().NoError(err)
	s.Require().Len(snapshots, 5)

	var collections []string
	for i, snap := range snapshots {
		s.Equal(i+1, snap.Seq)
		collections = append(collections, snap.Collection)
	}
	s.Equal([]string{
		CollectionAccounts,
		CollectionWebProperties,
		CollectionProfiles,
		CollectionGoals,
		CollectionSegments,
	}, collections)

	s.Equal(Scope{AccountID: "1", WebPropertyID: "UA-1-1", ProfileID: "P1"}, snapshots[3].Scope)
	s.Equal(2, snapshots[4].ItemCount)
	s.Zero(s.logs.Len())
}

func (s *RecordingServiceTestSuite) TestErrorsPassThroughWithoutSnapshot() {
	ctx := context.Background()
	apiErr := &management.Error{Kind: management.KindAPI, Op: "accounts.list", Status: 403, Reason: "Forbidden"}

	s.next.EXPECT().ListAccounts(ctx).Return(nil, apiErr)

	accounts, err := s.recorder.ListAccounts(ctx)
	s.Nil(accounts)
	s.Same(apiErr, err)

	snapshots, err := s.store.Snapshots(ctx, s.runID)
	s.Require().NoError(err)
	s.Empty(snapshots)
}

func (s *RecordingServiceTestSuite) TestArchiveFailureIsLoggedNotReturned() {
	ctx := context.Background()
	segments := &management.Segments{}

	s.next.EXPECT().ListSegments(ctx).Return(segments, nil)
	s.Require().NoError(s.store.Close())

	got, err := s.recorder.ListSegments(ctx)
	s.NoError(err)
	s.Same(segments, got)

	s.Require().Equal(1, s.logs.Len())
	entry := s.logs.All()[0]
	s.Equal("failed to archive response", entry.Message)
	s.Equal(CollectionSegments, entry.ContextMap()["collection"])
	s.Equal(s.runID, entry.ContextMap()["run_id"])
}

func (s *RecordingServiceTestSuite) TestRunID() {
	s.Equal(s.runID, s.recorder.RunID())
}
