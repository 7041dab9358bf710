package session

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"painters-telegraph/internal/api"
	"painters-telegraph/internal/config"
	"painters-telegraph/internal/db"
	"painters-telegraph/internal/session/mocks"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EngineTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockBackend  *mocks.MockBackend
	mockIdentity *mocks.MockIdentity
	engine       *Engine
	ctx          context.Context

	player   api.Player
	gameName string
}

func (s *EngineTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBackend = mocks.NewMockBackend(s.mockCtrl)
	s.mockIdentity = mocks.NewMockIdentity(s.mockCtrl)
	s.ctx = context.Background()
	s.player = api.Player{ID: "secret-ada", DisplayName: "Ada"}
	s.gameName = "foo"

	s.mockIdentity.EXPECT().Current().Return(s.player).AnyTimes()

	engine, err := New(&Config{
		Backend:  s.mockBackend,
		Identity: s.mockIdentity,
	})
	s.Require().NoError(err)
	s.engine = engine
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) action() api.GameAction {
	return api.GameAction{GameName: s.gameName, Player: s.player}
}

func ptr[T any](v T) *T {
	return &v
}

func (s *EngineTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)
	_, err = New(&Config{Identity: s.mockIdentity})
	s.Error(err)
	_, err = New(&Config{Backend: s.mockBackend})
	s.Error(err)
}

func (s *EngineTestSuite) TestCreateGameUsesDefaultRounds() {
	s.mockBackend.EXPECT().
		CreateGame(gomock.Any(), api.CreateGameInput{GameAction: s.action(), TotalRounds: config.DefaultTotalRounds}).
		Return(nil)

	before := s.engine.Signal().Generation()
	s.Require().NoError(s.engine.CreateGame(s.ctx, s.gameName, 0))
	s.Equal(before+1, s.engine.Signal().Generation())
	s.Equal(s.gameName, s.engine.GameName())
}

func (s *EngineTestSuite) TestRejectedMutationDoesNotPublish() {
	s.engine.SetGameName(s.gameName)
	rejected := &api.RejectedError{Op: "startGame", Message: "game already started"}
	s.mockBackend.EXPECT().StartGame(gomock.Any(), s.action()).Return(rejected)

	before := s.engine.Signal().Generation()
	err := s.engine.StartGame(s.ctx, "")
	s.True(api.IsRejected(err))
	s.Equal(before, s.engine.Signal().Generation())
}

func (s *EngineTestSuite) TestLifecycleMutationsPublish() {
	s.engine.SetGameName(s.gameName)
	s.mockBackend.EXPECT().JoinGame(gomock.Any(), s.action()).Return(nil)
	s.mockBackend.EXPECT().StartGame(gomock.Any(), s.action()).Return(nil)
	s.mockBackend.EXPECT().EndRound(gomock.Any(), s.action()).Return(nil)
	s.mockBackend.EXPECT().EndGame(gomock.Any(), s.action()).Return(nil)
	s.mockBackend.EXPECT().
		SubmitPrompt(gomock.Any(), api.SubmitPromptInput{GameAction: s.action(), Prompt: "a cat"}).
		Return(nil)

	before := s.engine.Signal().Generation()
	s.Require().NoError(s.engine.JoinGame(s.ctx, s.gameName))
	s.Require().NoError(s.engine.StartGame(s.ctx, ""))
	s.Require().NoError(s.engine.EndRound(s.ctx, ""))
	s.Require().NoError(s.engine.EndGame(s.ctx, ""))
	s.Require().NoError(s.engine.SubmitPrompt(s.ctx, "a cat"))
	s.Equal(before+5, s.engine.Signal().Generation())
}

func (s *EngineTestSuite) TestSetGameNameAndDisplayNamePublishOnChange() {
	before := s.engine.Signal().Generation()
	s.True(s.engine.SetGameName(" foo "))
	s.False(s.engine.SetGameName("foo"))
	s.Equal(before+1, s.engine.Signal().Generation())

	s.mockIdentity.EXPECT().SetDisplayName("Ada").Return(true)
	s.mockIdentity.EXPECT().SetDisplayName("Ada").Return(false)
	s.True(s.engine.SetDisplayName("Ada"))
	s.False(s.engine.SetDisplayName("Ada"))
	s.Equal(before+2, s.engine.Signal().Generation())
}

func (s *EngineTestSuite) TestSyncBuildsView() {
	s.engine.SetGameName(s.gameName)
	gomock.InOrder(
		s.mockIdentity.EXPECT().Resolve(gomock.Any()).Return(s.player),
		s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), s.player).Return(&api.PlayerMessage{
			Message: "Draw this prompt",
			Prompt:  ptr("a cat"),
			Phase:   api.PhaseAwaitingDrawing,
		}, nil),
	)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return([]string{"foo"}, nil)
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return(nil, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), s.gameName).Return(&api.GameState{
		GameID:       "g1",
		TotalRounds:  3,
		CurrentRound: 1,
		Started:      true,
	}, nil)

	s.Require().NoError(s.engine.Sync(s.ctx))

	view := s.engine.View()
	s.Equal("Ada", view.PlayerName)
	s.True(view.LoggedIn)
	s.Equal([]string{"foo"}, view.OpenGames)
	s.Equal([]string{}, view.EndedGames)
	s.Equal("Draw this prompt", view.Message)
	s.Equal("a cat", view.Prompt)
	s.Equal(api.PhaseAwaitingDrawing.String(), view.Phase)
	s.True(view.Can(api.AffordanceUploadDrawing))
	s.False(view.Can(api.AffordanceSubmitPrompt))
	s.Equal("in-progress", view.Status)
	s.Equal("Round 2 / 3", view.RoundLabel)
	s.Empty(view.Errors)
}

func (s *EngineTestSuite) TestSyncKeepsStaleDataOnErrors() {
	s.engine.SetGameName(s.gameName)
	s.mockIdentity.EXPECT().Resolve(gomock.Any()).Return(s.player).Times(2)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return([]string{"foo"}, nil)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return(nil, &api.NetworkError{Op: "listGames", StatusCode: 502})
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return([]string{"old"}, nil).Times(2)
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), s.player).Return(&api.PlayerMessage{
		Message:     "Write a prompt",
		StartPrompt: ptr(true),
		Phase:       api.PhaseAwaitingPrompt,
	}, nil)
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), s.player).
		Return(nil, &api.MalformedResponseError{Op: "getPlayerMessage", Err: api.ErrAmbiguousMessage})
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), s.gameName).
		Return(&api.GameState{GameID: "g1", TotalRounds: 2, Started: true}, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), s.gameName).
		Return(nil, &api.RejectedError{Op: "getGameState", Message: "game not found"})

	s.Require().NoError(s.engine.Sync(s.ctx))
	s.Error(s.engine.Sync(s.ctx))

	view := s.engine.View()
	s.Equal([]string{"foo"}, view.OpenGames)
	s.Equal("Write a prompt", view.Message)
	s.True(view.Can(api.AffordanceSubmitPrompt))
	s.Equal("g1", view.GameID)
	s.Equal("in-progress", view.Status)
	s.Equal("Round 1 / 2", view.RoundLabel)
	s.Contains(view.Errors, "directory")
	s.Contains(view.Errors, "message")
	s.Contains(view.Errors, "state")
}

func (s *EngineTestSuite) TestEndedStateFetchesArchiveOnce() {
	s.engine.SetGameName(s.gameName)
	s.mockIdentity.EXPECT().Resolve(gomock.Any()).Return(s.player)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return(nil, nil)
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return([]string{"foo"}, nil)
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), s.player).Return(&api.PlayerMessage{Message: "Game over"}, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), s.gameName).
		Return(&api.GameState{GameID: "g1", TotalRounds: 0, Started: true}, nil)
	s.mockBackend.EXPECT().GetEndedGame(gomock.Any(), "g1").
		Return(&api.EndedGame{GameID: "g1", GameName: "foo", Gifs: []string{"http://img/1"}}, nil).
		Times(1)

	s.Require().NoError(s.engine.Sync(s.ctx))
	view := s.engine.View()
	s.Equal("ended", view.Status)
	s.Empty(view.RoundLabel)
	s.Require().NotNil(view.Ended)
	s.Equal([]string{"http://img/1"}, view.Ended.Gifs)
}

func (s *EngineTestSuite) TestSubmitDrawing() {
	s.engine.SetGameName(s.gameName)
	drawing := &Drawing{Name: "cat.png", Content: strings.NewReader("png")}
	gomock.InOrder(
		s.mockBackend.EXPECT().UploadDrawing(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input api.UploadDrawingInput) (string, error) {
				s.Equal("cat.png", input.FileName)
				s.Equal(s.player, input.Player)
				return "http://img/1", nil
			}),
		s.mockBackend.EXPECT().
			SubmitDrawing(gomock.Any(), api.SubmitDrawingInput{GameAction: s.action(), DrawingURL: "http://img/1"}).
			Return(nil),
	)

	before := s.engine.Signal().Generation()
	url, err := s.engine.SubmitDrawing(s.ctx, drawing)
	s.Require().NoError(err)
	s.Equal("http://img/1", url)
	s.Equal(before+1, s.engine.Signal().Generation())
}

func (s *EngineTestSuite) TestSubmitDrawingWithoutFile() {
	before := s.engine.Signal().Generation()
	_, err := s.engine.SubmitDrawing(s.ctx, nil)
	s.ErrorIs(err, api.ErrNoFileSelected)
	s.Equal(before, s.engine.Signal().Generation())
}

func (s *EngineTestSuite) journaled() (*Engine, *mocks.MockRecorder) {
	recorder := mocks.NewMockRecorder(s.mockCtrl)
	engine, err := New(&Config{
		Backend:  s.mockBackend,
		Identity: s.mockIdentity,
		Journal:  recorder,
	})
	s.Require().NoError(err)
	return engine, recorder
}

func (s *EngineTestSuite) TestJournalRecordsMutationOutcomes() {
	rejected := &api.RejectedError{Op: "startGame", Message: "game not found"}
	network := &api.NetworkError{Op: "startGame", StatusCode: 502}
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{name: "ok", outcome: db.OutcomeOK},
		{name: "rejected", err: rejected, outcome: db.OutcomeRejected},
		{name: "network", err: network, outcome: db.OutcomeFailed},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			engine, recorder := s.journaled()
			s.mockBackend.EXPECT().StartGame(gomock.Any(), s.action()).Return(tc.err)
			want := db.Entry{
				Type:       EventStartGame,
				GameName:   s.gameName,
				PlayerName: s.player.DisplayName,
				Outcome:    tc.outcome,
			}
			if tc.err != nil {
				want.Payload.Error = tc.err.Error()
			}
			recorder.EXPECT().Record(gomock.Any(), want).Return(nil)

			err := engine.StartGame(s.ctx, s.gameName)
			if tc.err == nil {
				s.NoError(err)
			} else {
				s.ErrorIs(err, tc.err)
			}
		})
	}
}

func (s *EngineTestSuite) TestJournalSkipsValidationErrors() {
	engine, _ := s.journaled()
	verr := &api.ValidationError{Field: "GameName", Message: "game name is required"}
	s.mockBackend.EXPECT().CreateGame(gomock.Any(), gomock.Any()).Return(verr)

	err := engine.CreateGame(s.ctx, "", 0)
	var got *api.ValidationError
	s.ErrorAs(err, &got)

	_, err = engine.SubmitDrawing(s.ctx, nil)
	s.ErrorIs(err, api.ErrNoFileSelected)
}

func (s *EngineTestSuite) TestJournalRecordsDrawingPayload() {
	engine, recorder := s.journaled()
	engine.SetGameName(s.gameName)
	s.mockBackend.EXPECT().UploadDrawing(gomock.Any(), gomock.Any()).Return("http://img/1", nil)
	s.mockBackend.EXPECT().SubmitDrawing(gomock.Any(), gomock.Any()).Return(nil)
	recorder.EXPECT().Record(gomock.Any(), db.Entry{
		Type:       EventSubmitDrawing,
		GameName:   s.gameName,
		PlayerName: s.player.DisplayName,
		Outcome:    db.OutcomeOK,
		Payload:    db.EventPayload{DrawingURL: "http://img/1", FileName: "cat.png"},
	}).Return(nil)

	_, err := engine.SubmitDrawing(s.ctx, &Drawing{Name: "cat.png", Content: strings.NewReader("png")})
	s.NoError(err)
}

func (s *EngineTestSuite) TestJournalRecordsPartialDrawing() {
	engine, recorder := s.journaled()
	engine.SetGameName(s.gameName)
	s.mockBackend.EXPECT().UploadDrawing(gomock.Any(), gomock.Any()).Return("http://img/1", nil)
	s.mockBackend.EXPECT().SubmitDrawing(gomock.Any(), gomock.Any()).
		Return(&api.RejectedError{Op: "submitDrawing", Message: "not expected this round"})
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry db.Entry) error {
			s.Equal(db.OutcomePartial, entry.Outcome)
			s.Equal("http://img/1", entry.Payload.DrawingURL)
			s.Equal("cat.png", entry.Payload.FileName)
			s.NotEmpty(entry.Payload.Error)
			return nil
		})

	url, err := engine.SubmitDrawing(s.ctx, &Drawing{Name: "cat.png", Content: strings.NewReader("png")})
	s.Equal("http://img/1", url)
	var partial *PartialSubmissionError
	s.ErrorAs(err, &partial)
}

func (s *EngineTestSuite) TestJournalFailureDoesNotFailAction() {
	engine, recorder := s.journaled()
	s.mockBackend.EXPECT().EndGame(gomock.Any(), s.action()).Return(nil)
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("database is down"))

	before := engine.Signal().Generation()
	s.NoError(engine.EndGame(s.ctx, s.gameName))
	s.Equal(before+1, engine.Signal().Generation())
}

func (s *EngineTestSuite) TestRunSyncsOnPublish() {
	s.engine.SetGameName(s.gameName)
	s.mockIdentity.EXPECT().Resolve(gomock.Any()).Return(s.player).MinTimes(2)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return([]string{"foo"}, nil).MinTimes(2)
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return(nil, nil).MinTimes(2)
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), s.player).Return(&api.PlayerMessage{}, nil).MinTimes(2)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), s.gameName).
		Return(&api.GameState{GameID: "g1", TotalRounds: 2}, nil).MinTimes(2)

	changes, stop := s.engine.Watch()
	defer stop()
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.engine.Run(ctx) }()

	s.waitForChange(changes)
	generation := s.engine.Refresh()
	for s.engine.View().Generation < generation {
		s.waitForChange(changes)
	}
	cancel()
	s.ErrorIs(<-done, context.Canceled)
}

func (s *EngineTestSuite) TestRunCoalescesRefreshBurst() {
	s.engine.SetGameName(s.gameName)
	var stateCalls atomic.Int32
	s.mockIdentity.EXPECT().Resolve(gomock.Any()).Return(s.player).AnyTimes()
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return([]string{"foo"}, nil).AnyTimes()
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), s.player).Return(&api.PlayerMessage{}, nil).AnyTimes()
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), s.gameName).
		DoAndReturn(func(ctx context.Context, _ string) (*api.GameState, error) {
			stateCalls.Add(1)
			select {
			case <-time.After(200 * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return &api.GameState{GameID: "g1", TotalRounds: 2}, nil
		}).AnyTimes()

	changes, stop := s.engine.Watch()
	defer stop()
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.engine.Run(ctx) }()

	var last uint64
	for i := 0; i < 20; i++ {
		last = s.engine.Refresh()
		time.Sleep(time.Millisecond)
	}
	for s.engine.View().Generation < last {
		s.waitForChange(changes)
	}
	cancel()
	s.ErrorIs(<-done, context.Canceled)

	s.LessOrEqual(stateCalls.Load(), int32(3), "a burst of 20 refreshes should coalesce")
	s.GreaterOrEqual(stateCalls.Load(), int32(1))
}

func (s *EngineTestSuite) waitForChange(changes <-chan Refresh) {
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for a view change")
	}
}

type PollerTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockBackend *mocks.MockBackend
	ctx         context.Context
}

func (s *PollerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBackend = mocks.NewMockBackend(s.mockCtrl)
	s.ctx = context.Background()
}

func TestPollerTestSuite(t *testing.T) {
	suite.Run(t, new(PollerTestSuite))
}

func (s *PollerTestSuite) TestOutOfOrderStateResponses() {
	poller := NewStatePoller(s.mockBackend, nil)
	release := make(chan struct{})
	started := make(chan struct{})

	gomock.InOrder(
		s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
			DoAndReturn(func(context.Context, string) (*api.GameState, error) {
				close(started)
				<-release
				return &api.GameState{GameID: "g1", TotalRounds: 3, CurrentRound: 0, Started: true}, nil
			}),
		s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
			Return(&api.GameState{GameID: "g1", TotalRounds: 3, CurrentRound: 2, Started: true}, nil),
	)

	firstDone := make(chan error, 1)
	go func() { firstDone <- poller.Refresh(s.ctx, "foo") }()
	<-started
	s.Require().NoError(poller.Refresh(s.ctx, "foo"))
	close(release)
	s.ErrorIs(<-firstDone, context.Canceled)

	snap := poller.Snapshot()
	s.Equal(StatusInProgress, snap.Status)
	s.Equal("Round 3 / 3", snap.RoundLabel())
}

func (s *PollerTestSuite) TestEndedTriggersOneArchiveFetchPerStateFetch() {
	poller := NewStatePoller(s.mockBackend, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
		Return(&api.GameState{GameID: "g1", TotalRounds: 0}, nil).Times(2)
	s.mockBackend.EXPECT().GetEndedGame(gomock.Any(), "g1").
		Return(&api.EndedGame{GameID: "g1"}, nil).Times(2)

	s.Require().NoError(poller.Refresh(s.ctx, "foo"))
	s.Equal(StatusEnded, poller.Snapshot().Status)
	s.Require().NoError(poller.Refresh(s.ctx, "foo"))
	s.Equal("g1", poller.Snapshot().Ended.GameID)
}

func (s *PollerTestSuite) TestEndedUsesPinnedArchiveID() {
	cfg := config.Default()
	cfg.PinLegacyEndedGame = true
	poller := NewStatePoller(s.mockBackend, cfg.EndedGameID)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
		Return(&api.GameState{GameID: "g1", TotalRounds: 0}, nil)
	s.mockBackend.EXPECT().GetEndedGame(gomock.Any(), config.LegacyEndedGameID).
		Return(&api.EndedGame{GameID: config.LegacyEndedGameID}, nil)

	s.Require().NoError(poller.Refresh(s.ctx, "foo"))
	s.Equal(config.LegacyEndedGameID, poller.Snapshot().Ended.GameID)
}

func (s *PollerTestSuite) TestEndedWithoutGameID() {
	poller := NewStatePoller(s.mockBackend, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
		Return(&api.GameState{TotalRounds: 0}, nil)

	s.ErrorIs(poller.Refresh(s.ctx, "foo"), api.ErrNoGameID)
	snap := poller.Snapshot()
	s.Equal(StatusEnded, snap.Status)
	s.ErrorIs(snap.EndedErr, api.ErrNoGameID)
	s.ErrorIs(poller.FetchEnded(s.ctx), api.ErrNoGameID)
}

func (s *PollerTestSuite) TestEmptyGameNameResetsToUnknown() {
	poller := NewStatePoller(s.mockBackend, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
		Return(&api.GameState{GameID: "g1", TotalRounds: 2}, nil)

	s.Require().NoError(poller.Refresh(s.ctx, "foo"))
	s.Equal(StatusInProgress, poller.Snapshot().Status)
	s.Require().NoError(poller.Refresh(s.ctx, "  "))
	snap := poller.Snapshot()
	s.Equal(StatusUnknown, snap.Status)
	s.Empty(snap.GameID)
}

func (s *PollerTestSuite) TestManualArchiveFetch() {
	poller := NewStatePoller(s.mockBackend, nil)
	s.mockBackend.EXPECT().GetGameState(gomock.Any(), "foo").
		Return(&api.GameState{GameID: "g1", TotalRounds: 2, Started: true}, nil)
	s.mockBackend.EXPECT().GetEndedGame(gomock.Any(), "g1").
		Return(&api.EndedGame{GameID: "g1", Gifs: []string{"http://img/1"}}, nil)

	s.Require().NoError(poller.Refresh(s.ctx, "foo"))
	s.Require().NoError(poller.FetchEnded(s.ctx))
	s.Equal([]string{"http://img/1"}, poller.Snapshot().Ended.Gifs)
}

func (s *PollerTestSuite) TestAmbiguousMessageKeepsPrevious() {
	poller := NewMessagePoller(s.mockBackend)
	player := api.Player{ID: "secret", DisplayName: "Ada"}
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), player).
		Return(&api.PlayerMessage{Message: "Describe", Image: ptr("http://img/1"), Phase: api.PhaseAwaitingPrompt}, nil)
	s.mockBackend.EXPECT().GetPlayerMessage(gomock.Any(), player).
		Return(nil, &api.MalformedResponseError{Op: "getPlayerMessage", Err: api.ErrAmbiguousMessage})

	s.Require().NoError(poller.Refresh(s.ctx, player))
	s.ErrorIs(poller.Refresh(s.ctx, player), api.ErrAmbiguousMessage)

	snap := poller.Snapshot()
	s.Equal(api.PhaseAwaitingPrompt, snap.Phase())
	s.Equal("http://img/1", *snap.Message.Image)
	s.ErrorIs(snap.Err, api.ErrAmbiguousMessage)
}

func (s *PollerTestSuite) TestDirectoryKeepsListOnFailure() {
	poller := NewDirectoryPoller(s.mockBackend)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return([]string{"foo"}, nil)
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return([]string{"bar"}, nil)
	s.mockBackend.EXPECT().ListOpenGames(gomock.Any()).Return([]string{"foo", "baz"}, nil)
	s.mockBackend.EXPECT().ListEndedGames(gomock.Any()).Return(nil, &api.NetworkError{Op: "listEndedGames", StatusCode: 503})

	s.Require().NoError(poller.Refresh(s.ctx))
	s.Error(poller.Refresh(s.ctx))

	snap := poller.Snapshot()
	s.Equal([]string{"foo", "baz"}, snap.OpenGames)
	s.Equal([]string{"bar"}, snap.EndedGames)
	s.True(api.IsRetryable(snap.Err))
}

func (s *PollerTestSuite) TestPipelineWithoutFileIssuesNoRequest() {
	pipeline := NewDrawingPipeline(s.mockBackend)
	_, err := pipeline.Submit(s.ctx, api.GameAction{GameName: "foo"}, nil)
	s.ErrorIs(err, api.ErrNoFileSelected)
}

func (s *PollerTestSuite) TestPipelineUploadFailureSkipsSubmit() {
	pipeline := NewDrawingPipeline(s.mockBackend)
	s.mockBackend.EXPECT().UploadDrawing(gomock.Any(), gomock.Any()).
		Return("", &api.NetworkError{Op: "uploadDrawing", StatusCode: 500})

	_, err := pipeline.Submit(s.ctx, api.GameAction{GameName: "foo"}, &Drawing{Name: "a.png", Content: strings.NewReader("x")})
	s.True(api.IsRetryable(err))
}

func (s *PollerTestSuite) TestPipelinePartialSubmission() {
	pipeline := NewDrawingPipeline(s.mockBackend)
	s.mockBackend.EXPECT().UploadDrawing(gomock.Any(), gomock.Any()).Return("http://img/9", nil)
	s.mockBackend.EXPECT().SubmitDrawing(gomock.Any(), gomock.Any()).
		Return(&api.RejectedError{Op: "submitDrawing", Message: "not expected this round"})

	url, err := pipeline.Submit(s.ctx, api.GameAction{GameName: "foo"}, &Drawing{Name: "a.png", Content: strings.NewReader("x")})
	var partial *PartialSubmissionError
	s.Require().True(errors.As(err, &partial))
	s.Equal("http://img/9", partial.URL)
	s.Equal("http://img/9", url)
	s.True(api.IsRejected(err))
}

func TestSelectDrawing(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/drawings/cat.png", []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := afero.WriteFile(fs, "/drawings/empty.png", nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := SelectDrawing(fs, ""); !errors.Is(err, api.ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got %v", err)
	}
	if _, err := SelectDrawing(fs, "/drawings/missing.png"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := SelectDrawing(fs, "/drawings/empty.png"); err == nil {
		t.Fatalf("expected error for empty file")
	}
	drawing, err := SelectDrawing(fs, "/drawings/cat.png")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if drawing.Name != "cat.png" {
		t.Fatalf("unexpected name %q", drawing.Name)
	}
}
