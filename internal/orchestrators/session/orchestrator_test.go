package session_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/orchestrators/session"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
	"github.com/KirkDiggler/skilltree-api/internal/progression"
	progressionsession "github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session"
	progressionsessionmock "github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	mockRepo *progressionsessionmock.MockRepository
	catalog  *catalog.Catalog
	clock    *clock.Fixed
	svc      session.Service
	ctx      context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = progressionsessionmock.NewMockRepository(s.ctrl)
	s.clock = &clock.Fixed{T: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s.ctx = context.Background()

	var err error
	s.catalog, err = catalog.Default()
	s.Require().NoError(err)

	s.svc, err = session.NewOrchestrator(&session.Config{
		SessionRepo: s.mockRepo,
		Catalog:     s.catalog,
		IDGenerator: idgen.NewSequential("sess"),
		Clock:       s.clock,
		SessionTTL:  time.Hour,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// stored builds a session as the repository would return it
func (s *OrchestratorTestSuite) stored(points int32, unlocked ...skilltree.SkillID) *progressionsession.Session {
	state, err := progression.New(progression.Config{ID: "sess_1", SkillPoints: &points})
	s.Require().NoError(err)

	snap := state.Snapshot()
	snap.UnlockedSkills = append(snap.UnlockedSkills, unlocked...)

	return &progressionsession.Session{
		ID:        "sess_1",
		PlayerID:  "player_1",
		State:     snap,
		Version:   4,
		ExpiresAt: s.clock.T.Add(time.Hour),
	}
}

func (s *OrchestratorTestSuite) expectGet(stored *progressionsession.Session) *gomock.Call {
	return s.mockRepo.EXPECT().
		Get(s.ctx, progressionsession.GetInput{ID: stored.ID}).
		Return(&progressionsession.GetOutput{Session: stored}, nil)
}

// expectUpdate accepts the write and bumps the version like the store does
func (s *OrchestratorTestSuite) expectUpdate() *gomock.Call {
	return s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.UpdateInput) (*progressionsession.UpdateOutput, error) {
			updated := *input.Session
			updated.Version++
			return &progressionsession.UpdateOutput{Session: &updated}, nil
		})
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := session.NewOrchestrator(&session.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	negative := int32(-1)
	_, err = session.NewOrchestrator(&session.Config{
		SessionRepo:         s.mockRepo,
		Catalog:             s.catalog,
		IDGenerator:         idgen.NewSequential("sess"),
		Clock:               s.clock,
		StartingSkillPoints: &negative,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	tooMany := int32(progression.MaxSkillPoints + 1)
	_, err = session.NewOrchestrator(&session.Config{
		SessionRepo:         s.mockRepo,
		Catalog:             s.catalog,
		IDGenerator:         idgen.NewSequential("sess"),
		Clock:               s.clock,
		StartingSkillPoints: &tooMany,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestStartSession() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.CreateInput) (*progressionsession.CreateOutput, error) {
			s.Equal("sess_1", input.Session.ID)
			s.Equal("player_1", input.Session.PlayerID)
			s.Equal(time.Hour, input.TTL)
			s.Equal(int32(progression.DefaultSkillPoints), input.Session.State.SkillPoints)

			created := *input.Session
			created.Version = 1
			created.ExpiresAt = s.clock.T.Add(input.TTL)
			return &progressionsession.CreateOutput{Session: &created}, nil
		})

	out, err := s.svc.StartSession(s.ctx, &session.StartSessionInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Equal("sess_1", out.Session.ID)
	s.Equal(int64(1), out.Session.Version)
	s.Equal(int32(10), out.Session.State.Strength())
	s.Equal(int32(progression.DefaultSkillPoints), out.Session.State.SkillPoints())
}

func (s *OrchestratorTestSuite) TestStartSessionOverridesPoints() {
	points := int32(3)
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.CreateInput) (*progressionsession.CreateOutput, error) {
			s.Equal(int32(3), input.Session.State.SkillPoints)
			return &progressionsession.CreateOutput{Session: input.Session}, nil
		})

	out, err := s.svc.StartSession(s.ctx, &session.StartSessionInput{PlayerID: "player_1", SkillPoints: &points})
	s.Require().NoError(err)
	s.Equal(int32(3), out.Session.State.SkillPoints())
}

func (s *OrchestratorTestSuite) TestStartSessionValidation() {
	negative := int32(-5)

	_, err := s.svc.StartSession(s.ctx, &session.StartSessionInput{SkillPoints: &negative})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Contains(fields, "player_id")
	s.Contains(fields, "skill_points")
}

func (s *OrchestratorTestSuite) TestStartSessionRejectsBalanceAboveCap() {
	for _, points := range []int32{progression.MaxSkillPoints + 1, math.MaxInt32} {
		_, err := s.svc.StartSession(s.ctx, &session.StartSessionInput{
			PlayerID:    "player_1",
			SkillPoints: &points,
		})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
		s.Contains(errors.GetMeta(err)["validation_errors"], "skill_points")
	}
}

func (s *OrchestratorTestSuite) TestGetSessionNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, progressionsession.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("session not found"))

	_, err := s.svc.GetSession(s.ctx, &session.GetSessionInput{SessionID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetSessionCorruptState() {
	stored := s.stored(5)
	stored.State.SkillPoints = -1
	s.expectGet(stored)

	_, err := s.svc.GetSession(s.ctx, &session.GetSessionInput{SessionID: "sess_1"})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestGrantSkillPoints() {
	s.expectGet(s.stored(20))
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.UpdateInput) (*progressionsession.UpdateOutput, error) {
			s.Equal(int64(4), input.Session.Version)
			s.Equal(int32(23), input.Session.State.SkillPoints)
			updated := *input.Session
			updated.Version = 5
			return &progressionsession.UpdateOutput{Session: &updated}, nil
		})
	s.mockRepo.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.PublishInput) (*progressionsession.PublishOutput, error) {
			s.Equal(progression.EventSkillPointGranted, input.Event.Type)
			s.Equal(int64(5), input.Event.Version)
			s.Equal(int32(23), input.Event.SkillPoints)
			return &progressionsession.PublishOutput{}, nil
		}).
		Times(3)

	out, err := s.svc.GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1", Count: 3})
	s.Require().NoError(err)
	s.Equal(int32(23), out.Session.State.SkillPoints())
	s.Equal(int64(5), out.Session.Version)
}

func (s *OrchestratorTestSuite) TestGrantSkillPointsDefaultsToOne() {
	s.expectGet(s.stored(0))
	s.expectUpdate()
	s.mockRepo.EXPECT().Publish(s.ctx, gomock.Any()).Return(&progressionsession.PublishOutput{}, nil)

	out, err := s.svc.GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(int32(1), out.Session.State.SkillPoints())
}

func (s *OrchestratorTestSuite) TestGrantSkillPointsBadCount() {
	for _, count := range []int32{-1, session.MaxGrantCount + 1} {
		_, err := s.svc.GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1", Count: count})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	}
}

func (s *OrchestratorTestSuite) TestGrantSkillPointsStopsAtCap() {
	s.expectGet(s.stored(progression.MaxSkillPoints - 1))
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.UpdateInput) (*progressionsession.UpdateOutput, error) {
			s.Equal(int32(progression.MaxSkillPoints), input.Session.State.SkillPoints)
			updated := *input.Session
			updated.Version++
			return &progressionsession.UpdateOutput{Session: &updated}, nil
		})
	s.mockRepo.EXPECT().Publish(s.ctx, gomock.Any()).Return(&progressionsession.PublishOutput{}, nil)

	out, err := s.svc.GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1", Count: 3})
	s.Require().NoError(err)
	s.Equal(int32(progression.MaxSkillPoints), out.Session.State.SkillPoints())
}

func (s *OrchestratorTestSuite) TestGrantSkillPointsAtCapSkipsWrite() {
	s.expectGet(s.stored(progression.MaxSkillPoints))

	out, err := s.svc.GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(int32(progression.MaxSkillPoints), out.Session.State.SkillPoints())
	s.Equal(int64(4), out.Session.Version)
}

func (s *OrchestratorTestSuite) TestGrantSkillPointsPublishFailureIsNotFatal() {
	s.expectGet(s.stored(0))
	s.expectUpdate()
	s.mockRepo.EXPECT().
		Publish(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	out, err := s.svc.GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(int32(1), out.Session.State.SkillPoints())
}

func (s *OrchestratorTestSuite) TestUnlockSkill() {
	s.expectGet(s.stored(20))
	s.expectUpdate()
	s.mockRepo.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.PublishInput) (*progressionsession.PublishOutput, error) {
			s.Equal(progression.EventSkillUnlocked, input.Event.Type)
			s.Equal("brawn", input.Event.SkillID)
			return &progressionsession.PublishOutput{Receivers: 1}, nil
		})

	out, err := s.svc.UnlockSkill(s.ctx, &session.UnlockSkillInput{SessionID: "sess_1", SkillID: "brawn"})
	s.Require().NoError(err)
	s.True(out.Unlocked)
	s.Equal(progression.StatusPurchased, out.Status)
	s.Equal(int32(12), out.Session.State.Strength())
	s.Equal(int32(18), out.Session.State.SkillPoints())
	s.Equal(int64(5), out.Session.Version)
}

func (s *OrchestratorTestSuite) TestUnlockSkillRejected() {
	testCases := []struct {
		name     string
		stored   *progressionsession.Session
		skillID  skilltree.SkillID
		expected progression.PurchaseStatus
	}{
		{
			name:     "cannot afford",
			stored:   s.stored(1),
			skillID:  "brawn",
			expected: progression.StatusCannotAfford,
		},
		{
			name:     "missing prerequisite",
			stored:   s.stored(20),
			skillID:  "iron_skin",
			expected: progression.StatusPrerequisitesNotMet,
		},
		{
			name:     "already purchased",
			stored:   s.stored(20, "brawn"),
			skillID:  "brawn",
			expected: progression.StatusPurchased,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectGet(tc.stored)

			out, err := s.svc.UnlockSkill(s.ctx, &session.UnlockSkillInput{SessionID: "sess_1", SkillID: tc.skillID})
			s.Require().NoError(err)
			s.False(out.Unlocked)
			s.Equal(tc.expected, out.Status)
			s.Equal(int64(4), out.Session.Version)
			s.Equal(tc.stored.State.SkillPoints, out.Session.State.SkillPoints())
		})
	}
}

func (s *OrchestratorTestSuite) TestUnlockSkillUnknownSkill() {
	_, err := s.svc.UnlockSkill(s.ctx, &session.UnlockSkillInput{SessionID: "sess_1", SkillID: "fireball"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal("fireball", errors.GetMeta(err)["skill_id"])
}

func (s *OrchestratorTestSuite) TestUnlockSkillRetriesOnConflict() {
	first := s.stored(20)
	second := s.stored(20)
	second.Version = 5
	second.State.SkillPoints = 1

	gomock.InOrder(
		s.expectGet(first),
		s.mockRepo.EXPECT().
			Update(s.ctx, gomock.Any()).
			Return(nil, errors.Aborted("session was modified concurrently")),
		s.expectGet(second),
	)

	out, err := s.svc.UnlockSkill(s.ctx, &session.UnlockSkillInput{SessionID: "sess_1", SkillID: "brawn"})
	s.Require().NoError(err)
	s.False(out.Unlocked)
	s.Equal(progression.StatusCannotAfford, out.Status)
	s.Equal(int64(5), out.Session.Version)
}

func (s *OrchestratorTestSuite) TestUnlockSkillGivesUpAfterRetries() {
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		DoAndReturn(func(context.Context, progressionsession.GetInput) (*progressionsession.GetOutput, error) {
			return &progressionsession.GetOutput{Session: s.stored(20)}, nil
		}).
		Times(3)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Aborted("session was modified concurrently")).
		Times(3)

	_, err := s.svc.UnlockSkill(s.ctx, &session.UnlockSkillInput{SessionID: "sess_1", SkillID: "brawn"})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
}

func (s *OrchestratorTestSuite) TestEndSession() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, progressionsession.DeleteInput{ID: "sess_1"}).
		Return(&progressionsession.DeleteOutput{Deleted: true}, nil)
	s.mockRepo.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input progressionsession.PublishInput) (*progressionsession.PublishOutput, error) {
			s.Equal(session.EventSessionEnded, input.Event.Type)
			return &progressionsession.PublishOutput{}, nil
		})

	out, err := s.svc.EndSession(s.ctx, &session.EndSessionInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.True(out.Removed)
}

func (s *OrchestratorTestSuite) TestEndSessionMissing() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, progressionsession.DeleteInput{ID: "sess_1"}).
		Return(&progressionsession.DeleteOutput{Deleted: false}, nil)

	_, err := s.svc.EndSession(s.ctx, &session.EndSessionInput{SessionID: "sess_1"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListSkills() {
	out, err := s.svc.ListSkills(s.ctx, &session.ListSkillsInput{Tier: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Skills, 3)
	s.Equal(skilltree.SkillID("iron_skin"), out.Skills[0].Skill.ID)
	s.Equal([]string{"Brawn"}, out.Skills[0].PrerequisiteNames)
	s.NotEmpty(out.Skills[0].Description)
	s.Empty(out.Skills[0].Status)

	all, err := s.svc.ListSkills(s.ctx, &session.ListSkillsInput{})
	s.Require().NoError(err)
	s.Len(all.Skills, 9)
}

func (s *OrchestratorTestSuite) TestListSkillsWithSession() {
	s.expectGet(s.stored(3, "brawn"))

	out, err := s.svc.ListSkills(s.ctx, &session.ListSkillsInput{Tier: 2, SessionID: "sess_1"})
	s.Require().NoError(err)

	statuses := make(map[skilltree.SkillID]progression.PurchaseStatus)
	for _, l := range out.Skills {
		statuses[l.Skill.ID] = l.Status
	}
	s.Equal(map[skilltree.SkillID]progression.PurchaseStatus{
		"iron_skin":     progression.StatusAvailable,
		"silver_tongue": progression.StatusPrerequisitesNotMet,
		"double_jump":   progression.StatusPrerequisitesNotMet,
	}, statuses)
}

func (s *OrchestratorTestSuite) TestListSkillsNegativeTier() {
	_, err := s.svc.ListSkills(s.ctx, &session.ListSkillsInput{Tier: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestWatchSession() {
	events := make(chan *progressionsession.ChangeEvent)
	s.expectGet(s.stored(20))
	s.mockRepo.EXPECT().
		Subscribe(s.ctx, progressionsession.SubscribeInput{SessionID: "sess_1"}).
		Return(&progressionsession.SubscribeOutput{Events: events, Close: func() {}}, nil)

	out, err := s.svc.WatchSession(s.ctx, &session.WatchSessionInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.NotNil(out.Events)
	s.NotNil(out.Close)
}

func (s *OrchestratorTestSuite) TestWatchSessionMissing() {
	s.mockRepo.EXPECT().
		Get(s.ctx, progressionsession.GetInput{ID: "sess_1"}).
		Return(nil, errors.NotFound("session not found"))

	_, err := s.svc.WatchSession(s.ctx, &session.WatchSessionInput{SessionID: "sess_1"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}
