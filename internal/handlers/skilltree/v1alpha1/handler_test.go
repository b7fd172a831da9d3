package v1alpha1_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/orchestrators/session"
	sessionmock "github.com/KirkDiggler/skilltree-api/internal/orchestrators/session/mock"
	"github.com/KirkDiggler/skilltree-api/internal/progression"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockSession *sessionmock.MockService
	handler     *v1alpha1.Handler
	ctx         context.Context
	expiresAt   time.Time
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSession = sessionmock.NewMockService(s.ctrl)
	s.ctx = context.Background()
	s.expiresAt = time.Unix(1714567200, 0)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		SessionService: s.mockSession,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) newSession() *session.Session {
	state, err := progression.New(progression.Config{ID: "sess_1"})
	s.Require().NoError(err)

	return &session.Session{
		ID:        "sess_1",
		PlayerID:  "player_1",
		State:     state,
		Version:   1,
		ExpiresAt: s.expiresAt,
	}
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(code, st.Code())
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestStartSession() {
	s.mockSession.EXPECT().
		StartSession(s.ctx, &session.StartSessionInput{PlayerID: "player_1"}).
		Return(&session.StartSessionOutput{Session: s.newSession()}, nil)

	resp, err := s.handler.StartSession(s.ctx, &skilltreev1alpha1.StartSessionRequest{PlayerId: "player_1"})
	s.Require().NoError(err)

	got := resp.Session
	s.Equal("sess_1", got.Id)
	s.Equal("player_1", got.PlayerId)
	s.Equal(int32(20), got.SkillPoints)
	s.Equal(s.expiresAt.Unix(), got.ExpiresAt)
	s.Require().Len(got.Attributes, 6)
	s.Equal("strength", got.Attributes[0].Name)
	s.Equal("Strength", got.Attributes[0].DisplayName)
	s.Equal(int32(10), got.Attributes[0].Value)
	s.Require().Len(got.Abilities, 3)
	s.Equal("Double Jump", got.Abilities[0].DisplayName)
	s.False(got.Abilities[0].Unlocked)
	s.Empty(got.UnlockedSkillIds)
}

func (s *HandlerTestSuite) TestStartSessionMissingPlayer() {
	_, err := s.handler.StartSession(s.ctx, &skilltreev1alpha1.StartSessionRequest{})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestGetSessionNotFound() {
	s.mockSession.EXPECT().
		GetSession(s.ctx, &session.GetSessionInput{SessionID: "missing"}).
		Return(nil, errors.NotFound("session not found").WithMeta("session_id", "missing"))

	_, err := s.handler.GetSession(s.ctx, &skilltreev1alpha1.GetSessionRequest{SessionId: "missing"})
	s.requireCode(err, codes.NotFound)
	s.Equal("missing", errors.GetMeta(errors.FromGRPCError(err))["session_id"])
}

func (s *HandlerTestSuite) TestRequiredSessionID() {
	_, err := s.handler.GetSession(s.ctx, &skilltreev1alpha1.GetSessionRequest{})
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.EndSession(s.ctx, &skilltreev1alpha1.EndSessionRequest{})
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.GrantSkillPoints(s.ctx, &skilltreev1alpha1.GrantSkillPointsRequest{})
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{SkillId: "brawn"})
	s.requireCode(err, codes.InvalidArgument)

	_, err = s.handler.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{SessionId: "sess_1"})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestEndSession() {
	s.mockSession.EXPECT().
		EndSession(s.ctx, &session.EndSessionInput{SessionID: "sess_1"}).
		Return(&session.EndSessionOutput{Removed: true}, nil)

	resp, err := s.handler.EndSession(s.ctx, &skilltreev1alpha1.EndSessionRequest{SessionId: "sess_1"})
	s.Require().NoError(err)
	s.True(resp.Removed)
}

func (s *HandlerTestSuite) TestGrantSkillPoints() {
	sess := s.newSession()
	sess.State.GrantSkillPoint()
	sess.State.GrantSkillPoint()

	s.mockSession.EXPECT().
		GrantSkillPoints(s.ctx, &session.GrantSkillPointsInput{SessionID: "sess_1", Count: 2}).
		Return(&session.GrantSkillPointsOutput{Session: sess}, nil)

	resp, err := s.handler.GrantSkillPoints(s.ctx, &skilltreev1alpha1.GrantSkillPointsRequest{
		SessionId: "sess_1",
		Count:     2,
	})
	s.Require().NoError(err)
	s.Equal(int32(22), resp.Session.SkillPoints)
}

func (s *HandlerTestSuite) TestUnlockSkill() {
	c, err := catalog.Default()
	s.Require().NoError(err)
	nimble, err := c.Get("nimble")
	s.Require().NoError(err)
	jump, err := c.Get("double_jump")
	s.Require().NoError(err)

	sess := s.newSession()
	s.Require().True(sess.State.UnlockSkill(nimble))
	s.Require().True(sess.State.UnlockSkill(jump))

	s.mockSession.EXPECT().
		UnlockSkill(s.ctx, &session.UnlockSkillInput{SessionID: "sess_1", SkillID: "double_jump"}).
		Return(&session.UnlockSkillOutput{
			Unlocked: true,
			Status:   progression.StatusPurchased,
			Session:  sess,
		}, nil)

	resp, err := s.handler.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{
		SessionId: "sess_1",
		SkillId:   "double_jump",
	})
	s.Require().NoError(err)
	s.True(resp.Unlocked)
	s.Equal("purchased", resp.Status)
	s.Equal([]string{"nimble", "double_jump"}, resp.Session.UnlockedSkillIds)
	s.True(resp.Session.Abilities[0].Unlocked)
	s.Equal(int32(12), resp.Session.Attributes[1].Value)
}

func (s *HandlerTestSuite) TestUnlockSkillServiceError() {
	s.mockSession.EXPECT().
		UnlockSkill(s.ctx, gomock.Any()).
		Return(nil, errors.Aborted("session was modified concurrently"))

	_, err := s.handler.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{
		SessionId: "sess_1",
		SkillId:   "brawn",
	})
	s.requireCode(err, codes.Aborted)
}

func (s *HandlerTestSuite) TestListSkills() {
	c, err := catalog.Default()
	s.Require().NoError(err)
	iron, err := c.Get("iron_skin")
	s.Require().NoError(err)

	s.mockSession.EXPECT().
		ListSkills(s.ctx, &session.ListSkillsInput{Tier: 2, SessionID: "sess_1"}).
		Return(&session.ListSkillsOutput{Skills: []*session.SkillListing{
			{
				Skill:             iron,
				Description:       catalog.Describe(iron),
				PrerequisiteNames: c.PrerequisiteNames(iron),
				Status:            progression.StatusPrerequisitesNotMet,
			},
		}}, nil)

	resp, err := s.handler.ListSkills(s.ctx, &skilltreev1alpha1.ListSkillsRequest{Tier: 2, SessionId: "sess_1"})
	s.Require().NoError(err)
	s.Require().Len(resp.Skills, 1)

	got := resp.Skills[0]
	s.Equal("iron_skin", got.Id)
	s.Equal(int32(2), got.Tier)
	s.Equal([]string{"brawn"}, got.PrerequisiteIds)
	s.Equal([]string{"Brawn"}, got.PrerequisiteNames)
	s.Equal("prerequisites_not_met", got.Status)
	s.Require().Len(got.Effects, len(iron.Effects))
	s.Equal(catalog.Describe(iron), got.Description)
}

func (s *HandlerTestSuite) TestListSkillsNegativeTier() {
	_, err := s.handler.ListSkills(s.ctx, &skilltreev1alpha1.ListSkillsRequest{Tier: -2})
	s.requireCode(err, codes.InvalidArgument)
}
