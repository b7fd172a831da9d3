package main

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/config"
	"github.com/KirkDiggler/skilltree-api/internal/orchestrators/session"
	"github.com/KirkDiggler/skilltree-api/internal/progression"
	"github.com/KirkDiggler/skilltree-api/internal/testutils"
)

type ServerTestSuite struct {
	suite.Suite

	cleanupRedis func()
	cancel       context.CancelFunc
	served       chan error
	conn         *grpc.ClientConn
	client       skilltreev1alpha1.ProgressionServiceClient
	ctx          context.Context
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	redisClient, _, cleanup := testutils.CreateTestRedis(s.T())
	s.cleanupRedis = cleanup

	cfg := &config.Config{
		Session: config.SessionConfig{
			StartingSkillPoints: 20,
			TTL:                 time.Hour,
		},
	}
	handler, err := newHandler(cfg, redisClient)
	s.Require().NoError(err)

	srv, healthServer := newGRPCServer(handler)
	lis := bufconn.Listen(1 << 20)

	var serveCtx context.Context
	serveCtx, s.cancel = context.WithCancel(context.Background())
	s.served = make(chan error, 1)
	go func() {
		s.served <- serve(serveCtx, srv, healthServer, lis, 5*time.Second)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	s.client = skilltreev1alpha1.NewProgressionServiceClient(s.conn)
	s.ctx = context.Background()
}

func (s *ServerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.cancel()

	select {
	case err := <-s.served:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("server did not stop")
	}

	s.cleanupRedis()
}

func (s *ServerTestSuite) startSession() *skilltreev1alpha1.Session {
	resp, err := s.client.StartSession(s.ctx, &skilltreev1alpha1.StartSessionRequest{PlayerId: "player_1"})
	s.Require().NoError(err)
	return resp.Session
}

func (s *ServerTestSuite) TestSessionLifecycle() {
	started := s.startSession()
	s.NotEmpty(started.Id)
	s.Equal(int32(20), started.SkillPoints)
	s.Equal(int64(1), started.Version)

	listed, err := s.client.ListSkills(s.ctx, &skilltreev1alpha1.ListSkillsRequest{
		Tier:      1,
		SessionId: started.Id,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(listed.Skills)
	s.Equal("brawn", listed.Skills[0].Id)
	s.Equal("available", listed.Skills[0].Status)

	unlocked, err := s.client.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{
		SessionId: started.Id,
		SkillId:   "brawn",
	})
	s.Require().NoError(err)
	s.True(unlocked.Unlocked)
	s.Equal([]string{"brawn"}, unlocked.Session.UnlockedSkillIds)
	s.Less(unlocked.Session.SkillPoints, started.SkillPoints)
	s.Equal(int64(2), unlocked.Session.Version)

	again, err := s.client.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{
		SessionId: started.Id,
		SkillId:   "brawn",
	})
	s.Require().NoError(err)
	s.False(again.Unlocked)
	s.Equal("purchased", again.Status)
	s.Equal(unlocked.Session.SkillPoints, again.Session.SkillPoints)

	got, err := s.client.GetSession(s.ctx, &skilltreev1alpha1.GetSessionRequest{SessionId: started.Id})
	s.Require().NoError(err)
	s.Equal(unlocked.Session.SkillPoints, got.Session.SkillPoints)
	s.Equal(int64(2), got.Session.Version)
}

func (s *ServerTestSuite) TestUnknownSkill() {
	started := s.startSession()

	_, err := s.client.UnlockSkill(s.ctx, &skilltreev1alpha1.UnlockSkillRequest{
		SessionId: started.Id,
		SkillId:   "flight",
	})
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *ServerTestSuite) TestGetMissingSession() {
	_, err := s.client.GetSession(s.ctx, &skilltreev1alpha1.GetSessionRequest{SessionId: "sess_missing"})
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *ServerTestSuite) TestWatchSession() {
	started := s.startSession()

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	stream, err := s.client.WatchSession(ctx, &skilltreev1alpha1.WatchSessionRequest{SessionId: started.Id})
	s.Require().NoError(err)

	header, err := stream.Header()
	s.Require().NoError(err)
	s.Equal([]string{started.Id}, header.Get("x-session-id"))

	_, err = s.client.GrantSkillPoints(s.ctx, &skilltreev1alpha1.GrantSkillPointsRequest{
		SessionId: started.Id,
		Count:     2,
	})
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		event, err := stream.Recv()
		s.Require().NoError(err)
		s.Equal(progression.EventSkillPointGranted, event.Type)
		s.Equal(int32(22), event.SkillPoints)
		s.Equal(int64(2), event.Version)
	}

	ended, err := s.client.EndSession(s.ctx, &skilltreev1alpha1.EndSessionRequest{SessionId: started.Id})
	s.Require().NoError(err)
	s.True(ended.Removed)

	event, err := stream.Recv()
	s.Require().NoError(err)
	s.Equal(session.EventSessionEnded, event.Type)

	_, err = stream.Recv()
	s.Equal(io.EOF, err)
}

func (s *ServerTestSuite) TestWatchMissingSession() {
	stream, err := s.client.WatchSession(s.ctx, &skilltreev1alpha1.WatchSessionRequest{SessionId: "sess_missing"})
	s.Require().NoError(err)

	_, err = stream.Recv()
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *ServerTestSuite) TestHealth() {
	resp, err := grpc_health_v1.NewHealthClient(s.conn).Check(s.ctx, &grpc_health_v1.HealthCheckRequest{
		Service: skilltreev1alpha1.ProgressionServiceName,
	})
	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = newLogger(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}
