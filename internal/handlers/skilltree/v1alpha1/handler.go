// Package v1alpha1 handles the skilltree progression grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/orchestrators/session"
)

// HandlerConfig holds dependencies for the progression handler
type HandlerConfig struct {
	SessionService session.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.SessionService == nil {
		return errors.InvalidArgument("session service is required")
	}
	return nil
}

// Handler implements the progression gRPC service
type Handler struct {
	skilltreev1alpha1.UnimplementedProgressionServiceServer
	sessionService session.Service
}

// NewHandler creates a new progression handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		sessionService: cfg.SessionService,
	}, nil
}

// StartSession creates a new progression session for a player
func (h *Handler) StartSession(
	ctx context.Context,
	req *skilltreev1alpha1.StartSessionRequest,
) (*skilltreev1alpha1.StartSessionResponse, error) {
	if req.PlayerId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}

	output, err := h.sessionService.StartSession(ctx, &session.StartSessionInput{
		PlayerID:    req.PlayerId,
		SkillPoints: req.SkillPoints,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &skilltreev1alpha1.StartSessionResponse{
		Session: convertSessionToProto(output.Session),
	}, nil
}

// GetSession loads a session
func (h *Handler) GetSession(
	ctx context.Context,
	req *skilltreev1alpha1.GetSessionRequest,
) (*skilltreev1alpha1.GetSessionResponse, error) {
	if req.SessionId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.GetSession(ctx, &session.GetSessionInput{
		SessionID: req.SessionId,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &skilltreev1alpha1.GetSessionResponse{
		Session: convertSessionToProto(output.Session),
	}, nil
}

// EndSession removes a session
func (h *Handler) EndSession(
	ctx context.Context,
	req *skilltreev1alpha1.EndSessionRequest,
) (*skilltreev1alpha1.EndSessionResponse, error) {
	if req.SessionId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.EndSession(ctx, &session.EndSessionInput{
		SessionID: req.SessionId,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &skilltreev1alpha1.EndSessionResponse{
		Removed: output.Removed,
	}, nil
}

// GrantSkillPoints adds skill points to a session
func (h *Handler) GrantSkillPoints(
	ctx context.Context,
	req *skilltreev1alpha1.GrantSkillPointsRequest,
) (*skilltreev1alpha1.GrantSkillPointsResponse, error) {
	if req.SessionId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.GrantSkillPoints(ctx, &session.GrantSkillPointsInput{
		SessionID: req.SessionId,
		Count:     req.Count,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &skilltreev1alpha1.GrantSkillPointsResponse{
		Session: convertSessionToProto(output.Session),
	}, nil
}

// UnlockSkill purchases a skill for a session
func (h *Handler) UnlockSkill(
	ctx context.Context,
	req *skilltreev1alpha1.UnlockSkillRequest,
) (*skilltreev1alpha1.UnlockSkillResponse, error) {
	if req.SessionId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}
	if req.SkillId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("skill_id is required"))
	}

	output, err := h.sessionService.UnlockSkill(ctx, &session.UnlockSkillInput{
		SessionID: req.SessionId,
		SkillID:   skilltree.SkillID(req.SkillId),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &skilltreev1alpha1.UnlockSkillResponse{
		Unlocked: output.Unlocked,
		Status:   string(output.Status),
		Session:  convertSessionToProto(output.Session),
	}, nil
}

// ListSkills lists catalog skills, with purchase status when a session is given
func (h *Handler) ListSkills(
	ctx context.Context,
	req *skilltreev1alpha1.ListSkillsRequest,
) (*skilltreev1alpha1.ListSkillsResponse, error) {
	if req.Tier < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("tier must not be negative"))
	}

	output, err := h.sessionService.ListSkills(ctx, &session.ListSkillsInput{
		Tier:      req.Tier,
		SessionID: req.SessionId,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	skills := make([]*skilltreev1alpha1.Skill, 0, len(output.Skills))
	for _, listing := range output.Skills {
		skills = append(skills, convertSkillListingToProto(listing))
	}

	return &skilltreev1alpha1.ListSkillsResponse{
		Skills: skills,
	}, nil
}

// WatchSession streams a session's changes until the session ends or the
// client goes away
func (h *Handler) WatchSession(
	req *skilltreev1alpha1.WatchSessionRequest,
	stream grpc.ServerStreamingServer[skilltreev1alpha1.SessionEvent],
) error {
	if req.SessionId == "" {
		return errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	ctx := stream.Context()
	output, err := h.sessionService.WatchSession(ctx, &session.WatchSessionInput{
		SessionID: req.SessionId,
	})
	if err != nil {
		return errors.ToGRPCError(err)
	}
	defer output.Close()

	// Headers tell the client the subscription is live
	if err := stream.SendHeader(metadata.Pairs("x-session-id", req.SessionId)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-output.Events:
			if !ok {
				return nil
			}
			if err := stream.Send(convertEventToProto(event)); err != nil {
				return err
			}
			if event.Type == session.EventSessionEnded {
				return nil
			}
		}
	}
}
