// Package session implements the progression session orchestrator: it
// hydrates a player's progression state from the session store, runs the
// purchase protocol on it and writes it back.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/skilltree-api/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
	"github.com/KirkDiggler/skilltree-api/internal/progression"
	progressionsession "github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session"
)

const (
	// DefaultSessionTTL is used when no TTL is configured
	DefaultSessionTTL = 24 * time.Hour

	// MaxGrantCount caps a single GrantSkillPoints call
	MaxGrantCount = 1000

	// EventSessionEnded is published when a session is removed
	EventSessionEnded = "session.ended"

	// maxUpdateAttempts bounds the read-mutate-write loop under contention
	maxUpdateAttempts = 3
)

// Service defines the interface for progression session operations
type Service interface {
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	GrantSkillPoints(ctx context.Context, input *GrantSkillPointsInput) (*GrantSkillPointsOutput, error)
	UnlockSkill(ctx context.Context, input *UnlockSkillInput) (*UnlockSkillOutput, error)

	ListSkills(ctx context.Context, input *ListSkillsInput) (*ListSkillsOutput, error)
	WatchSession(ctx context.Context, input *WatchSessionInput) (*WatchSessionOutput, error)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	SessionRepo progressionsession.Repository
	Catalog     *catalog.Catalog
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// StartingSkillPoints seeds new sessions; nil means the progression default
	StartingSkillPoints *int32
	SessionTTL          time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.StartingSkillPoints != nil {
		errors.ValidateRange("StartingSkillPoints", int64(*c.StartingSkillPoints), 0, progression.MaxSkillPoints, vb)
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo progressionsession.Repository
	catalog     *catalog.Catalog
	idGen       idgen.Generator
	clock       clock.Clock

	startingSkillPoints *int32
	sessionTTL          time.Duration
}

// NewOrchestrator creates a new session orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		sessionRepo:         cfg.SessionRepo,
		catalog:             cfg.Catalog,
		idGen:               cfg.IDGenerator,
		clock:               cfg.Clock,
		startingSkillPoints: cfg.StartingSkillPoints,
		sessionTTL:          ttl,
	}, nil
}

// StartSession creates a fresh progression state and stores it
func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	if input.SkillPoints != nil {
		errors.ValidateRange("skill_points", int64(*input.SkillPoints), 0, progression.MaxSkillPoints, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	points := o.startingSkillPoints
	if input.SkillPoints != nil {
		points = input.SkillPoints
	}

	id := o.idGen.Generate()
	state, err := progression.New(progression.Config{
		ID:          id,
		SkillPoints: points,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create progression state")
	}

	createOutput, err := o.sessionRepo.Create(ctx, progressionsession.CreateInput{
		Session: &progressionsession.Session{
			ID:       id,
			PlayerID: input.PlayerID,
			State:    state.Snapshot(),
		},
		TTL: o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	slog.Info("Progression session started",
		"session_id", id,
		"player_id", input.PlayerID,
		"skill_points", state.SkillPoints(),
	)

	return &StartSessionOutput{
		Session: toSession(createOutput.Session, state),
	}, nil
}

// GetSession loads a session
func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// EndSession removes a session and tells watchers it is gone
func (o *orchestrator) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	deleteOutput, err := o.sessionRepo.Delete(ctx, progressionsession.DeleteInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete session")
	}
	if !deleteOutput.Deleted {
		return nil, errors.NotFound("session not found").WithMeta("session_id", input.SessionID)
	}

	o.publish(ctx, &progressionsession.ChangeEvent{
		SessionID:  input.SessionID,
		Type:       EventSessionEnded,
		OccurredAt: o.clock.Now(),
	})

	slog.Info("Progression session ended", "session_id", input.SessionID)

	return &EndSessionOutput{
		Removed: true,
	}, nil
}

// GrantSkillPoints adds points to the balance, one notification per point
func (o *orchestrator) GrantSkillPoints(ctx context.Context, input *GrantSkillPointsInput) (*GrantSkillPointsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	count := input.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxGrantCount {
		return nil, errors.InvalidArgumentf("count must be between 1 and %d, got %d", MaxGrantCount, count).
			WithMeta("count", count)
	}

	session, err := o.mutate(ctx, input.SessionID, func(state *progression.State) error {
		for i := int32(0); i < count; i++ {
			state.GrantSkillPoint()
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to grant skill points")
	}

	slog.Info("Skill points granted",
		"session_id", input.SessionID,
		"count", count,
		"skill_points", session.State.SkillPoints(),
	)

	return &GrantSkillPointsOutput{
		Session: session,
	}, nil
}

// UnlockSkill runs the purchase protocol for one catalog skill. A rejected
// purchase is not an error; the output status explains it.
func (o *orchestrator) UnlockSkill(ctx context.Context, input *UnlockSkillInput) (*UnlockSkillOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", input.SessionID, vb)
	errors.ValidateRequired("skill_id", string(input.SkillID), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	skill, err := o.catalog.Get(input.SkillID)
	if err != nil {
		return nil, err
	}

	var unlocked bool
	var status progression.PurchaseStatus
	session, err := o.mutate(ctx, input.SessionID, func(state *progression.State) error {
		status = state.PurchaseStatus(skill)
		unlocked = state.UnlockSkill(skill)
		if unlocked {
			status = progression.StatusPurchased
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to unlock skill")
	}

	if unlocked {
		slog.Info("Skill unlocked",
			"session_id", input.SessionID,
			"skill_id", skill.ID,
			"cost", skill.Cost,
			"skill_points", session.State.SkillPoints(),
		)
	} else {
		slog.Debug("Skill purchase rejected",
			"session_id", input.SessionID,
			"skill_id", skill.ID,
			"status", status,
		)
	}

	return &UnlockSkillOutput{
		Unlocked: unlocked,
		Status:   status,
		Session:  session,
	}, nil
}

// ListSkills lists catalog skills, optionally with their status for a session
func (o *orchestrator) ListSkills(ctx context.Context, input *ListSkillsInput) (*ListSkillsOutput, error) {
	if input == nil {
		input = &ListSkillsInput{}
	}
	if input.Tier < 0 {
		return nil, errors.InvalidArgumentf("tier must not be negative, got %d", input.Tier)
	}

	var state *progression.State
	if input.SessionID != "" {
		session, err := o.load(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}
		state = session.State
	}

	skills := o.catalog.All()
	if input.Tier > 0 {
		skills = o.catalog.SkillsInTier(input.Tier)
	}

	listings := make([]*SkillListing, 0, len(skills))
	for _, skill := range skills {
		listing := &SkillListing{
			Skill:             skill,
			Description:       catalog.Describe(skill),
			PrerequisiteNames: o.catalog.PrerequisiteNames(skill),
		}
		if state != nil {
			listing.Status = state.PurchaseStatus(skill)
		}
		listings = append(listings, listing)
	}

	return &ListSkillsOutput{
		Skills: listings,
	}, nil
}

// WatchSession subscribes to a session's changes
func (o *orchestrator) WatchSession(ctx context.Context, input *WatchSessionInput) (*WatchSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	if _, err := o.load(ctx, input.SessionID); err != nil {
		return nil, err
	}

	subscribeOutput, err := o.sessionRepo.Subscribe(ctx, progressionsession.SubscribeInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to watch session")
	}

	slog.Debug("Watching progression session", "session_id", input.SessionID)

	return &WatchSessionOutput{
		Events: subscribeOutput.Events,
		Close:  subscribeOutput.Close,
	}, nil
}

func (o *orchestrator) load(ctx context.Context, sessionID string) (*Session, error) {
	getOutput, err := o.sessionRepo.Get(ctx, progressionsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	state, err := restore(getOutput.Session)
	if err != nil {
		return nil, err
	}

	return toSession(getOutput.Session, state), nil
}

// mutate runs fn against a freshly loaded state and writes the result back
// with a version check, retrying from the top when another writer won. A
// mutation that emits no change is not written.
func (o *orchestrator) mutate(ctx context.Context, sessionID string, fn func(*progression.State) error) (*Session, error) {
	for attempt := 1; ; attempt++ {
		getOutput, err := o.sessionRepo.Get(ctx, progressionsession.GetInput{ID: sessionID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get session")
		}
		stored := getOutput.Session

		state, err := restore(stored)
		if err != nil {
			return nil, err
		}

		var changes []progression.Change
		listenerID := state.Subscribe(func(c progression.Change) {
			changes = append(changes, c)
		})
		err = fn(state)
		_ = state.Unsubscribe(listenerID)
		if err != nil {
			return nil, err
		}

		if len(changes) == 0 {
			return toSession(stored, state), nil
		}

		next := *stored
		next.State = state.Snapshot()
		updateOutput, err := o.sessionRepo.Update(ctx, progressionsession.UpdateInput{Session: &next})
		if err != nil {
			if errors.IsAborted(err) && attempt < maxUpdateAttempts {
				slog.Debug("Session update conflict, retrying",
					"session_id", sessionID,
					"attempt", attempt,
				)
				continue
			}
			return nil, errors.Wrap(err, "failed to update session")
		}

		o.publishChanges(ctx, updateOutput.Session, changes)

		return toSession(updateOutput.Session, state), nil
	}
}

func (o *orchestrator) publishChanges(ctx context.Context, stored *progressionsession.Session, changes []progression.Change) {
	now := o.clock.Now()
	for _, c := range changes {
		o.publish(ctx, &progressionsession.ChangeEvent{
			SessionID:   stored.ID,
			Type:        c.Type,
			SkillID:     string(c.SkillID),
			SkillPoints: stored.State.SkillPoints,
			Version:     stored.Version,
			OccurredAt:  now,
		})
	}
}

// publish is best effort; the write already succeeded
func (o *orchestrator) publish(ctx context.Context, event *progressionsession.ChangeEvent) {
	if _, err := o.sessionRepo.Publish(ctx, progressionsession.PublishInput{Event: event}); err != nil {
		slog.Warn("Failed to publish session change",
			"session_id", event.SessionID,
			"type", event.Type,
			"error", err,
		)
	}
}

func restore(stored *progressionsession.Session) (*progression.State, error) {
	if stored == nil || stored.State == nil {
		return nil, errors.Internal("stored session has no progression state")
	}

	state, err := progression.Restore(stored.State)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored session is corrupt").
			WithMeta("session_id", stored.ID)
	}
	return state, nil
}

func toSession(stored *progressionsession.Session, state *progression.State) *Session {
	return &Session{
		ID:        stored.ID,
		PlayerID:  stored.PlayerID,
		State:     state,
		Version:   stored.Version,
		ExpiresAt: stored.ExpiresAt,
	}
}
