package progressionsession

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/skilltree-api/internal/redis"
)

const (
	// Key pattern: progression_session:{id}
	sessionKeyPrefix = "progression_session:"
	// Channel pattern: progression_session:{id}:changes
	changesSuffix = ":changes"
	defaultTTL    = 24 * time.Hour

	// Error messages
	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
	errEventNil       = "event cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for progression sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session. It fails if the ID is already taken.
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	session := *input.Session
	session.Version = 1
	session.CreatedAt = now
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)

	sessionJSON, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(session.ID)
	created, err := r.client.SetNX(ctx, key, sessionJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.AlreadyExists("session already exists").WithMeta("session_id", session.ID)
	}

	return &CreateOutput{
		Session: &session,
	}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := r.buildKey(input.ID)

	sessionJSON, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("session not found").WithMeta("session_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	session, err := r.decode(sessionJSON)
	if err != nil {
		return nil, err
	}

	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("session has expired").WithMeta("session_id", input.ID)
	}

	return &GetOutput{
		Session: session,
	}, nil
}

// Update writes the session back if nobody else changed it since it was read.
// The remaining TTL is kept.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := r.buildKey(input.Session.ID)
	var updated Session

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFound("session not found").WithMeta("session_id", input.Session.ID)
			}
			return errors.Wrapf(err, "failed to read session for update")
		}

		current, err := r.decode(raw)
		if err != nil {
			return err
		}

		now := r.clock.Now()
		// A zero TTL would make the key persist
		if !now.Before(current.ExpiresAt) {
			return errors.NotFound("session has expired").WithMeta("session_id", input.Session.ID)
		}
		if current.Version != input.Session.Version {
			return errors.Aborted("session was modified concurrently").
				WithMeta("session_id", input.Session.ID).
				WithMeta("expected_version", input.Session.Version).
				WithMeta("actual_version", current.Version)
		}

		updated = *input.Session
		updated.Version = current.Version + 1
		updated.CreatedAt = current.CreatedAt
		updated.ExpiresAt = current.ExpiresAt
		updated.UpdatedAt = now

		body, err := json.Marshal(&updated)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal session")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, current.ExpiresAt.Sub(now))
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, key)
	if err != nil {
		var customErr *errors.Error
		if errors.As(err, &customErr) {
			return nil, customErr
		}
		if errors.Is(err, redis.TxFailedErr) {
			return nil, errors.Aborted("session was modified concurrently").
				WithMeta("session_id", input.Session.ID)
		}
		return nil, errors.Wrapf(err, "failed to update session in Redis")
	}

	return &UpdateOutput{
		Session: &updated,
	}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{
		Deleted: removed > 0,
	}, nil
}

// Publish sends a change to everyone watching the session
func (r *redisRepository) Publish(ctx context.Context, input PublishInput) (*PublishOutput, error) {
	if input.Event == nil {
		return nil, errors.InvalidArgument(errEventNil)
	}
	if input.Event.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	body, err := json.Marshal(input.Event)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal change event")
	}

	receivers, err := r.client.Publish(ctx, r.buildChannel(input.Event.SessionID), body).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to publish change event")
	}

	return &PublishOutput{
		Receivers: receivers,
	}, nil
}

// Subscribe starts delivering the session's changes. The subscription is
// confirmed before returning, so changes published afterwards are not lost.
func (r *redisRepository) Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	pubsub := r.client.Subscribe(ctx, r.buildChannel(input.SessionID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.Wrapf(err, "failed to subscribe to session changes")
	}

	var once sync.Once
	closeFn := func() {
		once.Do(func() { _ = pubsub.Close() })
	}

	events := make(chan *ChangeEvent)
	messages := pubsub.Channel()

	go func() {
		defer close(events)
		defer closeFn()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Warn("Dropping malformed change event",
						"session_id", input.SessionID,
						"error", err)
					continue
				}

				select {
				case events <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return &SubscribeOutput{
		Events: events,
		Close:  closeFn,
	}, nil
}

func (r *redisRepository) decode(raw []byte) (*Session, error) {
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}
	return &session, nil
}

// buildKey creates the Redis key for a session
func (r *redisRepository) buildKey(id string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id)
}

// buildChannel creates the pub/sub channel for a session's changes
func (r *redisRepository) buildChannel(id string) string {
	return r.buildKey(id) + changesSuffix
}
