// Package progressionsession stores live progression sessions in Redis and
// fans session changes out to watchers
package progressionsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/progression"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=progressionsessionmock github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session Repository

// Session is one player's progression as stored between requests
type Session struct {
	ID       string                `json:"id"`
	PlayerID string                `json:"player_id"`
	State    *progression.Snapshot `json:"state"`

	// Version increases by one on every successful Update
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChangeEvent is published after a session changes
type ChangeEvent struct {
	SessionID   string    `json:"session_id"`
	Type        string    `json:"type"`
	SkillID     string    `json:"skill_id,omitempty"`
	SkillPoints int32     `json:"skill_points"`
	Version     int64     `json:"version"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	Session *Session
	TTL     time.Duration // How long the session should live
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *Session
}

// UpdateInput carries the mutated session. Session.Version must match the
// stored version or the update is aborted.
type UpdateInput struct {
	Session *Session
}

// UpdateOutput contains the stored session with its new version
type UpdateOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput reports whether a session was removed
type DeleteOutput struct {
	Deleted bool
}

// PublishInput contains a change to fan out
type PublishInput struct {
	Event *ChangeEvent
}

// PublishOutput reports how many subscribers received the change
type PublishOutput struct {
	Receivers int64
}

// SubscribeInput contains parameters for watching a session
type SubscribeInput struct {
	SessionID string
}

// SubscribeOutput delivers changes until Close is called or the subscribe
// context ends. Events is closed afterwards.
type SubscribeOutput struct {
	Events <-chan *ChangeEvent
	Close  func()
}

// Repository defines storage operations for progression sessions
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
	Publish(ctx context.Context, input PublishInput) (*PublishOutput, error)
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
}
