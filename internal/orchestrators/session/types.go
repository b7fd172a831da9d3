package session

import (
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/progression"
	progressionsession "github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session"
)

// Session is a live progression session with its hydrated state
type Session struct {
	ID        string
	PlayerID  string
	State     *progression.State
	Version   int64
	ExpiresAt time.Time
}

// SkillListing is a catalog skill as a purchase panel shows it
type SkillListing struct {
	Skill             *skilltree.Skill
	Description       string
	PrerequisiteNames []string
	// Status is empty when no session was given
	Status progression.PurchaseStatus
}

// StartSessionInput defines the request for starting a session
type StartSessionInput struct {
	PlayerID string
	// SkillPoints overrides the configured starting balance when set
	SkillPoints *int32
}

// StartSessionOutput defines the response for starting a session
type StartSessionOutput struct {
	Session *Session
}

// GetSessionInput defines the request for loading a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the response for loading a session
type GetSessionOutput struct {
	Session *Session
}

// EndSessionInput defines the request for ending a session
type EndSessionInput struct {
	SessionID string
}

// EndSessionOutput defines the response for ending a session
type EndSessionOutput struct {
	Removed bool
}

// GrantSkillPointsInput defines the request for granting points
type GrantSkillPointsInput struct {
	SessionID string
	// Count defaults to 1
	Count int32
}

// GrantSkillPointsOutput defines the response for granting points
type GrantSkillPointsOutput struct {
	Session *Session
}

// UnlockSkillInput defines the request for purchasing a skill
type UnlockSkillInput struct {
	SessionID string
	SkillID   skilltree.SkillID
}

// UnlockSkillOutput defines the response for purchasing a skill. When
// Unlocked is false, Status says why.
type UnlockSkillOutput struct {
	Unlocked bool
	Status   progression.PurchaseStatus
	Session  *Session
}

// ListSkillsInput defines the request for listing catalog skills
type ListSkillsInput struct {
	// Tier 0 lists every tier
	Tier int32
	// SessionID, when set, fills in each skill's purchase status
	SessionID string
}

// ListSkillsOutput defines the response for listing catalog skills
type ListSkillsOutput struct {
	Skills []*SkillListing
}

// WatchSessionInput defines the request for following a session
type WatchSessionInput struct {
	SessionID string
}

// WatchSessionOutput streams changes until Close is called or the context
// ends
type WatchSessionOutput struct {
	Events <-chan *progressionsession.ChangeEvent
	Close  func()
}
