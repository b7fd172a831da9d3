// Package skilltreev1alpha1 defines the skilltree.api.v1alpha1 progression
// service: its messages, the gRPC service descriptor and a typed client.
// Messages travel with the JSON codec from internal/pkg/jsoncodec.
package skilltreev1alpha1

// AttributeValue is the current value of one attribute
type AttributeValue struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Value       int32  `json:"value"`
}

// Ability reports whether an ability is unlocked
type Ability struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Unlocked    bool   `json:"unlocked"`
}

// Session is a player's progression
type Session struct {
	Id               string            `json:"id"`
	PlayerId         string            `json:"player_id"`
	Attributes       []*AttributeValue `json:"attributes"`
	Abilities        []*Ability        `json:"abilities"`
	SkillPoints      int32             `json:"skill_points"`
	UnlockedSkillIds []string          `json:"unlocked_skill_ids"`
	Version          int64             `json:"version"`
	// ExpiresAt is a unix timestamp in seconds
	ExpiresAt int64 `json:"expires_at"`
}

// StatEffect is one change a skill applies
type StatEffect struct {
	Attribute    string `json:"attribute"`
	Amount       int32  `json:"amount"`
	IsPercentage bool   `json:"is_percentage,omitempty"`
}

// Skill is a catalog skill with its display text
type Skill struct {
	Id                string        `json:"id"`
	Name              string        `json:"name"`
	Tier              int32         `json:"tier"`
	Cost              int32         `json:"cost"`
	Effects           []*StatEffect `json:"effects"`
	PrerequisiteIds   []string      `json:"prerequisite_ids,omitempty"`
	PrerequisiteNames []string      `json:"prerequisite_names,omitempty"`
	IsAbility         bool          `json:"is_ability,omitempty"`
	Description       string        `json:"description"`
	// Status is set when the listing was made for a session
	Status string `json:"status,omitempty"`
}

// StartSessionRequest starts a new session
type StartSessionRequest struct {
	PlayerId string `json:"player_id"`
	// SkillPoints overrides the starting balance when set
	SkillPoints *int32 `json:"skill_points,omitempty"`
}

// StartSessionResponse carries the new session
type StartSessionResponse struct {
	Session *Session `json:"session"`
}

// GetSessionRequest loads a session
type GetSessionRequest struct {
	SessionId string `json:"session_id"`
}

// GetSessionResponse carries the session
type GetSessionResponse struct {
	Session *Session `json:"session"`
}

// EndSessionRequest removes a session
type EndSessionRequest struct {
	SessionId string `json:"session_id"`
}

// EndSessionResponse reports the removal
type EndSessionResponse struct {
	Removed bool `json:"removed"`
}

// GrantSkillPointsRequest adds points to a session's balance
type GrantSkillPointsRequest struct {
	SessionId string `json:"session_id"`
	// Count defaults to 1
	Count int32 `json:"count,omitempty"`
}

// GrantSkillPointsResponse carries the updated session
type GrantSkillPointsResponse struct {
	Session *Session `json:"session"`
}

// UnlockSkillRequest purchases a skill
type UnlockSkillRequest struct {
	SessionId string `json:"session_id"`
	SkillId   string `json:"skill_id"`
}

// UnlockSkillResponse reports the purchase. Status explains a rejection.
type UnlockSkillResponse struct {
	Unlocked bool     `json:"unlocked"`
	Status   string   `json:"status"`
	Session  *Session `json:"session"`
}

// ListSkillsRequest lists catalog skills
type ListSkillsRequest struct {
	// Tier 0 lists every tier
	Tier      int32  `json:"tier,omitempty"`
	SessionId string `json:"session_id,omitempty"`
}

// ListSkillsResponse carries the skills in catalog order
type ListSkillsResponse struct {
	Skills []*Skill `json:"skills"`
}

// WatchSessionRequest follows a session's changes
type WatchSessionRequest struct {
	SessionId string `json:"session_id"`
}

// SessionEvent is one change to a watched session
type SessionEvent struct {
	SessionId   string `json:"session_id"`
	Type        string `json:"type"`
	SkillId     string `json:"skill_id,omitempty"`
	SkillPoints int32  `json:"skill_points"`
	Version     int64  `json:"version"`
	// OccurredAt is a unix timestamp in seconds
	OccurredAt int64 `json:"occurred_at"`
}
