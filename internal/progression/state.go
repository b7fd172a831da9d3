// Package progression implements the per-player progression state: attribute
// values, the skill point balance, the unlocked skill set and the purchase
// protocol that ties them together.
//
// A State is owned by a single control flow. It is not safe for concurrent
// use; the server serialises access per session through the repository.
package progression

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// DefaultSkillPoints is the balance a new state starts with unless
// configured otherwise
const DefaultSkillPoints = 20

// MaxSkillPoints caps the balance. Grants at the cap are ignored.
const MaxSkillPoints = 1_000_000

// EntityTypeProgression is the rpg-toolkit entity type reported by a State
const EntityTypeProgression = "progression"

// Config seeds a new State
type Config struct {
	// ID identifies the owner, usually the session ID. Optional.
	ID string
	// SkillPoints is the starting balance; nil means DefaultSkillPoints
	SkillPoints *int32
}

// State is the mutable progression of one player
type State struct {
	id          string
	values      map[skilltree.Attribute]int32
	skillPoints int32
	unlocked    map[skilltree.SkillID]struct{}
	order       []skilltree.SkillID

	bus       events.EventBus
	listeners map[string][]string
	nextID    int
}

// New creates a state with default attribute values and a seeded balance
func New(cfg Config) (*State, error) {
	points := int32(DefaultSkillPoints)
	if cfg.SkillPoints != nil {
		points = *cfg.SkillPoints
	}
	if points < 0 || points > MaxSkillPoints {
		return nil, errors.InvalidArgumentf("starting skill points must be between 0 and %d, got %d", MaxSkillPoints, points).
			WithMeta("skill_points", points)
	}

	s := newState(cfg.ID)
	for _, a := range skilltree.Attributes() {
		s.values[a] = a.DefaultValue()
	}
	s.skillPoints = points

	return s, nil
}

func newState(id string) *State {
	return &State{
		id:        id,
		values:    make(map[skilltree.Attribute]int32),
		unlocked:  make(map[skilltree.SkillID]struct{}),
		bus:       events.NewBus(),
		listeners: make(map[string][]string),
	}
}

// GetID returns the state owner's ID
func (s *State) GetID() string {
	return s.id
}

// GetType returns the entity type for rpg-toolkit
func (s *State) GetType() string {
	return EntityTypeProgression
}

// SkillPoints returns the current balance
func (s *State) SkillPoints() int32 {
	return s.skillPoints
}

// Value returns the current value of an attribute. Unknown attributes read as 0.
func (s *State) Value(a skilltree.Attribute) int32 {
	return s.values[a]
}

// Values returns a copy of every attribute value
func (s *State) Values() map[skilltree.Attribute]int32 {
	out := make(map[skilltree.Attribute]int32, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// HasAbility reports whether the ability counter is positive
func (s *State) HasAbility(a skilltree.Attribute) bool {
	return s.values[a] > 0
}

// Strength returns the current strength
func (s *State) Strength() int32 { return s.Value(skilltree.AttributeStrength) }

// Dexterity returns the current dexterity
func (s *State) Dexterity() int32 { return s.Value(skilltree.AttributeDexterity) }

// Intelligence returns the current intelligence
func (s *State) Intelligence() int32 { return s.Value(skilltree.AttributeIntelligence) }

// Wisdom returns the current wisdom
func (s *State) Wisdom() int32 { return s.Value(skilltree.AttributeWisdom) }

// Charisma returns the current charisma
func (s *State) Charisma() int32 { return s.Value(skilltree.AttributeCharisma) }

// Constitution returns the current constitution
func (s *State) Constitution() int32 { return s.Value(skilltree.AttributeConstitution) }

// DoubleJump reports whether double jump is unlocked
func (s *State) DoubleJump() bool { return s.HasAbility(skilltree.AttributeDoubleJump) }

// Dash reports whether dash is unlocked
func (s *State) Dash() bool { return s.HasAbility(skilltree.AttributeDash) }

// Teleport reports whether teleport is unlocked
func (s *State) Teleport() bool { return s.HasAbility(skilltree.AttributeTeleport) }

// UnlockedSkills returns the unlocked skill IDs in purchase order
func (s *State) UnlockedSkills() []skilltree.SkillID {
	out := make([]skilltree.SkillID, len(s.order))
	copy(out, s.order)
	return out
}

// String implements fmt.Stringer for log output
func (s *State) String() string {
	return fmt.Sprintf("progression(%s points=%d unlocked=%d)", s.id, s.skillPoints, len(s.order))
}
