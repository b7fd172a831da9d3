package skilltree

// SkillID identifies a skill. Skills are compared by ID, never by pointer.
type SkillID string

// EntityTypeSkill is the rpg-toolkit entity type reported by skills
const EntityTypeSkill = "skill"

// MaxEffectAmount bounds the magnitude of an effect's amount
const MaxEffectAmount = 1_000_000

// StatEffect is one change a skill applies when it is unlocked
type StatEffect struct {
	Attribute Attribute
	// Amount is added as-is, or read as a percentage of the current value
	// when IsPercentage is set. Negative amounts are allowed.
	Amount       int32
	IsPercentage bool
}

// Skill is a purchasable node of the skill tree. Skills are immutable once
// loaded into a catalog.
type Skill struct {
	ID   SkillID
	Name string
	// Tier groups skills for presentation, starting at 1
	Tier          int32
	Cost          int32
	Effects       []StatEffect
	Prerequisites []SkillID
	// IsAbility marks skills that grant a single ability instead of stat boosts
	IsAbility bool

	Description          string
	OverwriteDescription bool
}

// GetID returns the skill ID
func (s *Skill) GetID() string {
	return string(s.ID)
}

// GetType returns the entity type for rpg-toolkit
func (s *Skill) GetType() string {
	return EntityTypeSkill
}

// HasPrerequisites reports whether any skill must be unlocked first
func (s *Skill) HasPrerequisites() bool {
	return len(s.Prerequisites) > 0
}
