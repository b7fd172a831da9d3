package progression

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// PurchaseStatus is the state of a skill from the buyer's point of view
type PurchaseStatus string

// Purchase statuses, reported in this order of precedence
const (
	StatusPurchased           PurchaseStatus = "purchased"
	StatusPrerequisitesNotMet PurchaseStatus = "prerequisites_not_met"
	StatusCannotAfford        PurchaseStatus = "cannot_afford"
	StatusAvailable           PurchaseStatus = "available"
)

// CanAfford reports whether the balance covers the skill's cost
func (s *State) CanAfford(skill *skilltree.Skill) bool {
	if skill == nil {
		return false
	}
	return s.skillPoints >= skill.Cost
}

// IsUnlocked reports whether the skill has been purchased
func (s *State) IsUnlocked(skill *skilltree.Skill) bool {
	if skill == nil {
		return false
	}
	return s.IsUnlockedID(skill.ID)
}

// IsUnlockedID reports whether the skill with this ID has been purchased
func (s *State) IsUnlockedID(id skilltree.SkillID) bool {
	_, ok := s.unlocked[id]
	return ok
}

// PrerequisitesMet reports whether every direct prerequisite is unlocked.
// Transitive prerequisites are implied by the purchase protocol.
func (s *State) PrerequisitesMet(skill *skilltree.Skill) bool {
	if skill == nil {
		return false
	}
	for _, id := range skill.Prerequisites {
		if !s.IsUnlockedID(id) {
			return false
		}
	}
	return true
}

// PurchaseStatus reports what a purchase attempt would do right now
func (s *State) PurchaseStatus(skill *skilltree.Skill) PurchaseStatus {
	switch {
	case s.IsUnlocked(skill):
		return StatusPurchased
	case !s.PrerequisitesMet(skill):
		return StatusPrerequisitesNotMet
	case !s.CanAfford(skill):
		return StatusCannotAfford
	default:
		return StatusAvailable
	}
}

// GrantSkillPoint adds one point to the balance. At MaxSkillPoints it does
// nothing and emits no notification.
func (s *State) GrantSkillPoint() {
	if s.skillPoints >= MaxSkillPoints {
		return
	}
	s.skillPoints++
	s.notify(EventSkillPointGranted, nil)
}

// UnlockSkill purchases a skill. It returns false without changing anything
// when the skill is already unlocked, unaffordable or missing a prerequisite.
// It panics if an effect names an unknown attribute; catalogs reject those
// at load time.
func (s *State) UnlockSkill(skill *skilltree.Skill) bool {
	if s.PurchaseStatus(skill) != StatusAvailable {
		return false
	}

	for _, e := range skill.Effects {
		if !e.Attribute.Valid() {
			panic(fmt.Sprintf("skill %s: unknown attribute %q", skill.ID, e.Attribute))
		}
	}

	for _, e := range skill.Effects {
		s.values[e.Attribute] = applyEffect(s.values[e.Attribute], e)
	}
	s.unlocked[skill.ID] = struct{}{}
	s.order = append(s.order, skill.ID)
	s.skillPoints -= skill.Cost

	s.notify(EventSkillUnlocked, skill)
	return true
}

// applyEffect returns the attribute value after one effect. Percentages are
// taken of the current value and truncated toward zero. The result
// saturates at the int32 bounds.
func applyEffect(current int32, e skilltree.StatEffect) int32 {
	delta := int64(e.Amount)
	if e.IsPercentage {
		delta = int64(current) * int64(e.Amount) / 100
	}
	return saturate(int64(current) + delta)
}

func saturate(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}
