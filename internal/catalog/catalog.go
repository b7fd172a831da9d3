// Package catalog holds the read-only set of skill definitions
package catalog

import (
	"sort"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// Catalog is an immutable, validated collection of skills in authoring order.
// Skill pointers handed out by a Catalog must be treated as read-only.
type Catalog struct {
	skills []*skilltree.Skill
	byID   map[skilltree.SkillID]*skilltree.Skill
}

// New validates the skills and builds a catalog from private copies of them
func New(skills []*skilltree.Skill) (*Catalog, error) {
	if err := validate(skills); err != nil {
		return nil, errors.Wrap(err, "invalid skill catalog")
	}

	c := &Catalog{
		skills: make([]*skilltree.Skill, 0, len(skills)),
		byID:   make(map[skilltree.SkillID]*skilltree.Skill, len(skills)),
	}
	for _, s := range skills {
		cp := copySkill(s)
		c.skills = append(c.skills, cp)
		c.byID[cp.ID] = cp
	}

	return c, nil
}

// SkillsInTier returns the skills of the given tier in catalog order. The
// result is never nil.
func (c *Catalog) SkillsInTier(tier int32) []*skilltree.Skill {
	out := make([]*skilltree.Skill, 0)
	for _, s := range c.skills {
		if s.Tier == tier {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the skill with the given ID
func (c *Catalog) Get(id skilltree.SkillID) (*skilltree.Skill, error) {
	s, ok := c.byID[id]
	if !ok {
		return nil, errors.NotFoundf("skill %q not found", id).WithMeta("skill_id", string(id))
	}
	return s, nil
}

// All returns every skill in catalog order
func (c *Catalog) All() []*skilltree.Skill {
	out := make([]*skilltree.Skill, len(c.skills))
	copy(out, c.skills)
	return out
}

// Tiers returns the distinct tiers present, ascending
func (c *Catalog) Tiers() []int32 {
	seen := make(map[int32]struct{})
	var tiers []int32
	for _, s := range c.skills {
		if _, ok := seen[s.Tier]; ok {
			continue
		}
		seen[s.Tier] = struct{}{}
		tiers = append(tiers, s.Tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}

// Len returns the number of skills
func (c *Catalog) Len() int {
	return len(c.skills)
}

func copySkill(s *skilltree.Skill) *skilltree.Skill {
	cp := *s
	cp.Effects = append([]skilltree.StatEffect(nil), s.Effects...)
	cp.Prerequisites = append([]skilltree.SkillID(nil), s.Prerequisites...)
	return &cp
}
