package catalog

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// validate rejects malformed catalog data up front so purchases never meet
// an unknown attribute or a dangling prerequisite.
func validate(skills []*skilltree.Skill) error {
	vb := errors.NewValidationBuilder()

	if len(skills) == 0 {
		vb.Field("skills", "must contain at least one skill")
		return vb.Build()
	}

	ids := make(map[skilltree.SkillID]int, len(skills))
	for i, s := range skills {
		field := fmt.Sprintf("skills[%d]", i)
		if s == nil {
			vb.Field(field, "is nil")
			continue
		}
		if strings.TrimSpace(string(s.ID)) == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if prev, dup := ids[s.ID]; dup {
			vb.Fieldf(field+".id", "duplicates skills[%d] (%s)", prev, s.ID)
			continue
		}
		ids[s.ID] = i
	}

	for i, s := range skills {
		if s == nil {
			continue
		}
		field := fmt.Sprintf("skills[%d]", i)

		errors.ValidateRequired(field+".name", s.Name, vb)
		errors.ValidateMin(field+".tier", int64(s.Tier), 1, vb)
		errors.ValidateMin(field+".cost", int64(s.Cost), 0, vb)

		for j, e := range s.Effects {
			if !e.Attribute.Valid() {
				vb.Fieldf(fmt.Sprintf("%s.effects[%d].attribute", field, j), "unknown attribute %q", e.Attribute)
			}
			errors.ValidateRange(fmt.Sprintf("%s.effects[%d].amount", field, j),
				int64(e.Amount), -skilltree.MaxEffectAmount, skilltree.MaxEffectAmount, vb)
		}

		if s.IsAbility {
			validateAbility(field, s, vb)
		}

		for j, p := range s.Prerequisites {
			pf := fmt.Sprintf("%s.prerequisites[%d]", field, j)
			switch {
			case p == s.ID:
				vb.Field(pf, "skill cannot require itself")
			case !hasID(ids, p):
				vb.Fieldf(pf, "unknown skill %q", p)
			}
		}
	}

	if vb.HasErrors() {
		return vb.Build()
	}

	if cycle := findCycle(skills); cycle != nil {
		vb.Fieldf("prerequisites", "form a cycle: %s", joinIDs(cycle, " -> "))
	}

	return vb.Build()
}

func validateAbility(field string, s *skilltree.Skill, vb *errors.ValidationBuilder) {
	if len(s.Effects) != 1 {
		vb.Fieldf(field+".effects", "ability skill must have exactly one effect, got %d", len(s.Effects))
		return
	}
	if a := s.Effects[0].Attribute; a.Valid() && !a.IsAbility() {
		vb.Fieldf(field+".effects[0].attribute", "ability skill must target an ability, got %q", a)
	}
}

func hasID(ids map[skilltree.SkillID]int, id skilltree.SkillID) bool {
	_, ok := ids[id]
	return ok
}

// findCycle returns the first prerequisite cycle found, closed on its
// starting skill, or nil when the graph is acyclic.
func findCycle(skills []*skilltree.Skill) []skilltree.SkillID {
	const (
		unvisited = iota
		visiting
		done
	)

	prereqs := make(map[skilltree.SkillID][]skilltree.SkillID, len(skills))
	for _, s := range skills {
		prereqs[s.ID] = s.Prerequisites
	}

	state := make(map[skilltree.SkillID]int, len(skills))
	var path []skilltree.SkillID
	var cycle []skilltree.SkillID

	var visit func(id skilltree.SkillID) bool
	visit = func(id skilltree.SkillID) bool {
		state[id] = visiting
		path = append(path, id)
		for _, p := range prereqs[id] {
			switch state[p] {
			case visiting:
				for i, onPath := range path {
					if onPath == p {
						cycle = append(append([]skilltree.SkillID(nil), path[i:]...), p)
						return true
					}
				}
			case unvisited:
				if visit(p) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return false
	}

	for _, s := range skills {
		if state[s.ID] == unvisited && visit(s.ID) {
			return cycle
		}
	}
	return nil
}

func joinIDs(ids []skilltree.SkillID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, sep)
}
