package catalog

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Describe returns the display text for a skill. An authored description
// wins when OverwriteDescription is set or the skill has no effects.
func Describe(s *skilltree.Skill) string {
	if s == nil {
		return ""
	}
	if s.OverwriteDescription || len(s.Effects) == 0 {
		return s.Description
	}

	if s.IsAbility {
		return fmt.Sprintf("%s grants the %s ability.", s.Name, s.Effects[0].Attribute.DisplayName())
	}

	parts := make([]string, len(s.Effects))
	for i, e := range s.Effects {
		parts[i] = describeEffect(e)
	}

	return fmt.Sprintf("%s %s.", s.Name, joinEnglish(parts))
}

func describeEffect(e skilltree.StatEffect) string {
	verb := "increases"
	amount := e.Amount
	if amount < 0 {
		verb = "decreases"
		amount = -amount
	}

	var unit string
	switch {
	case e.IsPercentage:
		unit = "%"
	case amount == 1:
		unit = " point"
	default:
		unit = " points"
	}

	return fmt.Sprintf("%s %s by %d%s", verb, e.Attribute.DisplayName(), amount, unit)
}

func joinEnglish(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

// PrerequisiteNames resolves a skill's prerequisites to display names,
// falling back to the raw ID for skills the catalog does not know.
func (c *Catalog) PrerequisiteNames(s *skilltree.Skill) []string {
	names := make([]string, 0, len(s.Prerequisites))
	for _, id := range s.Prerequisites {
		if p, ok := c.byID[id]; ok {
			names = append(names, p.Name)
			continue
		}
		names = append(names, string(id))
	}
	return names
}
