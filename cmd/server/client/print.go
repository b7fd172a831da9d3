package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
)

func printSession(w io.Writer, s *skilltreev1alpha1.Session) {
	if s == nil {
		return
	}

	fmt.Fprintf(w, "Session ID: %s\n", s.Id)
	fmt.Fprintf(w, "Player ID: %s\n", s.PlayerId)
	fmt.Fprintf(w, "Skill Points: %d\n", s.SkillPoints)
	fmt.Fprintf(w, "Version: %d\n", s.Version)
	if s.ExpiresAt > 0 {
		fmt.Fprintf(w, "Expires: %s\n", time.Unix(s.ExpiresAt, 0).Format(time.RFC3339))
	}

	fmt.Fprintf(w, "\nAttributes:\n")
	for _, attr := range s.Attributes {
		fmt.Fprintf(w, "  - %s: %d\n", attr.DisplayName, attr.Value)
	}

	fmt.Fprintf(w, "\nAbilities:\n")
	for _, ability := range s.Abilities {
		mark := " "
		if ability.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, ability.DisplayName)
	}

	if len(s.UnlockedSkillIds) > 0 {
		fmt.Fprintf(w, "\nUnlocked: %s\n", strings.Join(s.UnlockedSkillIds, ", "))
	}
}

func printSkill(w io.Writer, skill *skilltreev1alpha1.Skill) {
	fmt.Fprintf(w, "- %s (%s) tier %d, cost %d", skill.Name, skill.Id, skill.Tier, skill.Cost)
	if skill.Status != "" {
		fmt.Fprintf(w, " [%s]", skill.Status)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    %s\n", skill.Description)
	if len(skill.PrerequisiteNames) > 0 {
		fmt.Fprintf(w, "    Requires: %s\n", strings.Join(skill.PrerequisiteNames, ", "))
	}
}

func printEvent(w io.Writer, e *skilltreev1alpha1.SessionEvent) {
	at := time.Unix(e.OccurredAt, 0).Format(time.RFC3339)
	if e.SkillId != "" {
		fmt.Fprintf(w, "%s %s skill=%s points=%d version=%d\n", at, e.Type, e.SkillId, e.SkillPoints, e.Version)
		return
	}
	fmt.Fprintf(w, "%s %s points=%d version=%d\n", at, e.Type, e.SkillPoints, e.Version)
}
