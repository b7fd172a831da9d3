package v1alpha1

import (
	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/orchestrators/session"
	progressionsession "github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session"
)

func convertSessionToProto(s *session.Session) *skilltreev1alpha1.Session {
	if s == nil || s.State == nil {
		return nil
	}

	stats := skilltree.AttributesOfKind(skilltree.AttributeKindStat)
	attributes := make([]*skilltreev1alpha1.AttributeValue, 0, len(stats))
	for _, a := range stats {
		attributes = append(attributes, &skilltreev1alpha1.AttributeValue{
			Name:        string(a),
			DisplayName: a.DisplayName(),
			Value:       s.State.Value(a),
		})
	}

	abilityAttrs := skilltree.AttributesOfKind(skilltree.AttributeKindAbility)
	abilities := make([]*skilltreev1alpha1.Ability, 0, len(abilityAttrs))
	for _, a := range abilityAttrs {
		abilities = append(abilities, &skilltreev1alpha1.Ability{
			Name:        string(a),
			DisplayName: a.DisplayName(),
			Unlocked:    s.State.HasAbility(a),
		})
	}

	unlocked := s.State.UnlockedSkills()
	unlockedIDs := make([]string, len(unlocked))
	for i, id := range unlocked {
		unlockedIDs[i] = string(id)
	}

	return &skilltreev1alpha1.Session{
		Id:               s.ID,
		PlayerId:         s.PlayerID,
		Attributes:       attributes,
		Abilities:        abilities,
		SkillPoints:      s.State.SkillPoints(),
		UnlockedSkillIds: unlockedIDs,
		Version:          s.Version,
		ExpiresAt:        s.ExpiresAt.Unix(),
	}
}

func convertSkillListingToProto(l *session.SkillListing) *skilltreev1alpha1.Skill {
	if l == nil || l.Skill == nil {
		return nil
	}

	effects := make([]*skilltreev1alpha1.StatEffect, 0, len(l.Skill.Effects))
	for _, e := range l.Skill.Effects {
		effects = append(effects, &skilltreev1alpha1.StatEffect{
			Attribute:    string(e.Attribute),
			Amount:       e.Amount,
			IsPercentage: e.IsPercentage,
		})
	}

	var prereqIDs []string
	for _, id := range l.Skill.Prerequisites {
		prereqIDs = append(prereqIDs, string(id))
	}

	return &skilltreev1alpha1.Skill{
		Id:                string(l.Skill.ID),
		Name:              l.Skill.Name,
		Tier:              l.Skill.Tier,
		Cost:              l.Skill.Cost,
		Effects:           effects,
		PrerequisiteIds:   prereqIDs,
		PrerequisiteNames: l.PrerequisiteNames,
		IsAbility:         l.Skill.IsAbility,
		Description:       l.Description,
		Status:            string(l.Status),
	}
}

func convertEventToProto(e *progressionsession.ChangeEvent) *skilltreev1alpha1.SessionEvent {
	return &skilltreev1alpha1.SessionEvent{
		SessionId:   e.SessionID,
		Type:        e.Type,
		SkillId:     e.SkillID,
		SkillPoints: e.SkillPoints,
		Version:     e.Version,
		OccurredAt:  e.OccurredAt.Unix(),
	}
}
