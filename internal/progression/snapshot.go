package progression

import (
	"fmt"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// Snapshot is the plain data form of a State, used to hand a session
// between requests. Listeners are not part of it.
type Snapshot struct {
	ID             string                        `json:"id"`
	Values         map[skilltree.Attribute]int32 `json:"values"`
	SkillPoints    int32                         `json:"skill_points"`
	UnlockedSkills []skilltree.SkillID           `json:"unlocked_skills"`
}

// Snapshot copies the current state
func (s *State) Snapshot() *Snapshot {
	return &Snapshot{
		ID:             s.id,
		Values:         s.Values(),
		SkillPoints:    s.skillPoints,
		UnlockedSkills: s.UnlockedSkills(),
	}
}

// Restore rebuilds a State from a snapshot. Attributes missing from the
// snapshot take their defaults.
func Restore(snap *Snapshot) (*State, error) {
	if snap == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("skill_points", int64(snap.SkillPoints), 0, MaxSkillPoints, vb)
	for attr := range snap.Values {
		if !attr.Valid() {
			vb.Fieldf(fmt.Sprintf("values.%s", attr), "unknown attribute %q", attr)
		}
	}
	seen := make(map[skilltree.SkillID]struct{}, len(snap.UnlockedSkills))
	for i, id := range snap.UnlockedSkills {
		if id == "" {
			vb.RequiredField(fmt.Sprintf("unlocked_skills[%d]", i))
			continue
		}
		if _, dup := seen[id]; dup {
			vb.Fieldf(fmt.Sprintf("unlocked_skills[%d]", i), "duplicate skill %q", id)
		}
		seen[id] = struct{}{}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s := newState(snap.ID)
	for _, a := range skilltree.Attributes() {
		s.values[a] = a.DefaultValue()
	}
	for attr, v := range snap.Values {
		s.values[attr] = v
	}
	s.skillPoints = snap.SkillPoints
	for _, id := range snap.UnlockedSkills {
		s.unlocked[id] = struct{}{}
		s.order = append(s.order, id)
	}

	return s, nil
}
