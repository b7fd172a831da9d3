package progression

import (
	"context"
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// Event types published on the state's bus
const (
	EventSkillPointGranted = "progression.skill_point_granted"
	EventSkillUnlocked     = "progression.skill_unlocked"
)

var changeEventTypes = []string{EventSkillPointGranted, EventSkillUnlocked}

// Change describes a successful mutation. SkillID is set for unlocks only.
type Change struct {
	Type    string
	SkillID skilltree.SkillID
}

// Listener is called synchronously after every successful mutation
type Listener func(Change)

// Subscribe registers a listener for every change and returns its ID
func (s *State) Subscribe(fn Listener) string {
	s.nextID++
	id := "listener_" + strconv.Itoa(s.nextID)

	handler := func(_ context.Context, e events.Event) error {
		change := Change{Type: e.Type()}
		if target := e.Target(); target != nil && target.GetType() == skilltree.EntityTypeSkill {
			change.SkillID = skilltree.SkillID(target.GetID())
		}
		fn(change)
		return nil
	}

	subs := make([]string, 0, len(changeEventTypes))
	for _, eventType := range changeEventTypes {
		subs = append(subs, s.bus.SubscribeFunc(eventType, 0, handler))
	}
	s.listeners[id] = subs

	return id
}

// Unsubscribe removes a listener registered with Subscribe
func (s *State) Unsubscribe(id string) error {
	subs, ok := s.listeners[id]
	if !ok {
		return errors.NotFoundf("listener %s not found", id).WithMeta("listener_id", id)
	}
	delete(s.listeners, id)

	for _, sub := range subs {
		if err := s.bus.Unsubscribe(sub); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe listener %s", id)
		}
	}

	return nil
}

// notify fans a change out to listeners. Handlers never fail, so the
// publish error only surfaces bus misuse and is dropped.
func (s *State) notify(eventType string, target core.Entity) {
	if len(s.listeners) == 0 {
		return
	}
	_ = s.bus.Publish(context.Background(), events.NewGameEvent(eventType, s, target))
}
