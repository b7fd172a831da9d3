// Package skilltree defines the skill-tree domain types shared by the catalog,
// the progression state and the API layers.
package skilltree

import (
	"strings"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// Attribute names one of the integer counters a skill can change
type Attribute string

// Stat attributes
const (
	AttributeStrength     Attribute = "strength"
	AttributeDexterity    Attribute = "dexterity"
	AttributeIntelligence Attribute = "intelligence"
	AttributeWisdom       Attribute = "wisdom"
	AttributeCharisma     Attribute = "charisma"
	AttributeConstitution Attribute = "constitution"
)

// Ability attributes. A positive counter means the ability is unlocked.
const (
	AttributeDoubleJump Attribute = "double_jump"
	AttributeDash       Attribute = "dash"
	AttributeTeleport   Attribute = "teleport"
)

// AttributeKind separates numeric stats from ability gates
type AttributeKind string

// Attribute kinds
const (
	AttributeKindStat    AttributeKind = "stat"
	AttributeKindAbility AttributeKind = "ability"
)

// AttributeInfo is the static description of an attribute
type AttributeInfo struct {
	Kind         AttributeKind
	DefaultValue int32
	DisplayName  string
}

const defaultStatValue = 10

var attributeOrder = []Attribute{
	AttributeStrength,
	AttributeDexterity,
	AttributeIntelligence,
	AttributeWisdom,
	AttributeCharisma,
	AttributeConstitution,
	AttributeDoubleJump,
	AttributeDash,
	AttributeTeleport,
}

var attributeTable = map[Attribute]AttributeInfo{
	AttributeStrength:     {Kind: AttributeKindStat, DefaultValue: defaultStatValue, DisplayName: "Strength"},
	AttributeDexterity:    {Kind: AttributeKindStat, DefaultValue: defaultStatValue, DisplayName: "Dexterity"},
	AttributeIntelligence: {Kind: AttributeKindStat, DefaultValue: defaultStatValue, DisplayName: "Intelligence"},
	AttributeWisdom:       {Kind: AttributeKindStat, DefaultValue: defaultStatValue, DisplayName: "Wisdom"},
	AttributeCharisma:     {Kind: AttributeKindStat, DefaultValue: defaultStatValue, DisplayName: "Charisma"},
	AttributeConstitution: {Kind: AttributeKindStat, DefaultValue: defaultStatValue, DisplayName: "Constitution"},
	AttributeDoubleJump:   {Kind: AttributeKindAbility, DisplayName: "Double Jump"},
	AttributeDash:         {Kind: AttributeKindAbility, DisplayName: "Dash"},
	AttributeTeleport:     {Kind: AttributeKindAbility, DisplayName: "Teleport"},
}

// Attributes returns every known attribute, stats first, in display order
func Attributes() []Attribute {
	out := make([]Attribute, len(attributeOrder))
	copy(out, attributeOrder)
	return out
}

// AttributesOfKind returns the attributes of one kind in display order
func AttributesOfKind(kind AttributeKind) []Attribute {
	var out []Attribute
	for _, a := range attributeOrder {
		if attributeTable[a].Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Info returns the static description of the attribute
func (a Attribute) Info() (AttributeInfo, bool) {
	info, ok := attributeTable[a]
	return info, ok
}

// Valid reports whether a is a known attribute
func (a Attribute) Valid() bool {
	_, ok := attributeTable[a]
	return ok
}

// IsAbility reports whether a is an ability gate
func (a Attribute) IsAbility() bool {
	return attributeTable[a].Kind == AttributeKindAbility
}

// DefaultValue is the value a fresh progression state starts with
func (a Attribute) DefaultValue() int32 {
	return attributeTable[a].DefaultValue
}

// DisplayName returns the human readable name, or the raw value if unknown
func (a Attribute) DisplayName() string {
	if info, ok := attributeTable[a]; ok {
		return info.DisplayName
	}
	return string(a)
}

// ParseAttribute accepts the canonical value as well as display-style
// spellings ("DoubleJump", "Double Jump", "double-jump").
func ParseAttribute(s string) (Attribute, error) {
	want := normalizeAttribute(s)
	for _, a := range attributeOrder {
		if normalizeAttribute(string(a)) == want {
			return a, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown attribute %q", s)
}

func normalizeAttribute(s string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
