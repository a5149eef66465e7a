package character

import (
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// ModifierCategory is the source a modifier was granted by. The wire
// format keys modifiers by category name; any key is accepted, these
// constants cover the common ones.
type ModifierCategory string

const (
	ModifierCategoryRace       ModifierCategory = "race"
	ModifierCategoryClass      ModifierCategory = "class"
	ModifierCategoryItem       ModifierCategory = "item"
	ModifierCategoryFeat       ModifierCategory = "feat"
	ModifierCategoryBackground ModifierCategory = "background"
	ModifierCategoryCondition  ModifierCategory = "condition"
)

// ModifierKind is the effect a modifier applies. Kinds outside these
// constants pass through unmodified and are ignored by the resolver.
type ModifierKind string

const (
	ModifierKindBonus           ModifierKind = "bonus"
	ModifierKindProficiency     ModifierKind = "proficiency"
	ModifierKindExpertise       ModifierKind = "expertise"
	ModifierKindHalfProficiency ModifierKind = "half-proficiency"
)

// Modifier is a single granted effect, scoped by SubType to the game
// element it touches ("strength-score", "acrobatics", "armor-class").
// Category is stamped from the wire map key during unmarshaling.
type Modifier struct {
	Category         ModifierCategory `json:"-"`
	Type             ModifierKind     `json:"type"`
	SubType          string           `json:"subType"`
	Value            *int             `json:"value"`
	FixedValue       *int             `json:"fixedValue"`
	FriendlyTypeName string           `json:"friendlyTypeName,omitempty"`
}

// Amount returns the modifier's numeric amount, preferring value and
// falling back to fixedValue. Absent both, the amount is 0.
func (m *Modifier) Amount() int {
	if m.Value != nil {
		return *m.Value
	}
	if m.FixedValue != nil {
		return *m.FixedValue
	}
	return 0
}

// ModifierSet holds every modifier on a character as one flat list, so
// callers iterate once instead of walking per-category buckets.
type ModifierSet []*Modifier

// UnmarshalJSON flattens the wire's category map into the set, stamping
// each modifier with its category. A modifiers section that is not a
// category map fails with a malformed document error.
func (s *ModifierSet) UnmarshalJSON(data []byte) error {
	var grouped map[string][]*Modifier
	if err := json.Unmarshal(data, &grouped); err != nil {
		return errors.WrapWithCode(err, errors.CodeMalformedDocument, "modifiers section is not a category map")
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	flat := make(ModifierSet, 0)
	for _, category := range categories {
		for _, m := range grouped[category] {
			if m == nil {
				continue
			}
			m.Category = ModifierCategory(category)
			flat = append(flat, m)
		}
	}

	*s = flat
	return nil
}

// MarshalJSON restores the wire's category map shape.
func (s ModifierSet) MarshalJSON() ([]byte, error) {
	grouped := make(map[ModifierCategory][]*Modifier, len(s))
	for _, m := range s {
		grouped[m.Category] = append(grouped[m.Category], m)
	}
	return json.Marshal(grouped)
}

// InCategory returns the modifiers granted by one source category, in
// set order.
func (s ModifierSet) InCategory(category ModifierCategory) []*Modifier {
	var matched []*Modifier
	for _, m := range s {
		if m.Category == category {
			matched = append(matched, m)
		}
	}
	return matched
}

// FriendlyTypeNames returns the sorted, deduplicated display names of
// the modifiers in one category. Modifiers without a display name are
// skipped. This backs the features view.
func (s ModifierSet) FriendlyTypeNames(category ModifierCategory) []string {
	seen := make(map[string]bool)
	for _, m := range s {
		if m.Category != category || m.FriendlyTypeName == "" {
			continue
		}
		seen[m.FriendlyTypeName] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
