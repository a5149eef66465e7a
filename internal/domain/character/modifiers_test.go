package character_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

func TestModifierSet_UnmarshalJSON_FlattensAndStampsCategories(t *testing.T) {
	payload := []byte(`{
		"race": [
			{"type": "bonus", "subType": "dexterity-score", "value": 2, "fixedValue": null, "friendlyTypeName": "Ability Score Increase"}
		],
		"class": [
			{"type": "proficiency", "subType": "stealth", "value": null, "fixedValue": null},
			{"type": "expertise", "subType": "stealth", "value": null, "fixedValue": null}
		]
	}`)

	var set character.ModifierSet
	require.NoError(t, json.Unmarshal(payload, &set))

	require.Len(t, set, 3)
	// Categories come out in sorted order so parsing is deterministic.
	assert.Equal(t, character.ModifierCategoryClass, set[0].Category)
	assert.Equal(t, character.ModifierCategoryClass, set[1].Category)
	assert.Equal(t, character.ModifierCategoryRace, set[2].Category)

	assert.Equal(t, character.ModifierKindBonus, set[2].Type)
	assert.Equal(t, "dexterity-score", set[2].SubType)
	require.NotNil(t, set[2].Value)
	assert.Equal(t, 2, *set[2].Value)
	assert.Equal(t, "Ability Score Increase", set[2].FriendlyTypeName)
}

func TestModifierSet_UnmarshalJSON_NullIsEmpty(t *testing.T) {
	var set character.ModifierSet
	require.NoError(t, json.Unmarshal([]byte(`null`), &set))
	assert.Empty(t, set)
}

func TestModifierSet_UnmarshalJSON_RejectsNonMap(t *testing.T) {
	var set character.ModifierSet
	err := json.Unmarshal([]byte(`[{"type": "bonus"}]`), &set)

	require.Error(t, err)
	assert.True(t, errors.IsMalformedDocument(err), "a list-shaped modifiers section is malformed")
}

func TestModifierSet_MarshalJSON_RegroupsByCategory(t *testing.T) {
	set := character.ModifierSet{
		{Category: "race", Type: character.ModifierKindBonus, SubType: "wisdom-score", Value: intPtr(1)},
		{Category: "feat", Type: character.ModifierKindProficiency, SubType: "insight"},
	}

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var grouped map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &grouped))

	require.Contains(t, grouped, "race")
	require.Contains(t, grouped, "feat")
	require.Len(t, grouped["race"], 1)
	assert.Equal(t, "wisdom-score", grouped["race"][0]["subType"])
	assert.Equal(t, "insight", grouped["feat"][0]["subType"])
}

func TestModifier_Amount(t *testing.T) {
	cases := []struct {
		name     string
		modifier *character.Modifier
		expected int
	}{
		{
			name:     "value set",
			modifier: &character.Modifier{Value: intPtr(3)},
			expected: 3,
		},
		{
			name:     "falls back to fixedValue",
			modifier: &character.Modifier{FixedValue: intPtr(2)},
			expected: 2,
		},
		{
			name:     "both absent",
			modifier: &character.Modifier{},
			expected: 0,
		},
		{
			// An explicit zero value is a real amount, not an absence.
			name:     "explicit zero value beats fixedValue",
			modifier: &character.Modifier{Value: intPtr(0), FixedValue: intPtr(5)},
			expected: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.modifier.Amount())
		})
	}
}

func TestModifierSet_FriendlyTypeNames(t *testing.T) {
	set := character.ModifierSet{
		{Category: "race", FriendlyTypeName: "Darkvision"},
		{Category: "race", FriendlyTypeName: "Fey Ancestry"},
		{Category: "race", FriendlyTypeName: "Darkvision"}, // duplicate collapses
		{Category: "race"},                                 // unnamed entries are skipped
		{Category: "class", FriendlyTypeName: "Sneak Attack"},
	}

	assert.Equal(t, []string{"Darkvision", "Fey Ancestry"}, set.FriendlyTypeNames("race"))
	assert.Equal(t, []string{"Sneak Attack"}, set.FriendlyTypeNames("class"))
	assert.Empty(t, set.FriendlyTypeNames("feat"))
}

func TestModifierSet_InCategory(t *testing.T) {
	set := character.ModifierSet{
		{Category: "race", SubType: "darkvision"},
		{Category: "class", SubType: "stealth"},
		{Category: "race", SubType: "wisdom-score"},
	}

	race := set.InCategory(character.ModifierCategoryRace)
	require.Len(t, race, 2)
	assert.Equal(t, "darkvision", race[0].SubType)
	assert.Equal(t, "wisdom-score", race[1].SubType)
}
