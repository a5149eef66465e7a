package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

func intPtr(v int) *int {
	return &v
}

func TestAbilityModifier_FloorsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		score    int
		expected int
	}{
		{score: 1, expected: -5},
		{score: 7, expected: -2},
		{score: 8, expected: -1},
		{score: 9, expected: -1},
		{score: 10, expected: 0},
		{score: 11, expected: 0},
		{score: 12, expected: 1},
		{score: 15, expected: 2},
		{score: 20, expected: 5},
		{score: 30, expected: 10},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, character.AbilityModifier(tc.score),
			"score %d should give modifier %d", tc.score, tc.expected)
	}
}

func TestResolve_NilDocument(t *testing.T) {
	sheet, err := character.Resolve(nil)

	require.Error(t, err)
	assert.Nil(t, sheet)
	assert.True(t, errors.IsInvalidArgument(err), "nil document should be an invalid argument error")
}

func TestResolve_EmptyDocument_AllDefaults(t *testing.T) {
	// A structurally valid but empty document resolves entirely from
	// defaults rather than failing.
	sheet, err := character.Resolve(&character.Document{})
	require.NoError(t, err)

	for _, ability := range character.Abilities {
		score := sheet.Abilities[ability]
		require.NotNil(t, score, "ability %s should always be present", ability)
		assert.Equal(t, 10, score.Base, "missing stat entry defaults to 10")
		assert.Equal(t, 10, score.Total)
		assert.Equal(t, 0, score.Modifier)
	}

	assert.Equal(t, 0, sheet.TotalLevel)
	assert.Equal(t, 2, sheet.ProficiencyBonus, "proficiency bonus never drops below 2")
	assert.Equal(t, 10, sheet.ArmorClass, "unarmored AC with +0 DEX is 10")
	assert.Equal(t, 30, sheet.Speed, "missing race defaults speed to 30")
	assert.Equal(t, 0, sheet.Initiative)
	assert.Nil(t, sheet.Spellcasting, "no classes means no spellcasting")
	assert.Len(t, sheet.Skills, 18)
	assert.Len(t, sheet.SavingThrows, 6)
}

func TestResolve_AbilityScores(t *testing.T) {
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 1, Value: intPtr(15)},
			{ID: 2, Value: intPtr(9)},
			{ID: 3, Value: nil}, // null value falls back to the default
		},
		Modifiers: character.ModifierSet{
			{Category: "race", Type: character.ModifierKindBonus, SubType: "strength-score", Value: intPtr(2)},
			{Category: "feat", Type: character.ModifierKindBonus, SubType: "strength-score", Value: intPtr(1)},
			// Wrong kind: does not raise the score
			{Category: "class", Type: character.ModifierKindProficiency, SubType: "strength-score", Value: intPtr(5)},
			// No value: contributes nothing even with a fixedValue
			{Category: "item", Type: character.ModifierKindBonus, SubType: "dexterity-score", FixedValue: intPtr(4)},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	str := sheet.Abilities[character.AbilityStrength]
	assert.Equal(t, 15, str.Base)
	assert.Equal(t, 3, str.Bonus, "bonus modifiers accumulate")
	assert.Equal(t, 18, str.Total)
	assert.Equal(t, 4, str.Modifier)

	dex := sheet.Abilities[character.AbilityDexterity]
	assert.Equal(t, 9, dex.Base)
	assert.Equal(t, 0, dex.Bonus, "score bonuses read value only")
	assert.Equal(t, -1, dex.Modifier, "9 floors to -1")

	con := sheet.Abilities[character.AbilityConstitution]
	assert.Equal(t, 10, con.Base, "null stat value defaults to 10")

	wis := sheet.Abilities[character.AbilityWisdom]
	assert.Equal(t, 10, wis.Base, "absent stat entry defaults to 10")
}

func TestResolve_ProficiencyBonusByLevel(t *testing.T) {
	cases := []struct {
		levels   []int
		expected int
	}{
		{levels: nil, expected: 2},
		{levels: []int{1}, expected: 2},
		{levels: []int{4}, expected: 2},
		{levels: []int{5}, expected: 3},
		{levels: []int{8}, expected: 3},
		{levels: []int{9}, expected: 4},
		{levels: []int{13}, expected: 5},
		{levels: []int{17}, expected: 6},
		{levels: []int{20}, expected: 6},
		// Multiclass levels sum before the bonus is derived
		{levels: []int{3, 2}, expected: 3},
	}

	for _, tc := range cases {
		doc := &character.Document{}
		total := 0
		for _, level := range tc.levels {
			total += level
			doc.Classes = append(doc.Classes, &character.CharacterClass{
				Level:      level,
				Definition: &character.ClassDefinition{Name: "Fighter"},
			})
		}

		sheet, err := character.Resolve(doc)
		require.NoError(t, err)
		assert.Equal(t, total, sheet.TotalLevel)
		assert.Equal(t, tc.expected, sheet.ProficiencyBonus,
			"total level %d should give proficiency bonus %d", total, tc.expected)
	}
}

func TestResolve_SavingThrows(t *testing.T) {
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 2, Value: intPtr(14)}, // DEX +2
			{ID: 5, Value: intPtr(8)},  // WIS -1
		},
		Classes: []*character.CharacterClass{
			{Level: 5, Definition: &character.ClassDefinition{Name: "Rogue"}}, // proficiency bonus 3
		},
		Modifiers: character.ModifierSet{
			{Category: "class", Type: character.ModifierKindProficiency, SubType: "dexterity-saving-throws"},
			// A second grant must not stack
			{Category: "feat", Type: character.ModifierKindProficiency, SubType: "dexterity-saving-throws"},
			// A bonus kind on a save key is not a proficiency grant
			{Category: "item", Type: character.ModifierKindBonus, SubType: "wisdom-saving-throws", Value: intPtr(3)},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	dex := sheet.SavingThrows[character.AbilityDexterity]
	assert.True(t, dex.Proficient)
	assert.Equal(t, 5, dex.Value, "proficient save is modifier +2 plus bonus +3, granted once")

	wis := sheet.SavingThrows[character.AbilityWisdom]
	assert.False(t, wis.Proficient)
	assert.Equal(t, -1, wis.Value, "non-proficient save is the bare modifier")
}

func TestResolve_SkillWithNoModifiers_UsesAbilityModifier(t *testing.T) {
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 2, Value: intPtr(16)}, // DEX +3
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	stealth := sheet.Skills["stealth"]
	require.NotNil(t, stealth)
	assert.Equal(t, character.AbilityDexterity, stealth.Ability)
	assert.Equal(t, 3, stealth.Value)
	assert.Equal(t, character.ProficiencyNone, stealth.Proficiency)
}

func TestResolve_SkillProficiency(t *testing.T) {
	// Level 5 gives proficiency bonus 3; DEX 14 gives modifier +2.
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 2, Value: intPtr(14)},
		},
		Classes: []*character.CharacterClass{
			{Level: 5, Definition: &character.ClassDefinition{Name: "Fighter"}},
		},
		Modifiers: character.ModifierSet{
			{Category: "background", Type: character.ModifierKindProficiency, SubType: "acrobatics"},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	acrobatics := sheet.Skills["acrobatics"]
	assert.Equal(t, character.ProficiencyFull, acrobatics.Proficiency)
	assert.Equal(t, 5, acrobatics.Value, "+2 ability and +3 proficiency")
}

func TestResolve_SkillExpertise_DoublesProficiencyBonus(t *testing.T) {
	// Level 9 gives proficiency bonus 4; DEX 12 gives modifier +1.
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 2, Value: intPtr(12)},
		},
		Classes: []*character.CharacterClass{
			{Level: 9, Definition: &character.ClassDefinition{Name: "Rogue"}},
		},
		Modifiers: character.ModifierSet{
			{Category: "class", Type: character.ModifierKindProficiency, SubType: "stealth"},
			{Category: "class", Type: character.ModifierKindExpertise, SubType: "stealth"},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	stealth := sheet.Skills["stealth"]
	assert.Equal(t, character.ProficiencyExpertise, stealth.Proficiency)
	assert.Equal(t, 9, stealth.Value, "+1 ability and double proficiency 8")
}

func TestResolve_SkillHalfProficiency(t *testing.T) {
	// Level 5 gives proficiency bonus 3, halved and truncated to 1.
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 5, Value: intPtr(10)},
		},
		Classes: []*character.CharacterClass{
			{Level: 5, Definition: &character.ClassDefinition{Name: "Bard"}},
		},
		Modifiers: character.ModifierSet{
			{Category: "class", Type: character.ModifierKindHalfProficiency, SubType: "perception"},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	perception := sheet.Skills["perception"]
	assert.Equal(t, character.ProficiencyHalf, perception.Proficiency)
	assert.Equal(t, 1, perception.Value, "half of 3 truncates to 1")
}

func TestResolve_SkillPrecedence_HigherLevelWins(t *testing.T) {
	doc := &character.Document{
		Classes: []*character.CharacterClass{
			{Level: 5, Definition: &character.ClassDefinition{Name: "Ranger"}},
		},
		Modifiers: character.ModifierSet{
			// Order should not matter: expertise wins over the others
			// for athletics no matter where it appears.
			{Category: "class", Type: character.ModifierKindExpertise, SubType: "athletics"},
			{Category: "feat", Type: character.ModifierKindHalfProficiency, SubType: "athletics"},
			{Category: "background", Type: character.ModifierKindProficiency, SubType: "athletics"},
			// Half proficiency never downgrades full proficiency.
			{Category: "class", Type: character.ModifierKindProficiency, SubType: "survival"},
			{Category: "feat", Type: character.ModifierKindHalfProficiency, SubType: "survival"},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, character.ProficiencyExpertise, sheet.Skills["athletics"].Proficiency)
	assert.Equal(t, character.ProficiencyFull, sheet.Skills["survival"].Proficiency)
}

func TestResolve_HitPoints(t *testing.T) {
	// CON 14 (+2) at total level 5 adds 10 hit points.
	doc := &character.Document{
		BaseHitPoints:    10,
		RemovedHitPoints: 4,
		Stats: []*character.Stat{
			{ID: 3, Value: intPtr(14)},
		},
		Classes: []*character.CharacterClass{
			{Level: 5, Definition: &character.ClassDefinition{Name: "Fighter"}},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, 20, sheet.MaxHitPoints)
	assert.Equal(t, 16, sheet.CurrentHitPoints)
}

func TestResolve_CurrentHitPoints_NotClamped(t *testing.T) {
	doc := &character.Document{
		BaseHitPoints:    8,
		RemovedHitPoints: 12,
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, -4, sheet.CurrentHitPoints, "negative current hit points pass through")
}

func TestResolve_BonusHitPoints(t *testing.T) {
	doc := &character.Document{
		BaseHitPoints:  10,
		BonusHitPoints: 5,
		Classes: []*character.CharacterClass{
			{Level: 2, Definition: &character.ClassDefinition{Name: "Fighter"}},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, 15, sheet.MaxHitPoints, "bonus hit points add flat, CON +0 adds nothing")
}

func TestResolve_Speed(t *testing.T) {
	walk := 25
	doc := &character.Document{
		Race: &character.Race{
			WeightSpeeds: &character.WeightSpeeds{
				Normal: &character.SpeedSet{Walk: &walk},
			},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, 25, sheet.Speed)

	// Any structural absence along the path falls back to 30.
	partial := &character.Document{
		Race: &character.Race{WeightSpeeds: &character.WeightSpeeds{}},
	}
	sheet, err = character.Resolve(partial)
	require.NoError(t, err)
	assert.Equal(t, 30, sheet.Speed)
}

func TestResolve_Initiative_IsDexModifier(t *testing.T) {
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 2, Value: intPtr(7)},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, -2, sheet.Initiative, "7 floors to -2")
}

func TestResolve_Spellcasting_FirstCasterClassWins(t *testing.T) {
	// Fighter is listed first but does not cast; the Wizard entry sets
	// the spellcasting ability even though it comes second.
	doc := &character.Document{
		Stats: []*character.Stat{
			{ID: 4, Value: intPtr(16)}, // INT +3
			{ID: 6, Value: intPtr(18)}, // CHA +4, must not be picked
		},
		Classes: []*character.CharacterClass{
			{Level: 5, Definition: &character.ClassDefinition{Name: "Fighter"}},
			{Level: 3, Definition: &character.ClassDefinition{Name: "Wizard"}},
			{Level: 1, Definition: &character.ClassDefinition{Name: "Sorcerer"}},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)

	require.NotNil(t, sheet.Spellcasting)
	assert.Equal(t, character.AbilityIntelligence, sheet.Spellcasting.Ability)
	// Total level 9 gives proficiency bonus 4.
	assert.Equal(t, 7, sheet.Spellcasting.AttackBonus, "+3 INT and +4 proficiency")
	assert.Equal(t, 15, sheet.Spellcasting.SaveDC, "8 +3 INT +4 proficiency")
}

func TestResolve_Spellcasting_NoCasterClass(t *testing.T) {
	doc := &character.Document{
		Classes: []*character.CharacterClass{
			{Level: 10, Definition: &character.ClassDefinition{Name: "Fighter"}},
			{Level: 2, Definition: &character.ClassDefinition{Name: "Barbarian"}},
		},
	}

	sheet, err := character.Resolve(doc)
	require.NoError(t, err)
	assert.Nil(t, sheet.Spellcasting)
}

func TestResolve_Idempotent(t *testing.T) {
	walk := 35
	doc := &character.Document{
		ID:               42,
		Name:             "Mirelle",
		BaseHitPoints:    28,
		BonusHitPoints:   3,
		RemovedHitPoints: 7,
		Stats: []*character.Stat{
			{ID: 1, Value: intPtr(8)},
			{ID: 2, Value: intPtr(16)},
			{ID: 3, Value: intPtr(14)},
			{ID: 4, Value: intPtr(12)},
			{ID: 5, Value: intPtr(13)},
			{ID: 6, Value: intPtr(10)},
		},
		Classes: []*character.CharacterClass{
			{Level: 4, Definition: &character.ClassDefinition{Name: "Rogue"}},
			{Level: 2, Definition: &character.ClassDefinition{Name: "Druid"}},
		},
		Modifiers: character.ModifierSet{
			{Category: "race", Type: character.ModifierKindBonus, SubType: "dexterity-score", Value: intPtr(2)},
			{Category: "class", Type: character.ModifierKindExpertise, SubType: "stealth"},
			{Category: "class", Type: character.ModifierKindProficiency, SubType: "dexterity-saving-throws"},
			{Category: "feat", Type: character.ModifierKindBonus, SubType: "armor-class", Value: intPtr(1)},
		},
		Inventory: []*character.Item{
			{Equipped: true, Definition: &character.ItemDefinition{Name: "Leather", ArmorTypeID: character.ArmorTypeLight, ArmorClass: 11}},
		},
		Race: &character.Race{
			FullName:     "Wood Elf",
			WeightSpeeds: &character.WeightSpeeds{Normal: &character.SpeedSet{Walk: &walk}},
		},
	}

	first, err := character.Resolve(doc)
	require.NoError(t, err)
	second, err := character.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second, "resolving twice must be bit-identical")
}
