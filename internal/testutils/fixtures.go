package testutils

import (
	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
)

func intPtr(v int) *int {
	return &v
}

// CreateTestCampaign creates a campaign reference for archive tests
func CreateTestCampaign(id int, name string) *character.CampaignRef {
	return &character.CampaignRef{
		ID:   id,
		Name: name,
	}
}

// CreateTestDocument creates a fully formed wire-shaped character
// document: a level 5 high elf wizard. Derived values for assertions:
// INT 17 (+3), DEX 14 (+2), proficiency bonus +3, HP 27 max / 24
// current, AC 12, speed 30, spell attack +6, spell save DC 14.
func CreateTestDocument(id int, name string) *character.Document {
	return &character.Document{
		ID:   id,
		Name: name,
		Stats: []*character.Stat{
			{ID: 1, Value: intPtr(8)},
			{ID: 2, Value: intPtr(14)},
			{ID: 3, Value: intPtr(12)},
			{ID: 4, Value: intPtr(15)},
			{ID: 5, Value: intPtr(10)},
			{ID: 6, Value: intPtr(11)},
		},
		Modifiers: character.ModifierSet{
			{
				Category:         character.ModifierCategoryRace,
				Type:             character.ModifierKindBonus,
				SubType:          "intelligence-score",
				Value:            intPtr(2),
				FriendlyTypeName: "Bonus",
			},
			{
				Category:         character.ModifierCategoryRace,
				Type:             "set-base",
				SubType:          "darkvision",
				FriendlyTypeName: "Darkvision",
			},
			{
				Category:         character.ModifierCategoryRace,
				Type:             "advantage",
				SubType:          "charmed",
				FriendlyTypeName: "Fey Ancestry",
			},
			{
				Category:         character.ModifierCategoryClass,
				Type:             character.ModifierKindProficiency,
				SubType:          "intelligence-saving-throws",
				FriendlyTypeName: "Proficiency",
			},
			{
				Category:         character.ModifierCategoryClass,
				Type:             character.ModifierKindProficiency,
				SubType:          "wisdom-saving-throws",
				FriendlyTypeName: "Proficiency",
			},
			{
				Category:         character.ModifierCategoryClass,
				Type:             character.ModifierKindProficiency,
				SubType:          "arcana",
				FriendlyTypeName: "Proficiency",
			},
			{
				Category:         character.ModifierCategoryClass,
				Type:             character.ModifierKindProficiency,
				SubType:          "history",
				FriendlyTypeName: "Proficiency",
			},
		},
		Classes: []*character.CharacterClass{
			{
				Level:              5,
				Definition:         &character.ClassDefinition{Name: "Wizard"},
				SubclassDefinition: &character.ClassDefinition{Name: "School of Evocation"},
			},
		},
		Inventory: []*character.Item{
			{
				Equipped:   true,
				Quantity:   1,
				Definition: &character.ItemDefinition{Name: "Dagger"},
			},
			{
				Quantity:   1,
				Definition: &character.ItemDefinition{Name: "Spellbook"},
			},
			{
				Quantity:   3,
				Definition: &character.ItemDefinition{Name: "Torch"},
			},
		},
		BaseHitPoints:    22,
		RemovedHitPoints: 3,
		Race: &character.Race{
			FullName: "High Elf",
			BaseName: "Elf",
			WeightSpeeds: &character.WeightSpeeds{
				Normal: &character.SpeedSet{Walk: intPtr(30)},
			},
		},
		ClassSpells: []*character.ClassSpellList{
			{
				Spells: []*character.Spell{
					{
						Definition: &character.SpellDefinition{Name: "Fire Bolt", Level: 0, School: "Evocation"},
					},
					{
						Prepared:   true,
						Definition: &character.SpellDefinition{Name: "Magic Missile", Level: 1, School: "Evocation"},
					},
					{
						Prepared:   true,
						Definition: &character.SpellDefinition{Name: "Shield", Level: 1, School: "Abjuration"},
					},
				},
			},
		},
		Spells: &character.SpellBook{
			Class: []*character.Spell{
				{
					AlwaysPrepared: true,
					Definition:     &character.SpellDefinition{Name: "Misty Step", Level: 2, School: "Conjuration"},
				},
			},
		},
		Currencies: &character.Currencies{GP: 25, SP: 30},
	}
}
