package character

import (
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// Resolve derives the full statistics sheet from a raw character
// document. It is a pure function of its input: no I/O, no shared
// state, safe to call concurrently on independent documents. Missing
// fields resolve to their documented defaults; only a nil document is
// an error.
func Resolve(doc *Document) (*Sheet, error) {
	if doc == nil {
		return nil, errors.InvalidArgument("character document is required")
	}

	sheet := &Sheet{
		Abilities: resolveAbilities(doc),
	}

	sheet.TotalLevel = totalLevel(doc.Classes)
	sheet.ProficiencyBonus = proficiencyBonus(sheet.TotalLevel)
	sheet.SavingThrows = resolveSavingThrows(doc, sheet)
	sheet.Skills = resolveSkills(doc, sheet)
	resolveCombat(doc, sheet)
	sheet.Spellcasting = resolveSpellcasting(doc, sheet)

	return sheet, nil
}

// resolveAbilities computes all six abilities. The base comes from the
// stats list, the bonus from score-raising bonus modifiers. An ability
// with no stats entry still resolves, at the default base.
func resolveAbilities(doc *Document) map[Ability]*AbilityScore {
	base := make(map[int]int, len(doc.Stats))
	for _, stat := range doc.Stats {
		if stat == nil || stat.Value == nil {
			continue
		}
		base[stat.ID] = *stat.Value
	}

	bonuses := make(map[Ability]int, len(Abilities))
	for _, m := range doc.Modifiers {
		if m.Type != ModifierKindBonus {
			continue
		}
		ability, ok := abilityByScoreKey[m.SubType]
		if !ok {
			continue
		}
		if m.Value != nil {
			bonuses[ability] += *m.Value
		}
	}

	abilities := make(map[Ability]*AbilityScore, len(Abilities))
	for id, ability := range abilityByStatID {
		score, ok := base[id]
		if !ok {
			score = defaultAbilityScore
		}
		total := score + bonuses[ability]
		abilities[ability] = &AbilityScore{
			Base:     score,
			Bonus:    bonuses[ability],
			Total:    total,
			Modifier: AbilityModifier(total),
		}
	}
	return abilities
}

func totalLevel(classes []*CharacterClass) int {
	total := 0
	for _, class := range classes {
		if class == nil {
			continue
		}
		total += class.Level
	}
	return total
}

// proficiencyBonus never drops below 2, including at level 0.
func proficiencyBonus(level int) int {
	if level == 0 {
		return 2
	}
	return 2 + ((level - 1) / 4)
}

// resolveSavingThrows marks an ability's save proficient when any
// proficiency modifier targets it. Multiple grants do not stack.
func resolveSavingThrows(doc *Document, sheet *Sheet) map[Ability]*SavingThrow {
	proficient := make(map[Ability]bool)
	for _, m := range doc.Modifiers {
		if m.Type != ModifierKindProficiency {
			continue
		}
		if ability, ok := abilityBySaveKey[m.SubType]; ok {
			proficient[ability] = true
		}
	}

	saves := make(map[Ability]*SavingThrow, len(Abilities))
	for _, ability := range Abilities {
		value := sheet.Abilities[ability].Modifier
		if proficient[ability] {
			value += sheet.ProficiencyBonus
		}
		saves[ability] = &SavingThrow{
			Value:      value,
			Proficient: proficient[ability],
		}
	}
	return saves
}

// resolveSkills takes the maximum proficiency level granted for each
// skill across all modifiers, so expertise beats proficiency beats
// half proficiency regardless of which category granted what.
func resolveSkills(doc *Document, sheet *Sheet) map[string]*SkillBonus {
	levels := make(map[string]ProficiencyLevel, len(SkillAbilities))
	for _, m := range doc.Modifiers {
		if _, ok := SkillAbilities[m.SubType]; !ok {
			continue
		}

		var level ProficiencyLevel
		switch m.Type {
		case ModifierKindProficiency:
			level = ProficiencyFull
		case ModifierKindExpertise:
			level = ProficiencyExpertise
		case ModifierKindHalfProficiency:
			level = ProficiencyHalf
		default:
			continue
		}

		if level > levels[m.SubType] {
			levels[m.SubType] = level
		}
	}

	skills := make(map[string]*SkillBonus, len(SkillAbilities))
	for skill, ability := range SkillAbilities {
		level := levels[skill]
		skills[skill] = &SkillBonus{
			Ability:     ability,
			Value:       sheet.Abilities[ability].Modifier + level.Bonus(sheet.ProficiencyBonus),
			Proficiency: level,
		}
	}
	return skills
}

// resolveCombat fills hit points, armor class, speed, and initiative.
// Current hit points may go negative; clamping is a display concern.
func resolveCombat(doc *Document, sheet *Sheet) {
	conHP := sheet.Abilities[AbilityConstitution].Modifier * sheet.TotalLevel
	sheet.MaxHitPoints = doc.BaseHitPoints + doc.BonusHitPoints + conHP
	sheet.CurrentHitPoints = sheet.MaxHitPoints - doc.RemovedHitPoints

	sheet.Speed = defaultWalkSpeed
	if doc.Race != nil && doc.Race.WeightSpeeds != nil && doc.Race.WeightSpeeds.Normal != nil && doc.Race.WeightSpeeds.Normal.Walk != nil {
		sheet.Speed = *doc.Race.WeightSpeeds.Normal.Walk
	}

	sheet.Initiative = sheet.Abilities[AbilityDexterity].Modifier
	sheet.ArmorClass = resolveArmorClass(doc, sheet.Initiative)
}

// resolveArmorClass applies the armor precedence: equipped body armor
// replaces the unarmored base and caps DEX (no cap for light, 2 for
// medium, 0 for heavy), shields accumulate, and armor-class bonus
// modifiers add on top. When several body armor pieces are equipped
// the last one in inventory order wins. The final modifier scan skips
// the item category because equipped items were already counted.
func resolveArmorClass(doc *Document, dexModifier int) int {
	baseAC := unarmoredBaseAC
	dexCapped := false
	dexCap := 0
	shieldBonus := 0
	otherBonus := 0

	for _, item := range doc.Inventory {
		if item == nil || !item.Equipped || item.Definition == nil {
			continue
		}

		def := item.Definition
		switch def.ArmorTypeID {
		case ArmorTypeShield:
			shieldBonus += def.ArmorClass
			otherBonus += grantedArmorClassBonus(def.GrantedModifiers)
		case ArmorTypeLight, ArmorTypeMedium, ArmorTypeHeavy:
			baseAC = def.ArmorClass
			switch def.ArmorTypeID {
			case ArmorTypeMedium:
				dexCapped, dexCap = true, 2
			case ArmorTypeHeavy:
				dexCapped, dexCap = true, 0
			default:
				dexCapped = false
			}
			otherBonus += grantedArmorClassBonus(def.GrantedModifiers)
		}
	}

	effectiveDex := dexModifier
	if dexCapped && effectiveDex > dexCap {
		effectiveDex = dexCap
	}

	for _, m := range doc.Modifiers {
		if m.Category == ModifierCategoryItem {
			continue
		}
		if m.SubType != subTypeArmorClass || m.Type != ModifierKindBonus {
			continue
		}
		if m.Value != nil {
			otherBonus += *m.Value
		}
	}

	return baseAC + effectiveDex + shieldBonus + otherBonus
}

func grantedArmorClassBonus(mods []*Modifier) int {
	total := 0
	for _, m := range mods {
		if m == nil || m.SubType != subTypeArmorClass || m.Type != ModifierKindBonus {
			continue
		}
		total += m.Amount()
	}
	return total
}

// resolveSpellcasting picks the first class in document order that has
// a spellcasting ability. Multiclass casters get only that class's
// numbers; a character with no caster class gets nil.
func resolveSpellcasting(doc *Document, sheet *Sheet) *Spellcasting {
	for _, class := range doc.Classes {
		if class == nil || class.Definition == nil {
			continue
		}

		ability, ok := SpellcastingAbilities[class.Definition.Name]
		if !ok {
			continue
		}

		mod := sheet.Abilities[ability].Modifier
		return &Spellcasting{
			Ability:     ability,
			AttackBonus: mod + sheet.ProficiencyBonus,
			SaveDC:      8 + mod + sheet.ProficiencyBonus,
		}
	}
	return nil
}
