package character

// ProficiencyLevel ranks how proficient a character is with a skill.
// Higher levels always win when multiple modifiers touch one skill.
type ProficiencyLevel int

const (
	ProficiencyNone ProficiencyLevel = iota
	ProficiencyHalf
	ProficiencyFull
	ProficiencyExpertise
)

// Bonus returns the portion of the proficiency bonus this level grants.
// Half proficiency truncates toward zero.
func (p ProficiencyLevel) Bonus(proficiencyBonus int) int {
	switch p {
	case ProficiencyExpertise:
		return proficiencyBonus * 2
	case ProficiencyFull:
		return proficiencyBonus
	case ProficiencyHalf:
		return proficiencyBonus / 2
	default:
		return 0
	}
}

// Sheet is the full set of derived statistics for one document.
// Resolve computes a fresh Sheet on every call; nothing is cached.
type Sheet struct {
	Abilities map[Ability]*AbilityScore

	TotalLevel       int
	ProficiencyBonus int

	SavingThrows map[Ability]*SavingThrow
	Skills       map[string]*SkillBonus

	ArmorClass       int
	MaxHitPoints     int
	CurrentHitPoints int
	Speed            int
	Initiative       int

	// Spellcasting is nil for characters with no spellcasting class.
	Spellcasting *Spellcasting
}

// AbilityScore is one resolved ability. Total is always Base + Bonus.
type AbilityScore struct {
	Base     int
	Bonus    int
	Total    int
	Modifier int
}

// SavingThrow is one resolved saving throw.
type SavingThrow struct {
	Value      int
	Proficient bool
}

// SkillBonus is one resolved skill.
type SkillBonus struct {
	Ability     Ability
	Value       int
	Proficiency ProficiencyLevel
}

// Spellcasting holds the caster numbers for the character's first
// spellcasting class.
type Spellcasting struct {
	Ability     Ability
	AttackBonus int
	SaveDC      int
}
