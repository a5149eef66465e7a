package character

// Defaults applied when a document omits a value entirely.
const (
	defaultAbilityScore = 10
	defaultWalkSpeed    = 30
	unarmoredBaseAC     = 10
)

const subTypeArmorClass = "armor-class"

// abilityByScoreKey maps modifier subTypes like "strength-score" to
// the ability they raise.
var abilityByScoreKey = map[string]Ability{
	"strength-score":     AbilityStrength,
	"dexterity-score":    AbilityDexterity,
	"constitution-score": AbilityConstitution,
	"intelligence-score": AbilityIntelligence,
	"wisdom-score":       AbilityWisdom,
	"charisma-score":     AbilityCharisma,
}

// abilityBySaveKey maps modifier subTypes like "strength-saving-throws"
// to the ability whose save they grant proficiency in.
var abilityBySaveKey = map[string]Ability{
	"strength-saving-throws":     AbilityStrength,
	"dexterity-saving-throws":    AbilityDexterity,
	"constitution-saving-throws": AbilityConstitution,
	"intelligence-saving-throws": AbilityIntelligence,
	"wisdom-saving-throws":       AbilityWisdom,
	"charisma-saving-throws":     AbilityCharisma,
}

// SkillAbilities binds each of the eighteen skills to its governing
// ability. Skill keys double as modifier subTypes on the wire.
var SkillAbilities = map[string]Ability{
	"acrobatics":      AbilityDexterity,
	"animal-handling": AbilityWisdom,
	"arcana":          AbilityIntelligence,
	"athletics":       AbilityStrength,
	"deception":       AbilityCharisma,
	"history":         AbilityIntelligence,
	"insight":         AbilityWisdom,
	"intimidation":    AbilityCharisma,
	"investigation":   AbilityIntelligence,
	"medicine":        AbilityWisdom,
	"nature":          AbilityIntelligence,
	"perception":      AbilityWisdom,
	"performance":     AbilityCharisma,
	"persuasion":      AbilityCharisma,
	"religion":        AbilityIntelligence,
	"sleight-of-hand": AbilityDexterity,
	"stealth":         AbilityDexterity,
	"survival":        AbilityWisdom,
}

// SpellcastingAbilities maps class names to the ability their
// spellcasting runs on. Classes absent from this table do not cast.
var SpellcastingAbilities = map[string]Ability{
	"Wizard":    AbilityIntelligence,
	"Artificer": AbilityIntelligence,
	"Cleric":    AbilityWisdom,
	"Druid":     AbilityWisdom,
	"Ranger":    AbilityWisdom,
	"Bard":      AbilityCharisma,
	"Paladin":   AbilityCharisma,
	"Sorcerer":  AbilityCharisma,
	"Warlock":   AbilityCharisma,
}
