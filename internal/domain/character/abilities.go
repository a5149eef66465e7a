package character

// Ability identifies one of the six ability scores.
type Ability string

const (
	AbilityStrength     Ability = "STR"
	AbilityDexterity    Ability = "DEX"
	AbilityConstitution Ability = "CON"
	AbilityIntelligence Ability = "INT"
	AbilityWisdom       Ability = "WIS"
	AbilityCharisma     Ability = "CHA"
)

// Abilities lists all abilities in wire stat id order (1..6).
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

var abilityByStatID = map[int]Ability{
	1: AbilityStrength,
	2: AbilityDexterity,
	3: AbilityConstitution,
	4: AbilityIntelligence,
	5: AbilityWisdom,
	6: AbilityCharisma,
}

var abilityFullNames = map[Ability]string{
	AbilityStrength:     "Strength",
	AbilityDexterity:    "Dexterity",
	AbilityConstitution: "Constitution",
	AbilityIntelligence: "Intelligence",
	AbilityWisdom:       "Wisdom",
	AbilityCharisma:     "Charisma",
}

// AbilityByStatID maps a wire stat id to its ability.
func AbilityByStatID(id int) (Ability, bool) {
	a, ok := abilityByStatID[id]
	return a, ok
}

// FullName returns the long form of the ability name, e.g. "Strength".
func (a Ability) FullName() string {
	return abilityFullNames[a]
}

// AbilityModifier converts an ability score total to its modifier.
// Division floors toward negative infinity, so 9 is -1 and 7 is -2.
func AbilityModifier(score int) int {
	diff := score - 10
	if diff >= 0 {
		return diff / 2
	}
	return (diff - 1) / 2
}
