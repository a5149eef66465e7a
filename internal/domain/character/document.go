package character

import (
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

// Document is a raw character record as the character service returns
// it, plus the archive annotations this tool adds on scrape. Field
// names follow the wire format so an archived document round-trips.
// Documents are read-only input to Resolve.
type Document struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Stats      []*Stat           `json:"stats,omitempty"`
	BonusStats []*Stat           `json:"bonusStats,omitempty"`
	Modifiers  ModifierSet       `json:"modifiers,omitempty"`
	Classes    []*CharacterClass `json:"classes,omitempty"`
	Inventory  []*Item           `json:"inventory,omitempty"`

	BaseHitPoints    int `json:"baseHitPoints"`
	BonusHitPoints   int `json:"bonusHitPoints,omitempty"`
	RemovedHitPoints int `json:"removedHitPoints,omitempty"`

	Race *Race `json:"race,omitempty"`

	ClassSpells []*ClassSpellList `json:"classSpells,omitempty"`
	Spells      *SpellBook        `json:"spells,omitempty"`
	Currencies  *Currencies       `json:"currencies,omitempty"`

	// Archive annotations. The underscore prefix keeps them apart from
	// wire fields when reading saved files by hand.
	Player   string       `json:"_player,omitempty"`
	Campaign *CampaignRef `json:"_campaign,omitempty"`
	Scraped  *ScrapeInfo  `json:"_scraped,omitempty"`
}

// Stat is one base or bonus ability score entry. Value stays a pointer
// because bonus stat entries carry null values on the wire.
type Stat struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Value *int   `json:"value"`
}

// CharacterClass is one class the character has levels in.
type CharacterClass struct {
	Level              int              `json:"level"`
	Definition         *ClassDefinition `json:"definition,omitempty"`
	SubclassDefinition *ClassDefinition `json:"subclassDefinition,omitempty"`
}

// ClassDefinition names a class or subclass.
type ClassDefinition struct {
	Name string `json:"name"`
}

// Armor type ids on the wire.
const (
	ArmorTypeLight  = 1
	ArmorTypeMedium = 2
	ArmorTypeHeavy  = 3
	ArmorTypeShield = 4
)

// Item is one inventory entry.
type Item struct {
	Equipped   bool            `json:"equipped"`
	Quantity   int             `json:"quantity,omitempty"`
	Definition *ItemDefinition `json:"definition,omitempty"`
}

// ItemDefinition describes the item itself. ArmorTypeID is 0 for
// items that are not armor.
type ItemDefinition struct {
	Name             string      `json:"name"`
	ArmorTypeID      int         `json:"armorTypeId,omitempty"`
	ArmorClass       int         `json:"armorClass,omitempty"`
	GrantedModifiers []*Modifier `json:"grantedModifiers,omitempty"`
}

// Race carries the character's race names and movement speeds.
type Race struct {
	FullName     string        `json:"fullName,omitempty"`
	BaseName     string        `json:"baseName,omitempty"`
	WeightSpeeds *WeightSpeeds `json:"weightSpeeds,omitempty"`
}

// WeightSpeeds holds the unencumbered speed block.
type WeightSpeeds struct {
	Normal *SpeedSet `json:"normal,omitempty"`
}

// SpeedSet holds movement speeds in feet. Walk is a pointer so an
// absent value can fall back to the default rather than reading as 0.
type SpeedSet struct {
	Walk *int `json:"walk,omitempty"`
}

// ClassSpellList is the per-class spell list section.
type ClassSpellList struct {
	Spells []*Spell `json:"spells,omitempty"`
}

// SpellBook is the top-level spells section.
type SpellBook struct {
	Class []*Spell `json:"class,omitempty"`
}

// Spell is one known or prepared spell.
type Spell struct {
	Prepared       bool             `json:"prepared,omitempty"`
	AlwaysPrepared bool             `json:"alwaysPrepared,omitempty"`
	Definition     *SpellDefinition `json:"definition,omitempty"`
}

// SpellDefinition describes the spell itself. Level 0 is a cantrip.
type SpellDefinition struct {
	Name   string `json:"name"`
	Level  int    `json:"level"`
	School string `json:"school,omitempty"`
}

// Currencies holds coin counts by denomination.
type Currencies struct {
	PP int `json:"pp,omitempty"`
	GP int `json:"gp,omitempty"`
	EP int `json:"ep,omitempty"`
	SP int `json:"sp,omitempty"`
	CP int `json:"cp,omitempty"`
}

// CampaignRef records which campaign a document was scraped from.
type CampaignRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// ScrapeInfo records when a document was scraped and by which run.
type ScrapeInfo struct {
	RunID string    `json:"runId,omitempty"`
	At    time.Time `json:"at"`
}

// ParseDocument decodes a raw character payload. It fails only when
// the payload is not structurally a character document; individually
// missing fields are left for Resolve to default.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var appErr *errors.Error
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.WrapWithCode(err, errors.CodeMalformedDocument, "payload is not a character document")
	}
	return &doc, nil
}
