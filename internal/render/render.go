// Package render formats character documents into the console views:
// full sheet, overview, spells, features, inventory, one-line summary,
// and the archive listing. Every derived number shown comes from
// character.Resolve.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/beyond-sheets/internal/domain/character"
	"github.com/KirkDiggler/beyond-sheets/internal/errors"
)

const (
	lineWidth        = 55
	statColumnWidth  = 7
	saveColumnWidth  = 12
	skillColumnWidth = 26
)

var (
	heavyBar = strings.Repeat("═", lineWidth)
	lightBar = strings.Repeat("─", lineWidth)
)

// Sheet writes the full boxed character sheet.
func Sheet(w io.Writer, doc *character.Document) error {
	sheet, err := character.Resolve(doc)
	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString(heavyBar + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(characterName(doc))))
	sb.WriteString(fmt.Sprintf("  %s | %s\n", raceFullName(doc), strings.Join(classLabels(doc), ", ")))
	sb.WriteString(heavyBar + "\n")

	sb.WriteString("\nABILITY SCORES\n")
	sb.WriteString(lightBar + "\n")
	statsLine := "  "
	scoresLine := "  "
	modsLine := "  "
	for _, ability := range character.Abilities {
		score := sheet.Abilities[ability]
		statsLine += center(string(ability), statColumnWidth, false) + " "
		scoresLine += center(strconv.Itoa(score.Total), statColumnWidth, false) + " "
		modsLine += center(fmt.Sprintf("(%+d)", score.Modifier), statColumnWidth, true) + " "
	}
	sb.WriteString(statsLine + "\n")
	sb.WriteString(scoresLine + "\n")
	sb.WriteString(modsLine + "\n")

	sb.WriteString("\nCOMBAT\n")
	sb.WriteString(lightBar + "\n")
	sb.WriteString(fmt.Sprintf("  AC: %d    HP: %d/%d    Speed: %d ft\n",
		sheet.ArmorClass, sheet.CurrentHitPoints, sheet.MaxHitPoints, sheet.Speed))
	sb.WriteString(fmt.Sprintf("  Initiative: %+d    Proficiency Bonus: +%d\n",
		sheet.Initiative, sheet.ProficiencyBonus))

	sb.WriteString("\nSAVING THROWS\n")
	sb.WriteString(lightBar + "\n")
	saves := make([]string, 0, len(character.Abilities))
	for _, ability := range character.Abilities {
		save := sheet.SavingThrows[ability]
		marker := ""
		if save.Proficient {
			marker = "*"
		}
		saves = append(saves, fmt.Sprintf("%s: %+d%s", ability, save.Value, marker))
	}
	sb.WriteString(fmt.Sprintf("  %s %s %s\n",
		padRight(saves[0], saveColumnWidth), padRight(saves[1], saveColumnWidth), padRight(saves[2], saveColumnWidth)))
	sb.WriteString(fmt.Sprintf("  %s %s %s\n",
		padRight(saves[3], saveColumnWidth), padRight(saves[4], saveColumnWidth), padRight(saves[5], saveColumnWidth)))
	sb.WriteString("  (* = proficient)\n")

	sb.WriteString("\nSKILLS\n")
	sb.WriteString(lightBar + "\n")
	names := make([]string, 0, len(sheet.Skills))
	for name := range sheet.Skills {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		skill := sheet.Skills[name]
		entries = append(entries, fmt.Sprintf("%s: %+d%s",
			skillDisplayName(name), skill.Value, skillMarker(skill.Proficiency)))
	}

	// Two columns, read down the left column first
	mid := (len(entries) + 1) / 2
	for i := 0; i < mid; i++ {
		right := ""
		if i+mid < len(entries) {
			right = entries[i+mid]
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", padRight(entries[i], skillColumnWidth), right))
	}
	sb.WriteString("  (* = proficient, ** = expertise)\n")

	if sheet.Spellcasting != nil {
		castingMod := sheet.Abilities[sheet.Spellcasting.Ability].Modifier
		sb.WriteString("\nSPELLCASTING\n")
		sb.WriteString(lightBar + "\n")
		sb.WriteString(fmt.Sprintf("  Spellcasting Ability: %s (%+d)\n", sheet.Spellcasting.Ability, castingMod))
		sb.WriteString(fmt.Sprintf("  Spell Attack: +%d\n", sheet.Spellcasting.AttackBonus))
		sb.WriteString(fmt.Sprintf("  Spell Save DC: %d\n", sheet.Spellcasting.SaveDC))
	}

	sb.WriteString("\n" + heavyBar + "\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

// Overview writes the short stat block.
func Overview(w io.Writer, doc *character.Document) error {
	sheet, err := character.Resolve(doc)
	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s - %s %s\n",
		characterName(doc), raceFullName(doc), strings.Join(classLabels(doc), ", ")))
	sb.WriteString(fmt.Sprintf("Level %d | HP: %d/%d | AC: %d\n",
		sheet.TotalLevel, sheet.CurrentHitPoints, sheet.MaxHitPoints, sheet.ArmorClass))
	sb.WriteString("\n")

	sb.WriteString("Abilities: ")
	for _, ability := range character.Abilities {
		score := sheet.Abilities[ability]
		sb.WriteString(fmt.Sprintf("%s %d(%+d)  ", ability, score.Total, score.Modifier))
	}
	sb.WriteString("\n")

	if sheet.Spellcasting != nil {
		sb.WriteString(fmt.Sprintf("Spellcasting: %s | Attack +%d | DC %d\n",
			sheet.Spellcasting.Ability, sheet.Spellcasting.AttackBonus, sheet.Spellcasting.SaveDC))
	}

	_, err = io.WriteString(w, sb.String())
	return err
}

// Spells writes the merged spell list grouped by level.
func Spells(w io.Writer, doc *character.Document) error {
	sheet, err := character.Resolve(doc)
	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s's Spells\n", characterName(doc)))
	if sheet.Spellcasting != nil {
		sb.WriteString(fmt.Sprintf("Spellcasting: %s | Attack +%d | DC %d\n",
			sheet.Spellcasting.Ability, sheet.Spellcasting.AttackBonus, sheet.Spellcasting.SaveDC))
	}
	sb.WriteString("\n")

	currentLevel := -1
	for _, spell := range spellEntries(doc) {
		if spell.level != currentLevel {
			currentLevel = spell.level
			if currentLevel == 0 {
				sb.WriteString("\nCantrips:\n")
			} else {
				sb.WriteString(fmt.Sprintf("\nLevel %d:\n", currentLevel))
			}
		}

		marker := ""
		if spell.alwaysPrepared {
			marker = " (always)"
		} else if spell.prepared {
			marker = " (prepared)"
		}
		sb.WriteString(fmt.Sprintf("  - %s%s\n", spell.name, marker))
	}

	_, err = io.WriteString(w, sb.String())
	return err
}

// Features writes race features, per-class feature blocks, and feats.
func Features(w io.Writer, doc *character.Document) error {
	if doc == nil {
		return errors.InvalidArgument("character document is required")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s's Features\n\n", characterName(doc)))

	raceFeatures := doc.Modifiers.FriendlyTypeNames(character.ModifierCategoryRace)
	if len(raceFeatures) > 0 {
		sb.WriteString("Race Features:\n")
		for _, feature := range raceFeatures {
			sb.WriteString(fmt.Sprintf("  - %s\n", feature))
		}
		sb.WriteString("\n")
	}

	classFeatures := doc.Modifiers.FriendlyTypeNames(character.ModifierCategoryClass)
	for _, cls := range doc.Classes {
		if cls == nil {
			continue
		}
		header := classLabel(cls)
		if cls.SubclassDefinition != nil && cls.SubclassDefinition.Name != "" {
			header += fmt.Sprintf(" (%s)", cls.SubclassDefinition.Name)
		}
		sb.WriteString(header + ":\n")
		for _, feature := range classFeatures {
			sb.WriteString(fmt.Sprintf("  - %s\n", feature))
		}
		sb.WriteString("\n")
	}

	feats := doc.Modifiers.FriendlyTypeNames(character.ModifierCategoryFeat)
	if len(feats) > 0 {
		sb.WriteString("Feats:\n")
		for _, feat := range feats {
			sb.WriteString(fmt.Sprintf("  - %s\n", feat))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Inventory writes equipped and carried items plus the currency line.
func Inventory(w io.Writer, doc *character.Document) error {
	if doc == nil {
		return errors.InvalidArgument("character document is required")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s's Inventory\n\n", characterName(doc)))

	var equipped, carried []string
	for _, item := range doc.Inventory {
		if item == nil {
			continue
		}
		name := "Unknown"
		if item.Definition != nil && item.Definition.Name != "" {
			name = item.Definition.Name
		}
		entry := name
		if item.Quantity > 1 {
			entry = fmt.Sprintf("%s (x%d)", name, item.Quantity)
		}
		if item.Equipped {
			equipped = append(equipped, entry)
		} else {
			carried = append(carried, entry)
		}
	}
	sort.Strings(equipped)
	sort.Strings(carried)

	if len(equipped) > 0 {
		sb.WriteString("Equipped:\n")
		for _, entry := range equipped {
			sb.WriteString(fmt.Sprintf("  - %s\n", entry))
		}
		sb.WriteString("\n")
	}
	if len(carried) > 0 {
		sb.WriteString("Carried:\n")
		for _, entry := range carried {
			sb.WriteString(fmt.Sprintf("  - %s\n", entry))
		}
	}

	if line := currencyLine(doc.Currencies); line != "" {
		sb.WriteString(fmt.Sprintf("\nCurrency: %s\n", line))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Summary writes the one-line summary.
func Summary(w io.Writer, doc *character.Document) error {
	sheet, err := character.Resolve(doc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s: Level %d %s %s | HP %d/%d | AC %d\n",
		characterName(doc), sheet.TotalLevel, raceBaseName(doc), strings.Join(classNames(doc), "/"),
		sheet.CurrentHitPoints, sheet.MaxHitPoints, sheet.ArmorClass)
	return err
}

// List writes the archive listing, one summary line per document.
func List(w io.Writer, docs []*character.Document) error {
	var sb strings.Builder

	sb.WriteString("Available characters:\n\n")
	for _, doc := range docs {
		if err := Summary(&sb, doc); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type spellEntry struct {
	name           string
	level          int
	prepared       bool
	alwaysPrepared bool
}

// spellEntries merges classSpells with the top-level spell book,
// dropping later duplicates by name, sorted by level then name.
func spellEntries(doc *character.Document) []spellEntry {
	var all []*character.Spell
	for _, list := range doc.ClassSpells {
		if list == nil {
			continue
		}
		all = append(all, list.Spells...)
	}
	if doc.Spells != nil {
		all = append(all, doc.Spells.Class...)
	}

	seen := make(map[string]bool)
	entries := make([]spellEntry, 0, len(all))
	for _, spell := range all {
		if spell == nil {
			continue
		}
		name := "Unknown"
		level := 0
		if spell.Definition != nil {
			if spell.Definition.Name != "" {
				name = spell.Definition.Name
			}
			level = spell.Definition.Level
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, spellEntry{
			name:           name,
			level:          level,
			prepared:       spell.Prepared,
			alwaysPrepared: spell.AlwaysPrepared,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].level != entries[j].level {
			return entries[i].level < entries[j].level
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

// currencyLine lists the non-zero coin amounts, highest denomination
// first.
func currencyLine(c *character.Currencies) string {
	if c == nil {
		return ""
	}

	coins := []struct {
		amount int
		name   string
	}{
		{c.PP, "pp"},
		{c.GP, "gp"},
		{c.EP, "ep"},
		{c.SP, "sp"},
		{c.CP, "cp"},
	}

	var parts []string
	for _, coin := range coins {
		if coin.amount > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", coin.amount, coin.name))
		}
	}
	return strings.Join(parts, ", ")
}

func characterName(doc *character.Document) string {
	if doc.Name == "" {
		return "Unknown"
	}
	return doc.Name
}

func raceFullName(doc *character.Document) string {
	if doc.Race == nil || doc.Race.FullName == "" {
		return "Unknown"
	}
	return doc.Race.FullName
}

func raceBaseName(doc *character.Document) string {
	if doc.Race == nil || doc.Race.BaseName == "" {
		return "Unknown"
	}
	return doc.Race.BaseName
}

func className(cls *character.CharacterClass) string {
	if cls == nil || cls.Definition == nil || cls.Definition.Name == "" {
		return "Unknown"
	}
	return cls.Definition.Name
}

func classLabel(cls *character.CharacterClass) string {
	return fmt.Sprintf("%s %d", className(cls), cls.Level)
}

func classLabels(doc *character.Document) []string {
	labels := make([]string, 0, len(doc.Classes))
	for _, cls := range doc.Classes {
		if cls == nil {
			continue
		}
		labels = append(labels, classLabel(cls))
	}
	return labels
}

func classNames(doc *character.Document) []string {
	names := make([]string, 0, len(doc.Classes))
	for _, cls := range doc.Classes {
		if cls == nil {
			continue
		}
		names = append(names, className(cls))
	}
	return names
}

func skillMarker(level character.ProficiencyLevel) string {
	switch level {
	case character.ProficiencyExpertise:
		return "**"
	case character.ProficiencyFull:
		return "*"
	case character.ProficiencyHalf:
		return "½"
	default:
		return ""
	}
}

// skillDisplayName turns a skill key like "sleight-of-hand" into
// "Sleight Of Hand".
func skillDisplayName(key string) string {
	words := strings.Split(key, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// center pads s to width. leftHeavy puts the odd leftover space before
// s instead of after it.
func center(s string, width int, leftHeavy bool) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	if leftHeavy {
		left = (pad + 1) / 2
	}
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// padRight pads s to width, counting runes so the ½ marker does not
// shift its column.
func padRight(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
