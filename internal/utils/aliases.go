package utils

import (
	"strings"
)

// propertyTypeAliases maps canonical unit types to the vocabulary users
// actually write, across English, Arabic and Russian.
var propertyTypeAliases = map[string][]string{
	"apartment": {"apartment", "apartments", "flat", "condo", "شقة", "شقق", "квартира", "квартиру", "апартаменты"},
	"villa":     {"villa", "villas", "house", "فيلا", "فلل", "вилла", "виллу", "дом"},
	"townhouse": {"townhouse", "townhouses", "تاون هاوس", "таунхаус"},
	"penthouse": {"penthouse", "بنتهاوس", "пентхаус"},
	"studio":    {"studio", "ستوديو", "استوديو", "студия", "студию"},
	"duplex":    {"duplex", "دوبلكس", "дуплекс"},
}

// FindPropertyType scans free text for the first property type mention,
// in canonical order so "apartment" beats rarer types on ties.
func FindPropertyType(text string) (string, bool) {
	textLower := strings.ToLower(text)

	order := []string{"apartment", "villa", "townhouse", "penthouse", "studio", "duplex"}
	for _, canonical := range order {
		for _, alias := range propertyTypeAliases[canonical] {
			if containsWord(textLower, alias) {
				return canonical, true
			}
		}
	}
	return "", false
}

// containsWord matches an alias on word boundaries for Latin aliases and by
// plain substring for non-Latin scripts, where Go's \b is unreliable.
func containsWord(text, alias string) bool {
	idx := strings.Index(text, alias)
	if idx < 0 {
		return false
	}
	if alias == "" || alias[0] >= 0x80 {
		return true
	}
	before := byte(' ')
	if idx > 0 {
		before = text[idx-1]
	}
	after := byte(' ')
	if end := idx + len(alias); end < len(text) {
		after = text[end]
	}
	return !isWordByte(before) && !isWordByte(after)
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
