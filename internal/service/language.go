package service

import "unicode"

// DetectLanguage classifies text by script: Arabic code points win, then
// Cyrillic, otherwise English. Only the given text is inspected, so
// callers pass the latest user message rather than the whole history.
func DetectLanguage(text string) string {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			return "ar"
		}
	}
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return "ru"
		}
	}
	return "en"
}

// MatchesLanguage reports whether the text's script conforms to the
// requested language. English accepts anything without Arabic or Cyrillic
// runes; empty text never conforms.
func MatchesLanguage(text, language string) bool {
	if text == "" {
		return false
	}
	switch language {
	case "ar":
		return containsRange(text, unicode.Arabic)
	case "ru":
		return containsRange(text, unicode.Cyrillic)
	default:
		return !containsRange(text, unicode.Arabic) && !containsRange(text, unicode.Cyrillic)
	}
}

func containsRange(text string, table *unicode.RangeTable) bool {
	for _, r := range text {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}
