package service

import (
	"regexp"
	"strings"

	"estatecore/internal/model"
	"estatecore/internal/utils"
)

// Per-language vocabulary for the canned intents. Classification order is
// owned by the router's rule list; these sets only answer "does this text
// belong to intent X in language Y".
var (
	evaluationPatterns = map[string][]*regexp.Regexp{
		"en": {
			regexp.MustCompile(`(?i)\b(valuation|valuate|apprais\w*|evaluat\w*)\b`),
			regexp.MustCompile(`(?i)\b(price|worth|value)\b`),
			regexp.MustCompile(`(?i)how much is`),
		},
		"ar": {
			regexp.MustCompile(`سعر|بكام|تقييم|قيمة|ثمن|يساوي`),
			regexp.MustCompile(`كم (يساوي|سعر|ثمن|قيمة)`),
		},
		"ru": {
			regexp.MustCompile(`(?i)оцен\w*|стоимост\w*|цен[аыу]`),
			regexp.MustCompile(`(?i)сколько стоит`),
		},
	}

	aboutAgentPatterns = map[string][]*regexp.Regexp{
		"en": {
			regexp.MustCompile(`(?i)\bwho are you\b`),
			regexp.MustCompile(`(?i)\babout (you|the agent|yourself)\b`),
			regexp.MustCompile(`(?i)\byour (name|experience|background)\b`),
		},
		"ar": {
			regexp.MustCompile(`من (انت|أنت|انتي|أنتي)`),
			regexp.MustCompile(`(عنك|اسمك|خبرتك)`),
		},
		"ru": {
			regexp.MustCompile(`(?i)кто (ты|вы)`),
			regexp.MustCompile(`(?i)(о (тебе|вас|себе)|как (тебя|вас) зовут)`),
		},
	}

	searchVerbPatterns = map[string][]*regexp.Regexp{
		"en": {
			regexp.MustCompile(`(?i)\b(search|find|looking for|buy|budget|rent)\b`),
		},
		"ar": {
			regexp.MustCompile(`(ابحث|أبحث|بحث|اشتري|أشتري|شراء|ميزانية|ايجار|إيجار)`),
		},
		"ru": {
			regexp.MustCompile(`(?i)(ищу|найди|найти|поиск|куп(ить|лю)|бюджет|аренд\w*)`),
		},
	}
)

var (
	bedroomPattern  = regexp.MustCompile(`(?i)(\d+)[-\s]*(?:bed(?:room)?s?|br\b|غرف(?:ة)?(?:\s*نوم)?|спальн\w*|комнатн\w*)`)
	// \b is ASCII-only in Go regexp and never matches after Arabic or
	// Cyrillic letters, so the boundary guards only the Latin suffixes.
	amountPattern   = regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million\b|thousand\b|مليون|ألف|الف|млн|тыс|[km]\b)?`)
	locationPattern = regexp.MustCompile(`(?i)(?:\b(?:in|at)\b|في|(?:^|\s)в)\s+(\p{L}[\p{L} ]*)`)
)

// locationStopWords terminate a captured location phrase; everything from
// the first stop word on belongs to another clause.
var locationStopWords = map[string]bool{
	"under": true, "below": true, "over": true, "above": true,
	"for": true, "with": true, "around": true, "up": true, "less": true,
	"بأقل": true, "أقل": true, "حوالي": true, "مع": true,
	"до": true, "за": true, "около": true, "не": true,
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// MatchesEvaluation reports whether the text carries valuation vocabulary
// in the given language.
func MatchesEvaluation(text, language string) bool {
	return matchesAny(evaluationPatterns[language], text)
}

// MatchesAboutAgent reports whether the text asks about the agent.
func MatchesAboutAgent(text, language string) bool {
	return matchesAny(aboutAgentPatterns[language], text)
}

// MatchesPropertySearch reports whether the text carries real-estate
// search vocabulary: a property type noun, a search verb, a bedroom count
// or a suffixed money amount.
func MatchesPropertySearch(text, language string) bool {
	if _, ok := utils.FindPropertyType(text); ok {
		return true
	}
	if matchesAny(searchVerbPatterns[language], text) {
		return true
	}
	if bedroomPattern.MatchString(text) {
		return true
	}
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		if m[2] != "" {
			return true
		}
	}
	return false
}

// ExtractFilters pulls structured search filters out of free text. Two
// money amounts become a min/max range; a single amount is treated as the
// maximum budget.
func ExtractFilters(text string) *model.SearchFilters {
	filters := &model.SearchFilters{}

	if propertyType, ok := utils.FindPropertyType(text); ok {
		filters.Type = &propertyType
	}

	remainder := text
	if m := bedroomPattern.FindStringSubmatch(text); m != nil {
		if n, ok := utils.ParseAmount(m[1]); ok {
			bedrooms := int(n)
			filters.Bedrooms = &bedrooms
		}
		// Remove the bedroom clause so its count is not read as a price.
		remainder = strings.Replace(remainder, m[0], " ", 1)
	}

	var amounts []float64
	for _, m := range amountPattern.FindAllStringSubmatch(remainder, -1) {
		token := strings.ReplaceAll(m[1], ",", "")
		if m[2] != "" {
			token += m[2]
		}
		amount, ok := utils.ParseAmount(token)
		if !ok {
			continue
		}
		// A bare small number is a count or a typo, not a price.
		if m[2] == "" && amount < 1000 {
			continue
		}
		amounts = append(amounts, amount)
	}
	switch len(amounts) {
	case 1:
		filters.MaxPrice = &amounts[0]
	default:
		if len(amounts) >= 2 {
			lo, hi := amounts[0], amounts[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			filters.MinPrice = &lo
			filters.MaxPrice = &hi
		}
	}

	if location := extractLocation(text); location != "" {
		filters.Location = &location
	}

	return filters
}

func extractLocation(text string) string {
	m := locationPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	words := strings.Fields(m[1])
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if locationStopWords[strings.ToLower(word)] {
			break
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
