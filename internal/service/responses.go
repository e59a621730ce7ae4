package service

import (
	"fmt"
	"net/url"
	"strconv"

	"estatecore/internal/model"
)

// Canned response text per language. Every canned path answers in the
// detected language; English is the fallback for anything unmapped.

const (
	evaluationRedirect = "/evaluation"
	aboutRedirect      = "/about"
	searchRedirect     = "/properties"
)

var evaluationMessages = map[string]string{
	"en": "I can prepare a free property evaluation for you. You will get a market price estimate based on recent transactions in your area, a comparison with similar listings, and advice on the best time to sell. Fill in the short form and I will get back to you within one working day.",
	"ar": "يمكنني إعداد تقييم مجاني لعقارك. ستحصل على تقدير لسعر السوق بناءً على أحدث الصفقات في منطقتك، ومقارنة مع عقارات مشابهة، ونصيحة حول أفضل وقت للبيع. املأ النموذج القصير وسأعود إليك خلال يوم عمل واحد.",
	"ru": "Я могу подготовить для вас бесплатную оценку недвижимости. Вы получите рыночную оценку на основе последних сделок в вашем районе, сравнение с похожими объектами и совет о лучшем времени для продажи. Заполните короткую форму, и я свяжусь с вами в течение рабочего дня.",
}

var aboutAgentMessages = map[string]string{
	"en": "I am Sara, a licensed Dubai real estate consultant with over ten years of experience in off-plan and secondary market sales. I help buyers and investors find the right property and handle the whole process end to end. You can read more about my background and client reviews on the about page.",
	"ar": "أنا سارة، مستشارة عقارية مرخصة في دبي بخبرة تزيد عن عشر سنوات في مبيعات العقارات على الخارطة والسوق الثانوي. أساعد المشترين والمستثمرين في العثور على العقار المناسب وأتولى العملية كاملة. يمكنك قراءة المزيد عن خبرتي وآراء العملاء في صفحة من نحن.",
	"ru": "Я Сара, лицензированный консультант по недвижимости в Дубае с более чем десятилетним опытом продаж на первичном и вторичном рынке. Помогаю покупателям и инвесторам найти подходящий объект и сопровождаю сделку от начала до конца. Подробнее обо мне и отзывы клиентов на странице обо мне.",
}

var fallbackMessages = map[string]string{
	"en": "Sorry, I could not process that right now. I can still search our property catalog for you: tell me the type, budget and area you are interested in.",
	"ar": "عذراً، لم أتمكن من معالجة طلبك الآن. ما زال بإمكاني البحث في قاعدة العقارات لدينا: أخبرني بنوع العقار والميزانية والمنطقة التي تهمك.",
	"ru": "Извините, сейчас я не смог обработать ваш запрос. Но я могу поискать в нашем каталоге недвижимости: скажите тип объекта, бюджет и район, который вас интересует.",
}

var noResultsMessages = map[string]string{
	"en": "I could not find properties matching that exactly, but here is the full catalog filtered as close as possible. Try widening the budget or the area.",
	"ar": "لم أجد عقارات مطابقة تماماً، لكن يمكنك تصفح الكتالوج الكامل مع أقرب الفلاتر الممكنة. جرّب توسيع الميزانية أو المنطقة.",
	"ru": "Я не нашёл объектов с точно такими параметрами, но вот каталог с ближайшими фильтрами. Попробуйте расширить бюджет или район.",
}

var resultsSummaries = map[string]string{
	"en": "I found %d matching properties. Here are the top ones; open the link to see the full filtered list.",
	"ar": "وجدت %d عقاراً مطابقاً. هذه أبرز النتائج؛ افتح الرابط لعرض القائمة الكاملة مع الفلاتر.",
	"ru": "Я нашёл %d подходящих объектов. Вот лучшие из них; откройте ссылку, чтобы увидеть весь отфильтрованный список.",
}

var languageNames = map[string]string{
	"en": "English",
	"ar": "Arabic",
	"ru": "Russian",
}

func cannedMessage(table map[string]string, language string) string {
	if msg, ok := table[language]; ok {
		return msg
	}
	return table["en"]
}

// EvaluationResponse is the fixed valuation pitch with its redirect.
func EvaluationResponse(language string) model.ChatResponse {
	return model.ChatResponse{
		Message:     cannedMessage(evaluationMessages, language),
		RedirectURL: evaluationRedirect,
		Intent:      model.IntentEvaluation,
	}
}

// AboutAgentResponse is the fixed biography blurb with its redirect.
func AboutAgentResponse(language string) model.ChatResponse {
	return model.ChatResponse{
		Message:     cannedMessage(aboutAgentMessages, language),
		RedirectURL: aboutRedirect,
		Intent:      model.IntentAboutAgent,
	}
}

// FallbackResponse is the apologetic canned answer used whenever the
// generative backend is unavailable or fails.
func FallbackResponse(language string) model.ChatResponse {
	return model.ChatResponse{
		Message: cannedMessage(fallbackMessages, language),
		Intent:  model.IntentGeneral,
	}
}

// SearchSummary renders the localized count line for a search result.
func SearchSummary(language string, total int) string {
	if total == 0 {
		return cannedMessage(noResultsMessages, language)
	}
	return fmt.Sprintf(cannedMessage(resultsSummaries, language), total)
}

// BuildRedirectURL carries the extracted filters to the listing page as
// query parameters.
func BuildRedirectURL(filters *model.SearchFilters) string {
	params := url.Values{}
	if filters != nil {
		if filters.Type != nil {
			params.Set("type", *filters.Type)
		}
		if filters.Bedrooms != nil {
			params.Set("bedrooms", strconv.Itoa(*filters.Bedrooms))
		}
		if filters.MinPrice != nil {
			params.Set("min_price", strconv.FormatFloat(*filters.MinPrice, 'f', 0, 64))
		}
		if filters.MaxPrice != nil {
			params.Set("max_price", strconv.FormatFloat(*filters.MaxPrice, 'f', 0, 64))
		}
		if filters.Location != nil {
			params.Set("location", *filters.Location)
		}
	}
	if encoded := params.Encode(); encoded != "" {
		return searchRedirect + "?" + encoded
	}
	return searchRedirect
}

// BuildSystemPrompt assembles the language-locked instruction block for
// the generative backend.
func BuildSystemPrompt(custom, language string) string {
	name := languageNames[language]
	if name == "" {
		name = languageNames["en"]
	}
	prompt := custom
	if prompt == "" {
		prompt = "You are a helpful real estate assistant for a Dubai property agency. Answer briefly and concretely. For anything requiring a human (viewings, negotiations, paperwork) offer to connect the client with the agent."
	}
	return fmt.Sprintf("%s\n\nRespond ONLY in %s. Never mix languages in one reply.", prompt, name)
}

// BuildTranslationPrompt asks for a pure translation of text that came
// back in the wrong language.
func BuildTranslationPrompt(text, language string) string {
	name := languageNames[language]
	if name == "" {
		name = languageNames["en"]
	}
	return fmt.Sprintf("Translate the following text to %s. Return only the translation, nothing else:\n\n%s", name, text)
}
