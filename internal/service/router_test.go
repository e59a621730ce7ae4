package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"estatecore/internal/config"
	"estatecore/internal/model"
)

type fakeStore struct {
	properties  []model.Property
	total       int
	err         error
	lastFilters *model.SearchFilters
}

func (s *fakeStore) GetProperties(ctx context.Context, filters *model.SearchFilters, limit, offset int) ([]model.Property, int, error) {
	s.lastFilters = filters
	return s.properties, s.total, s.err
}

func (s *fakeStore) LogChat(ctx context.Context, message, language string, intent model.Intent, resultCount, responseTimeMs int) error {
	return nil
}

type fakeGenerator struct {
	enabled        bool
	answers        map[string]string
	errs           map[string]error
	translated     string
	translateErr   error
	translateCalls int
}

func (g *fakeGenerator) IsEnabled() bool { return g.enabled }

func (g *fakeGenerator) Models() []string {
	models := make([]string, 0, len(g.answers)+len(g.errs))
	for name := range g.errs {
		models = append(models, name)
	}
	for name := range g.answers {
		models = append(models, name)
	}
	return models
}

func (g *fakeGenerator) Generate(ctx context.Context, modelName, systemPrompt string, messages []model.ChatMessage) (string, error) {
	if err, ok := g.errs[modelName]; ok {
		return "", err
	}
	return g.answers[modelName], nil
}

func (g *fakeGenerator) Translate(ctx context.Context, text, language string) (string, error) {
	g.translateCalls++
	if g.translateErr != nil {
		return "", g.translateErr
	}
	return g.translated, nil
}

func testRouter(store PropertyStore, generator TextGenerator) *ChatRouter {
	chatCfg := &config.ChatConfig{HistoryLimit: 10, ResultLimit: 20, PreviewLimit: 5}
	genCfg := &config.GenAIConfig{TimeoutSec: 1, TranslateTimeout: 1}
	return NewChatRouter(store, generator, NewRanker(0.6, 0.4), chatCfg, genCfg)
}

func userMessage(text string) *model.ChatRequest {
	return &model.ChatRequest{Messages: []model.ChatMessage{{Role: "user", Content: text}}}
}

func TestRespond_ExplicitEvaluationFlag(t *testing.T) {
	router := testRouter(&fakeStore{}, nil)

	req := userMessage("anything at all")
	req.IsPropEvalRequest = true
	resp := router.Respond(context.Background(), req)

	if resp.Intent != model.IntentEvaluation {
		t.Errorf("intent = %q, want evaluation", resp.Intent)
	}
	if resp.RedirectURL != evaluationRedirect {
		t.Errorf("redirect = %q, want %q", resp.RedirectURL, evaluationRedirect)
	}
}

func TestRespond_EvaluationBeatsPropertySearch(t *testing.T) {
	store := &fakeStore{}
	router := testRouter(store, nil)

	resp := router.Respond(context.Background(), userMessage("what's the price of a 3 bedroom in Marina"))

	if resp.Intent != model.IntentEvaluation {
		t.Errorf("intent = %q, want evaluation to win over property-search", resp.Intent)
	}
	if store.lastFilters != nil {
		t.Error("catalog must not be queried on the evaluation path")
	}
}

func TestRespond_AboutAgent(t *testing.T) {
	router := testRouter(&fakeStore{}, nil)

	resp := router.Respond(context.Background(), userMessage("who are you?"))

	if resp.Intent != model.IntentAboutAgent {
		t.Errorf("intent = %q, want about-agent", resp.Intent)
	}
	if resp.RedirectURL != aboutRedirect {
		t.Errorf("redirect = %q", resp.RedirectURL)
	}
}

func TestRespond_PropertySearch(t *testing.T) {
	title := "Marina Tower"
	store := &fakeStore{
		properties: []model.Property{{ID: 1, Title: &title}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}, {ID: 7}},
		total:      42,
	}
	router := testRouter(store, nil)

	resp := router.Respond(context.Background(), userMessage("3 bedroom apartment in Marina under 2m"))

	if resp.Intent != model.IntentPropertySearch {
		t.Fatalf("intent = %q, want property-search", resp.Intent)
	}
	if resp.Total != 42 {
		t.Errorf("total = %d, want 42", resp.Total)
	}
	if len(resp.Results) != 5 {
		t.Errorf("previews = %d, want capped at 5", len(resp.Results))
	}
	if !strings.Contains(resp.Message, "42") {
		t.Errorf("summary %q should carry the count", resp.Message)
	}
	for _, want := range []string{"type=apartment", "bedrooms=3", "max_price=2000000", "location=Marina"} {
		if !strings.Contains(resp.RedirectURL, want) {
			t.Errorf("redirect %q missing %q", resp.RedirectURL, want)
		}
	}
	if store.lastFilters == nil || store.lastFilters.Bedrooms == nil || *store.lastFilters.Bedrooms != 3 {
		t.Errorf("store filters = %+v", store.lastFilters)
	}
}

func TestRespond_FallbackWithoutGenerator(t *testing.T) {
	router := testRouter(&fakeStore{}, nil)

	resp := router.Respond(context.Background(), userMessage("расскажи анекдот"))

	if resp.Intent != model.IntentGeneral {
		t.Errorf("intent = %q, want general", resp.Intent)
	}
	if resp.Message != fallbackMessages["ru"] {
		t.Errorf("message = %q, want the Russian canned fallback", resp.Message)
	}
}

func TestRespond_DisabledGeneratorFallsBack(t *testing.T) {
	router := testRouter(&fakeStore{}, &fakeGenerator{enabled: false})

	resp := router.Respond(context.Background(), userMessage("tell me a joke"))

	if resp.Message != fallbackMessages["en"] {
		t.Errorf("message = %q, want the English canned fallback", resp.Message)
	}
}

func TestRespond_GeneratedAnswerPassesThrough(t *testing.T) {
	generator := &fakeGenerator{
		enabled: true,
		answers: map[string]string{"primary": "Here is a short joke for you."},
	}
	router := testRouter(&fakeStore{}, generator)

	resp := router.Respond(context.Background(), userMessage("tell me a joke"))

	if resp.Message != "Here is a short joke for you." {
		t.Errorf("message = %q", resp.Message)
	}
	if generator.translateCalls != 0 {
		t.Errorf("translate calls = %d, conforming text needs no repair", generator.translateCalls)
	}
}

func TestRespond_AllCandidatesFailFallsBack(t *testing.T) {
	generator := &fakeGenerator{
		enabled: true,
		errs:    map[string]error{"primary": errors.New("timeout")},
	}
	router := testRouter(&fakeStore{}, generator)

	resp := router.Respond(context.Background(), userMessage("tell me a joke"))

	if resp.Message != fallbackMessages["en"] {
		t.Errorf("message = %q, want canned fallback after all candidates fail", resp.Message)
	}
}

func TestRespond_LanguageRepair(t *testing.T) {
	generator := &fakeGenerator{
		enabled:    true,
		answers:    map[string]string{"primary": "An English answer to a Russian question."},
		translated: "Русский ответ.",
	}
	router := testRouter(&fakeStore{}, generator)

	resp := router.Respond(context.Background(), userMessage("расскажи про погоду"))

	if resp.Message != "Русский ответ." {
		t.Errorf("message = %q, want the repaired translation", resp.Message)
	}
	if generator.translateCalls != 1 {
		t.Errorf("translate calls = %d, want exactly one repair attempt", generator.translateCalls)
	}
}

func TestRespond_FailedRepairKeepsOriginal(t *testing.T) {
	generator := &fakeGenerator{
		enabled:      true,
		answers:      map[string]string{"primary": "Wrong language answer."},
		translateErr: errors.New("timeout"),
	}
	router := testRouter(&fakeStore{}, generator)

	resp := router.Respond(context.Background(), userMessage("расскажи про погоду"))

	if resp.Message != "Wrong language answer." {
		t.Errorf("message = %q, want the original text after a failed repair", resp.Message)
	}
}

func TestRespond_StoreErrorStaysSoft(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	router := testRouter(store, nil)

	resp := router.Respond(context.Background(), userMessage("find me an apartment"))

	if resp.Intent != model.IntentPropertySearch {
		t.Errorf("intent = %q", resp.Intent)
	}
	if resp.Message == "" {
		t.Error("a failed catalog query must still produce a user-facing message")
	}
}
