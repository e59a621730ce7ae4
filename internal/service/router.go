package service

import (
	"context"
	"log"
	"time"

	"estatecore/internal/config"
	"estatecore/internal/model"
)

// PropertyStore is the catalog surface the router consumes. The concrete
// implementation is the Postgres repository.
type PropertyStore interface {
	GetProperties(ctx context.Context, filters *model.SearchFilters, limit, offset int) ([]model.Property, int, error)
	LogChat(ctx context.Context, message, language string, intent model.Intent, resultCount, responseTimeMs int) error
}

// TextGenerator is the generative backend surface the fallback path uses.
type TextGenerator interface {
	IsEnabled() bool
	Models() []string
	Generate(ctx context.Context, modelName, systemPrompt string, messages []model.ChatMessage) (string, error)
	Translate(ctx context.Context, text, language string) (string, error)
}

// routeRule pairs an intent predicate with its handler. Rules are
// evaluated top to bottom and the first match wins, which makes the
// priority order an explicit, testable structure.
type routeRule struct {
	intent model.Intent
	match  func(req *model.ChatRequest, text, language string) bool
	handle func(ctx context.Context, req *model.ChatRequest, text, language string) model.ChatResponse
}

// ChatRouter classifies one inbound chat message and produces the
// response: a canned template, a catalog search, or generated text.
type ChatRouter struct {
	store     PropertyStore
	generator TextGenerator
	ranker    *Ranker
	rules     []routeRule

	historyLimit     int
	resultLimit      int
	previewLimit     int
	generateTimeout  time.Duration
	translateTimeout time.Duration
}

// NewChatRouter creates the router with its rule list.
func NewChatRouter(
	store PropertyStore,
	generator TextGenerator,
	ranker *Ranker,
	chatCfg *config.ChatConfig,
	genCfg *config.GenAIConfig,
) *ChatRouter {
	r := &ChatRouter{
		store:            store,
		generator:        generator,
		ranker:           ranker,
		historyLimit:     chatCfg.HistoryLimit,
		resultLimit:      chatCfg.ResultLimit,
		previewLimit:     chatCfg.PreviewLimit,
		generateTimeout:  time.Duration(genCfg.TimeoutSec) * time.Second,
		translateTimeout: time.Duration(genCfg.TranslateTimeout) * time.Second,
	}

	r.rules = []routeRule{
		{
			intent: model.IntentEvaluation,
			match: func(req *model.ChatRequest, text, language string) bool {
				return req.IsPropEvalRequest
			},
			handle: func(ctx context.Context, req *model.ChatRequest, text, language string) model.ChatResponse {
				return EvaluationResponse(language)
			},
		},
		{
			intent: model.IntentEvaluation,
			match: func(req *model.ChatRequest, text, language string) bool {
				return MatchesEvaluation(text, language)
			},
			handle: func(ctx context.Context, req *model.ChatRequest, text, language string) model.ChatResponse {
				return EvaluationResponse(language)
			},
		},
		{
			intent: model.IntentAboutAgent,
			match: func(req *model.ChatRequest, text, language string) bool {
				return MatchesAboutAgent(text, language)
			},
			handle: func(ctx context.Context, req *model.ChatRequest, text, language string) model.ChatResponse {
				return AboutAgentResponse(language)
			},
		},
		{
			intent: model.IntentPropertySearch,
			match: func(req *model.ChatRequest, text, language string) bool {
				return MatchesPropertySearch(text, language)
			},
			handle: r.handleSearch,
		},
		{
			intent: model.IntentGeneral,
			match: func(req *model.ChatRequest, text, language string) bool {
				return true
			},
			handle: r.handleGeneral,
		},
	}

	return r
}

// Respond routes one chat request to its response. Backend failures never
// escape: every path ends in a usable message for the chat UI.
func (r *ChatRouter) Respond(ctx context.Context, req *model.ChatRequest) model.ChatResponse {
	startTime := time.Now()

	text := req.LastUserMessage()
	language := req.Language
	if language == "" {
		language = DetectLanguage(text)
	}

	for _, rule := range r.rules {
		if !rule.match(req, text, language) {
			continue
		}
		resp := rule.handle(ctx, req, text, language)

		took := time.Since(startTime).Milliseconds()
		go func() {
			if err := r.store.LogChat(context.Background(), text, language, resp.Intent, len(resp.Results), int(took)); err != nil {
				log.Printf("Warning: failed to log chat turn: %v", err)
			}
		}()

		return resp
	}

	// The last rule matches everything, so this is unreachable.
	return FallbackResponse(language)
}

// handleSearch extracts filters, queries the catalog and answers with a
// localized count summary, a redirect URL carrying the filters, and a few
// ranked inline previews.
func (r *ChatRouter) handleSearch(ctx context.Context, req *model.ChatRequest, text, language string) model.ChatResponse {
	filters := ExtractFilters(text)

	properties, total, err := r.store.GetProperties(ctx, filters, r.resultLimit, 0)
	if err != nil {
		log.Printf("Warning: catalog query failed: %v", err)
		return model.ChatResponse{
			Message: cannedMessage(fallbackMessages, language),
			Intent:  model.IntentPropertySearch,
		}
	}

	return model.ChatResponse{
		Message:     SearchSummary(language, total),
		RedirectURL: BuildRedirectURL(filters),
		Results:     r.ranker.RankPreviews(properties, filters, r.previewLimit),
		Total:       total,
		Intent:      model.IntentPropertySearch,
	}
}

// handleGeneral delegates to the generative backend: candidate models are
// tried sequentially, one attempt each under a hard timeout. Any failure
// degrades to the canned localized fallback, never an error response.
func (r *ChatRouter) handleGeneral(ctx context.Context, req *model.ChatRequest, text, language string) model.ChatResponse {
	if r.generator == nil || !r.generator.IsEnabled() {
		return FallbackResponse(language)
	}

	systemPrompt := BuildSystemPrompt(req.SystemPrompt, language)
	history := req.Messages
	if len(history) > r.historyLimit {
		history = history[len(history)-r.historyLimit:]
	}

	for _, candidate := range r.generator.Models() {
		genCtx, cancel := context.WithTimeout(ctx, r.generateTimeout)
		answer, err := r.generator.Generate(genCtx, candidate, systemPrompt, history)
		cancel()
		if err != nil {
			log.Printf("Warning: model %s failed: %v", candidate, err)
			continue
		}

		return model.ChatResponse{
			Message: r.repairLanguage(ctx, answer, language),
			Intent:  model.IntentGeneral,
		}
	}

	return FallbackResponse(language)
}

// repairLanguage checks the generated text's script against the requested
// language and issues one translation call when it does not conform. The
// original text survives a failed repair.
func (r *ChatRouter) repairLanguage(ctx context.Context, answer, language string) string {
	if MatchesLanguage(answer, language) {
		return answer
	}

	log.Printf("Warning: response language mismatch, requesting %s translation", language)
	translateCtx, cancel := context.WithTimeout(ctx, r.translateTimeout)
	defer cancel()

	translated, err := r.generator.Translate(translateCtx, answer, language)
	if err != nil {
		log.Printf("Warning: translation repair failed: %v", err)
		return answer
	}
	return translated
}
