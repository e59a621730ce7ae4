package model

// Intent is the classified purpose of a chat message. Recomputed per
// request; the chat backend is stateless across calls.
type Intent string

const (
	IntentEvaluation     Intent = "evaluation"
	IntentAboutAgent     Intent = "about-agent"
	IntentPropertySearch Intent = "property-search"
	IntentGeneral        Intent = "general"
)

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat API request
type ChatRequest struct {
	Messages          []ChatMessage `json:"messages"`
	SystemPrompt      string        `json:"systemPrompt,omitempty"`
	Language          string        `json:"language,omitempty"`
	IsPropEvalRequest bool          `json:"isPropEvalRequest,omitempty"`
}

// LastUserMessage returns the content of the most recent user message.
// Falls back to the last message of any role if no user turn exists.
func (r ChatRequest) LastUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content
		}
	}
	if len(r.Messages) > 0 {
		return r.Messages[len(r.Messages)-1].Content
	}
	return ""
}

// ChatResponse represents a chat API response. A user-facing Message is
// always present, regardless of HTTP status.
type ChatResponse struct {
	Message     string            `json:"message"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
	Results     []PropertyPreview `json:"results,omitempty"`
	Total       int               `json:"total,omitempty"`
	Intent      Intent            `json:"intent,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// SearchFilters represents structured filters extracted from free text or
// supplied explicitly by the caller.
type SearchFilters struct {
	Type     *string  `json:"type,omitempty"`
	Bedrooms *int     `json:"bedrooms,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Location *string  `json:"location,omitempty"`
}

// Empty reports whether no filter field is set.
func (f *SearchFilters) Empty() bool {
	if f == nil {
		return true
	}
	return f.Type == nil && f.Bedrooms == nil && f.MinPrice == nil && f.MaxPrice == nil && f.Location == nil
}
