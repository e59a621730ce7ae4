package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"estatecore/internal/config"
	"estatecore/internal/model"
	"estatecore/internal/utils"
)

// GenAIClient is a hand-rolled client for a generateContent-style text
// backend. A missing API key leaves it disabled; callers degrade to the
// canned-fallback path instead of failing.
type GenAIClient struct {
	config     *config.GenAIConfig
	httpClient *http.Client
}

// NewGenAIClient creates the client from configuration. Request deadlines
// come from the per-call context, not the transport, because the router
// applies different timeouts for generation and translation.
func NewGenAIClient(cfg *config.GenAIConfig) *GenAIClient {
	return &GenAIClient{
		config:     cfg,
		httpClient: &http.Client{},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *GenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// Models returns the configured candidate model list.
func (c *GenAIClient) Models() []string {
	return c.config.Models
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig  `json:"generationConfig"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Generate runs one generateContent call against the named model with the
// given system instruction and conversation turns.
func (c *GenAIClient) Generate(ctx context.Context, modelName, systemPrompt string, messages []model.ChatMessage) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("generative backend is not enabled (missing API key)")
	}

	req := generateRequest{
		GenerationConfig: generationConfig{
			Temperature:     c.config.Temperature,
			TopK:            c.config.TopK,
			TopP:            c.config.TopP,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &generateContent{Parts: []generatePart{{Text: systemPrompt}}}
	}
	for _, msg := range messages {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		req.Contents = append(req.Contents, generateContent{
			Role:  role,
			Parts: []generatePart{{Text: msg.Content}},
		})
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.config.APIBase, modelName, url.QueryEscape(c.config.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		text += part.Text
	}
	// Models occasionally wrap plain answers in a code fence.
	text = utils.StripCodeFences(text)
	if text == "" {
		return "", fmt.Errorf("empty candidate text")
	}
	return text, nil
}

// Translate asks the backend for a pure translation of the text into the
// target language, using the first candidate model.
func (c *GenAIClient) Translate(ctx context.Context, text, language string) (string, error) {
	if len(c.config.Models) == 0 {
		return "", fmt.Errorf("no candidate models configured")
	}
	prompt := BuildTranslationPrompt(text, language)
	return c.Generate(ctx, c.config.Models[0], "", []model.ChatMessage{{Role: "user", Content: prompt}})
}
