package articulation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Polisher improves tone and clarity of a composed reply. Implementations
// must not alter bullet lines or numerals; callers fall back to the input
// text on any error, so a Polisher failure can never fail the request.
type Polisher interface {
	Polish(ctx context.Context, text, styleHint string) (string, error)
}

// polishPrompt instructs the model to keep every fact intact.
const polishPrompt = "Improve clarity and empathy WITHOUT changing facts. " +
	"KEEP every bullet line that starts with '-' exactly as-is (do not merge into prose). " +
	"Do NOT invent dates/times not present in bullets; do NOT alter numerals (IDs, amounts, ETAs). " +
	"Start with one concise paragraph that clearly states completed actions and next steps with timeframes. " +
	"Then show the original bullet list unchanged.\n\n"

// GeminiPolisher polishes replies through the Gemini API.
type GeminiPolisher struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiPolisher builds a polisher. The api key is required; model
// defaults to gemini-2.0-flash.
func NewGeminiPolisher(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiPolisher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiPolisher{client: client, model: model, logger: logger}, nil
}

// Polish sends the reply for tone polish and returns the polished text with
// a "[Polished by Gemini] " prefix. Empty model output is an error so the
// caller keeps the deterministic reply.
func (g *GeminiPolisher) Polish(ctx context.Context, text, styleHint string) (string, error) {
	prompt := polishPrompt + "STYLE HINT: " + styleHint + "\n\n" + text

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	g.logger.Debug("reply polished", zap.String("model", g.model))
	return "[Polished by Gemini] " + out, nil
}
