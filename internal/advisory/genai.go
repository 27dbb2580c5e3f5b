// Package advisory provides a Gemini-backed readability oracle.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// DefaultGenAIModel is the model used when none is configured.
const DefaultGenAIModel = "gemini-2.5-flash"

// genaiPrompt instructs the model to act as a readability judge and answer
// in machine-readable form only.
const genaiPrompt = `You judge whether text on a web page is comfortable to read.
Given the colours and typography below, answer with a single JSON object of
the form {"comfortable": <bool>, "confidence": <number between 0 and 1>}
and nothing else. "comfortable" means a typical reader would find the
original colours acceptable as rendered.

foreground: %s
background: %s
wcag contrast ratio: %.2f
element type: %s
font size: %.1fpx
font weight: %d
text length: %d characters`

// GenAIGate asks a Gemini model whether the original pairing reads
// comfortably. Like every gate it is advisory only and fail-open.
type GenAIGate struct {
	client *genai.Client
	model  string
}

// NewGenAIGate creates a Gemini-backed oracle. The GOOGLE_API_KEY
// environment variable must be set. An empty model selects
// DefaultGenAIModel.
func NewGenAIGate(ctx context.Context, model string) (*GenAIGate, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("advisory: GOOGLE_API_KEY environment variable is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("advisory: create Gen AI client: %w", err)
	}

	if model == "" {
		model = DefaultGenAIModel
	}
	return &GenAIGate{client: client, model: model}, nil
}

// Judge asks the model for a readability verdict on the original pairing.
func (g *GenAIGate) Judge(ctx context.Context, req Request) (Decision, error) {
	prompt := fmt.Sprintf(genaiPrompt,
		req.Foreground.Hex(),
		req.Background.Hex(),
		req.Contrast,
		req.ElementType,
		req.FontSize,
		req.FontWeight,
		req.TextLength,
	)

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		return Decision{}, fmt.Errorf("advisory: generate content: %w", err)
	}
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return Decision{}, fmt.Errorf("advisory: empty model response")
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	var decision Decision
	if err := json.Unmarshal([]byte(text.String()), &decision); err != nil {
		return Decision{}, fmt.Errorf("advisory: malformed model response: %w", err)
	}
	if decision.Confidence < 0 || decision.Confidence > 1 {
		return Decision{}, fmt.Errorf("advisory: confidence %v out of [0, 1]", decision.Confidence)
	}
	return decision, nil
}

var _ Gate = (*GenAIGate)(nil)
