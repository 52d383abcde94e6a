// Package generator turns a free-text process description into a proposed
// phase list using Google's Gemini models.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/okfy/leadboard/internal/domain/pipeline"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

var (
	// ErrMissingAPIKey indicates generation was attempted without credentials.
	ErrMissingAPIKey = errors.New("gemini API key not configured")
	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty generator response")
	// ErrNoPhases indicates the response parsed but proposed no phases.
	ErrNoPhases = errors.New("generator proposed no phases")
)

// Gemini generates phase lists through the Gemini API. The client is
// created on first use so a missing key only fails the call that needs it.
type Gemini struct {
	apiKey string
	model  string
	logger *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini creates a generator for model, falling back to DefaultModel.
func NewGemini(apiKey, model string, logger *slog.Logger) *Gemini {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Gemini{apiKey: strings.TrimSpace(apiKey), model: model, logger: logger}
}

// Configured reports whether an API key is present.
func (g *Gemini) Configured() bool {
	return g.apiKey != ""
}

// Generate asks the model for a phase list matching prompt.
func (g *Gemini) Generate(ctx context.Context, prompt string) (pipeline.Proposal, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return pipeline.Proposal{}, err
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(prompt)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   proposalSchema(),
	})
	if err != nil {
		return pipeline.Proposal{}, fmt.Errorf("gemini generate failed: %w", err)
	}

	proposal, err := ParseProposal(resp.Text())
	if err != nil {
		return pipeline.Proposal{}, err
	}

	if g.logger != nil {
		g.logger.Debug("phase list generated", "model", g.model, "phases", len(proposal.Phases))
	}
	return proposal, nil
}

func (g *Gemini) connect(ctx context.Context) (*genai.Client, error) {
	if !g.Configured() {
		return nil, ErrMissingAPIKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func buildPrompt(userPrompt string) string {
	return fmt.Sprintf(`Você é um arquiteto de processos comerciais.
Monte as fases de um quadro Kanban para o seguinte processo: %q.

Responda em JSON com:
- "name": um nome curto para o pipeline;
- "phases": de 3 a 7 fases, na ordem em que um lead as percorre. Cada fase tem
  "name" (ação ou estado, ex.: "Triagem", "Em Análise", "Concluído"),
  "color" (cor HEX profissional) e, quando fizer sentido, "slaDays".`, strings.TrimSpace(userPrompt))
}

func proposalSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {Type: genai.TypeString},
			"phases": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":    {Type: genai.TypeString},
						"color":   {Type: genai.TypeString},
						"slaDays": {Type: genai.TypeNumber},
					},
					Required: []string{"name", "color"},
				},
			},
		},
		Required: []string{"phases"},
	}
}
