package vision

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/offbeam/narrator/pkg/capture"
	"github.com/offbeam/narrator/pkg/persona"
)

// DefaultGeminiModel is the default Gemini vision model.
const DefaultGeminiModel = "gemini-2.0-flash"

var _ Reactor = (*GeminiReactor)(nil)

// GeminiReactor generates reactions via the Google Gemini API.
type GeminiReactor struct {
	Client *genai.Client

	// Model is the Gemini model ID. Defaults to DefaultGeminiModel.
	Model string

	// MaxTokens bounds the reply length. Defaults to 300.
	MaxTokens int32
}

// NewGeminiReactor creates a reactor backed by the Gemini API.
func NewGeminiReactor(ctx context.Context, apiKey, model string) (*GeminiReactor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("vision: gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiReactor{Client: client, Model: model, MaxTokens: 300}, nil
}

// React implements Reactor.
func (g *GeminiReactor) React(ctx context.Context, speaker persona.Persona, snap capture.Snapshot,
	history []string, roster *persona.Roster) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				genai.NewPartFromText(systemPrompt(speaker, roster, len(history) > 0)),
			},
		},
		Temperature:     genai.Ptr[float32](1.0),
		MaxOutputTokens: g.MaxTokens,
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, line := range history {
		contents = append(contents, &genai.Content{
			Role:  genai.RoleModel,
			Parts: []*genai.Part{genai.NewPartFromText(line)},
		})
	}
	contents = append(contents, &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromText(camLeadIn),
			genai.NewPartFromBytes(snap.Camera.Data, snap.Camera.MIME),
			genai.NewPartFromText(screenLeadIn),
			genai.NewPartFromBytes(snap.Screen.Data, snap.Screen.MIME),
		},
	})

	return reactWithRetry(ctx, speaker, func(ctx context.Context) (string, error) {
		resp, err := g.Client.Models.GenerateContent(ctx, g.Model, contents, cfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	})
}
