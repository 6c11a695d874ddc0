package vision

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/offbeam/narrator/pkg/capture"
	"github.com/offbeam/narrator/pkg/persona"
)

// DefaultOpenAIModel is the default vision-capable model.
const DefaultOpenAIModel = "gpt-4o"

var _ Reactor = (*OpenAIReactor)(nil)

// OpenAIReactor generates reactions via the OpenAI chat completions API.
type OpenAIReactor struct {
	Client *openai.Client

	// Model is the vision-capable model ID. Defaults to DefaultOpenAIModel.
	Model string

	// MaxTokens bounds the reply length. Defaults to 300.
	MaxTokens int64
}

// NewOpenAIReactor creates a reactor backed by the OpenAI API.
func NewOpenAIReactor(apiKey, model string) *OpenAIReactor {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIReactor{Client: &client, Model: model, MaxTokens: 300}
}

// React implements Reactor.
func (g *OpenAIReactor) React(ctx context.Context, speaker persona.Persona, snap capture.Snapshot,
	history []string, roster *persona.Roster) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	msgs = append(msgs, openai.SystemMessage(systemPrompt(speaker, roster, len(history) > 0)))
	for _, line := range history {
		msgs = append(msgs, openai.AssistantMessage(line))
	}
	msgs = append(msgs, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(camLeadIn),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    snap.Camera.DataURL(),
			Detail: "high",
		}),
		openai.TextContentPart(screenLeadIn),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    snap.Screen.DataURL(),
			Detail: "high",
		}),
	}))

	params := openai.ChatCompletionNewParams{
		Model:               g.Model,
		Messages:            msgs,
		MaxCompletionTokens: param.NewOpt(g.MaxTokens),
		Temperature:         param.NewOpt(1.0),
	}

	return reactWithRetry(ctx, speaker, func(ctx context.Context) (string, error) {
		resp, err := g.Client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices")
		}
		choice := resp.Choices[0]
		if choice.Message.Refusal != "" {
			// Empty replies are retried, which is exactly what a
			// structured refusal deserves.
			return "", nil
		}
		return choice.Message.Content, nil
	})
}
