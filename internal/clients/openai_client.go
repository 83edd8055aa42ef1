package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/skypulse/config"
)

const openAIRequestTimeout = 60 * time.Second

var ErrMissingOpenAIKey = errors.New("[OpenAIClient] missing OPENAI_API_KEY")

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIClient(cfg config.OpenAIConfig, opts ...option.RequestOption) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingOpenAIKey
	}
	model := cfg.Model
	if model == "" {
		model = config.DEFAULT_OPENAI_MODEL
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
	}, opts...)

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{Client: openai.NewClient(opts...), Model: model}, nil
}

// Complete sends a system + user prompt and returns the first choice's text.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := c.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		}),
		Model:       openai.F(openai.ChatModel(c.Model)),
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("[OpenAIClient] chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("[OpenAIClient] empty completion")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
