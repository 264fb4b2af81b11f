package llm

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"go.uber.org/zap"
)

// OpenAIConnector streams chat completions from OpenAI.
type OpenAIConnector struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIConnector returns a connector that fails every call with
// ErrProviderNotConfigured when apiKey is empty.
func NewOpenAIConnector(apiKey, model string, logger *zap.Logger, opts ...option.RequestOption) *OpenAIConnector {
	c := &OpenAIConnector{model: model, logger: logger}
	if apiKey == "" {
		return c
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	c.client = &client

	return c
}

func (c *OpenAIConnector) Stream(ctx context.Context, req *entity.CompletionRequest) (entity.TokenStream, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: openai api key", entity.ErrProviderNotConfigured)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case entity.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		case entity.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(c.model),
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxOutputTokens))
	}

	ctxzap.Debug(ctx, "starting openai stream", zap.String("model", c.model), zap.Int("messages", len(messages)))

	return &openAIStream{stream: c.client.Chat.Completions.NewStreaming(ctx, params)}, nil
}

type openAIStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	current string
}

func (s *openAIStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.current = chunk.Choices[0].Delta.Content
		return true
	}
	return false
}

func (s *openAIStream) Current() string {
	return s.current
}

func (s *openAIStream) Err() error {
	if err := s.stream.Err(); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}
	return nil
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
