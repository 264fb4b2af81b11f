package llm

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const defaultAnthropicMaxTokens = 1024

// AnthropicConnector streams messages from the Anthropic API.
type AnthropicConnector struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

func NewAnthropicConnector(apiKey, model string, logger *zap.Logger, opts ...option.RequestOption) *AnthropicConnector {
	c := &AnthropicConnector{model: model, logger: logger}
	if apiKey == "" {
		return c
	}

	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	c.client = &client

	return c
}

func (c *AnthropicConnector) Stream(ctx context.Context, req *entity.CompletionRequest) (entity.TokenStream, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: anthropic api key", entity.ErrProviderNotConfigured)
	}

	system, messages := toAnthropicMessages(req)
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: no user message to send", entity.ErrGenerationFailed)
	}

	maxTokens := int64(req.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		MaxTokens: maxTokens,
		Messages:  messages,
		Model:     anthropic.Model(c.model),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	ctxzap.Debug(ctx, "starting anthropic stream", zap.String("model", c.model), zap.Int("messages", len(messages)))

	return &anthropicStream{stream: c.client.Messages.NewStreaming(ctx, params)}, nil
}

// toAnthropicMessages folds system messages into the system prompt and drops
// leading assistant turns, since the conversation must open with the user.
func toAnthropicMessages(req *entity.CompletionRequest) (string, []anthropic.MessageParam) {
	system := req.SystemPrompt
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))

	for _, m := range req.Messages {
		switch m.Role {
		case entity.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		case entity.RoleAssistant:
			if len(messages) == 0 {
				continue
			}
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	return system, messages
}

type anthropicStream struct {
	stream  *ssestream.Stream[anthropic.MessageStreamEventUnion]
	current string
}

func (s *anthropicStream) Next() bool {
	for s.stream.Next() {
		event := s.stream.Current()
		switch ev := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				s.current = delta.Text
				return true
			}
		case anthropic.MessageStopEvent:
			return false
		}
	}
	return false
}

func (s *anthropicStream) Current() string {
	return s.current
}

func (s *anthropicStream) Err() error {
	if err := s.stream.Err(); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}
	return nil
}

func (s *anthropicStream) Close() error {
	return s.stream.Close()
}
