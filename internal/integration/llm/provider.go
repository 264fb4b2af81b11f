package llm

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"go.uber.org/zap"
)

const ProviderOpenAI = "openai"

// Generator starts a streamed completion.
type Generator interface {
	Stream(ctx context.Context, req *entity.CompletionRequest) (entity.TokenStream, error)
}

// NewLibraryGenerator returns the OpenAI generator used by library chat.
func NewLibraryGenerator(cfg config.LLMConfig, logger *zap.Logger) Generator {
	return NewOpenAIConnector(cfg.OpenAIKey, cfg.OpenAIModel, logger)
}

// NewAuthorGenerator picks the author chat provider. OpenAI is used only when
// requested and keyed; everything else goes to Anthropic. AI_MODEL overrides
// the provider's default model.
func NewAuthorGenerator(cfg config.LLMConfig, logger *zap.Logger) Generator {
	if cfg.Provider == ProviderOpenAI && cfg.OpenAIKey != "" {
		model := cfg.OpenAIModel
		if cfg.ModelOverride != "" {
			model = cfg.ModelOverride
		}
		logger.Info("Author chat using OpenAI", zap.String("model", model))
		return NewOpenAIConnector(cfg.OpenAIKey, model, logger)
	}

	model := cfg.AnthropicModel
	if cfg.ModelOverride != "" {
		model = cfg.ModelOverride
	}
	logger.Info("Author chat using Anthropic", zap.String("model", model))
	return NewAnthropicConnector(cfg.AnthropicKey, model, logger)
}
