package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	pkghttp "github.com/Jseow008/ThePlayBook-sub001/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConnector embeds content items with the Gemini embedding API.
type GeminiConnector struct {
	config config.GeminiConfig
	client *genai.Client
	logger *zap.Logger
}

// NewGeminiConnector builds the client. Without an API key the connector is
// still returned and every call fails with ErrProviderNotConfigured.
func NewGeminiConnector(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiConnector, error) {
	c := &GeminiConnector{config: cfg, logger: logger}
	if cfg.APIKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.client = client

	return c, nil
}

func (c *GeminiConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: gemini api key", entity.ErrProviderNotConfigured)
	}

	ctxzap.Debug(ctx, "requesting gemini embedding", zap.String("model", c.config.EmbeddingModel))

	embedCfg := &genai.EmbedContentConfig{}
	if c.config.Dimensions > 0 {
		embedCfg.OutputDimensionality = genai.Ptr(int32(c.config.Dimensions))
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.config.EmbeddingModel, genai.Text(text), embedCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingFailed, err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: no embedding data", entity.ErrInvalidEmbedding)
	}

	vector := resp.Embeddings[0].Values
	if c.config.Dimensions > 0 && len(vector) != c.config.Dimensions {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d", entity.ErrInvalidEmbedding, len(vector), c.config.Dimensions)
	}

	return vector, nil
}

func (c *GeminiConnector) Configured() bool {
	return c.client != nil
}

// IsRetryable reports whether an Embed error is worth another attempt:
// network failures, rate limits and upstream 5xx from either provider.
func IsRetryable(err error) bool {
	if pkghttp.IsRetryable(err) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return false
}
