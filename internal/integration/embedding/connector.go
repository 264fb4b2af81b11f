package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/common"
	pkghttp "github.com/Jseow008/ThePlayBook-sub001/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector calls an OpenAI-compatible embeddings endpoint.
type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Embed returns the embedding of text. A missing API key fails before any
// network call.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.config.Token == "" {
		return nil, fmt.Errorf("%w: embeddings api key", entity.ErrProviderNotConfigured)
	}

	ctxzap.Debug(ctx, "requesting embedding", zap.String("model", c.config.Model), zap.Int("input_chars", len(text)))

	req := entity.EmbeddingRequest{Input: text, Model: c.config.Model}
	var resp entity.EmbeddingResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.Endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingFailed, err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: no embedding data", entity.ErrInvalidEmbedding)
	}

	vector := resp.Data[0].Embedding
	if c.config.Dimensions > 0 && len(vector) != c.config.Dimensions {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d", entity.ErrInvalidEmbedding, len(vector), c.config.Dimensions)
	}

	return vector, nil
}

// Configured reports whether an API key is set.
func (c *Connector) Configured() bool {
	return c.config.Token != ""
}
