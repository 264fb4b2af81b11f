package indexing

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/embedding"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// IndexingUsecase backfills embeddings for segments and content items.
// A failure on one row is counted and logged; it never aborts the batch.
type IndexingUsecase struct {
	segmentEmbedder Embedder
	contentEmbedder Embedder
	segments        SegmentSource
	index           SegmentIndex
	content         ContentStore
	cfg             config.SyncConfig
	logger          *zap.Logger
}

func NewUsecase(
	segmentEmbedder Embedder,
	contentEmbedder Embedder,
	segments SegmentSource,
	index SegmentIndex,
	content ContentStore,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *IndexingUsecase {
	return &IndexingUsecase{
		segmentEmbedder: segmentEmbedder,
		contentEmbedder: contentEmbedder,
		segments:        segments,
		index:           index,
		content:         content,
		cfg:             cfg,
		logger:          logger,
	}
}

// SyncSegments embeds up to one batch of segments that have no vector yet.
func (uc *IndexingUsecase) SyncSegments(ctx context.Context) (*entity.SyncResult, error) {
	if !uc.segmentEmbedder.Configured() {
		return nil, fmt.Errorf("%w: segment embeddings", entity.ErrProviderNotConfigured)
	}

	pending, err := uc.segments.PendingSegments(ctx, uc.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch pending segments: %w", err)
	}

	result := &entity.SyncResult{Processed: len(pending)}
	for _, seg := range pending {
		text := strings.TrimSpace(seg.Body)
		if text == "" {
			result.Failed++
			continue
		}

		err := uc.embedAndStore(ctx, uc.segmentEmbedder, text, func(vector []float32) error {
			return uc.index.StoreSegmentEmbedding(ctx, seg, vector)
		})
		if err != nil {
			ctxzap.Warn(ctx, "segment embedding failed", zap.String("segment_id", seg.ID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Success++
	}

	observeSync(targetSegments, result)
	ctxzap.Info(ctx, "segment sync finished",
		zap.Int("processed", result.Processed),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// SyncContentItems embeds verified content items that have no vector yet.
func (uc *IndexingUsecase) SyncContentItems(ctx context.Context) (*entity.SyncResult, error) {
	if !uc.contentEmbedder.Configured() {
		return nil, fmt.Errorf("%w: content embeddings", entity.ErrProviderNotConfigured)
	}

	pending, err := uc.content.PendingContentItems(ctx, uc.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch pending content items: %w", err)
	}

	result := &entity.SyncResult{Processed: len(pending)}
	for _, item := range pending {
		text := ContentText(item)
		if strings.TrimSpace(text) == "" {
			result.Failed++
			continue
		}

		err := uc.embedAndStore(ctx, uc.contentEmbedder, text, func(vector []float32) error {
			return uc.content.StoreContentEmbedding(ctx, item.ID, vector)
		})
		if err != nil {
			ctxzap.Warn(ctx, "content embedding failed", zap.String("content_id", item.ID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Success++
	}

	observeSync(targetContent, result)
	ctxzap.Info(ctx, "content sync finished",
		zap.Int("processed", result.Processed),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// embedAndStore retries only the provider call; storage errors fail the row.
func (uc *IndexingUsecase) embedAndStore(ctx context.Context, embedder Embedder, text string, store func([]float32) error) error {
	var vector []float32
	err := uc.cfg.Retry.DoIf(ctx, func() error {
		v, err := embedder.Embed(ctx, text)
		if err != nil {
			return err
		}
		vector = v
		return nil
	}, embedding.IsRetryable)
	if err != nil {
		return err
	}
	return store(vector)
}

// ContentText is the text a content item is embedded from: one labelled line
// per present field.
func ContentText(item entity.PendingContentItem) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}

	add("Title", item.Title)
	add("Author", item.Author)
	add("Type", item.Type)
	add("Category", item.Category)
	add("Hook", item.QuickMode.Hook)
	add("Big Idea", item.QuickMode.BigIdea)
	if item.QuickMode.KeyTakeaways != nil {
		lines = append(lines, "Key Takeaways: "+strings.Join(item.QuickMode.KeyTakeaways, "; "))
	}

	return strings.Join(lines, "\n")
}
