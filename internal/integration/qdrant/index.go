package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

const (
	defaultPort = 6334

	payloadSegmentID     = "segment_id"
	payloadContentItemID = "content_item_id"
	payloadTitle         = "title"
	payloadBody          = "body"
)

// LibraryLister resolves the content items a user has saved.
type LibraryLister interface {
	LibraryContentIDs(ctx context.Context, userID string) ([]string, error)
}

// Index stores segment embeddings in a Qdrant collection. Each point id is the
// segment id; the payload carries what the chat context needs.
type Index struct {
	client     *qdrant.Client
	collection string
	dimensions int
	library    LibraryLister
	logger     *zap.Logger
}

func New(cfg config.VectorConfig, dimensions int, library LibraryLister, logger *zap.Logger) (*Index, error) {
	host, port, useTLS, err := parseURL(cfg.QdrantURL)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.QdrantAPIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	return &Index{
		client:     client,
		collection: cfg.QdrantCollection,
		dimensions: dimensions,
		library:    library,
		logger:     logger,
	}, nil
}

func parseURL(raw string) (string, int, bool, error) {
	if raw == "" {
		return "", 0, false, fmt.Errorf("qdrant url is required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", 0, false, fmt.Errorf("parse qdrant url: %w", err)
	}
	if u.Hostname() == "" {
		return "", 0, false, fmt.Errorf("qdrant url has no host")
	}

	port := defaultPort
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid qdrant port: %w", err)
		}
	}

	return u.Hostname(), port, u.Scheme == "https", nil
}

// EnsureCollection creates the collection with cosine distance if it is missing.
func (i *Index) EnsureCollection(ctx context.Context) error {
	exists, err := i.client.CollectionExists(ctx, i.collection)
	if err != nil {
		return fmt.Errorf("check qdrant collection: %w", err)
	}
	if exists {
		return nil
	}

	err = i.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: i.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(i.dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create qdrant collection: %w", err)
	}

	i.logger.Info("Created qdrant collection",
		zap.String("collection", i.collection),
		zap.Int("dimensions", i.dimensions),
	)
	return nil
}

// SearchSegments returns the closest segments inside the user's library.
func (i *Index) SearchSegments(ctx context.Context, userID string, vector []float32, topK int, threshold float64) ([]entity.RetrievedSegment, error) {
	contentIDs, err := i.library.LibraryContentIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrSearchFailed, err)
	}
	if len(contentIDs) == 0 {
		return nil, nil
	}

	limit := uint64(topK)
	score := float32(threshold)
	points, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		Filter:         libraryFilter(contentIDs),
		ScoreThreshold: &score,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: qdrant query: %w", entity.ErrSearchFailed, err)
	}

	segments := make([]entity.RetrievedSegment, 0, len(points))
	for _, p := range points {
		segments = append(segments, toSegment(p))
	}

	ctxzap.Debug(ctx, "Qdrant search finished",
		zap.Int("library_items", len(contentIDs)),
		zap.Int("hits", len(segments)),
	)
	return segments, nil
}

// StoreSegmentEmbedding upserts one segment point and waits for it to be indexed.
func (i *Index) StoreSegmentEmbedding(ctx context.Context, segment entity.PendingSegment, vector []float32) error {
	wait := true
	_, err := i.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: i.collection,
		Wait:           &wait,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDUUID(segment.ID),
			Vectors: qdrant.NewVectors(vector...),
			Payload: segmentPayload(segment),
		}},
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert segment %s: %w", segment.ID, err)
	}
	return nil
}

func (i *Index) Close() error {
	return i.client.Close()
}

func libraryFilter(contentIDs []string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{{
			ConditionOneOf: &qdrant.Condition_Field{
				Field: &qdrant.FieldCondition{
					Key: payloadContentItemID,
					Match: &qdrant.Match{
						MatchValue: &qdrant.Match_Keywords{
							Keywords: &qdrant.RepeatedStrings{Strings: contentIDs},
						},
					},
				},
			},
		}},
	}
}

func segmentPayload(segment entity.PendingSegment) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		payloadSegmentID:     qdrant.NewValueString(segment.ID),
		payloadContentItemID: qdrant.NewValueString(segment.ContentItemID),
		payloadTitle:         qdrant.NewValueString(segment.Title),
		payloadBody:          qdrant.NewValueString(segment.Body),
	}
}

func toSegment(p *qdrant.ScoredPoint) entity.RetrievedSegment {
	seg := entity.RetrievedSegment{Similarity: float64(p.GetScore())}
	if id := p.GetId(); id != nil {
		seg.SegmentID = id.GetUuid()
	}
	payload := p.GetPayload()
	if v, ok := payload[payloadSegmentID]; ok && v.GetStringValue() != "" {
		seg.SegmentID = v.GetStringValue()
	}
	seg.ContentItemID = payload[payloadContentItemID].GetStringValue()
	seg.Title = payload[payloadTitle].GetStringValue()
	seg.Body = payload[payloadBody].GetStringValue()
	return seg
}
