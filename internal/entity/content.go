package entity

import (
	"encoding/json"
	"time"
)

// ContentItem is a published catalog entry as the reader app consumes it.
type ContentItem struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	SourceURL       *string         `json:"source_url"`
	Status          string          `json:"status"`
	QuickMode       json.RawMessage `json:"quick_mode_json"`
	DurationSeconds *int            `json:"duration_seconds"`
	Author          *string         `json:"author"`
	CoverImageURL   *string         `json:"cover_image_url"`
	Category        *string         `json:"category"`
	IsFeatured      bool            `json:"is_featured"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ContentBatchRequest is the body of POST /api/content/batch.
type ContentBatchRequest struct {
	IDs []string `json:"ids"`
}
