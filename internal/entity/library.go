package entity

import "time"

// User is the authenticated caller.
type User struct {
	ID    string
	Email string
}

type Highlight struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	ContentItemID   string        `json:"content_item_id"`
	SegmentID       *string       `json:"segment_id"`
	HighlightedText string        `json:"highlighted_text"`
	NoteBody        *string       `json:"note_body"`
	Color           string        `json:"color"`
	CreatedAt       time.Time     `json:"created_at"`
	ContentItem     *ContentBrief `json:"content_item,omitempty"`
}

// ContentBrief is the content item summary joined onto highlights.
type ContentBrief struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        *string `json:"author"`
	CoverImageURL *string `json:"cover_image_url"`
}

type CreateHighlightRequest struct {
	ContentItemID   string  `json:"content_item_id"`
	SegmentID       *string `json:"segment_id"`
	HighlightedText string  `json:"highlighted_text"`
	NoteBody        *string `json:"note_body"`
	Color           string  `json:"color"`
}

type BookmarkRequest struct {
	ContentItemID string `json:"content_item_id"`
}

type RecommendationRequest struct {
	CompletedIDs []string `json:"completedIds"`
}

// Recommendation is a row returned by the match_recommendations RPC.
type Recommendation struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        *string  `json:"author"`
	Type          string   `json:"type"`
	Category      *string  `json:"category"`
	CoverImageURL *string  `json:"cover_image_url"`
	Similarity    *float64 `json:"similarity,omitempty"`
}

// PendingSegment is a segment that has no embedding yet.
type PendingSegment struct {
	ID            string
	ContentItemID string
	Title         string
	Body          string
}

// PendingContentItem is a verified content item that has no embedding yet.
type PendingContentItem struct {
	ID        string
	Title     string
	Author    string
	Type      string
	Category  string
	QuickMode QuickMode
}

// QuickMode is the subset of quick_mode_json used for embedding text.
type QuickMode struct {
	Hook         string   `json:"hook"`
	BigIdea      string   `json:"big_idea"`
	KeyTakeaways []string `json:"key_takeaways"`
}

// SyncResult reports one embedding sync batch.
type SyncResult struct {
	Processed int `json:"processed"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
}
