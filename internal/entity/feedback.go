package entity

// FeedbackStatus is the reader's vote on a content item. The empty status
// means no vote and is written as null.
type FeedbackStatus string

const (
	FeedbackNone FeedbackStatus = ""
	FeedbackUp   FeedbackStatus = "up"
	FeedbackDown FeedbackStatus = "down"
)

// FeedbackRequest is the body of POST /api/feedback/content. IsPositive is a
// pointer so a missing vote can be told apart from a thumbs down.
type FeedbackRequest struct {
	ContentID  string  `json:"content_id"`
	IsPositive *bool   `json:"is_positive"`
	Reason     *string `json:"reason"`
	Details    *string `json:"details"`
}

// ContentFeedback is a validated vote ready to store.
type ContentFeedback struct {
	ContentID  string
	IsPositive bool
	Reason     *string
	Details    *string
}

// FeedbackTarget is the body of DELETE /api/feedback/content.
type FeedbackTarget struct {
	ContentID string `json:"content_id"`
}
