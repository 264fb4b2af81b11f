package entity

// CompletionRequest is what a generator needs to stream an answer.
type CompletionRequest struct {
	SystemPrompt    string
	Messages        []ChatMessage
	MaxOutputTokens int
}

// TokenStream yields completion text chunks in order.
// Next must be called before the first Current. After Next returns false,
// Err reports why the stream stopped (nil on normal completion).
type TokenStream interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}

// EmbeddingRequest mirrors the OpenAI embeddings wire format.
type EmbeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type EmbeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type EmbeddingResponse struct {
	Data []EmbeddingData `json:"data"`
}
