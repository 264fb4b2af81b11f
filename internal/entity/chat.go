package entity

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// MessagePart is one element of a parts-based UI message.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AuthorChatMessage accepts both the legacy content field and the parts list.
type AuthorChatMessage struct {
	Role    Role          `json:"role"`
	Content *string       `json:"content,omitempty"`
	Parts   []MessagePart `json:"parts,omitempty"`
}

// Text returns the plain text of the message, preferring parts when present.
func (m AuthorChatMessage) Text() string {
	if m.Parts != nil {
		var text string
		for _, p := range m.Parts {
			if p.Type == "text" {
				text += p.Text
			}
		}
		return text
	}
	if m.Content != nil {
		return *m.Content
	}
	return ""
}

// AuthorChatRequest is the body of POST /api/chat/author.
type AuthorChatRequest struct {
	ContentID  string              `json:"contentId"`
	AuthorName string              `json:"authorName"`
	BookTitle  string              `json:"bookTitle"`
	Messages   []AuthorChatMessage `json:"messages"`
}

// LibraryQuestion is a validated library chat request.
type LibraryQuestion struct {
	UserID   string
	Query    string
	Messages []ChatMessage
}

// AuthorConversation is a validated author chat request.
type AuthorConversation struct {
	UserID     string
	ContentID  string
	AuthorName string
	BookTitle  string
	Messages   []ChatMessage
}

// RetrievedSegment is one vector-search hit with its source text.
type RetrievedSegment struct {
	SegmentID     string
	ContentItemID string
	Title         string
	Body          string
	Similarity    float64
}

// Section is one ordered section of a content item.
type Section struct {
	Title      string
	Body       string
	OrderIndex int
}

// ChatContext is built per request and discarded once the stream ends.
type ChatContext struct {
	Query     string
	Embedding []float32
	Segments  []RetrievedSegment
	Text      string
	Truncated bool
}
