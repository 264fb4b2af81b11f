package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

const (
	maxAuthorNameChars = 200
	maxBookTitleChars  = 500
)

// ValidateChat checks a library chat request and extracts the query from the
// last message.
func (v *Validator) ValidateChat(req *entity.ChatRequest, userID string) (*entity.LibraryQuestion, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages", entity.ErrMissingField)
	}
	if len(req.Messages) > v.cfg.MaxMessages {
		return nil, fmt.Errorf("%w: at most %d messages allowed, got %d", entity.ErrValidation, v.cfg.MaxMessages, len(req.Messages))
	}

	for i, m := range req.Messages {
		if !m.Role.IsValid() {
			return nil, fmt.Errorf("%w: messages[%d].role %q", entity.ErrValidation, i, m.Role)
		}
		n := utf8.RuneCountInString(m.Content)
		if n == 0 || n > v.cfg.MaxMessageChars {
			return nil, fmt.Errorf("%w: messages[%d].content must be 1..%d characters", entity.ErrValidation, i, v.cfg.MaxMessageChars)
		}
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != entity.RoleUser {
		return nil, fmt.Errorf("%w: last message must be a user message", entity.ErrValidation)
	}

	query := strings.TrimSpace(last.Content)
	if query == "" {
		return nil, fmt.Errorf("%w: query is blank", entity.ErrValidation)
	}

	return &entity.LibraryQuestion{
		UserID:   userID,
		Query:    query,
		Messages: req.Messages,
	}, nil
}

// ValidateAuthorChat checks an author chat request. Messages without text are
// dropped and only the trailing history window is kept.
func (v *Validator) ValidateAuthorChat(req *entity.AuthorChatRequest, userID string) (*entity.AuthorConversation, error) {
	contentID, err := ValidateUUID("contentId", req.ContentID)
	if err != nil {
		return nil, err
	}

	authorName, err := trimmedLength("authorName", req.AuthorName, maxAuthorNameChars)
	if err != nil {
		return nil, err
	}

	bookTitle, err := trimmedLength("bookTitle", req.BookTitle, maxBookTitleChars)
	if err != nil {
		return nil, err
	}

	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages", entity.ErrMissingField)
	}
	if len(req.Messages) > v.cfg.AuthorMaxMessages {
		return nil, fmt.Errorf("%w: at most %d messages allowed, got %d", entity.ErrValidation, v.cfg.AuthorMaxMessages, len(req.Messages))
	}

	messages := make([]entity.ChatMessage, 0, len(req.Messages))
	totalChars := 0
	for i, m := range req.Messages {
		if m.Role != entity.RoleUser && m.Role != entity.RoleAssistant {
			return nil, fmt.Errorf("%w: messages[%d].role %q", entity.ErrValidation, i, m.Role)
		}
		text := m.Text()
		if text == "" {
			continue
		}
		totalChars += utf8.RuneCountInString(text)
		messages = append(messages, entity.ChatMessage{Role: m.Role, Content: text})
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: no valid messages provided", entity.ErrValidation)
	}
	if messages[len(messages)-1].Role != entity.RoleUser {
		return nil, fmt.Errorf("%w: last message must be a user message", entity.ErrValidation)
	}
	if totalChars > v.cfg.AuthorMaxTotalChars {
		return nil, fmt.Errorf("%w: conversation is %d characters (max %d)", entity.ErrValidation, totalChars, v.cfg.AuthorMaxTotalChars)
	}

	if window := v.cfg.AuthorHistoryWindow; window > 0 && len(messages) > window {
		messages = messages[len(messages)-window:]
	}

	return &entity.AuthorConversation{
		UserID:     userID,
		ContentID:  contentID,
		AuthorName: authorName,
		BookTitle:  bookTitle,
		Messages:   messages,
	}, nil
}
