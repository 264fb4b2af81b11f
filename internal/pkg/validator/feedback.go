package validator

import (
	"fmt"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

const maxFeedbackTextLength = 2000

// ValidateFeedback turns a vote body into a ContentFeedback. Blank reason and
// details are stored as null.
func (v *Validator) ValidateFeedback(req *entity.FeedbackRequest) (*entity.ContentFeedback, error) {
	contentID, err := ValidateUUID("content_id", req.ContentID)
	if err != nil {
		return nil, err
	}
	if req.IsPositive == nil {
		return nil, fmt.Errorf("%w: is_positive", entity.ErrMissingField)
	}

	reason, err := optionalText("reason", req.Reason, maxFeedbackTextLength)
	if err != nil {
		return nil, err
	}
	details, err := optionalText("details", req.Details, maxFeedbackTextLength)
	if err != nil {
		return nil, err
	}

	return &entity.ContentFeedback{
		ContentID:  contentID,
		IsPositive: *req.IsPositive,
		Reason:     reason,
		Details:    details,
	}, nil
}

func (v *Validator) ValidateFeedbackTarget(req *entity.FeedbackTarget) error {
	id, err := ValidateUUID("content_id", req.ContentID)
	if err != nil {
		return err
	}
	req.ContentID = id
	return nil
}

// optionalText trims value and maps blank to nil.
func optionalText(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if n := len([]rune(trimmed)); n > max {
		return nil, fmt.Errorf("%w: %s is %d characters (max %d)", entity.ErrValidation, field, n, max)
	}
	return &trimmed, nil
}
