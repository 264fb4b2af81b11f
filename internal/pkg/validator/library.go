package validator

import (
	"fmt"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

const defaultHighlightColor = "yellow"

// ValidateCreateHighlight normalizes a highlight request in place.
func (v *Validator) ValidateCreateHighlight(req *entity.CreateHighlightRequest) error {
	id, err := ValidateUUID("content_item_id", req.ContentItemID)
	if err != nil {
		return err
	}
	req.ContentItemID = id

	if strings.TrimSpace(req.HighlightedText) == "" {
		return fmt.Errorf("%w: highlighted_text", entity.ErrMissingField)
	}

	if req.SegmentID != nil {
		if *req.SegmentID == "" {
			req.SegmentID = nil
		} else {
			segmentID, err := ValidateUUID("segment_id", *req.SegmentID)
			if err != nil {
				return err
			}
			req.SegmentID = &segmentID
		}
	}

	if req.Color == "" {
		req.Color = defaultHighlightColor
	}

	return nil
}

func (v *Validator) ValidateBookmark(req *entity.BookmarkRequest) error {
	id, err := ValidateUUID("content_item_id", req.ContentItemID)
	if err != nil {
		return err
	}
	req.ContentItemID = id
	return nil
}

// MaxCompletedIDs bounds the history a recommendation request may carry.
const MaxCompletedIDs = 100

// ValidateRecommendation checks every completed id and drops duplicates, so
// the recommendation cache is only keyed by well-formed, bounded sets.
func (v *Validator) ValidateRecommendation(req *entity.RecommendationRequest) error {
	if len(req.CompletedIDs) > MaxCompletedIDs {
		return fmt.Errorf("%w: completedIds has %d entries (max %d)", entity.ErrValidation, len(req.CompletedIDs), MaxCompletedIDs)
	}

	seen := make(map[string]struct{}, len(req.CompletedIDs))
	ids := make([]string, 0, len(req.CompletedIDs))
	for i, raw := range req.CompletedIDs {
		id, err := ValidateUUID(fmt.Sprintf("completedIds[%d]", i), raw)
		if err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	req.CompletedIDs = ids
	return nil
}
