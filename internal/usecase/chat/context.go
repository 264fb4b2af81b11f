package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

const (
	blockSeparator  = "\n\n---\n\n"
	truncatedMarker = "\n\n[Content truncated for length]"
	unknownSource   = "Unknown Source"
)

// buildLibraryContext renders retrieved segments as numbered source blocks,
// most similar first.
func buildLibraryContext(segments []entity.RetrievedSegment, budget int) (string, bool) {
	if len(segments) == 0 {
		return "", false
	}

	ordered := make([]entity.RetrievedSegment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Similarity > ordered[j].Similarity
	})

	blocks := make([]string, len(ordered))
	for i, s := range ordered {
		title := s.Title
		if title == "" {
			title = unknownSource
		}
		blocks[i] = fmt.Sprintf("[Source %d: \"%s\"]\n%s", i+1, title, s.Body)
	}

	return truncate(strings.Join(blocks, blockSeparator), budget)
}

// buildAuthorContext renders a content item's sections in reading order.
func buildAuthorContext(sections []entity.Section, budget int) (string, bool) {
	if len(sections) == 0 {
		return "", false
	}

	blocks := make([]string, len(sections))
	for i, s := range sections {
		title := s.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		blocks[i] = "## " + title + "\n" + s.Body
	}

	return truncate(strings.Join(blocks, blockSeparator), budget)
}

// truncate cuts text to budget characters and appends the marker when it did.
func truncate(text string, budget int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= budget {
		return text, false
	}
	return string(runes[:budget]) + truncatedMarker, true
}
