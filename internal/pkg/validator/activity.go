package validator

import (
	"fmt"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

const (
	defaultActivitySeconds = 60
	// maxActivitySeconds is one day of reading in a single report.
	maxActivitySeconds = 24 * 60 * 60
)

// ValidateActivityLog checks a reading report. The returned entry has an
// empty Date when the client sent none.
func (v *Validator) ValidateActivityLog(req *entity.ActivityLogRequest) (*entity.ActivityEntry, error) {
	seconds := defaultActivitySeconds
	if req.DurationSeconds != nil {
		seconds = *req.DurationSeconds
	}
	if seconds < 1 || seconds > maxActivitySeconds {
		return nil, fmt.Errorf("%w: duration_seconds must be between 1 and %d, got %d", entity.ErrValidation, maxActivitySeconds, seconds)
	}

	entry := &entity.ActivityEntry{DurationSeconds: seconds}
	if req.ActivityDate != "" {
		date, err := validateDate("activity_date", req.ActivityDate)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	return entry, nil
}

// ValidateActivityRange parses the optional start and end query values.
func (v *Validator) ValidateActivityRange(start, end string) (entity.ActivityRange, error) {
	var rng entity.ActivityRange
	if start != "" {
		date, err := validateDate("start", start)
		if err != nil {
			return rng, err
		}
		rng.Start = &date
	}
	if end != "" {
		date, err := validateDate("end", end)
		if err != nil {
			return rng, err
		}
		rng.End = &date
	}
	// YYYY-MM-DD strings order like the dates they name.
	if rng.Start != nil && rng.End != nil && *rng.Start > *rng.End {
		return rng, fmt.Errorf("%w: start is after end", entity.ErrValidation)
	}
	return rng, nil
}

func validateDate(field, value string) (string, error) {
	d, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %s must be YYYY-MM-DD", entity.ErrInvalidFormat, field)
	}
	return d.Format(entity.DateLayout), nil
}
