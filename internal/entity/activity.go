package entity

// DateLayout is the YYYY-MM-DD form used for reading activity days.
const DateLayout = "2006-01-02"

// ActivityLogRequest is the body of POST /api/activity/log. Both fields are
// optional: the duration defaults to a minute and the day to today in UTC.
type ActivityLogRequest struct {
	DurationSeconds *int   `json:"duration_seconds"`
	ActivityDate    string `json:"activity_date"`
}

// ActivityEntry is reading time to add to one day.
type ActivityEntry struct {
	Date            string
	DurationSeconds int
}

// ActivityRange bounds a history query. Nil ends are open.
type ActivityRange struct {
	Start *string
	End   *string
}

// ActivityDay is the accumulated reading of one day.
type ActivityDay struct {
	ActivityDate    string `json:"activity_date"`
	DurationSeconds int    `json:"duration_seconds"`
	PagesRead       *int   `json:"pages_read"`
}
