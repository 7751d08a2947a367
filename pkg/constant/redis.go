package constant

import "time"

const (
	// CurrentDayMarkerKey stores the calendar date (yyyy-mm-dd, archive zone)
	// the current-day cache was built for.
	CurrentDayMarkerKey = "reports:current_day_marker"

	// CurrentDayReportsKey holds the JSON-encoded current-day report slice.
	CurrentDayReportsKey = "reports:current_day"

	// CurrentDayTTL bounds staleness if the marker key is ever lost. Two days
	// covers any day boundary; the pull-based rollover replaces the cache anyway.
	CurrentDayTTL = 48 * time.Hour
)
