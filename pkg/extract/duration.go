package extract

import (
	"regexp"
	"time"

	"github.com/sosodev/duration"
)

// Some sites emit totalTime with spurious year/month components
// ("P1Y2M3DT0H0M"). Everything between the year marker and the day marker is
// collapsed onto the day component before parsing.
var yearToDayRe = regexp.MustCompile(`Y.*D`)

// ParseISODuration parses an ISO-8601 duration string such as "PT30M".
// Returns nil when the string cannot be parsed.
func ParseISODuration(s string) *time.Duration {
	cleaned := yearToDayRe.ReplaceAllString(s, "D")
	d, err := duration.Parse(cleaned)
	if err != nil {
		return nil
	}
	td := d.ToTimeDuration()
	return &td
}
