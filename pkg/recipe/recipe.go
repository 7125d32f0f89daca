// Package recipe defines the extracted recipe record and its helpers.
// All other packages depend on recipe; recipe depends on nothing.
package recipe

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mode records which extraction path produced a recipe.
type Mode string

const (
	// ModeStructuredData means a schema.org Recipe JSON-LD block was found.
	ModeStructuredData Mode = "structured_data"
	// ModeTreeSearch means fields were recovered by heuristic DOM scoring.
	ModeTreeSearch Mode = "tree_search"
	// ModeWebviewFallback means neither path yielded ingredients or
	// instructions; the consumer should render the live page instead.
	ModeWebviewFallback Mode = "webview_fallback"
	// ModeImageOnly marks recipes created from a photographed page rather
	// than a URL. Never produced by the extractor, kept for record
	// compatibility with consumers.
	ModeImageOnly Mode = "image_only"
)

// Recipe is the output of one extraction run. Immutable after construction.
//
// TotalTime distinguishes nil ("unknown") from a zero duration ("present but
// unparseable, or explicitly PT0M"). Ingredients and Instructions are nil
// when neither extraction path found anything.
type Recipe struct {
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	ThumbnailImage string         `json:"thumbnail_image"`
	SourceURL      string         `json:"source_url"`
	Ingredients    []string       `json:"ingredients,omitempty"`
	Instructions   []string       `json:"instructions,omitempty"`
	Yield          *int           `json:"yield,omitempty"`
	TotalTime      *time.Duration `json:"total_time,omitempty"`
	Mode           Mode           `json:"mode"`
}

// DomainName returns the host of a recipe URL without a leading "www.",
// or "Recept" when the URL is unusable. Used as a display fallback title.
func DomainName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Recept"
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// Hours returns the whole-hour component of a duration, capped to a day.
func Hours(d *time.Duration) int {
	if d == nil {
		return 0
	}
	return int(d.Hours()) % 24
}

// Minutes returns the minute component of a duration.
func Minutes(d *time.Duration) int {
	if d == nil {
		return 0
	}
	return int(d.Minutes()) % 60
}

// HumanReadableDuration formats a total time as "1 h 30 min", "45 min" or
// "2 h". An unknown or zero duration formats as the empty string.
func HumanReadableDuration(d *time.Duration) string {
	hours := Hours(d)
	minutes := Minutes(d)
	switch {
	case hours == 0 && minutes != 0:
		return fmt.Sprintf("%d min", minutes)
	case hours != 0 && minutes == 0:
		return fmt.Sprintf("%d h", hours)
	case hours != 0 && minutes != 0:
		return fmt.Sprintf("%d h %d min", hours, minutes)
	default:
		return ""
	}
}
