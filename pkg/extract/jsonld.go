package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoStructuredData is returned when no script tag on the page yields a
// JSON object typed as a schema.org Recipe.
var ErrNoStructuredData = errors.New("no recipe structured data found")

// ExtractJSONLD scans the document's structured-data script tags and returns
// the first JSON object whose @type contains "Recipe". Compound types such
// as ["Recipe","BreadcrumbList"] or "AggregateRecipe" match the substring
// check.
func ExtractJSONLD(doc *goquery.Document) (map[string]any, error) {
	var found map[string]any

	doc.Find("script[type='application/ld+json'], script[type='application/javascript']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var decoded any
		if err := json.Unmarshal([]byte(s.Text()), &decoded); err != nil {
			return true
		}

		switch v := decoded.(type) {
		case map[string]any:
			if strings.Contains(typeString(v["@type"]), "Recipe") {
				found = v
				return false
			}
		case []any:
			for _, elem := range v {
				obj, ok := elem.(map[string]any)
				if !ok {
					continue
				}
				if strings.Contains(typeString(obj["@type"]), "Recipe") {
					found = obj
					return false
				}
			}
		}
		return true
	})

	if found == nil {
		return nil, ErrNoStructuredData
	}
	return found, nil
}

// typeString renders a JSON-LD @type value, which may be a plain string or
// an array of strings, into one matchable string.
func typeString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprintf("%v", p))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
