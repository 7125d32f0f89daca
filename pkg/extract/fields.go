package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// instructionSentinel is returned as the sole instruction when structured
// data carries a recipeInstructions value in none of the known shapes.
// Absence of instructions must stay distinguishable from malformed data, so
// the structured path never yields an empty list.
const instructionSentinel = "Något gick snett :("

// Title resolves the recipe title: structured name field first, then the
// og:title meta tag, then the raw document title.
func Title(jsonLD map[string]any, doc *goquery.Document) string {
	if name, ok := jsonLD["name"].(string); ok {
		return CleanString(name)
	}
	if title := metaContent(doc, "og:title"); title != "" {
		return CleanString(title)
	}
	return CleanString(doc.Find("title").Text())
}

// Description resolves the recipe description: structured field first, then
// the og:description meta tag, else empty.
func Description(jsonLD map[string]any, doc *goquery.Document) string {
	if desc, ok := jsonLD["description"].(string); ok {
		return CleanString(desc)
	}
	return CleanString(metaContent(doc, "og:description"))
}

// Ingredients resolves the ingredient list: the structured recipeIngredient
// array first, else the tree-search path. Returns nil when both fail.
func Ingredients(jsonLD map[string]any, doc *goquery.Document) []string {
	if list, ok := jsonLD["recipeIngredient"].([]any); ok {
		cleaned := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				cleaned = append(cleaned, CleanString(s))
			}
		}
		return dedupe(cleaned)
	}

	ingredients, err := traverseIngredients(docRoot(doc))
	if err != nil {
		return nil
	}
	return ingredients
}

// instructionShape tags the legal schema.org encodings of
// recipeInstructions. The shape is resolved once from the decoded JSON and
// dispatched to a per-shape decoder.
type instructionShape int

const (
	shapeStepList instructionShape = iota
	shapeSectionList
	shapeStringList
	shapeNestedObject
	shapeUnrecognized
)

// Instructions resolves the instruction steps: the polymorphic structured
// recipeInstructions field first, else the tree-search path with the
// already-extracted ingredients as a cross-check. Returns nil when both
// paths fail.
func Instructions(jsonLD map[string]any, doc *goquery.Document, ingredients []string) []string {
	if raw, ok := jsonLD["recipeInstructions"]; ok {
		steps := decodeInstructions(raw, resolveInstructionShape(raw))
		cleaned := make([]string, 0, len(steps))
		for _, step := range steps {
			cleaned = append(cleaned, CleanString(strings.ReplaceAll(step, `\n`, "\n")))
		}
		return dedupe(cleaned)
	}

	instructions, err := traverseInstructions(docRoot(doc), ingredients)
	if err != nil {
		return nil
	}
	return instructions
}

func resolveInstructionShape(raw any) instructionShape {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return shapeUnrecognized
		}
		switch first := v[0].(type) {
		case map[string]any:
			t := typeString(first["@type"])
			if strings.Contains(strings.ToLower(t), "howtostep") {
				return shapeStepList
			}
			if strings.Contains(strings.ToLower(t), "howtosection") {
				return shapeSectionList
			}
			return shapeUnrecognized
		case string:
			return shapeStringList
		default:
			return shapeUnrecognized
		}
	case map[string]any:
		if _, ok := v["itemListElement"]; ok {
			return shapeNestedObject
		}
		return shapeUnrecognized
	default:
		return shapeUnrecognized
	}
}

func decodeInstructions(raw any, shape instructionShape) []string {
	switch shape {
	case shapeStepList:
		list := raw.([]any)
		steps := make([]string, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				if text, ok := obj["text"].(string); ok {
					steps = append(steps, text)
				}
			}
		}
		return steps

	case shapeSectionList:
		section := raw.([]any)[0].(map[string]any)
		items, ok := section["itemListElement"].([]any)
		if !ok {
			return []string{instructionSentinel}
		}
		steps := make([]string, 0, len(items))
		for _, item := range items {
			if obj, ok := item.(map[string]any); ok {
				if text, ok := obj["text"].(string); ok {
					steps = append(steps, text)
				}
			}
		}
		return steps

	case shapeStringList:
		list := raw.([]any)
		steps := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				steps = append(steps, s)
			}
		}
		return steps

	case shapeNestedObject:
		items, ok := raw.(map[string]any)["itemListElement"].([]any)
		if !ok {
			return []string{instructionSentinel}
		}
		var steps []string
		for _, item := range items {
			if obj, ok := item.(map[string]any); ok {
				nested, ok := obj["itemListElement"].(map[string]any)
				if !ok {
					continue
				}
				if text, ok := nested["text"].(string); ok {
					steps = append(steps, text)
				}
			} else if s, ok := item.(string); ok {
				steps = append(steps, s)
			}
		}
		return steps

	default:
		return []string{instructionSentinel}
	}
}

// Yield resolves the serving count from the structured recipeYield field by
// filtering its text down to digits. Returns nil when absent or numberless.
func Yield(jsonLD map[string]any) *int {
	raw, ok := jsonLD["recipeYield"]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(ExtractNumbers(CleanString(stringify(raw))))
	if err != nil {
		return nil
	}
	return &n
}

// TotalTime resolves the cooking time from the structured totalTime field.
// Returns nil when the field is absent; a present but unparseable value
// yields a zero duration so "unknown" and "instant" stay distinct.
func TotalTime(jsonLD map[string]any) *time.Duration {
	raw, ok := jsonLD["totalTime"]
	if !ok {
		return nil
	}
	if d := ParseISODuration(CleanString(stringify(raw))); d != nil {
		return d
	}
	zero := time.Duration(0)
	return &zero
}

func metaContent(doc *goquery.Document, property string) string {
	selector := "meta[property='" + property + "'], meta[name='" + property + "']"
	content, _ := doc.Find(selector).Attr("content")
	return content
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) > 0 {
			return stringify(t[0])
		}
		return ""
	default:
		return ""
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
