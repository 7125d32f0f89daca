package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Heuristic check weights. The normalized score of a node is its summed
// weights divided by the maximum reachable for that scorer.
const (
	scoreLow    = 3
	scoreMedium = 7
	scoreHigh   = 10
)

// passThreshold is the normalized score a node must exceed to count as a
// candidate. Hand-tuned against observed recipe site structure.
const passThreshold = 0.60

var (
	foodWordRe        = regexp.MustCompile(`\b(?:salt|peppar|vatten|olja|ris|potatis|pasta|lax|torsk|kyckling)\b`)
	instructionWordRe = regexp.MustCompile(`(?i)\b(?:skär|hacka|marinera|koka|stek|blanda|vispa|tillsätt|mixa|sila|skala|sjud|grader)\b`)

	ingredientTags = map[string]bool{
		"span": true, "li": true, "ul": true, "table": true,
		"tbody": true, "tr": true, "td": true,
	}
	instructionTags = map[string]bool{
		"li": true, "ul": true, "ol": true, "table": true,
		"tbody": true, "tr": true, "td": true,
	}
	unitWords = map[string]bool{
		"gram": true, "g": true, "kg": true, "l": true, "dl": true,
		"cl": true, "ml": true, "tsk": true, "msk": true, "krm": true,
		"st": true, "port": true, "kruka": true,
	}
)

// IngredientScorer classifies a DOM node as a probable ingredient line.
type IngredientScorer struct{}

// Score returns whether the node passes the ingredient threshold and its
// normalized confidence in [0,1].
func (IngredientScorer) Score(n *html.Node) (bool, float64) {
	text := NodeText(n)

	total := 0
	if ingredientTags[tagName(n)] {
		total += scoreMedium
	}
	if strings.Contains(strings.ToLower(classAttr(n)), "ingredient") {
		total += scoreLow
	}
	if len(strings.Split(text, " ")) < 8 {
		total += scoreHigh
	}
	if len(strings.Split(text, ". ")) > 0 {
		total += scoreHigh
	}
	if startsWithNumber(text) {
		total += scoreMedium
	}
	if foodWordRe.MatchString(text) {
		total += scoreMedium
	}
	if containsUnit(text) {
		total += scoreHigh
	}

	possible := scoreLow*1 + scoreMedium*3 + scoreHigh*3
	normalized := float64(total) / float64(possible)
	return normalized > passThreshold, normalized
}

// InstructionScorer classifies a DOM node as a probable instruction step.
type InstructionScorer struct{}

// Score returns whether the node passes the instruction threshold and its
// normalized confidence in [0,1].
func (InstructionScorer) Score(n *html.Node) (bool, float64) {
	text := NodeText(n)

	total := 0
	if instructionTags[tagName(n)] {
		total += scoreLow
	}
	if cls := strings.ToLower(classAttr(n)); strings.Contains(cls, "instruction") || strings.Contains(cls, "step") {
		total += scoreMedium
	}
	if utf8.RuneCountInString(text) > 100 {
		total += scoreHigh
	}
	if utf8.RuneCountInString(text) < 500 {
		total += scoreMedium
	}
	if len(strings.Split(text, ". ")) >= 2 {
		total += scoreMedium
	}
	if startsWithUpperOrNumber(text) {
		total += scoreLow
	}
	if instructionWordRe.MatchString(text) {
		total += scoreHigh
	}
	if strings.HasSuffix(strings.TrimSpace(text), ".") {
		total += scoreLow
	}

	possible := scoreLow*3 + scoreMedium*3 + scoreHigh*2
	normalized := float64(total) / float64(possible)
	return normalized > passThreshold, normalized
}

func tagName(n *html.Node) string {
	if n.Type == html.ElementNode {
		return n.Data
	}
	return ""
}

func classAttr(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

func startsWithNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsDigit(r) || r == '-'
}

func startsWithUpperOrNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

func containsUnit(s string) bool {
	for _, word := range strings.Split(s, " ") {
		if unitWords[word] {
			return true
		}
	}
	return false
}
