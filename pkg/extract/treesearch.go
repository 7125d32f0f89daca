package extract

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrInsufficientCandidates means fewer than two distinct-content nodes
	// passed the scorer, so no ancestor pair can be formed.
	ErrInsufficientCandidates = errors.New("tree search: fewer than two distinct candidates")

	// ErrNoCommonAncestor means the root was reached without finding a
	// shared ancestor. Cannot happen in a single connected document tree.
	ErrNoCommonAncestor = errors.New("tree search: candidates have no common ancestor")
)

// nodeScorer is the per-node classifier contract shared by the ingredient
// and instruction scorers.
type nodeScorer interface {
	Score(*html.Node) (bool, float64)
}

// scoredNode pairs a passing node with its normalized score. The slice order
// is document pre-order, which later tie-breaking depends on.
type scoredNode struct {
	node  *html.Node
	score float64
}

// scoreDocument walks the whole tree depth-first and collects every node the
// scorer passes, in traversal order.
func scoreDocument(root *html.Node, scorer nodeScorer) []scoredNode {
	var passing []scoredNode
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if passed, score := scorer.Score(n); passed {
			passing = append(passing, scoredNode{node: n, score: score})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return passing
}

// dedupeByText collapses candidates whose rendered text is identical,
// keeping the first in traversal order. A wrapper and its sole child would
// otherwise count as two independent candidates.
func dedupeByText(nodes []scoredNode) []scoredNode {
	seen := make(map[string]bool, len(nodes))
	out := make([]scoredNode, 0, len(nodes))
	for _, sn := range nodes {
		text := NodeText(sn.node)
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, sn)
	}
	return out
}

// findTwoUniqueEntries picks the two candidates to anchor the ancestor
// search: all candidates scoring at least the second-highest score, first
// two in traversal order.
func findTwoUniqueEntries(nodes []scoredNode) (*html.Node, *html.Node, error) {
	unique := dedupeByText(nodes)
	if len(unique) < 2 {
		return nil, nil, ErrInsufficientCandidates
	}

	_, secondHighest := findTwoMaxScores(unique)

	var picked []*html.Node
	for _, sn := range unique {
		if sn.score >= secondHighest {
			picked = append(picked, sn.node)
			if len(picked) == 2 {
				break
			}
		}
	}
	if len(picked) < 2 {
		return nil, nil, ErrInsufficientCandidates
	}
	return picked[0], picked[1], nil
}

// findTwoMaxScores returns the two largest scores in the slice. When every
// candidate ties, both values are equal.
func findTwoMaxScores(nodes []scoredNode) (float64, float64) {
	var maxOne, maxTwo float64
	for _, sn := range nodes {
		if maxOne < sn.score {
			maxTwo = maxOne
			maxOne = sn.score
		} else if maxTwo < sn.score {
			maxTwo = sn.score
		}
	}
	return maxOne, maxTwo
}

// lowestCommonAncestor walks up from n1 until it finds a node that is also
// an ancestor of n2, then corrects past single list elements so the result
// is the containing list rather than one of its rows.
func lowestCommonAncestor(n1, n2 *html.Node) (*html.Node, error) {
	for ancestor := n1; ancestor != nil; ancestor = ancestor.Parent {
		if isAncestor(ancestor, n2) {
			return checkNotListElement(ancestor), nil
		}
	}
	return nil, ErrNoCommonAncestor
}

// isAncestor reports whether n1 is an ancestor of n2 or n1 == n2.
func isAncestor(n1, n2 *html.Node) bool {
	for ancestor := n2; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor == n1 {
			return true
		}
	}
	return false
}

// checkNotListElement recurses to the parent while the node is itself a
// single list item. Two deeply nested rows can share an ancestor that is
// still inside one row; the wanted node is the whole list.
func checkNotListElement(n *html.Node) *html.Node {
	switch tagName(n) {
	case "li", "tr", "td", "p", "span":
		if n.Parent == nil {
			return n
		}
		return checkNotListElement(n.Parent)
	default:
		return n
	}
}

// traverseIngredients runs the unsupervised ingredient path over the parsed
// document: score every node, anchor on the two best candidates, and read
// the direct children of their common ancestor as the ingredient lines.
// Ingredient rows are assumed flat, so only immediate children are taken.
func traverseIngredients(root *html.Node) ([]string, error) {
	passing := scoreDocument(root, IngredientScorer{})

	n1, n2, err := findTwoUniqueEntries(passing)
	if err != nil {
		return nil, err
	}
	lca, err := lowestCommonAncestor(n1, n2)
	if err != nil {
		return nil, err
	}

	var ingredients []string
	for c := lca.FirstChild; c != nil; c = c.NextSibling {
		if text := CleanString(NodeText(c)); text != "" {
			ingredients = append(ingredients, text)
		}
	}
	return ingredients, nil
}

// traverseInstructions runs the unsupervised instruction path. Unlike
// ingredients, steps are often wrapped in formatting tags, so the whole LCA
// subtree is flattened; the ingredient list is used to reject lines that are
// really ingredient rows scored into the wrong bucket.
func traverseInstructions(root *html.Node, ingredients []string) ([]string, error) {
	passing := scoreDocument(root, InstructionScorer{})

	n1, n2, err := findTwoUniqueEntries(passing)
	if err != nil {
		return nil, err
	}
	lca, err := lowestCommonAncestor(n1, n2)
	if err != nil {
		return nil, err
	}

	var instructions []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		text := CleanString(NodeText(n))
		if text != "" &&
			len(strings.Split(text, " ")) > 2 &&
			!contains(instructions, text) &&
			!isPartOfIngredients(text, ingredients) {
			instructions = append(instructions, text)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(lca)

	return instructions, nil
}

// isPartOfIngredients reports whether an instruction candidate is contained
// in, or contains, any already-extracted ingredient line.
func isPartOfIngredients(instruction string, ingredients []string) bool {
	for _, ingredient := range ingredients {
		if strings.Contains(ingredient, instruction) || strings.Contains(instruction, ingredient) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
