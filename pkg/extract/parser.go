// Package extract recovers a structured recipe from an arbitrary recipe web
// page. Structured schema.org data is used when present; otherwise every DOM
// node is scored with hand-tuned heuristics and the ingredient and
// instruction lists are located through their highest-scoring nodes' lowest
// common ancestor.
package extract

import (
	"context"
	"fmt"
	"log"

	"receptscrape/pkg/recipe"
	"receptscrape/pkg/scrape"
)

// Parser orchestrates one extraction attempt per URL: fetch, structured-data
// detection, per-field extraction, assembly. Parsers are stateless across
// calls and safe for concurrent use.
type Parser struct {
	client *scrape.Client
	images *ImageExtractor
}

// NewParser builds a parser around its HTTP collaborator. The image
// extractor shares the same client for its probes.
func NewParser(client *scrape.Client, images *ImageExtractor) *Parser {
	return &Parser{client: client, images: images}
}

// ParseURL fetches a recipe page and extracts a structured recipe record.
// Only fetch and parse failures are returned as errors; every field
// extractor degrades to its empty value on its own, and a page yielding
// neither ingredients nor instructions comes back in webview-fallback mode.
func (p *Parser) ParseURL(ctx context.Context, pageURL string) (*recipe.Recipe, error) {
	page, err := p.client.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch recipe page: %w", err)
	}
	doc, err := page.Document()
	if err != nil {
		return nil, fmt.Errorf("parse recipe page: %w", err)
	}

	images := p.images.Images(ctx, doc, pageURL)

	mode := recipe.ModeStructuredData
	jsonLD, err := ExtractJSONLD(doc)
	if err != nil {
		log.Printf("no structured data for %s, falling back to tree search: %v", pageURL, err)
		mode = recipe.ModeTreeSearch
		jsonLD = map[string]any{}
	}

	ingredients := Ingredients(jsonLD, doc)
	instructions := Instructions(jsonLD, doc, ingredients)

	if len(ingredients) == 0 && len(instructions) == 0 {
		mode = recipe.ModeWebviewFallback
	}

	return &recipe.Recipe{
		Title:          Title(jsonLD, doc),
		Description:    Description(jsonLD, doc),
		ThumbnailImage: images[0],
		SourceURL:      pageURL,
		Ingredients:    ingredients,
		Instructions:   instructions,
		Yield:          Yield(jsonLD),
		TotalTime:      TotalTime(jsonLD),
		Mode:           mode,
	}, nil
}
