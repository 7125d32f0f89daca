package extract

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"receptscrape/pkg/media"
	"receptscrape/pkg/scrape"
)

// imageSrcRe matches img sources with a png/jpg/jpeg component.
var imageSrcRe = regexp.MustCompile(`(?i)\.(png|jpe?g)`)

// probeBodyLimit bounds the bytes downloaded per dimension probe. Image
// headers sit at the front of the file.
const probeBodyLimit = 512 * 1024

// ImageExtractor locates the best thumbnail image for a recipe page. The
// og:image meta tag wins outright; otherwise every pictured image is probed
// over the network and the large ones are preferred.
type ImageExtractor struct {
	client         *scrape.Client
	minWidth       int
	minHeight      int
	concurrency    int
	probeTimeout   time.Duration
	placeholderURL string
}

// NewImageExtractor wires an image extractor with its HTTP collaborator.
// Zero-valued limits fall back to the defaults used by the app.
func NewImageExtractor(client *scrape.Client, minWidth, minHeight, concurrency int, probeTimeout time.Duration, placeholderURL string) *ImageExtractor {
	if minWidth <= 0 {
		minWidth = 200
	}
	if minHeight <= 0 {
		minHeight = 200
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	if probeTimeout <= 0 {
		probeTimeout = 10 * time.Second
	}
	if placeholderURL == "" {
		placeholderURL = "https://picsum.photos/600/600"
	}
	return &ImageExtractor{
		client:         client,
		minWidth:       minWidth,
		minHeight:      minHeight,
		concurrency:    concurrency,
		probeTimeout:   probeTimeout,
		placeholderURL: placeholderURL,
	}
}

type probedImage struct {
	url       string
	confirmed bool
	width     int
	height    int
}

// Images returns candidate image URLs for the page, best first. The list is
// never empty: when nothing usable is found the placeholder URL is returned.
func (e *ImageExtractor) Images(ctx context.Context, doc *goquery.Document, pageURL string) []string {
	if og := metaContent(doc, "og:image"); og != "" {
		return []string{og}
	}

	candidates := e.collectCandidates(doc, pageURL)
	if len(candidates) == 0 {
		return []string{e.placeholderURL}
	}

	probed := e.probeAll(ctx, candidates)

	var confirmed, large []probedImage
	for _, p := range probed {
		if !p.confirmed {
			continue
		}
		confirmed = append(confirmed, p)
		if p.width > e.minWidth && p.height > e.minHeight {
			large = append(large, p)
		}
	}

	sort.SliceStable(large, func(i, j int) bool { return large[i].width < large[j].width })

	switch {
	case len(large) > 0:
		return urls(large)
	case len(confirmed) > 0:
		return urls(confirmed)
	default:
		return []string{e.placeholderURL}
	}
}

// collectCandidates gathers png/jpeg img sources resolved to absolute URLs,
// deduplicated, in document order.
func (e *ImageExtractor) collectCandidates(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]bool)
	var candidates []string
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if !imageSrcRe.MatchString(src) {
			return
		}
		abs := resolveURL(base, src)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		candidates = append(candidates, abs)
	})
	return candidates
}

// probeAll verifies candidates concurrently under a worker cap, preserving
// candidate order in the result. A failed probe marks its candidate
// unconfirmed and never aborts the others.
func (e *ImageExtractor) probeAll(ctx context.Context, candidates []string) []probedImage {
	results := make([]probedImage, len(candidates))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, candidate := range candidates {
		wg.Add(1)
		go func(idx int, imgURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			probeCtx, cancel := context.WithTimeout(ctx, e.probeTimeout)
			defer cancel()
			results[idx] = e.probeOne(probeCtx, imgURL)
		}(i, candidate)
	}
	wg.Wait()
	return results
}

func (e *ImageExtractor) probeOne(ctx context.Context, imgURL string) probedImage {
	result := probedImage{url: imgURL}

	if imgURL == "" || strings.HasSuffix(strings.ToLower(imgURL), "svg") {
		return result
	}

	contentType, err := e.client.ProbeContentType(ctx, imgURL)
	if err != nil || !scrape.IsImage(contentType) {
		return result
	}

	body, err := e.client.FetchBody(ctx, imgURL, probeBodyLimit)
	if err != nil {
		return result
	}
	info, err := media.Probe(body)
	if err != nil {
		return result
	}

	result.confirmed = true
	result.width = info.Width
	result.height = info.Height
	return result
}

func resolveURL(base *url.URL, src string) string {
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return ""
	}
	return ref.String()
}

func urls(images []probedImage) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.url)
	}
	return out
}
