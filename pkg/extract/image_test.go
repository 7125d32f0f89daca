package extract

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptscrape/pkg/scrape"
)

const testPlaceholder = "https://example.com/placeholder.png"

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func testImageExtractor() (*scrape.Client, *ImageExtractor) {
	client := scrape.NewClient(scrape.WithPrivateNetworkAllowed())
	return client, NewImageExtractor(client, 200, 200, 2, 5*time.Second, testPlaceholder)
}

func TestImages_OgImageWins(t *testing.T) {
	_, images := testImageExtractor()
	doc := docFromHTML(t, `<html><head>
		<meta property="og:image" content="https://static.example.com/hero.jpg">
	</head><body><img src="/other.png"></body></html>`)

	got := images.Images(context.Background(), doc, "https://example.com/recept")

	assert.Equal(t, []string{"https://static.example.com/hero.jpg"}, got)
}

func TestImages_PrefersLargeImages(t *testing.T) {
	small := pngBytes(t, 100, 100)
	large := pngBytes(t, 300, 300)
	mux := http.NewServeMux()
	mux.HandleFunc("/small.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(small)
	})
	mux.HandleFunc("/large.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(large)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, images := testImageExtractor()
	doc := docFromHTML(t, `<html><body>
		<img src="/small.png">
		<img src="/large.png">
		<img src="/small.png">
	</body></html>`)

	got := images.Images(context.Background(), doc, server.URL+"/recept")

	assert.Equal(t, []string{server.URL + "/large.png"}, got)
}

func TestImages_FallsBackToSmallConfirmed(t *testing.T) {
	small := pngBytes(t, 100, 100)
	mux := http.NewServeMux()
	mux.HandleFunc("/small.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(small)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, images := testImageExtractor()
	doc := docFromHTML(t, `<html><body><img src="/small.png"><img src="/borta.jpg"></body></html>`)

	got := images.Images(context.Background(), doc, server.URL+"/recept")

	// The broken candidate is dropped, not fatal; the small confirmed
	// image survives because nothing clears the size threshold.
	assert.Equal(t, []string{server.URL + "/small.png"}, got)
}

func TestImages_NonImageContentTypeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fake.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>inte en bild</html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, images := testImageExtractor()
	doc := docFromHTML(t, `<html><body><img src="/fake.png"></body></html>`)

	got := images.Images(context.Background(), doc, server.URL+"/recept")

	assert.Equal(t, []string{testPlaceholder}, got)
}

func TestImages_NoCandidatesYieldsPlaceholder(t *testing.T) {
	_, images := testImageExtractor()
	doc := docFromHTML(t, `<html><body><img src="/logo.svg"><p>inga bilder</p></body></html>`)

	got := images.Images(context.Background(), doc, "https://example.com/recept")

	assert.Equal(t, []string{testPlaceholder}, got)
}
