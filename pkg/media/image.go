// Package media inspects and transforms recipe images.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageInfo describes a probed image without holding its pixels.
type ImageInfo struct {
	Width     int
	Height    int
	Format    string
	SizeBytes int64
}

// Probe reads the image header and reports dimensions and format. Only the
// leading bytes of the file are needed, not a full decode.
func Probe(data []byte) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}
	return &ImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: int64(len(data)),
	}, nil
}

// Thumbnail decodes an image and produces a square JPEG thumbnail of the
// given size, cropping to fit.
func Thumbnail(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Thumbnail(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetectImageFormat guesses an image format from a filename or URL path.
func DetectImageFormat(name string) string {
	ext := strings.ToLower(name)
	switch {
	case strings.HasSuffix(ext, ".jpg") || strings.HasSuffix(ext, ".jpeg"):
		return "jpeg"
	case strings.HasSuffix(ext, ".png"):
		return "png"
	case strings.HasSuffix(ext, ".gif"):
		return "gif"
	default:
		return ""
	}
}

// IsImageFile reports whether a filename or URL path looks like a supported
// image.
func IsImageFile(name string) bool {
	return DetectImageFormat(name) != ""
}
