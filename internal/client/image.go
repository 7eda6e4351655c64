package client

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Source is where the photo came from
type Source string

const (
	SourceCamera  Source = "camera"
	SourceGallery Source = "gallery"
)

// ParseSource accepts "camera" or "gallery"
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceCamera, SourceGallery:
		return src, nil
	default:
		return "", fmt.Errorf("unknown image source %q (want camera or gallery)", s)
	}
}

// EncodeDataURI encodes raw file bytes as a base64 data URI using the detected MIME type.
// The content is not checked to be an image.
func EncodeDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoImage
	}
	mediaType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ReadImageFile reads the file at path and returns it as a data URI
func ReadImageFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrNoImage
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return EncodeDataURI(data)
}
