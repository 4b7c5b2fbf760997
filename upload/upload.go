// Package upload stores exam media (task audio and images, student
// recordings and attachments) in object storage.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/wailsapp/mimetype"
)

// ObjectStore is the storage backend, typically s3bucket.S3Bucket.
type ObjectStore interface {
	Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error)
}

type MediaSrvc struct {
	store ObjectStore
}

func NewMediaSrvc(store ObjectStore) *MediaSrvc {
	return &MediaSrvc{store: store}
}

// accepted submission media besides images
var allowedMediaPrefixes = []string{"audio/", "video/", "application/pdf", "text/plain"}

const maxImageWidth = 800

// StoreTaskImage downscales the image and uploads it under images/.
func (s *MediaSrvc) StoreTaskImage(ctx context.Context, content []byte) (string, error) {
	compressed, err := downscaleImage(content, maxImageWidth)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("images/%s.jpg", uuid.New().String())
	return s.store.Upload(ctx, compressed, key, "image/jpeg")
}

// StoreMedia uploads student or task media as-is, keyed by a fresh
// uuid with the extension the detected MIME type suggests.
func (s *MediaSrvc) StoreMedia(ctx context.Context, content []byte) (string, error) {
	mType := mimetype.Detect(content)
	if mType == nil {
		return "", fmt.Errorf("failed to detect media type")
	}

	if strings.HasPrefix(mType.String(), "image/") {
		return s.StoreTaskImage(ctx, content)
	}
	if !allowedMediaType(mType.String()) {
		return "", fmt.Errorf("unsupported media type: %s", mType.String())
	}

	key := fmt.Sprintf("media/%s%s", uuid.New().String(), mType.Extension())
	return s.store.Upload(ctx, content, key, mType.String())
}

func allowedMediaType(mType string) bool {
	for _, prefix := range allowedMediaPrefixes {
		if strings.HasPrefix(mType, prefix) {
			return true
		}
	}
	return false
}

// downscaleImage resizes the image so its width does not exceed
// maxWidth and re-encodes it as JPEG.
func downscaleImage(imgContent []byte, maxWidth uint) ([]byte, error) {
	mType := mimetype.Detect(imgContent)
	if mType == nil {
		return nil, fmt.Errorf("unknown image type")
	}

	var img image.Image
	var err error

	switch mType.String() {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(imgContent))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(imgContent))
	default:
		return nil, fmt.Errorf("unsupported image format: %s", mType.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	width := uint(img.Bounds().Dx())
	if width > maxWidth {
		width = maxWidth
	}
	resizedImg := resize.Resize(width, 0, img, resize.Lanczos3)

	var compressedImg bytes.Buffer
	err = jpeg.Encode(&compressedImg, resizedImg, &jpeg.Options{Quality: 85})
	if err != nil {
		return nil, fmt.Errorf("failed to encode image to JPEG: %w", err)
	}

	return compressedImg.Bytes(), nil
}
