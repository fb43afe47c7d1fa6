// Package storage writes the images uploaded by the driver app to disk.
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyImage = errors.New("image is empty")

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore saves images under root/yyyy/mm/dd/<uuid>.<ext>.
type ImageStore struct {
	root string
	now  func() time.Time
}

func NewImageStore(root string, now func() time.Time) *ImageStore {
	if now == nil {
		now = time.Now
	}
	return &ImageStore{root: root, now: now}
}

// Save decodes a base64 payload, optionally prefixed with a data URI header,
// and returns the slash separated path relative to root.
func (s *ImageStore) Save(encoded string) (string, error) {
	data, err := decode(encoded)
	if err != nil {
		return "", err
	}
	ext, ok := extensions[http.DetectContentType(data)]
	if !ok {
		ext = ".bin"
	}

	day := s.now().Format("2006/01/02")
	rel := path.Join(day, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return rel, nil
}

func decode(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}
	if encoded == "" {
		return nil, ErrEmptyImage
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}
