package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestImageStoreSave(t *testing.T) {
	root := t.TempDir()
	day := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	store := NewImageStore(root, func() time.Time { return day })

	rel, err := store.Save(base64.StdEncoding.EncodeToString(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "2024/01/10/"), rel)
	assert.True(t, strings.HasSuffix(rel, ".png"), rel)

	got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestImageStoreAcceptsDataURI(t *testing.T) {
	store := NewImageStore(t.TempDir(), nil)
	rel, err := store.Save("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".png"))

	rel, err = store.Save(base64.RawStdEncoding.EncodeToString([]byte("plain bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".bin"))
}

func TestImageStoreRejectsGarbage(t *testing.T) {
	store := NewImageStore(t.TempDir(), nil)
	_, err := store.Save("   ")
	assert.ErrorIs(t, err, ErrEmptyImage)
	_, err = store.Save("not-base64!")
	assert.Error(t, err)
}
