// Package imagestore keeps room images. Writes go through a staging area so
// that a file only appears under its final name once the owning row is
// about to be committed.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

var ErrInvalidName = errors.New("invalid image name")

// Upload is a validated image received from a client.
type Upload struct {
	Filename    string // as sent by the client, never trusted for the stored name
	ContentType string // sniffed from Data
	Extension   string // canonical extension of ContentType
	Data        []byte
}

// extensionsByType lists the client extensions kept for each sniffed type.
var extensionsByType = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
}

type Store interface {
	// Stage writes the upload under a fresh name and returns that name.
	Stage(ctx context.Context, upload *Upload) (string, error)
	// Promote moves a staged file to its final location.
	Promote(ctx context.Context, name string) error
	// Discard drops a staged file that will never be promoted.
	Discard(ctx context.Context, name string) error
	// Remove deletes a promoted file. A missing file is not an error.
	Remove(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// GenerateFilename returns "<unix millis>-<random><ext>". The client
// extension is only kept when it is a known spelling of the sniffed type,
// otherwise the detected extension is used.
func GenerateFilename(upload *Upload) string {
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), extensionOf(upload))
}

func extensionOf(upload *Upload) string {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	for _, allowed := range extensionsByType[upload.ContentType] {
		if ext == allowed {
			return ext
		}
	}
	return upload.Extension
}

func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
