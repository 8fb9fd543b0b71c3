package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/docesofia/storefront/pkg/serrors"
)

// Storage is the object-storage collaborator: write-by-path, delete-by-path
// and public URL derivation. Deleting an absent object is not an error.
type Storage interface {
	Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
	URL(objectPath string) string
	// PathFromURL resolves a public URL issued by this storage back to its
	// object path. Returns false for foreign URLs.
	PathFromURL(url string) (string, bool)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectName derives a unique, collision-resistant object path from a
// millisecond timestamp and the sanitized original filename.
func ObjectName(prefix, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "file"
	}
	return fmt.Sprintf("%s/%d-%s", prefix, time.Now().UnixMilli(), base)
}

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// SniffImage detects the content type of data and rejects anything that is
// not a supported image format.
func SniffImage(data []byte) (string, error) {
	mime := mimetype.Detect(data)
	if _, ok := allowedImageTypes[mime.String()]; !ok {
		return "", serrors.NewValidation(fmt.Sprintf("unsupported image type %s", mime.String()))
	}
	return mime.String(), nil
}
