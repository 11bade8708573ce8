package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedType rejects anything that is not a jpeg/jpg/png image.
	ErrUnsupportedType = errors.New("Unsupported file type")
	// ErrTooLarge rejects files over the configured size limit.
	ErrTooLarge = errors.New("file exceeds the maximum allowed size")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// AvatarStore writes uploaded avatar images to a local directory. The
// directory is created lazily on first save. Stored names are fresh UUIDs
// that keep the original extension, so they can be served as static assets.
type AvatarStore struct {
	Dir      string
	MaxBytes int64
}

func NewAvatarStore(dir string, maxBytes int64) *AvatarStore {
	return &AvatarStore{Dir: dir, MaxBytes: maxBytes}
}

// Save validates and persists one uploaded file, returning the generated
// filename.
func (s *AvatarStore) Save(fh *multipart.FileHeader) (string, error) {
	if !allowedTypes[fh.Header.Get("Content-Type")] {
		return "", ErrUnsupportedType
	}
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, s.MaxBytes)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := generateFilename(fh.Filename)
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

func generateFilename(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}
