// Package uploads stores uploaded images on local disk, one directory per
// upload category, and hands clients web-relative paths rooted at /uploads.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dogmawang-bsc/fake-html2/internal/adapters/observability"
)

// categoryDirs maps the multipart field name to its directory under the
// upload root. Field names outside this set are rejected.
var categoryDirs = map[string]string{
	"icon":         "icons",
	"images":       "images",
	"reviewImages": "review-images",
	"userAvatar":   "avatars",
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const webPrefix = "/uploads"

var (
	ErrUnknownField = fmt.Errorf("unknown upload field")
	ErrBadExtension = fmt.Errorf("unsupported file extension")
	ErrTooLarge     = fmt.Errorf("file exceeds size limit")
	ErrEscapesRoot  = fmt.Errorf("path escapes upload root")
)

// Store writes files under root and deletes them by web-relative path.
type Store struct {
	root    string
	maxSize int64
}

// New creates the category directories under root. maxSizeMB caps each
// stored file.
func New(root string, maxSizeMB int64) (*Store, error) {
	for _, dir := range categoryDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{root: root, maxSize: maxSizeMB << 20}, nil
}

// Validate checks one multipart file against the field's category, the
// extension whitelist and the size ceiling without touching disk. Handlers
// validate a whole batch before storing any of it so a rejected request has
// no side effect.
func (s *Store) Validate(field string, fh *multipart.FileHeader) error {
	if _, ok := categoryDirs[field]; !ok {
		return ErrUnknownField
	}
	if !allowedExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		observability.ObserveUpload(field, "rejected")
		return ErrBadExtension
	}
	if fh.Size > s.maxSize {
		observability.ObserveUpload(field, "rejected")
		return ErrTooLarge
	}
	return nil
}

// Save stores one validated multipart file under the field's category
// directory and returns its web-relative path (forward slashes on every
// platform).
func (s *Store) Save(field string, fh *multipart.FileHeader) (string, error) {
	if err := s.Validate(field, fh); err != nil {
		return "", err
	}
	dir := categoryDirs[field]
	name := generateName(fh.Filename)
	dst := filepath.Join(s.root, dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	observability.ObserveUpload(field, "stored")
	web := path.Join(webPrefix, dir, name)
	log.Info().Str("field", field).Str("path", web).Int64("bytes", fh.Size).Msg("file stored")
	return web, nil
}

// Delete removes the file a web-relative path points at. Paths resolving
// outside the upload root are refused; a missing file is existed=false.
func (s *Store) Delete(webPath string) (bool, error) {
	rel := strings.TrimPrefix(webPath, webPrefix)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return false, nil
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return false, fmt.Errorf("%w: %s", ErrEscapesRoot, webPath)
	}
	full := filepath.Join(s.root, clean)
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	log.Info().Str("path", webPath).Msg("file deleted")
	return true, nil
}

// Root returns the filesystem root for mounting a static file server.
func (s *Store) Root() string { return s.root }

// generateName keeps the original base name and extension but makes
// collisions implausible with a millisecond timestamp and a short random
// token: base_1712345678901_1a2b3c4d.png
func generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = sanitizeBase(base)
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s%s", base, time.Now().UnixMilli(), token, ext)
}

// sanitizeBase strips path separators and whitespace so the client-supplied
// name cannot influence the target directory.
func sanitizeBase(b string) string {
	b = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, b)
	if b == "" {
		b = "file"
	}
	return b
}
