package domain

import "context"

// ProfileStore persists the singleton profile document.
type ProfileStore interface {
	// Load returns the stored profile; ok is false when the document is
	// missing or unreadable, which callers treat as "no profile yet".
	Load() (p Profile, ok bool)
	Replace(p Profile) error
}

// ReviewStore persists the ordered review list document.
type ReviewStore interface {
	Load() (rs []Review, ok bool)
	Replace(rs []Review) error
	// Update applies fn to the current list and persists the result as one
	// critical section; fn returning an error aborts the write.
	Update(fn func(rs []Review) ([]Review, error)) error
}

// FileStore writes uploaded images under a category directory and removes
// them again by web-relative path.
type FileStore interface {
	// Delete removes the file addressed by a web-relative path like
	// /uploads/icons/x.png. A missing file is existed=false, not an error.
	Delete(webPath string) (existed bool, err error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
