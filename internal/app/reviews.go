package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dogmawang-bsc/fake-html2/internal/domain"
)

var (
	ErrIndexOutOfRange = errors.New("review index out of range")
	ErrNotFound        = errors.New("review not found")
)

// ReviewService owns the review list: listing with an optional sort key and
// the three mutations (replace-all, append-at-head, positional delete).
type ReviewService struct {
	store    domain.ReviewStore
	files    domain.FileStore
	cache    domain.Cache
	cacheTTL time.Duration
	newID    func() string
}

func NewReviewService(s domain.ReviewStore, f domain.FileStore, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{store: s, files: f, cache: c, cacheTTL: ttl, newID: uuid.NewString}
}

// List returns the reviews ordered by key (see sort.go); an absent document
// reads as an empty list.
func (s *ReviewService) List(ctx context.Context, key string) []domain.Review {
	ck := "reviews:" + key
	var out []domain.Review
	if ok, _ := s.cache.Get(ctx, ck, &out); ok {
		return out
	}
	rs, _ := s.store.Load()
	out = sortReviews(rs, key)
	_ = s.cache.Set(ctx, ck, out, int(s.cacheTTL.Seconds()))
	return out
}

// ReplaceAll overwrites the whole list. Entries without an id get one so
// identity stays stable across client round-trips.
func (s *ReviewService) ReplaceAll(ctx context.Context, rs []domain.Review) error {
	for i := range rs {
		if rs[i].ID == "" {
			rs[i].ID = s.newID()
		}
		if rs[i].Images == nil {
			rs[i].Images = []string{}
		}
	}
	if err := s.store.Replace(rs); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Append inserts one review at the head of the list and returns the stored
// record. Client-omitted fields take their documented defaults; likeCount
// and isLiked are always reset regardless of input.
func (s *ReviewService) Append(ctx context.Context, in domain.Review) (domain.Review, error) {
	r := in
	r.ID = s.newID()
	if r.Name == "" {
		r.Name = "Guest"
	}
	if r.ReviewCount == "" {
		r.ReviewCount = "0"
	}
	if r.PhotoCount == "" {
		r.PhotoCount = "0"
	}
	if r.Time == "" {
		r.Time = "Just now"
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	r.IsUser = true
	r.LikeCount = 0
	r.IsLiked = false

	err := s.store.Update(func(rs []domain.Review) ([]domain.Review, error) {
		return append([]domain.Review{r}, rs...), nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	s.invalidate(ctx)
	return r, nil
}

// DeleteAt removes the review at idx and sweeps its photo and avatar files.
// Lookup and removal happen inside the store's critical section, so a
// concurrent mutation cannot shift which record the index addresses.
func (s *ReviewService) DeleteAt(ctx context.Context, idx int) (domain.Review, error) {
	var removed domain.Review
	err := s.store.Update(func(rs []domain.Review) ([]domain.Review, error) {
		if idx < 0 || idx >= len(rs) {
			return nil, ErrIndexOutOfRange
		}
		removed = rs[idx]
		return append(rs[:idx:idx], rs[idx+1:]...), nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	s.sweep(removed)
	s.invalidate(ctx)
	return removed, nil
}

// DeleteByID removes the review with the given stable id.
func (s *ReviewService) DeleteByID(ctx context.Context, id string) (domain.Review, error) {
	var removed domain.Review
	err := s.store.Update(func(rs []domain.Review) ([]domain.Review, error) {
		for i := range rs {
			if rs[i].ID == id {
				removed = rs[i]
				return append(rs[:i:i], rs[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return domain.Review{}, err
	}
	s.sweep(removed)
	s.invalidate(ctx)
	return removed, nil
}

// sweep deletes the files a removed review referenced directly. Best-effort:
// the list no longer points at them, so a failure only orphans a file.
func (s *ReviewService) sweep(r domain.Review) {
	for _, img := range r.Images {
		if _, err := s.files.Delete(img); err != nil {
			log.Warn().Err(err).Str("path", img).Msg("review image sweep failed")
		}
	}
	if r.Avatar != nil && *r.Avatar != "" {
		if _, err := s.files.Delete(*r.Avatar); err != nil {
			log.Warn().Err(err).Str("path", *r.Avatar).Msg("avatar sweep failed")
		}
	}
}

func (s *ReviewService) invalidate(ctx context.Context) {
	for _, k := range []string{"", SortNewest, SortRatingDesc, SortRatingAsc} {
		_ = s.cache.Del(ctx, "reviews:"+k)
	}
}
