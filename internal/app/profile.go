package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dogmawang-bsc/fake-html2/internal/domain"
)

const profileKey = "profile:view"

// ProfileService serves and replaces the singleton storefront profile.
type ProfileService struct {
	store    domain.ProfileStore
	files    domain.FileStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewProfileService(s domain.ProfileStore, f domain.FileStore, c domain.Cache, ttl time.Duration) *ProfileService {
	return &ProfileService{store: s, files: f, cache: c, cacheTTL: ttl}
}

// Get returns the stored profile; ok is false when the document is absent.
func (s *ProfileService) Get(ctx context.Context) (domain.Profile, bool) {
	var p domain.Profile
	if ok, _ := s.cache.Get(ctx, profileKey, &p); ok {
		return p, true
	}
	p, ok := s.store.Load()
	if !ok {
		return domain.Profile{}, false
	}
	_ = s.cache.Set(ctx, profileKey, p, int(s.cacheTTL.Seconds()))
	return p, true
}

// Replace persists p wholesale. deletedImages are swept off disk first,
// best-effort: a failed delete is logged and does not block the write.
func (s *ProfileService) Replace(ctx context.Context, p domain.Profile, deletedImages []string) error {
	for _, img := range deletedImages {
		if _, err := s.files.Delete(img); err != nil {
			log.Warn().Err(err).Str("path", img).Msg("deleted image sweep failed")
		}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := s.store.Replace(p); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, profileKey)
	return nil
}
