// Package jsonfile persists each document as one pretty-printed JSON file.
// Every store serializes access behind its own mutex so the
// read-modify-write cycle a handler performs is a critical section.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dogmawang-bsc/fake-html2/internal/adapters/observability"
	"github.com/dogmawang-bsc/fake-html2/internal/domain"
)

// Store owns one JSON document on disk. A missing or unparsable file reads
// as absent; it never surfaces a decode error to callers.
type Store struct {
	mu   sync.Mutex
	path string
	name string // metric label
}

func NewStore(path, name string) *Store {
	return &Store{path: path, name: name}
}

func (s *Store) load(dst any) bool {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("document read failed")
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("document is not valid JSON, treating as absent")
		return false
	}
	return true
}

func (s *Store) replace(doc any) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		observability.ObserveStoreWrite(s.name, "error")
		return err
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		observability.ObserveStoreWrite(s.name, "error")
		return err
	}
	observability.ObserveStoreWrite(s.name, "ok")
	return nil
}

// seed writes doc if the file does not exist yet.
func (s *Store) seed(doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	log.Info().Str("path", s.path).Msg("seeding document")
	return s.replace(doc)
}

// ProfileStore implements domain.ProfileStore over data/restaurant.json.
type ProfileStore struct{ s *Store }

func NewProfileStore(dataDir string) (*ProfileStore, error) {
	st := NewStore(filepath.Join(dataDir, "restaurant.json"), "restaurant")
	if err := st.seed(domain.DefaultProfile()); err != nil {
		return nil, err
	}
	return &ProfileStore{s: st}, nil
}

func (p *ProfileStore) Load() (domain.Profile, bool) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	var out domain.Profile
	ok := p.s.load(&out)
	return out, ok
}

func (p *ProfileStore) Replace(prof domain.Profile) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return p.s.replace(prof)
}

// ReviewStore implements domain.ReviewStore over data/comments.json.
type ReviewStore struct{ s *Store }

func NewReviewStore(dataDir string, seed []domain.Review) (*ReviewStore, error) {
	st := NewStore(filepath.Join(dataDir, "comments.json"), "comments")
	if err := st.seed(seed); err != nil {
		return nil, err
	}
	return &ReviewStore{s: st}, nil
}

func (r *ReviewStore) Load() ([]domain.Review, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Review
	ok := r.s.load(&out)
	return out, ok
}

func (r *ReviewStore) Replace(rs []domain.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.replace(rs)
}

// Update runs fn on the current list and persists its result, all under the
// store lock, so two concurrent appends cannot lose a review. fn returning
// an error aborts without writing.
func (r *ReviewStore) Update(fn func(rs []domain.Review) ([]domain.Review, error)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cur []domain.Review
	r.s.load(&cur)
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return r.s.replace(next)
}
