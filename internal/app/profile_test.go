package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/dogmawang-bsc/fake-html2/internal/app"
	"github.com/dogmawang-bsc/fake-html2/internal/domain"
)

type fakeProfileStore struct {
	p  domain.Profile
	ok bool
}

func (f *fakeProfileStore) Load() (domain.Profile, bool) { return f.p, f.ok }
func (f *fakeProfileStore) Replace(p domain.Profile) error {
	f.p = p
	f.ok = true
	return nil
}

func TestProfileGet_CacheMissThenHit(t *testing.T) {
	store := &fakeProfileStore{p: domain.Profile{Name: "Noodle House", Rating: 4.5}, ok: true}
	svc := app.NewProfileService(store, &fakeFiles{}, &fakeCache{}, 10*time.Minute)

	p, ok := svc.Get(context.Background())
	if !ok || p.Name != "Noodle House" {
		t.Fatalf("unexpected profile: %+v ok=%v", p, ok)
	}

	// mutate the store; second read must come from cache
	store.p.Name = "SHOULD NOT SEE THIS"
	p2, _ := svc.Get(context.Background())
	if p2.Name != "Noodle House" {
		t.Fatalf("expected cached name, got %s", p2.Name)
	}
}

func TestProfileGet_Absent(t *testing.T) {
	svc := app.NewProfileService(&fakeProfileStore{}, &fakeFiles{}, &fakeCache{}, time.Minute)
	if _, ok := svc.Get(context.Background()); ok {
		t.Fatal("expected ok=false for an absent document")
	}
}

func TestProfileReplace_SweepsDeletedImagesAndInvalidates(t *testing.T) {
	store := &fakeProfileStore{p: domain.Profile{Name: "old"}, ok: true}
	files := &fakeFiles{}
	cache := &fakeCache{}
	svc := app.NewProfileService(store, files, cache, 10*time.Minute)

	// warm the cache
	if _, ok := svc.Get(context.Background()); !ok {
		t.Fatal("warm read failed")
	}

	next := domain.DefaultProfile()
	next.Name = "new"
	err := svc.Replace(context.Background(), next, []string{"/uploads/images/gone.png"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if store.p.Name != "new" {
		t.Fatalf("store not updated: %+v", store.p)
	}
	if len(files.deleted) != 1 || files.deleted[0] != "/uploads/images/gone.png" {
		t.Fatalf("deletedImages not swept: %v", files.deleted)
	}

	p, _ := svc.Get(context.Background())
	if p.Name != "new" {
		t.Fatalf("stale cache after replace: %+v", p)
	}
}
