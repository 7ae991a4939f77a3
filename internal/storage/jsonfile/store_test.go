package jsonfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/dogmawang-bsc/fake-html2/internal/domain"
	"github.com/dogmawang-bsc/fake-html2/internal/storage/jsonfile"
)

func seedIDs() func() string {
	n := 0
	return func() string {
		n++
		return "seed-" + strconv.Itoa(n)
	}
}

func TestProfileStore_SeedAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := jsonfile.NewProfileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	p, ok := st.Load()
	if !ok {
		t.Fatal("seeded document should load")
	}
	def := domain.DefaultProfile()
	if p.Name != def.Name || p.Rating != def.Rating {
		t.Fatalf("seed != defaults: %+v", p)
	}

	p.Name = "Renamed"
	icon := "/uploads/icons/a.png"
	p.Icon = &icon
	if err := st.Replace(p); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, ok := st.Load()
	if !ok || got.Name != "Renamed" || got.Icon == nil || *got.Icon != icon {
		t.Fatalf("round trip lost data: %+v", got)
	}

	// reopening must not re-seed over existing content
	st2, err := jsonfile.NewProfileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got2, _ := st2.Load()
	if got2.Name != "Renamed" {
		t.Fatalf("reopen clobbered document: %+v", got2)
	}
}

func TestProfileStore_MalformedReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	st, err := jsonfile.NewProfileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "restaurant.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := st.Load(); ok {
		t.Fatal("malformed JSON must read as absent")
	}
}

func TestReviewStore_SeedUpdateReplace(t *testing.T) {
	dir := t.TempDir()
	seed := domain.SeedReviews(seedIDs())
	st, err := jsonfile.NewReviewStore(dir, seed)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	rs, ok := st.Load()
	if !ok || len(rs) != 2 {
		t.Fatalf("seed load: ok=%v len=%d", ok, len(rs))
	}
	if rs[0].ID != "seed-1" {
		t.Fatalf("seed ids not persisted: %+v", rs[0])
	}

	err = st.Update(func(cur []domain.Review) ([]domain.Review, error) {
		return append([]domain.Review{{ID: "new", Content: "hi"}}, cur...), nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	rs, _ = st.Load()
	if len(rs) != 3 || rs[0].ID != "new" {
		t.Fatalf("update not persisted: %+v", rs)
	}

	// an erroring fn must not write
	sentinel := os.ErrPermission
	if err := st.Update(func(cur []domain.Review) ([]domain.Review, error) { return nil, sentinel }); err != sentinel {
		t.Fatalf("err = %v, want sentinel", err)
	}
	rs, _ = st.Load()
	if len(rs) != 3 {
		t.Fatalf("aborted update still wrote: %d entries", len(rs))
	}

	if err := st.Replace(nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	rs, ok = st.Load()
	if !ok || len(rs) != 0 {
		t.Fatalf("replace(nil): ok=%v rs=%+v", ok, rs)
	}
}
