package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/layoutfile"
)

func loadPair(t *testing.T) *layoutfile.Definition {
	t.Helper()
	def, err := layoutfile.Load(filepath.Join("..", "layoutfile", "testdata", "pair.toml"))
	if err != nil {
		t.Fatal(err)
	}
	return def
}

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	def := loadPair(t)

	rec, err := s.Save(ctx, def)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || rec.Name != "pair" || rec.CreatedAt.IsZero() {
		t.Errorf("Save() = %+v, want id, name pair and a creation time", rec)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := def.JSON()
	have, _ := got.Layout.JSON()
	if diff := cmp.Diff(string(want), string(have)); diff != "" {
		t.Errorf("Get().Layout (-want +got):\n%s", diff)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("Get().CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}

	// Layouts built from a stored record behave like the original.
	o, err := got.Layout.Build()
	if err != nil {
		t.Fatal(err)
	}
	if n := o.ExpectedPlaquettes(); n != 7 {
		t.Errorf("ExpectedPlaquettes() = %d, want 7", n)
	}

	time.Sleep(2 * time.Millisecond)
	second, err := s.Save(ctx, def)
	if err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != rec.ID {
		t.Errorf("List() = %+v, want [%s %s]", list, second.ID, rec.ID)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(deleted) err = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete(deleted) err = %v, want NOT_FOUND", err)
	}
	if _, err := s.Get(ctx, "../etc/passwd"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(bad id) err = %v, want NOT_FOUND", err)
	}
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exercise(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exercise(t, s)

	// Stray files are skipped by List.
	if err := os.WriteFile(filepath.Join(s.Path(), "junk.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("len(List()) = %d, want 1", len(list))
	}
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("TILER_TEST_MONGO")
	if uri == "" {
		t.Skip("TILER_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongo(ctx, MongoConfig{URI: uri, Database: "tiler_test", Collection: "layouts_" + time.Now().Format("150405.000000")})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		s.Close()
	}()
	exercise(t, s)
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.Save(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(nil) err = %v, want INVALID_INPUT", err)
	}
	def := &layoutfile.Definition{Templates: []layoutfile.TemplateDef{{Name: "a"}}}
	if _, err := s.Save(ctx, def); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(no kind) err = %v, want INVALID_INPUT", err)
	}
	if list, _ := s.List(ctx); len(list) != 0 {
		t.Errorf("List() = %v, want empty", list)
	}
}
