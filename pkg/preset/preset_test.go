package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chromash/chromash/pkg/errors"
)

func ptr(s string) *string { return &s }

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "presets"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

// clock returns a fake now func advancing one second per call.
func clock(start int64) func() time.Time {
	n := start
	return func() time.Time {
		n++
		return time.Unix(n, 0)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sunset", "sunset"},
		{"Late Night", "Late_Night"},
		{"a/b\\c", "abc"},
		{"../../etc", "etc"},
		{"blue-ish_theme!", "blue-ish_theme"},
		{"café", "café"},
		{"area²", "area²"},
		{"Ⅻ night", "Ⅻ_night"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.now = clock(1000)

	saved, err := s.Save(ctx, "Late Night", ptr("color_1e1e2e"), nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Created != saved.Modified {
		t.Errorf("new preset: created %d != modified %d", saved.Created, saved.Modified)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "Late_Night", "metadata.json")); err != nil {
		t.Errorf("metadata file missing: %v", err)
	}

	got, err := s.Get(ctx, "Late Night")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Errorf("Get mismatch (-saved +got):\n%s", diff)
	}
}

func TestSaveKeepsCreated(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.now = clock(1000)

	first, _ := s.Save(ctx, "dusk", ptr("color_000000"), nil)
	second, err := s.Save(ctx, "dusk", ptr("color_ffffff"), nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.Created != first.Created {
		t.Errorf("Created changed from %d to %d", first.Created, second.Created)
	}
	if second.Modified <= first.Modified {
		t.Errorf("Modified should advance: %d -> %d", first.Modified, second.Modified)
	}
	if *second.Source != "color_ffffff" {
		t.Errorf("Source = %q, want overwritten", *second.Source)
	}
}

func TestSaveInvalidName(t *testing.T) {
	s := newStore(t)
	for _, name := range []string{"", "   ", "!!!", "a\nb"} {
		if _, err := s.Save(context.Background(), name, nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Save(%q) error = %v, want INVALID_INPUT", name, err)
		}
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.now = clock(1000)

	s.Save(ctx, "old", ptr("color_111111"), nil)
	s.Save(ctx, "middle", ptr("color_222222"), nil)
	s.Save(ctx, "new", nil, ptr("/w/a.png"))

	// Noise that must be skipped.
	os.MkdirAll(filepath.Join(s.Dir(), "empty"), 0o755)
	os.MkdirAll(filepath.Join(s.Dir(), "broken"), 0o755)
	os.WriteFile(filepath.Join(s.Dir(), "broken", "metadata.json"), []byte("{"), 0o644)
	os.WriteFile(filepath.Join(s.Dir(), "stray.json"), []byte("{}"), 0o644)

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, m := range got {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"new", "middle", "old"}, names); diff != "" {
		t.Errorf("List order mismatch (-want +got):\n%s", diff)
	}
}

func TestListMissingDir(t *testing.T) {
	s := newStore(t)
	os.RemoveAll(s.Dir())
	got, err := s.List(context.Background())
	if err != nil || len(got) != 0 {
		t.Errorf("List = %v, %v; want empty, nil", got, err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), "ghost")
	if !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("error = %v, want PRESET_NOT_FOUND", err)
	}
	if !errors.IsNotFound(err) {
		t.Error("IsNotFound should match preset not found")
	}
}

func TestGetDirWithoutMetadata(t *testing.T) {
	s := newStore(t)
	os.MkdirAll(filepath.Join(s.Dir(), "bare"), 0o755)
	_, err := s.Get(context.Background(), "bare")
	if !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("error = %v, want PRESET_NOT_FOUND", err)
	}
}

func TestFindByStoredName(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.Save(ctx, "Ocean", ptr("color_0077be"), nil)

	// A directory renamed by hand is still found through its metadata.
	os.Rename(filepath.Join(s.Dir(), "Ocean"), filepath.Join(s.Dir(), "renamed"))

	got, err := s.Get(ctx, "Ocean")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Ocean" {
		t.Errorf("Name = %q", got.Name)
	}
	if p, _ := s.Path(ctx, "Ocean"); p != filepath.Join(s.Dir(), "renamed") {
		t.Errorf("Path = %q", p)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.Save(ctx, "Late Night", ptr("color_1e1e2e"), nil)

	ok, err := s.Delete(ctx, "Late Night")
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v; want true, nil", ok, err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "Late_Night")); !os.IsNotExist(err) {
		t.Error("preset dir should be removed")
	}

	ok, err = s.Delete(ctx, "Late Night")
	if err != nil || ok {
		t.Errorf("second Delete = %v, %v; want false, nil", ok, err)
	}
}

func TestMetadataJSON(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	s.Save(ctx, "x", nil, nil)

	data, _ := os.ReadFile(filepath.Join(s.Dir(), "x", "metadata.json"))
	want := `{
  "name": "x",
  "created": 1700000000,
  "modified": 1700000000,
  "source": null,
  "wallpaper": null
}`
	if string(data) != want {
		t.Errorf("metadata.json mismatch:\n%s", cmp.Diff(want, string(data)))
	}
}
