// Package preset persists named themes.
//
// Each preset is a directory below the presets root, named after the
// sanitized preset name, holding a metadata.json file:
//
//	presets/
//	  Late_Night/
//	    metadata.json   {"name": "Late Night", "source": "color_1e1e2e", ...}
package preset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/chromash/chromash/pkg/errors"
)

const metadataFile = "metadata.json"

// Metadata describes a saved preset. Timestamps are unix seconds.
type Metadata struct {
	Name      string  `json:"name"`
	Created   int64   `json:"created"`
	Modified  int64   `json:"modified"`
	Source    *string `json:"source"`
	Wallpaper *string `json:"wallpaper"`
}

// ModifiedTime returns Modified as a time.Time.
func (m Metadata) ModifiedTime() time.Time { return time.Unix(m.Modified, 0) }

// Store is a file-based preset store.
type Store struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create presets dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the presets root.
func (s *Store) Dir() string { return s.dir }

// SanitizeName keeps letters, digits, '_', '-' and spaces, then turns
// spaces into underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), " ", "_")
}

// Save writes (or overwrites) the preset called name. Overwriting keeps the
// original creation time.
func (s *Store) Save(ctx context.Context, name string, source, wallpaper *string) (*Metadata, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	dirName := SanitizeName(name)
	if dirName == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "preset name %q has no usable characters", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.dir, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preset dir: %w", err)
	}

	now := s.now().Unix()
	meta := &Metadata{
		Name:      name,
		Created:   now,
		Modified:  now,
		Source:    source,
		Wallpaper: wallpaper,
	}
	if prev, err := readMetadata(dir); err == nil && prev.Created > 0 {
		meta.Created = prev.Created
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal preset: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("write preset: %w", err)
	}
	return meta, nil
}

// List returns every readable preset, most recently modified first.
// Directories without valid metadata are skipped.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list()
}

func (s *Store) list() ([]Metadata, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read presets dir: %w", err)
	}

	var out []Metadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := readMetadata(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Modified != out[j].Modified {
			return out[i].Modified > out[j].Modified
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get loads the preset called name.
func (s *Store) Get(ctx context.Context, name string) (*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir, err := s.find(name)
	if err != nil {
		return nil, err
	}
	meta, err := readMetadata(dir)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodePresetNotFound, "preset metadata for %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read preset %q", name)
	}
	return meta, nil
}

// Path returns the directory holding the preset called name.
func (s *Store) Path(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(name)
}

// Delete removes the preset called name. It reports false when no preset
// matched.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.find(name)
	if errors.Is(err, errors.ErrCodePresetNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("remove preset: %w", err)
	}
	return true, nil
}

// find resolves name to a directory: the sanitized directory if present,
// otherwise the directory of a preset whose stored name equals name.
func (s *Store) find(name string) (string, error) {
	if dirName := SanitizeName(name); dirName != "" {
		dir := filepath.Join(s.dir, dirName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("read presets dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(s.dir, e.Name())
		if meta, err := readMetadata(dir); err == nil && meta.Name == name {
			return dir, nil
		}
	}
	return "", errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name)
}

func readMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
