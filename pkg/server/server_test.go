package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/chromash/chromash/pkg/chromash"
	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/preset"
	"github.com/chromash/chromash/pkg/theme"
)

type fakeThemer struct {
	current  *theme.Current
	presets  []preset.Metadata
	applied  []string
	colorErr error
}

func (f *fakeThemer) ApplyColor(_ context.Context, color string, opts theme.Options) (*chromash.Result, error) {
	if f.colorErr != nil {
		return nil, f.colorErr
	}
	rgb, err := theme.ParseHex(color)
	if err != nil {
		return nil, err
	}
	mode := opts.ModeOr(theme.Light)
	scheme := opts.SchemeOr(theme.SchemeTonalSpot)
	f.applied = append(f.applied, rgb.Hex()+" "+string(mode)+" "+scheme.Name())
	return &chromash.Result{
		Source: theme.ColorSource(rgb.Hex()),
		Mode:   mode,
		Scheme: scheme,
		Color:  &rgb,
		Colors: true,
		Theme:  &theme.Current{Source: theme.ColorSource(rgb.Hex()), Revision: "rev-2"},
	}, nil
}

func (f *fakeThemer) ApplyPreset(_ context.Context, name string) (*chromash.Result, error) {
	for _, p := range f.presets {
		if p.Name == name {
			f.applied = append(f.applied, "preset "+name)
			return &chromash.Result{Source: *p.Source, Preset: name}, nil
		}
	}
	return nil, errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name)
}

func (f *fakeThemer) ListPresets(context.Context) ([]preset.Metadata, error) { return f.presets, nil }

func (f *fakeThemer) DeletePreset(_ context.Context, name string) (bool, error) {
	for i, p := range f.presets {
		if p.Name == name {
			f.presets = append(f.presets[:i], f.presets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeThemer) CurrentTheme(context.Context) (*theme.Current, error) { return f.current, nil }

func do(t *testing.T, h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func newTestServer(f *fakeThemer) *Server {
	return New(f, log.New(os.Stderr))
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(&fakeThemer{}), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestThemeNotFound(t *testing.T) {
	rec := do(t, newTestServer(&fakeThemer{}), http.MethodGet, "/theme", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != errors.ErrCodeNotFound {
		t.Errorf("code = %q", got)
	}
}

func TestThemeETag(t *testing.T) {
	name := "night"
	f := &fakeThemer{current: &theme.Current{Source: "color_000000", Timestamp: 42, PresetName: &name, Revision: "abc"}}
	s := newTestServer(f)

	rec := do(t, s, http.MethodGet, "/theme", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("ETag"); got != `"abc"` {
		t.Errorf("ETag = %q", got)
	}
	var cur theme.Current
	if err := json.NewDecoder(rec.Body).Decode(&cur); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*f.current, cur); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}

	rec = do(t, s, http.MethodGet, "/theme", map[string]string{"If-None-Match": `"abc"`})
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", rec.Code)
	}
}

func TestListPresetsEmpty(t *testing.T) {
	rec := do(t, newTestServer(&fakeThemer{}), http.MethodGet, "/presets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   errors.Code
		wantApply  string
	}{
		{"defaults", "/color/1e66f5", http.StatusOK, "", "1e66f5 light tonal-spot"},
		{"options", "/color/fff?mode=dark&scheme=fruit_salad", http.StatusOK, "", "ffffff dark fruit-salad"},
		{"bad color", "/color/zzzzzz", http.StatusBadRequest, errors.ErrCodeInvalidColor, ""},
		{"bad mode", "/color/ffffff?mode=dim", http.StatusBadRequest, errors.ErrCodeInvalidMode, ""},
		{"bad scheme", "/color/ffffff?scheme=pastel", http.StatusBadRequest, errors.ErrCodeInvalidScheme, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeThemer{}
			rec := do(t, newTestServer(f), http.MethodPost, tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if got := decodeError(t, rec).Code; got != tt.wantCode {
					t.Errorf("code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if diff := cmp.Diff([]string{tt.wantApply}, f.applied); diff != "" {
				t.Errorf("applied (-want +got):\n%s", diff)
			}
			var resp ApplyResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Revision != "rev-2" || resp.Color == "" {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestColorToolMissing(t *testing.T) {
	f := &fakeThemer{colorErr: errors.New(errors.ErrCodeToolNotFound, "matugen not found")}
	rec := do(t, newTestServer(f), http.MethodPost, "/color/ffffff", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestPresetRoutes(t *testing.T) {
	src := "color_ff0000"
	f := &fakeThemer{presets: []preset.Metadata{{Name: "red", Source: &src}}}
	s := newTestServer(f)

	rec := do(t, s, http.MethodGet, "/presets", nil)
	var list []preset.Metadata
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "red" {
		t.Errorf("list = %+v", list)
	}

	if rec := do(t, s, http.MethodPost, "/presets/red/apply", nil); rec.Code != http.StatusOK {
		t.Errorf("apply status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodPost, "/presets/blue/apply", nil)
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Code != errors.ErrCodePresetNotFound {
		t.Errorf("apply missing = %d", rec.Code)
	}

	if rec := do(t, s, http.MethodDelete, "/presets/red", nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/presets/red", nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(&fakeThemer{}), http.MethodGet, "/color/ffffff", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
