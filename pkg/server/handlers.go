package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chromash/chromash/pkg/chromash"
	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/preset"
	"github.com/chromash/chromash/pkg/theme"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// ApplyResponse is returned by the apply endpoints.
type ApplyResponse struct {
	Source    string `json:"source,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Scheme    string `json:"scheme,omitempty"`
	Color     string `json:"color,omitempty"`
	Wallpaper string `json:"wallpaper,omitempty"`
	Preset    string `json:"preset,omitempty"`
	Revision  string `json:"revision,omitempty"`
}

func newApplyResponse(res *chromash.Result) ApplyResponse {
	out := ApplyResponse{
		Source:    res.Source,
		Mode:      string(res.Mode),
		Scheme:    res.Scheme.Name(),
		Wallpaper: res.Wallpaper,
		Preset:    res.Preset,
	}
	if res.Color != nil {
		out.Color = res.Color.String()
	}
	if res.Theme != nil {
		out.Revision = res.Theme.Revision
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	cur, err := s.themer.CurrentTheme(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cur == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no theme applied yet"))
		return
	}
	if cur.Revision != "" {
		etag := `"` + cur.Revision + `"`
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	list, err := s.themer.ListPresets(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []preset.Metadata{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	var opts theme.Options
	q := r.URL.Query()
	if v := q.Get("mode"); v != "" {
		m, err := theme.ParseMode(v)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts = opts.WithMode(m)
	}
	if v := q.Get("scheme"); v != "" {
		sc, err := theme.ParseScheme(v)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts = opts.WithScheme(sc)
	}

	res, err := s.themer.ApplyColor(r.Context(), chi.URLParam(r, "hex"), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newApplyResponse(res))
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	res, err := s.themer.ApplyPreset(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newApplyResponse(res))
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := s.themer.DeletePreset(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeToolNotFound):
		return http.StatusServiceUnavailable
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
