package server

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/config"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

// statusResponse is the JSON response for GET /status.
type statusResponse struct {
	Version       string   `json:"version"`
	Attached      bool     `json:"attached"`
	SubAttached   bool     `json:"sub_attached"`
	Suspended     bool     `json:"suspended"`
	Bindings      int      `json:"bindings"`
	Warnings      []string `json:"warnings"`
	SuspendHotkey string   `json:"suspend_hotkey,omitempty"`
	KeyMap        string   `json:"key_map"`
}

// handleStatus reports whether a MikuMikuDance window is attached and
// how the current key map resolved.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st := s.opts.Session.Status()
	resp := statusResponse{
		Version:     s.opts.Version,
		Attached:    st.Attached,
		SubAttached: st.Sub,
		Suspended:   st.Suspended,
		Bindings:    st.Bindings,
		Warnings:    st.Warnings,
		KeyMap:      s.opts.Session.KeyMapPath(),
	}
	if s.opts.Config != nil {
		resp.SuspendHotkey = s.opts.Config.GetSuspendHotkey().String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// catalogEntry describes one action for GET /catalog.
type catalogEntry struct {
	Name   string       `json:"name"`
	Kind   catalog.Kind `json:"kind"`
	Action string       `json:"action"`
}

// handleCatalog lists every action the key map may name.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := s.opts.Session.Catalog()
	entries := make([]catalogEntry, 0, cat.Len())
	for _, name := range cat.Names() {
		a, _ := cat.Lookup(name)
		entries = append(entries, catalogEntry{Name: name, Kind: a.Kind(), Action: a.String()})
	}
	writeJSON(w, http.StatusOK, entries)
}

// bindingsResponse is the JSON response for PUT /bindings.
type bindingsResponse struct {
	Saved    bool     `json:"saved"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getBindings(w)
	case http.MethodPut:
		s.putBindings(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// getBindings returns the key map as stored on disk.
func (s *Server) getBindings(w http.ResponseWriter) {
	t, err := binding.Load(s.opts.Session.KeyMapPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		writeJSON(w, http.StatusNotFound, bindingsResponse{Error: "key map not found"})
	case err != nil:
		writeJSON(w, http.StatusUnprocessableEntity, bindingsResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, t)
	}
}

// putBindings validates and saves a new key map. The running engine
// picks it up through the key map watcher. Unknown action names are
// saved and reported as warnings.
func (s *Server) putBindings(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, bindingsResponse{Error: "read body"})
		return
	}
	t, err := binding.Parse(data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, bindingsResponse{Error: err.Error()})
		return
	}

	_, warnings := remap.Resolve(s.opts.Session.Catalog(), t)

	if err := t.Save(s.opts.Session.KeyMapPath()); err != nil {
		s.log.Error().Err(err).Msg("save key map")
		writeJSON(w, http.StatusInternalServerError, bindingsResponse{Error: "failed to save key map"})
		return
	}

	resp := bindingsResponse{Saved: true}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}
	s.log.Info().Int("entries", len(t.Entries)).Int("warnings", len(warnings)).Msg("key map saved")
	writeJSON(w, http.StatusOK, resp)
}

// handleSchema serves the JSON Schema of key_map.json.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, binding.Schema())
}

// suspendRequest is the JSON body for POST /suspend.
type suspendRequest struct {
	Suspended bool `json:"suspended"`
}

// handleSuspend turns remapping off or on.
func (s *Server) handleSuspend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req suspendRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if s.opts.OnSuspend != nil {
		s.opts.OnSuspend(req.Suspended)
	}
	writeJSON(w, http.StatusOK, req)
}

// hotkeyRequest is the JSON body for POST /hotkey.
type hotkeyRequest struct {
	Modifiers []string `json:"modifiers"`
	Key       string   `json:"key"`
}

// hotkeyResponse is the JSON response for POST /hotkey.
type hotkeyResponse struct {
	Hotkey string `json:"hotkey,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handleHotkey changes the suspend hotkey.
func (s *Server) handleHotkey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.opts.Config == nil || s.opts.Hotkey == nil {
		http.Error(w, "hotkey not configurable", http.StatusNotImplemented)
		return
	}

	var req hotkeyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, hotkeyResponse{Error: "invalid JSON"})
		return
	}
	if len(req.Modifiers) == 0 {
		writeJSON(w, http.StatusBadRequest, hotkeyResponse{Error: "at least one modifier required"})
		return
	}

	prev := s.opts.Config.GetSuspendHotkey()
	next := config.HotkeyConfig{Modifiers: req.Modifiers, Key: req.Key}
	if err := s.opts.Hotkey.Register(next); err != nil {
		s.log.Warn().Err(err).Msg("hotkey register failed")
		if rerr := s.opts.Hotkey.Register(prev); rerr != nil {
			s.log.Warn().Err(rerr).Stringer("hotkey", prev).Msg("restore previous hotkey")
		}
		writeJSON(w, http.StatusUnprocessableEntity, hotkeyResponse{Error: "failed to register hotkey: " + err.Error()})
		return
	}

	if err := s.opts.Config.SetSuspendHotkey(req.Modifiers, req.Key); err != nil {
		s.log.Error().Err(err).Msg("config save failed")
		writeJSON(w, http.StatusInternalServerError, hotkeyResponse{Error: "saved hotkey but failed to persist config"})
		return
	}

	hk := s.opts.Config.GetSuspendHotkey()
	s.log.Info().Stringer("hotkey", hk).Msg("suspend hotkey updated")
	writeJSON(w, http.StatusOK, hotkeyResponse{Hotkey: hk.String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
