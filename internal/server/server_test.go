package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/config"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/session"
)

type fakeSession struct {
	status session.Status
	cat    *catalog.Catalog
	path   string
}

func (f *fakeSession) Status() session.Status    { return f.status }
func (f *fakeSession) Catalog() *catalog.Catalog { return f.cat }
func (f *fakeSession) KeyMapPath() string        { return f.path }

type fakeHotkey struct {
	registered []config.HotkeyConfig
	fail       string
}

func (f *fakeHotkey) Register(hk config.HotkeyConfig) error {
	if hk.Key == f.fail {
		return errors.New("already taken")
	}
	f.registered = append(f.registered, hk)
	return nil
}

func newTestServer(t *testing.T) (*Server, *fakeSession, *fakeHotkey) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	sess := &fakeSession{
		status: session.Status{Attached: true, Bindings: 3, Warnings: []string{}},
		cat: catalog.New(map[string]catalog.Action{
			"play": catalog.Button{ID: 411},
			"left": catalog.Key{Key: keys.Left},
			"kill": catalog.KillFocus{},
		}),
		path: filepath.Join(dir, binding.FileName),
	}
	hk := &fakeHotkey{}
	s := New(Options{Session: sess, Config: cfg, Hotkey: hk, Version: "1.0.0", Logger: zerolog.Nop()})
	return s, sess, hk
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Attached)
	assert.Equal(t, 3, resp.Bindings)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "Ctrl+Alt+M", resp.SuspendHotkey)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodPost, "/status", "").Code)
}

func TestCatalog(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []catalogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "kill", entries[0].Name)
	assert.Equal(t, catalog.KindKillFocus, entries[0].Kind)
	assert.Equal(t, "play", entries[2].Name)
	assert.Equal(t, catalog.KindButton, entries[2].Kind)
}

func TestBindings_GetMissing(t *testing.T) {
	s, _, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/bindings", "").Code)
}

func TestBindings_PutThenGet(t *testing.T) {
	s, sess, _ := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/bindings", `[{"action":"play","keys":["Space"]},{"action":"jump","keys":["Ctrl","J"]}]`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp bindingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Saved)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "jump")

	saved, err := binding.Load(sess.path)
	require.NoError(t, err)
	assert.Len(t, saved.Entries, 2)

	rec = do(t, s, http.MethodGet, "/bindings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := binding.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, saved.Entries, got.Entries)
}

func TestBindings_PutInvalid(t *testing.T) {
	s, sess, _ := newTestServer(t)

	for _, body := range []string{`{`, `[{"action":"","keys":["A"]}]`, `[{"action":"play","keys":[]}]`} {
		rec := do(t, s, http.MethodPut, "/bindings", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
	}
	_, err := os.Stat(sess.path)
	assert.True(t, os.IsNotExist(err))
}

func TestBindings_GetCorrupt(t *testing.T) {
	s, sess, _ := newTestServer(t)
	require.NoError(t, os.WriteFile(sess.path, []byte("nope"), 0o644))
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, s, http.MethodGet, "/bindings", "").Code)
}

func TestBindings_MethodNotAllowed(t *testing.T) {
	s, _, _ := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodDelete, "/bindings", "").Code)
}

func TestSchema(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Equal(t, "array", schema["type"])
}

func TestSuspend(t *testing.T) {
	s, _, _ := newTestServer(t)
	var got []bool
	s.opts.OnSuspend = func(v bool) { got = append(got, v) }

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/suspend", `{"suspended":true}`).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/suspend", `{"suspended":false}`).Code)
	assert.Equal(t, []bool{true, false}, got)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/suspend", `{`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/suspend", "").Code)
}

func TestHotkey(t *testing.T) {
	s, _, hk := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/hotkey", `{"modifiers":["ctrl","shift"],"key":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp hotkeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ctrl+Shift+P", resp.Hotkey)
	assert.Equal(t, "Ctrl+Shift+P", s.opts.Config.GetSuspendHotkey().String())
	require.Len(t, hk.registered, 1)
}

func TestHotkey_RegisterFailureRestoresPrevious(t *testing.T) {
	s, _, hk := newTestServer(t)
	hk.fail = "x"

	rec := do(t, s, http.MethodPost, "/hotkey", `{"modifiers":["ctrl"],"key":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, hk.registered, 1)
	assert.Equal(t, "Ctrl+Alt+M", hk.registered[0].String())
	assert.Equal(t, "Ctrl+Alt+M", s.opts.Config.GetSuspendHotkey().String())
}

func TestHotkey_RequiresModifier(t *testing.T) {
	s, _, _ := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/hotkey", `{"modifiers":[],"key":"p"}`).Code)
}

func TestStartStop(t *testing.T) {
	s, _, _ := newTestServer(t)
	assert.Empty(t, s.URL())

	url, err := s.Start()
	require.NoError(t, err)
	defer s.Stop()
	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:"))

	resp, err := http.Get(url + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
