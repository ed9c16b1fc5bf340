package hotkey

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/HopIT-Hub/mmaccel/internal/config"
)

// Manager handles registration of a single global hotkey.
type Manager struct {
	mu     sync.Mutex
	log    zerolog.Logger
	onDown func()
	reg    registration
	combo  config.HotkeyConfig
}

// registration is a live platform hotkey.
type registration interface {
	Unregister()
}

// NewManager creates a hotkey manager that calls onDown on every press.
func NewManager(onDown func(), log zerolog.Logger) *Manager {
	return &Manager{
		onDown: onDown,
		log:    log,
	}
}

// Register sets up the global hotkey hk. If a hotkey is already
// registered, it is unregistered first.
func (m *Manager) Register(hk config.HotkeyConfig) error {
	combo, err := Parse(hk)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.unregisterLocked()

	reg, err := register(combo, m.fire)
	if err != nil {
		return err
	}
	m.reg = reg
	m.combo = hk.Clone()

	m.log.Info().Stringer("hotkey", hk).Msg("registered")
	return nil
}

// Registered returns the active hotkey and whether one is registered.
func (m *Manager) Registered() (config.HotkeyConfig, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.combo.Clone(), m.reg != nil
}

// Unregister removes the current global hotkey.
func (m *Manager) Unregister() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisterLocked()
}

func (m *Manager) unregisterLocked() {
	if m.reg != nil {
		m.reg.Unregister()
		m.reg = nil
		m.log.Debug().Stringer("hotkey", m.combo).Msg("unregistered")
	}
}

func (m *Manager) fire() {
	if m.onDown != nil {
		m.onDown()
	}
}
