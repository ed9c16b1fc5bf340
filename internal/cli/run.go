package cli

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/HopIT-Hub/mmaccel/internal/autostart"
	"github.com/HopIT-Hub/mmaccel/internal/config"
	"github.com/HopIT-Hub/mmaccel/internal/hotkey"
	"github.com/HopIT-Hub/mmaccel/internal/logging"
	"github.com/HopIT-Hub/mmaccel/internal/server"
	"github.com/HopIT-Hub/mmaccel/internal/session"
	"github.com/HopIT-Hub/mmaccel/internal/tray"
	"github.com/HopIT-Hub/mmaccel/internal/win32"
)

func newRunCmd(version string, dir dirFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the tray app and remap keys for MikuMikuDance",
		Long: `Run starts MMAccel in the system tray.

It attaches to MikuMikuDance whenever its main window exists, remaps the
chords of key_map.json and reloads the key map when the file changes.

Suspend hotkey (default: Ctrl+Alt+M):
  - Each press turns remapping off or back on`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dir()
			if err != nil {
				return err
			}
			return run(cmd.Context(), d, version)
		},
	}
}

func run(ctx context.Context, dir, version string) error {
	if !win32.Supported {
		return fmt.Errorf("run: %w", win32.ErrUnsupported)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.GetLogLevel())
	logCfg.File = filepath.Join(dir, logging.FileName)
	log, closer := logging.New(logging.FromEnv(logCfg))
	defer closer.Close()

	a := &app{cfg: cfg, log: log, dir: dir, version: version}
	return a.run(ctx)
}

// app wires the event pump, the session and the tray together.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	dir     string
	version string

	pump  *win32.Pump
	ctrl  *session.Controller
	hk    *hotkey.Manager
	srv   *server.Server
	timer win32.TimePeriod
}

func (a *app) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.pump = win32.NewPump(win32.Options{
		Logger:   logging.Component(a.log, "pump"),
		OnAttach: func(bool) { a.refresh() },
	})

	ctrl, err := session.New(session.Options{
		Dir:                a.dir,
		Host:               a.pump.Host(),
		Waker:              a.pump,
		Logger:             logging.Component(a.log, "session"),
		KillFocusWithClick: a.cfg.GetKillFocusWithClick(),
	})
	if err != nil {
		a.log.Error().Err(err).Msg("startup failed")
		return err
	}
	a.ctrl = ctrl
	defer ctrl.Close()

	a.hk = hotkey.NewManager(func() {
		a.setSuspended(!a.ctrl.Suspended())
	}, logging.Component(a.log, "hotkey"))
	defer a.hk.Unregister()

	if a.cfg.GetAPIEnabled() {
		a.srv = server.New(server.Options{
			Session:   ctrl,
			Config:    a.cfg,
			Hotkey:    a.hk,
			Version:   a.version,
			Logger:    logging.Component(a.log, "server"),
			OnSuspend: a.setSuspended,
		})
		defer a.srv.Stop()
	}

	if a.cfg.GetRaiseTimerResolution() {
		a.setTimerResolution(true)
	}
	defer a.timer.Set(false)

	g, gctx := errgroup.WithContext(ctx)

	// System tray, blocks until Quit
	tray.Run(tray.RunOpts{
		Version:              a.version,
		RaiseTimerResolution: a.timer.Active(),
		KillFocusWithClick:   a.cfg.GetKillFocusWithClick(),
		AutoStartEnabled:     a.cfg.GetAutoStart(),

		OnReady: func() {
			g.Go(func() error {
				return a.pump.Run(gctx, ctrl)
			})
			g.Go(func() error {
				<-gctx.Done()
				tray.Quit()
				return nil
			})

			hk := a.cfg.GetSuspendHotkey()
			if err := a.hk.Register(hk); err != nil {
				a.log.Warn().Err(err).Stringer("hotkey", hk).Msg("suspend hotkey unavailable")
			}

			if a.srv != nil {
				if url, err := a.srv.Start(); err != nil {
					a.log.Warn().Err(err).Msg("api server")
				} else {
					a.log.Info().Str("url", url).Msg("api server listening")
				}
			}

			a.refresh()
			a.log.Info().Str("version", a.version).Str("dir", a.dir).Msg("ready")
		},

		OnKeyConfig: func() {
			openFile(a.ctrl.KeyMapPath(), a.log)
		},

		OnReload: a.ctrl.Reload,

		OnRaiseTimerResolution: func(enabled bool) {
			a.setTimerResolution(enabled)
			if err := a.cfg.SetRaiseTimerResolution(enabled); err != nil {
				a.log.Error().Err(err).Msg("save settings")
			}
		},

		OnKillFocusWithClick: func(enabled bool) {
			a.ctrl.SetKillFocusWithClick(enabled)
			if err := a.cfg.SetKillFocusWithClick(enabled); err != nil {
				a.log.Error().Err(err).Msg("save settings")
			}
			a.log.Info().Bool("enabled", enabled).Msg("kill focus with click")
		},

		OnSuspend: a.setSuspended,

		OnAutoStart: func(enabled bool) {
			if enabled {
				if err := autostart.Enable("run", "--dir", a.dir); err != nil {
					a.log.Error().Err(err).Msg("enable autostart")
					return
				}
			} else {
				if err := autostart.Disable(); err != nil {
					a.log.Error().Err(err).Msg("disable autostart")
					return
				}
			}
			if err := a.cfg.SetAutoStart(enabled); err != nil {
				a.log.Error().Err(err).Msg("save settings")
			}
			a.log.Info().Bool("enabled", enabled).Msg("auto-start")
		},

		OnQuit: cancel,
	})

	cancel()
	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("event pump stopped")
		return err
	}
	a.log.Info().Msg("bye")
	return nil
}

// state is what the tray shows for the current session.
func (a *app) state() tray.State {
	switch {
	case !a.ctrl.Attached():
		return tray.Waiting
	case a.ctrl.Suspended():
		return tray.Suspended
	default:
		return tray.Active
	}
}

func (a *app) refresh() {
	tray.SetState(a.state())
}

// setSuspended turns remapping off or on and lets the pump release any
// key the overlay was holding.
func (a *app) setSuspended(v bool) {
	a.ctrl.SetSuspended(v)
	a.pump.Wake()
	a.refresh()
}

func (a *app) setTimerResolution(on bool) {
	if err := a.timer.Set(on); err != nil {
		a.log.Warn().Err(err).Msg("timer resolution")
		return
	}
	a.log.Info().Bool("raised", on).Msg("timer resolution")
}

func openFile(path string, log zerolog.Logger) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{path}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", "", path}
	default:
		cmd = "xdg-open"
		args = []string{path}
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		log.Error().Err(err).Str("path", path).Msg("open key map")
	}
}
