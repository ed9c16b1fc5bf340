//go:build windows

package hotkey

import (
	"context"
	"fmt"

	"golang.design/x/hotkey"
)

type winHotkey struct {
	hk     *hotkey.Hotkey
	cancel context.CancelFunc
	done   chan struct{}
}

func register(c Combo, onDown func()) (registration, error) {
	mods := make([]hotkey.Modifier, 0, len(c.Mods))
	for _, m := range c.Mods {
		mods = append(mods, hotkey.Modifier(m))
	}

	hk := hotkey.New(mods, hotkey.Key(c.Key))
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &winHotkey{hk: hk, cancel: cancel, done: make(chan struct{})}
	go w.listen(ctx, onDown)
	return w, nil
}

// listen calls onDown for every key-down until ctx is cancelled.
func (w *winHotkey) listen(ctx context.Context, onDown func()) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.hk.Keydown():
			onDown()
		}
	}
}

func (w *winHotkey) Unregister() {
	w.cancel()
	<-w.done
	w.hk.Unregister()
}
