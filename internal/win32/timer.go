package win32

import "sync"

// TimePeriod raises the system timer resolution to 1 ms while active.
type TimePeriod struct {
	mu     sync.Mutex
	active bool
}

// Set turns the raised resolution on or off.
func (t *TimePeriod) Set(on bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if on == t.active {
		return nil
	}
	if on {
		if err := beginPeriod(1); err != nil {
			return err
		}
	} else {
		endPeriod(1)
	}
	t.active = on
	return nil
}

// Active reports whether the raised resolution is in effect.
func (t *TimePeriod) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
