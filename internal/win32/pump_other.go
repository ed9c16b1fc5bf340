//go:build !windows

package win32

import (
	"context"

	"github.com/HopIT-Hub/mmaccel/internal/session"
)

// Supported reports whether the pump can run on this platform.
const Supported = false

// Pump is unavailable outside Windows.
type Pump struct{}

// NewPump returns a pump whose Run always fails.
func NewPump(Options) *Pump { return &Pump{} }

// Host returns nil.
func (p *Pump) Host() session.Host { return nil }

// Wake does nothing.
func (p *Pump) Wake() {}

// Run returns ErrUnsupported.
func (p *Pump) Run(context.Context, *session.Controller) error {
	return ErrUnsupported
}
