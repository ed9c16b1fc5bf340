package win32

import (
	"github.com/rs/zerolog"
)

// Options configures a Pump.
type Options struct {
	Logger zerolog.Logger

	// OnAttach is called on the pump thread when the MikuMikuDance main
	// window appears or goes away.
	OnAttach func(attached bool)
}
