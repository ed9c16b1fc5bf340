package tray

import _ "embed"

var (
	//go:embed icons/waiting.ico
	IconWaiting []byte

	//go:embed icons/active.ico
	IconActive []byte

	//go:embed icons/suspended.ico
	IconSuspended []byte
)
