//go:build !windows

package win32

func beginPeriod(uint32) error { return ErrUnsupported }

func endPeriod(uint32) {}
