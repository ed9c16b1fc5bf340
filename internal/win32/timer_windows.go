//go:build windows

package win32

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	winmm               = windows.NewLazySystemDLL("winmm.dll")
	procTimeBeginPeriod = winmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = winmm.NewProc("timeEndPeriod")
)

const timerNoError = 0

func beginPeriod(ms uint32) error {
	if r, _, _ := procTimeBeginPeriod.Call(uintptr(ms)); r != timerNoError {
		return fmt.Errorf("timeBeginPeriod(%d): error %d", ms, r)
	}
	return nil
}

func endPeriod(ms uint32) {
	procTimeEndPeriod.Call(uintptr(ms))
}
