package tray

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionLabel(t *testing.T) {
	assert.Equal(t, "MMAccel", versionLabel(""))
	assert.Equal(t, "MMAccel", versionLabel("dev"))
	assert.Equal(t, "MMAccel v1.2.0", versionLabel("v1.2.0"))
	assert.Equal(t, "MMAccel v1.2.0", versionLabel("1.2.0"))
}

func TestLabels(t *testing.T) {
	for _, s := range []State{Waiting, Active, Suspended} {
		assert.Contains(t, tooltip(s), "MMAccel")
		assert.Contains(t, statusLabel(s), "Status: ")
	}
	assert.Equal(t, "Status: Attached", statusLabel(Active))
	assert.Equal(t, "suspended", Suspended.String())
}

func TestIconsAreICO(t *testing.T) {
	for _, icon := range [][]byte{IconWaiting, IconActive, IconSuspended} {
		assert.True(t, bytes.HasPrefix(icon, []byte{0, 0, 1, 0}))
	}
}
