//go:build !darwin && !windows

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquireUnsupported(t *testing.T) {
	h, err := Acquire()
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.True(t, h.IsZero())
}
