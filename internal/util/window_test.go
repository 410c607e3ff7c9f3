package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestFillWindow(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(10)

	// WHEN
	FillWindow(window, 3, 2)

	// THEN
	assert.Equal(t, 2.0, GetWindowMax(window))
}
