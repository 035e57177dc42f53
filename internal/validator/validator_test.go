package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPIN(t *testing.T) {
	valid := []string{"0000", "1234", "9999"}
	for _, pin := range valid {
		assert.True(t, IsPIN(pin), "expected %q to be valid", pin)
	}

	invalid := []string{"", "123", "12345", "12a4", "12.4", " 1234", "1234 ", "-123"}
	for _, pin := range invalid {
		assert.False(t, IsPIN(pin), "expected %q to be invalid", pin)
	}
}
