package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationCode(t *testing.T) {
	first := GenerateVerificationCode()
	second := GenerateVerificationCode()

	assert.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
	assert.NotEqual(t, first, second)
}

func TestGenerateLockedPassword(t *testing.T) {
	assert.NotEqual(t, GenerateLockedPassword(), GenerateLockedPassword())
}
