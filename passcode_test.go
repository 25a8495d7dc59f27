package aprspos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasscode(t *testing.T) {
	const n0call = 13023

	assert.Equal(t, n0call, Passcode("N0CALL"))
	assert.Equal(t, n0call, Passcode("N0CALL-10"))
	assert.Equal(t, n0call, Passcode("n0call"))
	assert.Equal(t, 31187, Passcode("K1A"))
}

func TestVerifyPasscode(t *testing.T) {
	assert.True(t, VerifyPasscode("N0CALL-9", "13023"))
	assert.False(t, VerifyPasscode("N0CALL", "-1"))
	assert.False(t, VerifyPasscode("N0CALL", ""))
}
