package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeDuplicateVote, "already voted")
		assert.True(t, HasCode(err, CodeDuplicateVote))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("matches inner code through wrapping", func(t *testing.T) {
		inner := New(CodeBiometricFailed, "biometric verification failed")
		outer := Wrap(inner, CodeForbidden, "vote refused")
		assert.True(t, HasCode(outer, CodeBiometricFailed))
		assert.True(t, HasCode(outer, CodeForbidden))
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("cast: %w", New(CodeStorage, "storage unavailable"))
		assert.True(t, HasCode(err, CodeStorage))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestCodeOfAndMessageOf(t *testing.T) {
	err := Wrap(errors.New("pq: deadlock"), CodeStorage, "storage unavailable")
	assert.Equal(t, CodeStorage, CodeOf(err))
	assert.Equal(t, "storage unavailable", MessageOf(err))
	assert.NotContains(t, MessageOf(err), "deadlock")

	assert.Equal(t, CodeInternal, CodeOf(errors.New("raw")))
	assert.Equal(t, "internal error", MessageOf(errors.New("raw")))
}
