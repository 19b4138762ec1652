package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(CodeResolutionFailed, "geocoding request failed", cause)

	require.True(t, IsCode(err, CodeResolutionFailed))
	require.False(t, IsCode(err, CodeNotFound))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "geocoding request failed: dial tcp: timeout", err.Error())
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("render: %w", Wrap(CodeForecastFailed, "forecast unavailable", nil))
	require.Equal(t, CodeForecastFailed, CodeOf(err))
	require.Equal(t, "", CodeOf(errors.New("plain")))
	require.Equal(t, "forecast unavailable", errors.Unwrap(err).Error())
}
