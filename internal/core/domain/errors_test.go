package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MatchesKindAndCause(t *testing.T) {
	err := fmt.Errorf("track: %w", InvalidInput("tracking path", ErrInvalidPIN))

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, ErrInvalidPIN))
	assert.False(t, errors.Is(err, ErrCarrier))

	var cpErr *Error
	require.True(t, errors.As(err, &cpErr))
	assert.Equal(t, "tracking path", cpErr.Op)
}

func TestErrorResultFrom(t *testing.T) {
	assert.Nil(t, ErrorResultFrom(nil))

	res := ErrorResultFrom(CarrierError("find rates", "You cannot mail on behalf of the requested customer.", []string{"E002"}))
	assert.False(t, res.Success)
	assert.Equal(t, "You cannot mail on behalf of the requested customer.", res.Message)
	assert.Equal(t, []string{"E002"}, res.Codes)

	res = ErrorResultFrom(Malformed("parse rates", ErrNoRateQuotes))
	assert.Equal(t, "parse rates: no rate quotes", res.Message)

	res = ErrorResultFrom(errors.New("boom"))
	assert.Equal(t, "boom", res.Message)
}
