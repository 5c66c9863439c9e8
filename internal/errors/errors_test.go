package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Message(t *testing.T) {
	bare := NotFound("job not found", nil)
	assert.Equal(t, "NOT_FOUND: job not found", bare.Error())

	cause := stderrors.New("row missing")
	wrapped := NotFound("job not found", cause)
	assert.Equal(t, "NOT_FOUND: job not found: row missing", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestDomainError_CarriesStack(t *testing.T) {
	err := Internal("boom", stderrors.New("cause"))
	assert.NotEmpty(t, err.StackTrace())

	noCause := Unavailable("upstream down", nil)
	assert.NotEmpty(t, noCause.StackTrace())
}

func TestIsType(t *testing.T) {
	timeout := Timeout("request timed out", nil)
	assert.True(t, IsType(timeout, ErrTypeTimeout))
	assert.False(t, IsType(timeout, ErrTypeUnavailable))

	wrapped := fmt.Errorf("search failed: %w", Parse("malformed response", nil))
	assert.True(t, IsType(wrapped, ErrTypeParse))

	assert.False(t, IsType(stderrors.New("plain"), ErrTypeInternal))
	assert.False(t, IsType(nil, ErrTypeInternal))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		want ErrorType
	}{
		{NotFound("m", nil), ErrTypeNotFound},
		{InvalidInput("m", nil), ErrTypeInvalidInput},
		{Internal("m", nil), ErrTypeInternal},
		{Unavailable("m", nil), ErrTypeUnavailable},
		{Timeout("m", nil), ErrTypeTimeout},
		{Parse("m", nil), ErrTypeParse},
		{RateLimit("m", nil), ErrTypeRateLimit},
	}
	for _, tt := range tests {
		require.NotNil(t, tt.err)
		assert.Equal(t, tt.want, tt.err.Type)
	}
}
