package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "[MISSING_INPUT] price: required value was not supplied", MissingInput("price").Error())

	cause := stderrors.New("boom")
	err := Computation("lookup failed", cause)
	assert.Equal(t, "[COMPUTATION_ERROR] lookup failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAsThroughWrapping(t *testing.T) {
	inner := InvalidAmount("deposit", "12x")
	wrapped := fmt.Errorf("calculate: %w", inner)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, "deposit", got.Field)
	assert.Equal(t, "12x", got.Context["value"])
	assert.True(t, IsType(wrapped, TypeInvalidAmount))
	assert.False(t, IsType(wrapped, TypeMissingInput))

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsType(nil, TypeInternal))
}

func TestWithContext(t *testing.T) {
	err := New(TypeConfig, "bad region").WithContext("region", "busan")
	assert.True(t, err.Is(TypeConfig))
	assert.Equal(t, "busan", err.Context["region"])
}
