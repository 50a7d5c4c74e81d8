// internal/insight/canonical_test.go
package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowyourcompany/internal/common/errors"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "acme", "acme"},
		{"case folded", "Acme Corp", "acme corp"},
		{"surrounding whitespace stripped", "  TechNova Solutions  ", "technova solutions"},
		{"inner whitespace preserved", "Foo   Bar", "foo   bar"},
		{"tabs and newlines stripped", "\tAcme\n", "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Canonicalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	key, err := Canonicalize("  TechNova Solutions  ")
	require.NoError(t, err)

	again, err := Canonicalize(key)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestCanonicalizeRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Canonicalize(input)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
	}
}
