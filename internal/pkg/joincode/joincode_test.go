package joincode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		assert.True(t, IsWellFormed(code), "generated code %q should be well formed", code)
	}
}

func TestGenerateExcludesAmbiguousCharacters(t *testing.T) {
	for _, forbidden := range []string{"I", "O", "0", "1"} {
		assert.NotContains(t, Alphabet, forbidden)
	}

	for i := 0; i < 200; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.False(t, strings.ContainsAny(code, "IO01"), "code %q contains an ambiguous character", code)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc234", "ABC234"},
		{"  XYZ789  ", "XYZ789"},
		{"\tqwe456\n", "QWE456"},
		{"ABCDEF", "ABCDEF"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, IsWellFormed("ABC234"))
	assert.False(t, IsWellFormed("ABC23"), "too short")
	assert.False(t, IsWellFormed("ABC2345"), "too long")
	assert.False(t, IsWellFormed("ABC10I"), "ambiguous characters")
	assert.False(t, IsWellFormed("abc234"), "lowercase is not canonical")
}
