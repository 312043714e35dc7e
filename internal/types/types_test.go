package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string {
	return &s
}

func TestStringPtr(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "non-empty string", input: "test"},
		{name: "unicode string", input: "画廊"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StringPtr(tt.input)
			assert.NotNil(t, result)
			assert.Equal(t, tt.input, *result)
		})
	}
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "", SafeString(stringPtr("")))
	assert.Equal(t, "test", SafeString(stringPtr("test")))
}

func TestTrimmedPtr(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected *string
	}{
		{name: "nil pointer", input: nil, expected: nil},
		{name: "blank string", input: stringPtr("   "), expected: nil},
		{name: "padded string", input: stringPtr("  Acme  "), expected: stringPtr("Acme")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimmedPtr(tt.input))
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Nil(t, FirstNonEmpty())
	assert.Nil(t, FirstNonEmpty(nil, stringPtr(" ")))
	assert.Equal(t, "b", *FirstNonEmpty(nil, stringPtr(""), stringPtr("b"), stringPtr("c")))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"painting", "sculpture"}, UniqueStrings([]string{" painting", "", "sculpture", "painting"}))
	assert.Empty(t, UniqueStrings(nil))
}
