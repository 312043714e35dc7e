package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/uri"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare host becomes https",
			input:    "example.com",
			expected: "https://example.com",
		},
		{
			name:     "uppercase host and trailing root slash",
			input:    "https://Example.com/",
			expected: "https://example.com",
		},
		{
			name:     "http www host",
			input:    "http://www.example.com",
			expected: "https://example.com",
		},
		{
			name:     "uppercase scheme",
			input:    "HTTPS://EXAMPLE.COM/About",
			expected: "https://example.com/About",
		},
		{
			name:     "default https port dropped",
			input:    "https://example.com:443/events",
			expected: "https://example.com/events",
		},
		{
			name:     "default http port dropped",
			input:    "http://example.com:80/events",
			expected: "https://example.com/events",
		},
		{
			name:     "non-default port kept",
			input:    "https://example.com:8443/events",
			expected: "https://example.com:8443/events",
		},
		{
			name:     "https port on http input dropped",
			input:    "http://example.com:443/a",
			expected: "https://example.com/a",
		},
		{
			name:     "http port on https input kept",
			input:    "https://example.com:80/a",
			expected: "https://example.com:80/a",
		},
		{
			name:     "repeated www prefix stripped",
			input:    "https://www.www.example.com/",
			expected: "https://example.com",
		},
		{
			name:     "fragment dropped",
			input:    "https://example.com/events#upcoming",
			expected: "https://example.com/events",
		},
		{
			name:     "tracking params dropped",
			input:    "https://example.com/show?utm_source=ig&utm_medium=social&fbclid=abc&gclid=def&ref=home&ref_=nav&id=7",
			expected: "https://example.com/show?id=7",
		},
		{
			name:     "tracking params are case insensitive",
			input:    "https://example.com/show?UTM_Campaign=x&page=2",
			expected: "https://example.com/show?page=2",
		},
		{
			name:     "query sorted by key",
			input:    "https://example.com/list?z=1&a=2&m=3",
			expected: "https://example.com/list?a=2&m=3&z=1",
		},
		{
			name:     "query with only tracking params removed entirely",
			input:    "https://example.com/list?utm_source=newsletter",
			expected: "https://example.com/list",
		},
		{
			name:     "trailing slash stripped from non-root path",
			input:    "https://example.com/exhibitions/",
			expected: "https://example.com/exhibitions",
		},
		{
			name:     "protocol relative",
			input:    "//www.example.com/a/",
			expected: "https://example.com/a",
		},
		{
			name:     "surrounding whitespace",
			input:    "  https://example.com/a  ",
			expected: "https://example.com/a",
		},
		{
			name:     "host with port but no scheme",
			input:    "localhost:8080/events/",
			expected: "https://localhost:8080/events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uri.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Equivalence(t *testing.T) {
	a, err := uri.Normalize("https://Example.com/")
	require.NoError(t, err)
	b, err := uri.Normalize("http://www.example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", a)
	assert.Equal(t, a, b)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"example.com",
		"http://www.Example.com:80/a/b/?utm_source=x&b=2&a=1#top",
		"https://example.com/search?q=hello+world&lang=en",
		"https://example.com/path%20with%20spaces/",
		"https://example.com/list?tag=b&tag=a",
		"https://[::1]:8080/x/",
		"http://example.com:443/a",
		"https://example.com:80/a",
		"https://www.www.example.com/",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once, err := uri.Normalize(input)
			require.NoError(t, err)
			twice, err := uri.Normalize(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"mailto:info@example.com",
		"javascript:void(0)",
		"ftp://example.com/file",
		"https://",
		"https://exa mple.com",
		"http://www./",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := uri.Normalize(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedURL)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	links, rejected := uri.NormalizeAll([]string{
		" https://Example.com/a?utm_source=ig",
		"http://www.example.com/a/",
		"mailto:info@example.com",
		"https://example.com/b",
	})

	assert.Equal(t, []uri.Link{
		{Raw: "https://Example.com/a?utm_source=ig", Normalized: "https://example.com/a"},
		{Raw: "https://example.com/b", Normalized: "https://example.com/b"},
	}, links)
	assert.Equal(t, []string{"mailto:info@example.com"}, rejected)
}
