package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug_Length(t *testing.T) {
	for _, length := range []int{6, 7, 8} {
		slug, err := GenerateSlug(length)

		assert.NoError(t, err)
		assert.Len(t, slug, length)
	}
}

func TestGenerateSlug_Charset(t *testing.T) {
	for i := 0; i < 100; i++ {
		slug, err := GenerateSlug(8)
		assert.NoError(t, err)

		for _, c := range slug {
			assert.True(t, strings.ContainsRune(base62Chars, c),
				"unexpected character %q in slug %q", c, slug)
		}
	}
}

func TestGenerateSlug_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		slug, err := GenerateSlug(8)
		assert.NoError(t, err)
		assert.False(t, seen[slug], "duplicate slug %q after %d generations", slug, i)
		seen[slug] = true
	}
}
