package slug_test

import (
	"regexp"
	"testing"

	"github.com/ideasnet/server/pkg/slug"
	"github.com/stretchr/testify/assert"
)

func TestBase(t *testing.T) {
	cases := map[string]string{
		"My Big Idea":            "my-big-idea",
		"  Spaces   everywhere ": "spaces-everywhere",
		"C++ & Go!":              "c-go",
		"already-slugged":        "already-slugged",
		"100% Organic":           "100-organic",
		"---":                    "",
	}
	for input, want := range cases {
		assert.Equal(t, want, slug.Base(input), "input: %q", input)
	}
}

func TestMake(t *testing.T) {
	pattern := regexp.MustCompile(`^my-big-idea-[a-z0-9]{5}$`)
	assert.Regexp(t, pattern, slug.Make("My Big Idea"))

	// Suffixes differ between calls.
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s := slug.Make("My Big Idea")
		assert.Regexp(t, pattern, s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestMakeNonASCIITitle(t *testing.T) {
	// A title with no ASCII alphanumerics still yields a usable slug.
	assert.Regexp(t, regexp.MustCompile(`^idea-[a-z0-9]{5}$`), slug.Make("Ωμέγα!"))
	assert.Regexp(t, regexp.MustCompile(`^idea-[a-z0-9]{5}$`), slug.Make("---"))
}
