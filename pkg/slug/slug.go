package slug

import (
	"math/rand"
	"strings"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Make derives a URL-safe slug from a title: lowercase, non-alphanumerics
// collapsed to single hyphens, plus a 5-character random suffix. Collisions
// are left to the suffix entropy; the unique index on the column backstops
// the improbable case. Titles with no ASCII alphanumerics fall back to a
// constant base so the slug never starts with a hyphen.
func Make(title string) string {
	base := Base(title)
	if base == "" {
		base = "idea"
	}
	return base + "-" + randomSuffix(5)
}

// Base slugifies a title without the random suffix.
func Base(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
