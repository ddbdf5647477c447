package f1

import "strings"

// Slugify derives a URL key from a display name: lowercase, every run of
// characters outside [a-z0-9] collapsed into a single hyphen, no leading or
// trailing hyphen.
func Slugify(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	pending := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// NormalizeKey trims and lowercases a lookup key.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
