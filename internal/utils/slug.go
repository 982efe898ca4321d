// internal/utils/slug.go
package utils

import "strings"

// Slugify turns a display name into a URL-safe slug: lowercase, spaces
// to hyphens, everything outside [a-z0-9-] stripped, repeated hyphens
// collapsed, leading/trailing hyphens trimmed.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")

	var b strings.Builder
	for _, c := range slug {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteRune(c)
		}
	}
	slug = b.String()

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}
