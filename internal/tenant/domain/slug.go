package domain

import "strings"

// NormalizeSlug lowercases a tenant identifier and collapses anything outside
// [a-z0-9-] to '-', matching how slugs are stored.
func NormalizeSlug(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// SlugFromHost derives a tenant slug from a request host like
// "acme.example.com" -> "acme". Returns "" when the host has no usable
// subdomain label.
func SlugFromHost(host string) string {
	host = strings.TrimSpace(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	parts := strings.Split(host, ".")
	switch {
	case len(parts) >= 3:
		return parts[0]
	case len(parts) == 2 && parts[0] != "www":
		return parts[0]
	default:
		return ""
	}
}
