// Package identity derives the comparison keys used to decide whether two
// lead inputs refer to the same business.
package identity

import (
	"net/url"
	"strings"
)

const (
	httpsPrefix = "https://"
	httpPrefix  = "http://"
	wwwPrefix   = "www."
)

// phoneKeyLength is the only phone key length trusted for matching.
const phoneKeyLength = 10

// NormalizeURL canonicalizes a raw website address into a URL key.
//
// The key is always https, has a lowercase host without "www.", and carries
// the path only (no query, fragment or trailing slash). It never fails: input
// a strict parser rejects is normalized at the string level instead.
func NormalizeURL(raw string) string {
	s := withHTTPS(strings.TrimSpace(raw))

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return normalizeURLString(s)
	}

	host := stripWWW(strings.ToLower(u.Host))
	path := strings.TrimRight(u.EscapedPath(), "/")

	return httpsPrefix + host + path
}

// withHTTPS forces the https scheme, keeping whatever follows it.
func withHTTPS(s string) string {
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, httpsPrefix):
		return httpsPrefix + s[len(httpsPrefix):]
	case strings.HasPrefix(lower, httpPrefix):
		return httpsPrefix + s[len(httpPrefix):]
	default:
		return httpsPrefix + s
	}
}

// normalizeURLString is the best-effort path for strings net/url rejects.
func normalizeURLString(s string) string {
	rest := strings.TrimPrefix(withHTTPS(strings.ToLower(s)), httpsPrefix)
	rest = stripWWW(rest)

	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	return httpsPrefix + strings.TrimRight(rest, "/")
}

// stripWWW removes every leading "www." so the key is stable when re-normalized.
func stripWWW(host string) string {
	for strings.HasPrefix(host, wwwPrefix) {
		host = host[len(wwwPrefix):]
	}

	return host
}

// NormalizePhone keeps the digits of raw and drops a leading US country code
// from 11-digit numbers. The result may have any length.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}

	digits := b.String()
	if len(digits) == phoneKeyLength+1 && digits[0] == '1' {
		return digits[1:]
	}

	return digits
}

// IsValidPhone reports whether raw normalizes to a full 10-digit phone key.
// Shorter or longer numbers never take part in duplicate matching.
func IsValidPhone(raw string) bool {
	return len(NormalizePhone(raw)) == phoneKeyLength
}

// Keys holds the derived identity of a lead.
type Keys struct {
	URL   string `json:"url_key"`
	Phone string `json:"phone_key,omitempty"`
}

// KeysOf derives the identity keys of a website and phone pair. The phone key
// is empty unless the phone is valid for matching.
func KeysOf(websiteURL, phone string) Keys {
	keys := Keys{URL: NormalizeURL(websiteURL)}
	if IsValidPhone(phone) {
		keys.Phone = NormalizePhone(phone)
	}

	return keys
}
