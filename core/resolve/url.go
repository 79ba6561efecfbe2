// Package resolve implements per-conversion URL resolution for links and
// images. A State holds the frozen base URL of one document; Walk visits a
// parsed document in order and dispatches base, img and a elements onto it.
package resolve

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s parses as an absolute http or https URL.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return u.Host != ""
}
