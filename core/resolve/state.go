package resolve

import (
	"log/slog"
	"net/url"
	"strings"
)

// State is the resolver state of a single conversion. The base URL is set at
// most once, from the first base element seen, and never changes afterwards.
type State struct {
	base      *url.URL
	baseFound bool
	logger    *slog.Logger
}

// NewState returns an empty State. A nil logger falls back to slog.Default().
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{logger: logger}
}

// SetBase records href as the frozen base URL if no base has been seen yet.
// An invalid href freezes "no base" and is reported at error level.
// It returns false when the call was ignored because a base was already found.
func (s *State) SetBase(href string) bool {
	if s.baseFound {
		return false
	}
	s.baseFound = true

	if !IsValidURL(href) {
		s.logger.Error("invalid base URL", "href", href)
		return true
	}
	// IsValidURL already parsed it successfully.
	s.base, _ = url.Parse(href)
	return true
}

// Base returns the frozen base URL, or "" when there is none.
func (s *State) Base() string {
	if s.base == nil {
		return ""
	}
	return s.base.String()
}

// Resolve resolves ref against the frozen base. Without a base, or when ref
// cannot be parsed, ref is returned unchanged. An empty ref stays empty.
func (s *State) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || s.base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return s.base.ResolveReference(parsed).String()
}
