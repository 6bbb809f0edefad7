package crawlspace

import (
	"net/url"
	"regexp"
	"strings"
)

// Normalize canonicalizes a URL so that equivalent spellings dedupe to the
// same visited-set entry. If base is non-nil, rawURL is first resolved
// against it.
//
// Canonicalization rules: scheme and host are lowercased, the fragment is
// stripped, default ports are removed (:80 for http, :443 for https), the
// query is re-encoded with sorted parameters (so "?id=1" and "?id=1&"
// normalize identically), and an empty path becomes "/". Trailing slashes
// elsewhere are preserved, so /a and /a/ remain distinct URLs.
// Normalize is idempotent.
func Normalize(rawURL string, base *url.URL) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() || ref.Host == "" {
		return "", Errorf(EINVALID, "URL %q is not absolute", rawURL)
	}

	ref.Scheme = strings.ToLower(ref.Scheme)
	ref.Host = strings.ToLower(ref.Host)
	ref.Fragment = ""

	switch {
	case ref.Scheme == "http" && strings.HasSuffix(ref.Host, ":80"):
		ref.Host = strings.TrimSuffix(ref.Host, ":80")
	case ref.Scheme == "https" && strings.HasSuffix(ref.Host, ":443"):
		ref.Host = strings.TrimSuffix(ref.Host, ":443")
	}

	if ref.RawQuery != "" {
		ref.RawQuery = ref.Query().Encode()
	}
	if ref.Path == "" {
		ref.Path = "/"
	}

	return ref.String(), nil
}

// URLFilter decides which discovered URLs may enter the frontier.
// It is deterministic and performs no network access.
type URLFilter struct {
	seedHost      string
	allowExternal bool
	patterns      []*regexp.Regexp
}

// NewURLFilter builds a filter from the crawl configuration.
// Returns EINVALID if the seed URL or any pattern is malformed.
func NewURLFilter(cfg Config) (*URLFilter, error) {
	normalized, err := Normalize(cfg.SeedURL, nil)
	if err != nil {
		return nil, err
	}
	seed, err := url.Parse(normalized)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", cfg.SeedURL, err)
	}
	f := &URLFilter{
		seedHost:      strings.ToLower(seed.Host),
		allowExternal: cfg.AllowExternal,
	}
	for _, pattern := range cfg.URLPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid URL pattern %q: %v", pattern, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// ShouldVisit reports whether the URL passes scheme, domain and pattern
// checks. Patterns are OR-matched; an empty pattern set accepts all URLs.
func (f *URLFilter) ShouldVisit(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !f.allowExternal && strings.ToLower(u.Host) != f.seedHost {
		return false
	}
	if len(f.patterns) == 0 {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}
