// Package slug handles the id/slug path segments used in article routes.
package slug

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadIdentifier reports a path segment whose leading token is not a
// positive integer.
var ErrBadIdentifier = errors.New("slug: invalid article identifier")

// ParseID extracts the numeric article id from a route segment. Accepted
// shapes are "123", "123-some-title" and "123/some-title". The split happens
// on the first separator only, so slugs may contain further hyphens.
func ParseID(segment string) (int64, error) {
	token := segment
	if i := strings.Index(segment, "/"); i >= 0 {
		token = segment[:i]
	} else if i := strings.Index(segment, "-"); i >= 0 {
		token = segment[:i]
	}
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadIdentifier
	}
	return id, nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from an article title. The transform is
// deterministic: lowercase, whitespace runs to single hyphens, drop anything
// outside [A-Za-z0-9_-], collapse hyphen runs, trim edge hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
