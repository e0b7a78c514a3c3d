// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned when a name normalizes to an empty slug.
var ErrInvalidName = errors.New("name does not produce a slug")

var (
	nonWord    = regexp.MustCompile(`[^\w\s\v-]`)
	separators = regexp.MustCompile(`[-\s\v]+`)
	asciiOnly  = transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r >= utf8.RuneSelf
	})))
)

// Slugify lowercases name, folds it to ASCII, drops punctuation and joins
// words with hyphens. "Men's Wear" becomes "mens-wear".
func Slugify(name string) (string, error) {
	folded, _, err := transform.String(asciiOnly, name)
	if err != nil {
		return "", err
	}

	s := nonWord.ReplaceAllString(strings.ToLower(folded), "")
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")
	if s == "" {
		return "", ErrInvalidName
	}
	return s, nil
}

// Candidate returns the n-th slug to try for base: base itself, then base-1, base-2, ...
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
