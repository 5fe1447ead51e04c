// Package matcher scores a free-text guess against candidate player names.
package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// partialCoverage is the share of a name a containing guess must cover.
const partialCoverage = 0.6

// minSurnameGuess is the shortest single-token guess accepted as a surname prefix.
const minSurnameGuess = 3

// Normalize lowercases s, strips diacritics and punctuation, and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	out = nonAlphanumeric.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Match reports whether guess plausibly names name.
func Match(guess, name string) bool {
	g := Normalize(guess)
	n := Normalize(name)
	if g == "" || n == "" {
		return false
	}
	if g == n {
		return true
	}

	if strings.Contains(n, g) {
		return true
	}
	if strings.Contains(g, n) {
		return float64(len(g)) >= float64(len(n))*partialCoverage
	}

	nameParts := strings.Split(n, " ")
	guessParts := strings.Split(g, " ")
	if len(nameParts) < 2 {
		return false
	}
	first, last := nameParts[0], nameParts[len(nameParts)-1]

	if len(guessParts) > 1 {
		guessFirst, guessLast := guessParts[0], guessParts[len(guessParts)-1]
		return prefixEither(first, guessFirst) && prefixEither(last, guessLast)
	}
	return prefixEither(last, g) && len(g) >= minSurnameGuess
}

// Find returns the first candidate matching guess.
func Find(guess string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if Match(guess, c) {
			return c, true
		}
	}
	return "", false
}

func prefixEither(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
