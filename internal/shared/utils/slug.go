package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// GenerateSlug turns an arbitrary display name into a URL-safe slug:
// accents folded to ASCII, lowercased, spaces to hyphens, everything
// else stripped, consecutive hyphens collapsed.
func GenerateSlug(input string) string {
	ascii := foldToASCII(input)

	lower := strings.ToLower(ascii)
	hyphenated := strings.ReplaceAll(lower, " ", "-")

	cleaned := slugInvalid.ReplaceAllString(hyphenated, "")
	normalized := slugHyphens.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// TimestampedSlug derives the canonical business slug: the slugified name
// suffixed with the creation unix timestamp, which keeps slugs unique
// across businesses sharing a name.
func TimestampedSlug(name string, createdAt time.Time) string {
	base := GenerateSlug(name)
	if base == "" {
		base = "listing"
	}
	return fmt.Sprintf("%s-%d", base, createdAt.Unix())
}

// foldToASCII decomposes accented characters and drops the combining marks.
func foldToASCII(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}
