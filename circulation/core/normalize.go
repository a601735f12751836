package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const dateLayout = "2006-01-02"

// NormalizeName collapses all whitespace runs to single spaces and title-cases every word,
// e.g. "  jane   o'doe " becomes "Jane O'Doe".
func NormalizeName(name string) (string, error) {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "", ErrEmptyName
	}

	for i, w := range words {
		words[i] = titleCase(w)
	}

	return strings.Join(words, " "), nil
}

// titleCase upper-cases every letter that follows a non-letter and lower-cases all others.
func titleCase(word string) string {
	var b strings.Builder
	b.Grow(len(word))

	prevIsLetter := false
	for _, r := range word {
		if prevIsLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		prevIsLetter = unicode.IsLetter(r)
	}

	return b.String()
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}

	return ToDate(t), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
