package core

import (
	"strings"
)

// IsValidISBN validates an ISBN-10 or ISBN-13 code. Hyphens and spaces are ignored.
//
// ISBN-10: sum of (10-i)*digit over all ten positions must be divisible by 11,
// where 'X' (value 10) is only allowed as the check digit in the last position.
// ISBN-13: thirteen digits weighted alternately 1 and 3, sum divisible by 10.
func IsValidISBN(code ISBNString) bool {
	s := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(code))

	switch len(s) {
	case 10:
		return isValidISBN10(s)
	case 13:
		return isValidISBN13(s)
	default:
		return false
	}
}

func isValidISBN10(s string) bool {
	total := 0
	for i := 0; i < 10; i++ {
		var val int

		switch ch := s[i]; {
		case ch == 'X' && i == 9:
			val = 10
		case ch >= '0' && ch <= '9':
			val = int(ch - '0')
		default:
			return false
		}

		total += (10 - i) * val
	}

	return total%11 == 0
}

func isValidISBN13(s string) bool {
	total := 0
	for i := 0; i < 13; i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return false
		}

		weight := 1
		if i%2 == 1 {
			weight = 3
		}

		total += weight * int(ch-'0')
	}

	return total%10 == 0
}
