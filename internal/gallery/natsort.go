package gallery

import (
	"cmp"
	"slices"
	"strings"
)

// NaturalCompare orders strings case-insensitively, comparing runs of digits by
// numeric value so "img2" sorts before "img10". Leading zeros do not count.
func NaturalCompare(a, b string) int {
	left := []rune(strings.ToLower(a))
	right := []rune(strings.ToLower(b))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if isDigit(left[i]) && isDigit(right[j]) {
			startLeft, startRight := i, j
			for i < len(left) && isDigit(left[i]) {
				i++
			}
			for j < len(right) && isDigit(right[j]) {
				j++
			}

			numLeft := trimLeadingZeros(left[startLeft:i])
			numRight := trimLeadingZeros(right[startRight:j])
			if len(numLeft) != len(numRight) {
				return cmp.Compare(len(numLeft), len(numRight))
			}
			if c := slices.Compare(numLeft, numRight); c != 0 {
				return c
			}
			continue
		}

		if left[i] != right[j] {
			return cmp.Compare(left[i], right[j])
		}
		i++
		j++
	}

	return cmp.Compare(len(left)-i, len(right)-j)
}

func sortImages(images []Image) {
	slices.SortStableFunc(images, func(a, b Image) int {
		if c := NaturalCompare(a.Name, b.Name); c != 0 {
			return c
		}
		// names equal up to case still need a fixed order
		return strings.Compare(a.Name, b.Name)
	})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func trimLeadingZeros(digits []rune) []rune {
	for len(digits) > 0 && digits[0] == '0' {
		digits = digits[1:]
	}
	return digits
}
