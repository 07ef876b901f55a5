package ioutils

import (
	"slices"
	"strings"
)

// CompareNatural compares two strings in natural ("humane") order.
//
// Both strings are split into alternating runs of ASCII digits and
// non-digits. Digit runs are compared by numeric value, so "ep2" sorts
// before "ep10"; all other runs are compared byte by byte. When every run
// compares equal (e.g. "ep01" and "ep1"), the run with fewer leading zeros
// comes first and, failing that, the raw strings decide. The result is a
// total order: it returns 0 only when a == b.
//
// Example:
//
//	CompareNatural("ep2.mp4", "ep10.mp4")  // -1
//	CompareNatural("S02E01", "S01E10")     // 1
func CompareNatural(a, b string) int {
	ra, rb := a, b
	zeroTie := 0

	for ra != "" && rb != "" {
		ca, restA := nextRun(ra)
		cb, restB := nextRun(rb)
		ra, rb = restA, restB

		if isDigit(ca[0]) && isDigit(cb[0]) {
			ta := strings.TrimLeft(ca, "0")
			tb := strings.TrimLeft(cb, "0")
			if len(ta) != len(tb) {
				return cmpInt(len(ta), len(tb))
			}
			if c := strings.Compare(ta, tb); c != 0 {
				return c
			}
			if zeroTie == 0 {
				zeroTie = cmpInt(len(ca), len(cb))
			}
			continue
		}

		if c := strings.Compare(ca, cb); c != 0 {
			return c
		}
	}

	switch {
	case ra == "" && rb != "":
		return -1
	case ra != "" && rb == "":
		return 1
	case zeroTie != 0:
		return zeroTie
	}
	return strings.Compare(a, b)
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return CompareNatural(a, b) < 0
}

// SortNatural sorts paths in place using natural order.
func SortNatural(paths []string) {
	slices.SortFunc(paths, CompareNatural)
}

// nextRun splits off the leading run of digits or non-digits.
func nextRun(s string) (run, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
