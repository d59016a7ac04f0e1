package bbcode

import "strings"

// lowerASCII folds a single ASCII letter to lower case.
func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// hasPrefixFold reports whether s starts with prefix, ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lowerASCII(s[i]) != lowerASCII(prefix[i]) {
			return false
		}
	}
	return true
}

// indexFold returns the index of the first occurrence of sub in s, ignoring
// ASCII case, or -1. Byte offsets are preserved for non-ASCII input.
// The first byte of sub must not be a letter.
func indexFold(s, sub string) int {
	if sub == "" {
		return 0
	}
	first := sub[0]
	for i := 0; i+len(sub) <= len(s); {
		j := indexByteFrom(s, first, i)
		if j < 0 || j+len(sub) > len(s) {
			return -1
		}
		if hasPrefixFold(s[j:], sub) {
			return j
		}
		i = j + 1
	}
	return -1
}

// indexByteFrom returns the index of c in s at or after from, or -1.
func indexByteFrom(s string, c byte, from int) int {
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}
