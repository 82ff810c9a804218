// Package scan holds small linear-scan utilities over byte spans. Every
// function is a single O(n) pass, returns subslices of its input and never
// allocates.
package scan

import (
	"bytes"
	"strings"
)

// TrimSpace returns the subslice of span with ASCII whitespace removed
// from both ends.
func TrimSpace(span []byte) []byte {
	lo, hi := 0, len(span)
	for lo < hi && isSpace(span[lo]) {
		lo++
	}
	for hi > lo && isSpace(span[hi-1]) {
		hi--
	}
	return span[lo:hi]
}

// TrimSpaceString is TrimSpace for callers holding a string.
func TrimSpaceString(s string) string {
	lo, hi := 0, len(s)
	for lo < hi && isSpace(s[lo]) {
		lo++
	}
	for hi > lo && isSpace(s[hi-1]) {
		hi--
	}
	return s[lo:hi]
}

// SplitOnce splits span around the first occurrence of sep. The separator
// itself belongs to neither half. When sep does not occur, head is the
// whole span and found is false.
func SplitOnce(span []byte, sep byte) (head, tail []byte, found bool) {
	if i := bytes.IndexByte(span, sep); i >= 0 {
		return span[:i], span[i+1:], true
	}
	return span, nil, false
}

// SplitOnceString is SplitOnce for callers holding a string.
func SplitOnceString(s string, sep byte) (head, tail string, found bool) {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
