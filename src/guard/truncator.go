// Package guard bounds and neutralizes untrusted text before it re-enters
// model context. Sanitization runs before truncation so a size cut can never
// split a neutralization marker and leave a dangling unsafe fragment.
package guard

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// truncationNotice is appended to any text the truncator cuts. The omitted
// count lets the model know how much is missing.
const truncationNotice = "[output truncated: %d characters omitted]"

var truncationNoticeRE = regexp.MustCompile(`\[output truncated: \d+ characters omitted\]$`)

// Truncate caps text at maxChars characters (runes), appending a notice with
// the omitted count when it cuts. Text at or under the cap is returned
// unchanged, as is text already carrying a truncation notice whose body fits
// the cap, so re-truncating with the same bound is a no-op. When the cut
// point lands inside an untrusted-span marker pair the cut backs off to the
// start of the span; a half-open marker would leave the span's content
// looking like plain directives again. A non-positive maxChars disables the
// cap.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	total := utf8.RuneCountInString(text)
	if total <= maxChars {
		return text
	}

	// Already-truncated text: the notice pushes the length past the cap, but
	// the body under it is bounded. Leave it alone.
	if loc := truncationNoticeRE.FindStringIndex(text); loc != nil {
		if utf8.RuneCountInString(text[:loc[0]]) <= maxChars {
			return text
		}
	}

	cut := byteIndexOfRune(text, maxChars)
	for _, region := range protectedRegionRE.FindAllStringIndex(text, -1) {
		if cut > region[0] && cut < region[1] {
			cut = region[0]
			break
		}
	}

	omitted := total - utf8.RuneCountInString(text[:cut])
	return text[:cut] + fmt.Sprintf(truncationNotice, omitted)
}

// byteIndexOfRune returns the byte offset of the n-th rune of s, or len(s)
// when s has fewer than n runes.
func byteIndexOfRune(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
