package guard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUnderLimit(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "", Truncate("", 5))
}

func TestTruncateDisabled(t *testing.T) {
	long := strings.Repeat("x", 1000)
	assert.Equal(t, long, Truncate(long, 0))
	assert.Equal(t, long, Truncate(long, -1))
}

func TestTruncateOverLimit(t *testing.T) {
	got := Truncate(strings.Repeat("a", 100), 10)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", 10)))
	assert.Contains(t, got, "[output truncated: 90 characters omitted]")
}

func TestTruncateLengthBound(t *testing.T) {
	// The result is never longer than maxChars plus the notice.
	for _, size := range []int{11, 50, 1000, 100000} {
		text := strings.Repeat("b", size)
		got := Truncate(text, 10)
		noticeLen := utf8.RuneCountInString(got) - 10
		assert.LessOrEqual(t, noticeLen, len("[output truncated: 0000000 characters omitted]"),
			"size %d", size)
	}
}

func TestTruncateIdempotent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
	}{
		{"ascii", strings.Repeat("a", 500), 64},
		{"multibyte", strings.Repeat("héllo wörld ", 100), 37},
		{"just over", strings.Repeat("x", 65), 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Truncate(tt.text, tt.maxChars)
			twice := Truncate(once, tt.maxChars)
			assert.Equal(t, once, twice)
		})
	}
}

func TestTruncateMultibyteBoundary(t *testing.T) {
	// Counting runes, not bytes: never split a multibyte sequence.
	text := strings.Repeat("世", 50)
	got := Truncate(text, 10)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasPrefix(got, strings.Repeat("世", 10)))
	assert.Contains(t, got, "40 characters omitted")
}

func TestTruncateDoesNotTrustForgedNotice(t *testing.T) {
	// A tool result that merely ends with notice-shaped text but whose body
	// exceeds the cap still gets cut.
	text := strings.Repeat("a", 200) + "[output truncated: 5 characters omitted]"
	got := Truncate(text, 50)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 50+len("[output truncated: 191 characters omitted]"))
	assert.NotEqual(t, text, got)
}
