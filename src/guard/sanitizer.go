package guard

import (
	"regexp"
	"sort"
	"strings"
)

// Markers wrapped around detected instruction-override spans. The model sees
// the span as quoted untrusted data instead of a directive.
const (
	untrustedOpen  = "[untrusted]"
	untrustedClose = "[/untrusted]"
)

// protectedRegionRE matches spans that a previous sanitization pass already
// wrapped. Content inside is never re-scanned, which makes Sanitize
// idempotent.
var protectedRegionRE = regexp.MustCompile(`(?s)\[untrusted\].*?\[/untrusted\]`)

// defaultPatterns are the stock instruction-override detections. They target
// imperative phrases that direct the model to drop or replace its prior
// instructions, plus role-spoofing markers. The set is a policy knob, not a
// complete defense; the step cap and size cap bound what a miss can cost.
var defaultPatterns = []string{
	`(?i)\bignore\s+(?:all\s+|any\s+)?(?:previous|prior|above|earlier)\s+(?:instructions|directives|messages|prompts)\b`,
	`(?i)\bdisregard\s+(?:all\s+|any\s+)?(?:previous|prior|above|earlier)\s+(?:instructions|directives|messages|prompts)\b`,
	`(?i)\bforget\s+(?:all\s+)?(?:previous|prior|your)\s+(?:instructions|directives|training)\b`,
	`(?i)\bdo\s+not\s+follow\s+(?:the\s+)?(?:previous|prior|above|system)\s+(?:instructions|prompt)\b`,
	`(?i)\boverride\s+(?:your|all|the)\s+(?:instructions|rules|system\s+prompt)\b`,
	`(?i)\bnew\s+system\s+prompt\s*:`,
	`(?i)\byou\s+are\s+no\s+longer\s+(?:an?\s+)?(?:ai|assistant|bound)\b`,
	`(?i)<\s*/?\s*system\s*>`,
	`(?i)\[\s*/?\s*(?:system|inst)\s*\]`,
}

// Sanitizer neutralizes instruction-override patterns in externally sourced
// text. It never fails: an unmatchable or invalid pattern degrades to a
// pass-through for that pattern only.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// NewSanitizer builds a sanitizer from the default pattern set plus any extra
// patterns. Extra patterns that do not compile are skipped; detection is
// best-effort and must not block the loop.
func NewSanitizer(extraPatterns ...string) *Sanitizer {
	s := &Sanitizer{}
	for _, p := range defaultPatterns {
		s.patterns = append(s.patterns, regexp.MustCompile(p))
	}
	for _, p := range extraPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		s.patterns = append(s.patterns, re)
	}
	return s
}

// Sanitize wraps every detected span in untrusted markers. Spans already
// inside markers from an earlier pass are left untouched, so
// Sanitize(Sanitize(t)) == Sanitize(t). Text with no detections is returned
// unchanged.
func (s *Sanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	protected := protectedRegionRE.FindAllStringIndex(text, -1)

	// Collect match ranges from every pattern, skipping anything overlapping
	// a protected region, then merge overlaps so each span is wrapped once.
	var spans [][2]int
	for _, re := range s.patterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			if overlapsAny(m[0], m[1], protected) {
				continue
			}
			spans = append(spans, [2]int{m[0], m[1]})
		}
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i][0] != spans[j][0] {
			return spans[i][0] < spans[j][0]
		}
		return spans[i][1] > spans[j][1]
	})
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp[0] <= last[1] {
			if sp[1] > last[1] {
				last[1] = sp[1]
			}
			continue
		}
		merged = append(merged, sp)
	}

	var b strings.Builder
	b.Grow(len(text) + len(merged)*(len(untrustedOpen)+len(untrustedClose)))
	prev := 0
	for _, sp := range merged {
		b.WriteString(text[prev:sp[0]])
		b.WriteString(untrustedOpen)
		b.WriteString(text[sp[0]:sp[1]])
		b.WriteString(untrustedClose)
		prev = sp[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}

// Apply runs the full guard pipeline: sanitize first, then truncate. This
// order is load-bearing; see the package comment.
func (s *Sanitizer) Apply(text string, maxChars int) string {
	return Truncate(s.Sanitize(text), maxChars)
}

func overlapsAny(start, end int, regions [][]int) bool {
	for _, r := range regions {
		if start < r[1] && end > r[0] {
			return true
		}
	}
	return false
}
