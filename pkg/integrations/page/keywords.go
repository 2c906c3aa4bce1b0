package page

import "regexp"

// ws matches runs of whitespace, including non-breaking spaces.
const ws = `[\s\x{00a0}]+`

const subject = `(?:project|repository|module|package|tool)`

// deprecationPatterns is the single keyword policy: case-insensitive phrases
// that announce a project as deprecated or unmaintained. A bare "deprecated"
// does not match.
var deprecationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b` + subject + ws + `is` + ws + `deprecated\b`),
	regexp.MustCompile(`(?i)\bdeprecated` + ws + subject + `\b`),
	regexp.MustCompile(`(?i)\bno` + ws + `longer` + ws + `maintained\b`),
	regexp.MustCompile(`(?i)\bno` + ws + `further` + ws + `development\b`),
	regexp.MustCompile(`(?i)\barchived\b[^\n.]*\bdeprecated\b`),
}

// MatchDeprecationNotice returns the first deprecation phrase found in text.
func MatchDeprecationNotice(text string) (string, bool) {
	for _, re := range deprecationPatterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
