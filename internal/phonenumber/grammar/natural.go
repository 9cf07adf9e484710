package grammar

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

var extensionPattern = regexp.MustCompile(
	`(?i)\s*[,;]?\s*(?:ext(?:ension)?\.?|extn\.?|x|#)\s*[:=]?\s*(\d{1,7})#?$`)

// natural reads free text such as "(03) 331-6005 ext. 12", "+44 (0)20 7031 3000"
// or "012 3121286979". Anything before the first digit or plus sign is
// ignored; letters between digits reject the text.
func natural(text string) (Candidate, bool) {
	var c Candidate

	if loc := extensionPattern.FindStringSubmatchIndex(text); loc != nil && hasDigit(text[:loc[0]]) {
		c.Extension = text[loc[2]:loc[3]]
		text = text[:loc[0]]
	}

	start := strings.IndexFunc(text, func(r rune) bool {
		return r == '+' || unicode.IsDigit(r)
	})
	if start < 0 {
		return Candidate{}, false
	}
	text = text[start:]

	if strings.HasPrefix(text, "+") {
		c.Plus = true
		text = strings.TrimLeftFunc(text[1:], unicode.IsSpace)
	}

	text = strings.TrimRightFunc(text, func(r rune) bool { return !unicode.IsDigit(r) })
	for _, r := range text {
		if !unicode.IsDigit(r) && !isSeparator(r) {
			return Candidate{}, false
		}
	}

	digits := phonenumbers.NormalizeDigitsOnly(text)
	if digits == "" {
		return Candidate{}, false
	}
	c.Digits = digits
	return c, true
}

func isSeparator(r rune) bool {
	switch r {
	case '.', '/', '(', ')', '[', ']', '~', '*', '−', 'ー':
		return true
	}
	return unicode.IsSpace(r) || unicode.Is(unicode.Pd, r)
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
