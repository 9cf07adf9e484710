package grammar

import "strings"

const (
	telScheme    = "tel:"
	phoneContext = "phone-context"
	extParam     = "ext"
)

func looksLikeURI(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, telScheme) || strings.Contains(lower, ";"+phoneContext+"=")
}

// rfc3966 reads "tel:" URIs, and the bare "number;params" form. A local
// number with a global phone-context ("+64") is returned in international
// form with the context digits in front.
func rfc3966(text string) (Candidate, bool) {
	body := text
	if len(body) >= len(telScheme) && strings.EqualFold(body[:len(telScheme)], telScheme) {
		body = body[len(telScheme):]
	}

	parts := strings.Split(body, ";")
	number := strings.TrimSpace(parts[0])

	var (
		c       Candidate
		context string
	)
	for _, param := range parts[1:] {
		name, value, _ := strings.Cut(param, "=")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case extParam:
			ext, ok := visualDigits(value)
			if !ok {
				return Candidate{}, false
			}
			c.Extension = ext
		case phoneContext:
			// Domain name contexts carry no country information.
			if strings.HasPrefix(value, "+") {
				prefix, ok := visualDigits(value[1:])
				if !ok {
					return Candidate{}, false
				}
				context = prefix
			}
		}
	}

	if strings.HasPrefix(number, "+") {
		digits, ok := visualDigits(number[1:])
		if !ok || digits == "" {
			return Candidate{}, false
		}
		c.Plus = true
		c.Digits = digits
		return c, true
	}

	digits, ok := visualDigits(number)
	if !ok || digits == "" {
		return Candidate{}, false
	}
	if context != "" {
		c.Plus = true
		digits = context + digits
	}
	c.Digits = digits
	return c, true
}

// visualDigits drops RFC3966 visual separators and reports whether only
// digits were left.
func visualDigits(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", false
		}
	}
	return b.String(), true
}
