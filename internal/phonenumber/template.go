package phonenumber

import (
	"regexp"
	"strings"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

var (
	groupRef = regexp.MustCompile(`\$(\d)`)

	// Punctuation that RFC3966 output replaces with a single "-".
	rfc3966Separators = regexp.MustCompile(`[-\x{2010}-\x{2015}\x{2212}\x{30FC}\x{FF0D}-\x{FF0F}\s\x{00A0}\x{00AD}\x{200B}\x{2060}\x{3000}()\x{FF08}\x{FF09}\x{FF3B}\x{FF3D}.\[\]/~\x{2053}\x{223C}\x{FF5E}]+`)
)

// expand renders national with rule. A non-empty transform (national prefix
// or carrier rule) replaces the first group reference of the template: $NP
// becomes the national prefix, $FG the group and $CC the carrier.
func expand(national string, meta *metadata.Metadata, rule *metadata.Format, transform string, carrier Carrier) string {
	template := rule.Template()

	if transform != "" {
		if loc := groupRef.FindStringIndex(template); loc != nil {
			r := strings.NewReplacer(
				"$NP", meta.NationalPrefix(),
				"$FG", template[loc[0]:loc[1]],
				"$CC", string(carrier),
			)
			template = template[:loc[0]] + r.Replace(transform) + template[loc[1]:]
		}
	}

	return substitute(rule.Pattern(), national, template)
}

// substitute replaces the first match of pattern in s with template. Groups
// that did not take part in the match expand to "".
func substitute(pattern *regexp.Regexp, s, template string) string {
	m := pattern.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	out := pattern.ExpandString(nil, braced(template), s, m)
	return s[:m[0]] + string(out) + s[m[1]:]
}

// braced rewrites "$1" as "${1}" so that a digit or letter following a
// reference is not read as part of the group name.
func braced(template string) string {
	return groupRef.ReplaceAllStringFunc(template, func(ref string) string {
		return "${" + ref[1:] + "}"
	})
}

func normalizeRFC3966(formatted string) string {
	return strings.Trim(rfc3966Separators.ReplaceAllString(formatted, "-"), "-")
}
