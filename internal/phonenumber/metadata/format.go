package metadata

import (
	"fmt"
	"regexp"
)

// FormatSpec is the document form of a formatting rule.
type FormatSpec struct {
	// Pattern groups the national significant number, e.g. `(\d{2})(\d{4})(\d{4})`.
	Pattern string `yaml:"pattern"`

	// Format is the national display template, e.g. "$1 $2 $3".
	Format string `yaml:"format"`

	// InternationalFormat overrides Format for international output. "NA"
	// excludes the rule from international formatting altogether.
	InternationalFormat string `yaml:"international_format,omitempty"`

	// LeadingDigits are progressively stricter filters on the first digits of
	// the number. Only the last one decides.
	LeadingDigits []string `yaml:"leading_digits,omitempty"`

	// NationalPrefixFormattingRule combines $NP and $FG, e.g. "($NP$FG)".
	// Empty inherits the region rule.
	NationalPrefixFormattingRule string `yaml:"national_prefix_formatting_rule,omitempty"`

	// CarrierCodeFormattingRule combines $NP, $CC and $FG. Empty inherits the
	// region rule.
	CarrierCodeFormattingRule string `yaml:"carrier_code_formatting_rule,omitempty"`
}

// notApplicable marks a rule that has no international form.
const notApplicable = "NA"

// Format is a compiled formatting rule. Formats belong to a Database and are
// shared read-only.
type Format struct {
	pattern         *regexp.Regexp
	whole           *regexp.Regexp
	template        string
	leadingDigits   []*regexp.Regexp
	nationalPrefix  string
	domesticCarrier string
}

// NewFormat compiles a standalone rule, for callers that want to force a
// specific layout instead of the one selected from the rule table.
func NewFormat(spec FormatSpec) (*Format, error) {
	return patterns.format(spec, spec.Format)
}

func (c *RegexCache) format(spec FormatSpec, template string) (*Format, error) {
	if spec.Pattern == "" {
		return nil, fmt.Errorf("%w: format without pattern", ErrInvalidDocument)
	}

	pattern, err := c.Get(spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidDocument, spec.Pattern, err)
	}
	whole, err := c.whole(spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidDocument, spec.Pattern, err)
	}

	leading := make([]*regexp.Regexp, 0, len(spec.LeadingDigits))
	for _, ld := range spec.LeadingDigits {
		re, err := c.prefix(ld)
		if err != nil {
			return nil, fmt.Errorf("%w: leading digits %q: %v", ErrInvalidDocument, ld, err)
		}
		leading = append(leading, re)
	}

	return &Format{
		pattern:         pattern,
		whole:           whole,
		template:        template,
		leadingDigits:   leading,
		nationalPrefix:  spec.NationalPrefixFormattingRule,
		domesticCarrier: spec.CarrierCodeFormattingRule,
	}, nil
}

// Pattern is the capturing pattern used for substitution.
func (f *Format) Pattern() *regexp.Regexp { return f.pattern }

// Template is the display template with $N group references.
func (f *Format) Template() string { return f.template }

// LeadingDigits returns the leading-digit filters anchored at the start of the
// number. The slice must not be modified.
func (f *Format) LeadingDigits() []*regexp.Regexp { return f.leadingDigits }

// NationalPrefixRule returns the $NP/$FG template, or "" when the rule is
// formatted without a national prefix.
func (f *Format) NationalPrefixRule() string { return f.nationalPrefix }

// DomesticCarrierRule returns the $NP/$CC/$FG template, or "".
func (f *Format) DomesticCarrierRule() string { return f.domesticCarrier }

// Matches reports whether the pattern covers the whole of national.
func (f *Format) Matches(national string) bool {
	return f.whole.MatchString(national)
}
