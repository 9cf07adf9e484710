package metadata

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// RegionSpec is the document form of one region's numbering plan.
type RegionSpec struct {
	ID                 string `yaml:"id"`
	CountryCode        uint16 `yaml:"country_code"`
	MainCountryForCode bool   `yaml:"main_country_for_code,omitempty"`

	// InternationalPrefix is the IDD pattern dialled from this region, e.g. "011".
	InternationalPrefix string `yaml:"international_prefix,omitempty"`

	NationalPrefix              string `yaml:"national_prefix,omitempty"`
	NationalPrefixForParsing    string `yaml:"national_prefix_for_parsing,omitempty"`
	NationalPrefixTransformRule string `yaml:"national_prefix_transform_rule,omitempty"`

	// Region wide defaults for the formatting rules below.
	NationalPrefixFormattingRule string `yaml:"national_prefix_formatting_rule,omitempty"`
	CarrierCodeFormattingRule    string `yaml:"carrier_code_formatting_rule,omitempty"`

	PreferredExtensionPrefix string `yaml:"preferred_extension_prefix,omitempty"`

	PossibleLengths  []int `yaml:"possible_lengths,omitempty"`
	LocalOnlyLengths []int `yaml:"local_only_lengths,omitempty"`

	Formats []FormatSpec `yaml:"formats,omitempty"`
}

// Metadata is the compiled numbering plan of a single region.
type Metadata struct {
	id          string
	countryCode uint16
	main        bool

	internationalPrefix      *regexp.Regexp
	nationalPrefix           string
	nationalPrefixForParsing *regexp.Regexp
	transformRule            string
	extensionPrefix          string

	possibleLengths  []int
	localOnlyLengths []int

	formats              []*Format
	internationalFormats []*Format
}

func (c *RegexCache) region(spec RegionSpec) (*Metadata, error) {
	id := strings.ToUpper(strings.TrimSpace(spec.ID))
	if len(id) != 2 {
		return nil, fmt.Errorf("%w: region id %q", ErrInvalidDocument, spec.ID)
	}
	if spec.CountryCode == 0 {
		return nil, fmt.Errorf("%w: region %s has no country code", ErrInvalidDocument, id)
	}

	m := &Metadata{
		id:               id,
		countryCode:      spec.CountryCode,
		main:             spec.MainCountryForCode,
		nationalPrefix:   spec.NationalPrefix,
		transformRule:    spec.NationalPrefixTransformRule,
		extensionPrefix:  spec.PreferredExtensionPrefix,
		possibleLengths:  sortedLengths(spec.PossibleLengths),
		localOnlyLengths: sortedLengths(spec.LocalOnlyLengths),
	}

	var err error
	if spec.InternationalPrefix != "" {
		if m.internationalPrefix, err = c.prefix(spec.InternationalPrefix); err != nil {
			return nil, fmt.Errorf("%w: region %s international prefix: %v", ErrInvalidDocument, id, err)
		}
	}

	parsing := spec.NationalPrefixForParsing
	if parsing == "" && spec.NationalPrefix != "" {
		parsing = regexp.QuoteMeta(spec.NationalPrefix)
	}
	if parsing != "" {
		if m.nationalPrefixForParsing, err = c.prefix(parsing); err != nil {
			return nil, fmt.Errorf("%w: region %s national prefix: %v", ErrInvalidDocument, id, err)
		}
	}

	hasInternational := slices.ContainsFunc(spec.Formats, func(f FormatSpec) bool {
		return f.InternationalFormat != ""
	})

	for _, fs := range spec.Formats {
		if fs.NationalPrefixFormattingRule == "" {
			fs.NationalPrefixFormattingRule = spec.NationalPrefixFormattingRule
		}
		if fs.CarrierCodeFormattingRule == "" {
			fs.CarrierCodeFormattingRule = spec.CarrierCodeFormattingRule
		}

		national, err := c.format(fs, fs.Format)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", id, err)
		}
		m.formats = append(m.formats, national)

		if !hasInternational {
			continue
		}
		switch fs.InternationalFormat {
		case notApplicable:
		case "":
			m.internationalFormats = append(m.internationalFormats, national)
		default:
			intl, err := c.format(fs, fs.InternationalFormat)
			if err != nil {
				return nil, fmt.Errorf("region %s: %w", id, err)
			}
			m.internationalFormats = append(m.internationalFormats, intl)
		}
	}

	return m, nil
}

func sortedLengths(lengths []int) []int {
	if len(lengths) == 0 {
		return nil
	}
	out := slices.Clone(lengths)
	slices.Sort(out)
	return slices.Compact(out)
}

// ID is the ISO 3166 region code, e.g. "NZ".
func (m *Metadata) ID() string { return m.id }

// CountryCode is the calling code shared by every region of the plan.
func (m *Metadata) CountryCode() uint16 { return m.countryCode }

// InternationalPrefix matches the IDD prefix at the start of a digit string,
// or is nil when the region has none.
func (m *Metadata) InternationalPrefix() *regexp.Regexp { return m.internationalPrefix }

// NationalPrefix is the trunk prefix used when formatting, e.g. "0".
func (m *Metadata) NationalPrefix() string { return m.nationalPrefix }

// NationalPrefixForParsing matches a national prefix (and an optional carrier
// code) at the start of a digit string. Nil when the region has no prefix.
func (m *Metadata) NationalPrefixForParsing() *regexp.Regexp { return m.nationalPrefixForParsing }

// NationalPrefixTransformRule rewrites the number after the national prefix
// pattern matched, e.g. "$2".
func (m *Metadata) NationalPrefixTransformRule() string { return m.transformRule }

// PreferredExtensionPrefix is the text printed before an extension, or "".
func (m *Metadata) PreferredExtensionPrefix() string { return m.extensionPrefix }

// Formats is the national rule set in precedence order.
func (m *Metadata) Formats() []*Format { return m.formats }

// InternationalFormats is the international rule set, empty when the region
// formats internationally with its national rules.
func (m *Metadata) InternationalFormats() []*Format { return m.internationalFormats }
