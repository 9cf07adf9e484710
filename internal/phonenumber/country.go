package phonenumber

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Source records which part of the input decided the country code.
type Source uint8

const (
	// SourceDefault: nothing in the text named a country, the caller's
	// default country was used.
	SourceDefault Source = iota
	// SourcePlus: a leading "+" (or a global RFC3966 phone-context).
	SourcePlus
	// SourceIdd: the default country's international dialling prefix.
	SourceIdd
	// SourceNumber: the digits began with the default country's own code.
	SourceNumber
)

var sourceNames = [...]string{
	SourceDefault: "default",
	SourcePlus:    "plus",
	SourceIdd:     "idd",
	SourceNumber:  "number",
}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

func (s Source) MarshalText() ([]byte, error) {
	if int(s) >= len(sourceNames) {
		return nil, fmt.Errorf("unknown source %d", uint8(s))
	}
	return []byte(sourceNames[s]), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	for i, name := range sourceNames {
		if string(text) == name {
			*s = Source(i)
			return nil
		}
	}
	return fmt.Errorf("unknown source %q", text)
}

// CountryCode is a calling code together with the evidence it came from.
type CountryCode struct {
	Value  uint16 `json:"value"`
	Source Source `json:"source"`
}

// Country is an ISO 3166-1 alpha-2 region. The empty Country means no
// default country.
type Country string

const (
	NZ Country = "NZ"
	US Country = "US"
	CA Country = "CA"
	GB Country = "GB"
	DE Country = "DE"
	FR Country = "FR"
	IT Country = "IT"
	JP Country = "JP"
	BR Country = "BR"
	TR Country = "TR"
)

// ParseCountry validates a region code such as "nz" or "TR". Empty input
// yields the empty Country.
func ParseCountry(s string) (Country, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	region, err := language.ParseRegion(s)
	if err != nil || len(s) != 2 || !region.IsCountry() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCountry, s)
	}
	return Country(region.String()), nil
}
