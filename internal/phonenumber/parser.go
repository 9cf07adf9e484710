package phonenumber

import (
	"fmt"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/grammar"
	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

// Absolute bounds on the national significant number, independent of country.
const (
	MinLengthForNSN = 2
	MaxLengthForNSN = 17
)

// Parse reads text using the embedded rule table. country is the region
// the number was dialled from, or "" when unknown.
func Parse(country Country, text string) (PhoneNumber, error) {
	return ParseWith(nil, country, text)
}

// ParseWith is Parse against an explicit rule table. A nil db selects the
// embedded one.
func ParseWith(db *metadata.Database, country Country, text string) (PhoneNumber, error) {
	db, err := database(db)
	if err != nil {
		return PhoneNumber{}, err
	}

	candidate, err := grammar.Extract(text)
	if err != nil {
		return PhoneNumber{}, err
	}

	code, rest, err := resolveCountry(db, country, candidate)
	if err != nil {
		return PhoneNumber{}, err
	}

	meta := db.ByID(string(country))
	if meta == nil || meta.CountryCode() != code.Value {
		meta = db.Main(code.Value)
	}
	nsn, carrier := extractNational(meta, rest)

	switch {
	case len(nsn) < MinLengthForNSN:
		return PhoneNumber{}, fmt.Errorf("%w: %d digits", ErrTooShortNsn, len(nsn))
	case len(nsn) > MaxLengthForNSN:
		return PhoneNumber{}, fmt.Errorf("%w: %d digits", ErrTooLong, len(nsn))
	}

	national, err := newNationalNumber(nsn)
	if err != nil {
		return PhoneNumber{}, err
	}

	return PhoneNumber{
		Code:      code,
		National:  national,
		Extension: Extension(candidate.Extension),
		Carrier:   carrier,
	}, nil
}
