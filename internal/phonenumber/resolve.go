package phonenumber

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/grammar"
	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

// maxCodeLength is the longest ITU calling code.
const maxCodeLength = 3

// resolveCountry decides the calling code of c and returns the digits left
// once every piece of country evidence has been consumed. The checks run in
// a fixed order: "+", the default country's IDD, the default country's own
// code, and finally the default country itself.
func resolveCountry(db *metadata.Database, country Country, c grammar.Candidate) (CountryCode, string, error) {
	digits := c.Digits
	if digits == "" {
		return CountryCode{}, "", ErrNoNumber
	}
	hint := db.ByID(string(country))

	if c.Plus {
		// "+011 64 ..." and "+ 00 64 ...": an IDD typed after the plus.
		if hint != nil {
			if rest, ok := stripIDD(hint, digits); ok {
				digits = rest
			}
		}
		code, rest, ok := extractCode(db, digits)
		if !ok {
			return CountryCode{}, "", fmt.Errorf("%w: +%s", ErrInvalidCountryCode, digits)
		}
		return CountryCode{Value: code, Source: SourcePlus}, rest, nil
	}

	if hint != nil {
		if rest, ok := stripIDD(hint, digits); ok {
			code, rest, ok := extractCode(db, rest)
			if !ok {
				return CountryCode{}, "", fmt.Errorf("%w: %s", ErrInvalidCountryCode, digits)
			}
			return CountryCode{Value: code, Source: SourceIdd}, rest, nil
		}
	}

	if country == "" {
		return CountryCode{}, "", ErrAmbiguousCountry
	}
	code, ok := db.CountryCodeFor(string(country))
	if !ok {
		return CountryCode{}, "", fmt.Errorf("%w: %s", ErrInvalidCountry, country)
	}
	if rest, ok := stripOwnCode(hint, code, digits); ok {
		return CountryCode{Value: code, Source: SourceNumber}, rest, nil
	}
	return CountryCode{Value: code, Source: SourceDefault}, digits, nil
}

// stripIDD removes the international dialling prefix of meta. A prefix
// followed by "0" is not an IDD since no calling code starts with zero.
func stripIDD(meta *metadata.Metadata, digits string) (string, bool) {
	re := meta.InternationalPrefix()
	if re == nil {
		return digits, false
	}
	loc := re.FindStringIndex(digits)
	if loc == nil {
		return digits, false
	}
	rest := digits[loc[1]:]
	if rest == "" || rest[0] == '0' {
		return digits, false
	}
	return rest, true
}

// extractCode splits a known calling code off the front of digits.
func extractCode(db *metadata.Database, digits string) (uint16, string, bool) {
	if digits == "" || digits[0] == '0' {
		return 0, digits, false
	}
	for n := min(maxCodeLength, len(digits)); n > 0; n-- {
		v, err := strconv.ParseUint(digits[:n], 10, 16)
		if err != nil {
			continue
		}
		if db.IsKnownCode(uint16(v)) {
			return uint16(v), digits[n:], true
		}
	}
	return 0, digits, false
}

// stripOwnCode handles numbers such as "64 3 331 6005" dialled without a
// plus in New Zealand. The code is only taken off when the lengths say the
// whole string cannot be a national number but the rest can.
func stripOwnCode(meta *metadata.Metadata, code uint16, digits string) (string, bool) {
	if meta == nil {
		return digits, false
	}
	prefix := strconv.FormatUint(uint64(code), 10)
	if !strings.HasPrefix(digits, prefix) {
		return digits, false
	}

	potential := digits[len(prefix):]
	national, _ := extractNational(meta, potential)
	full := meta.TestLength(digits)
	if (!full.Possible() && meta.TestLength(national).Possible()) || full == metadata.TooLong {
		return potential, true
	}
	return digits, false
}
