package phonenumber

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

// NationalNumber is the national significant number. Value drops leading
// zeros; Zeroes keeps how many there were, since Italian style numbers
// dial them internationally too.
type NationalNumber struct {
	Value  uint64 `json:"value"`
	Zeroes uint8  `json:"zeroes,omitempty"`
}

func newNationalNumber(nsn string) (NationalNumber, error) {
	value, err := strconv.ParseUint(nsn, 10, 64)
	if err != nil {
		return NationalNumber{}, fmt.Errorf("%w: %q", ErrMalformedDigits, nsn)
	}

	zeroes := len(nsn) - len(strings.TrimLeft(nsn, "0"))
	if zeroes == len(nsn) {
		// "000" keeps one zero in Value.
		zeroes--
	}
	return NationalNumber{Value: value, Zeroes: uint8(zeroes)}, nil
}

// String returns the digits with their leading zeros.
func (n NationalNumber) String() string {
	return strings.Repeat("0", int(n.Zeroes)) + strconv.FormatUint(n.Value, 10)
}

// extractNational strips the national prefix of meta from digits, together
// with a carrier code when the prefix pattern captures one. The digits are
// kept as they are when stripping would leave too short a number.
func extractNational(meta *metadata.Metadata, digits string) (string, Carrier) {
	if meta == nil {
		return digits, ""
	}
	re := meta.NationalPrefixForParsing()
	if re == nil {
		return digits, ""
	}
	m := re.FindStringSubmatchIndex(digits)
	if m == nil {
		return digits, ""
	}

	groups := len(m)/2 - 1
	lastMatched := groups > 0 && m[2*groups] >= 0
	group := func(i int) Carrier {
		if m[2*i] < 0 {
			return ""
		}
		return Carrier(digits[m[2*i]:m[2*i+1]])
	}

	var (
		national string
		carrier  Carrier
		tail     = digits[m[1]:]
	)
	if rule := meta.NationalPrefixTransformRule(); rule != "" && lastMatched {
		national = string(re.ExpandString(nil, braced(rule), digits, m)) + tail
		if groups > 1 {
			carrier = group(1)
		}
	} else {
		national = tail
		if lastMatched {
			carrier = group(1)
		}
	}

	if national == "" || meta.TestLength(national) == metadata.TooShort {
		return digits, ""
	}
	return national, carrier
}
