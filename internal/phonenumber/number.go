package phonenumber

import "strconv"

// Extension is the extension part of a number, e.g. "1234". Empty when the
// number has none.
type Extension string

// Carrier is a domestic carrier selection code captured while stripping the
// national prefix. Empty when none was dialled.
type Carrier string

// PhoneNumber is a parsed telephone number. Values are comparable; two
// numbers are equal only when their provenance matches too.
type PhoneNumber struct {
	Code      CountryCode    `json:"code"`
	National  NationalNumber `json:"national"`
	Extension Extension      `json:"extension,omitempty"`
	Carrier   Carrier        `json:"carrier,omitempty"`
}

// String returns the E.164 form. It does not need the rule table.
func (n PhoneNumber) String() string {
	return "+" + strconv.FormatUint(uint64(n.Code.Value), 10) + n.National.String()
}

// Format formats n with the embedded rule table.
func (n PhoneNumber) Format(mode Mode) (string, error) {
	return Formatter{Mode: mode}.Format(n)
}
