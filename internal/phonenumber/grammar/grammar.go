// Package grammar reads the raw parts of a phone number out of user text:
// whether it was written in international form, its digits and an optional
// extension. It knows nothing about countries.
package grammar

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoNumber is returned when the text holds no phone number.
var ErrNoNumber = errors.New("no phone number found")

// maxInputLength bounds the amount of text inspected.
const maxInputLength = 250

// Candidate is a phone number whose country has not been resolved yet.
type Candidate struct {
	// Plus is set when the digits are in international form, either through
	// a leading "+" or an RFC3966 global number / phone-context.
	Plus bool

	// Digits are the dialled digits with every separator removed.
	Digits string

	// Extension is the extension digits, or "".
	Extension string
}

// Extract tries the RFC3966 grammar first and natural text second.
func Extract(text string) (Candidate, error) {
	if len(text) > maxInputLength {
		return Candidate{}, ErrNoNumber
	}

	// Fold full-width digits, plus signs and spaces to their ASCII forms.
	text = strings.TrimSpace(norm.NFKC.String(text))
	if text == "" {
		return Candidate{}, ErrNoNumber
	}

	if looksLikeURI(text) {
		if c, ok := rfc3966(text); ok {
			return c, nil
		}
	}
	if c, ok := natural(text); ok {
		return c, nil
	}
	return Candidate{}, ErrNoNumber
}
