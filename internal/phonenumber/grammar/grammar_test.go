package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Candidate
	}{
		{"plus with spaces", "+64 3 331 6005", Candidate{Plus: true, Digits: "6433316005"}},
		{"plus followed by space", "+ 64 3 331 6005", Candidate{Plus: true, Digits: "6433316005"}},
		{"national with separators", "03-331 6005", Candidate{Digits: "033316005"}},
		{"parentheses", "(03) 331 6005", Candidate{Digits: "033316005"}},
		{"bracketed trunk", "+44 (0)20 7031 3000", Candidate{Plus: true, Digits: "4402070313000"}},
		{"slash", "301/23456", Candidate{Digits: "30123456"}},
		{"star", "+81 *2345", Candidate{Plus: true, Digits: "812345"}},
		{"leading label", "Tel: 03 331 6005", Candidate{Digits: "033316005"}},
		{"full width", "＋６４ ３ ３３１ ６００５", Candidate{Plus: true, Digits: "6433316005"}},
		{"en dash", "03–331–6005", Candidate{Digits: "033316005"}},
		{"extension ext.", "03 331 6005 ext. 123", Candidate{Digits: "033316005", Extension: "123"}},
		{"extension x", "+1 650 253 0000 x42", Candidate{Plus: true, Digits: "16502530000", Extension: "42"}},
		{"extension hash", "650 253 0000 #7", Candidate{Digits: "6502530000", Extension: "7"}},
		{"tel uri", "tel:+64-3-331-6005", Candidate{Plus: true, Digits: "6433316005"}},
		{"tel uri upper case", "TEL:+64-3-331-6005", Candidate{Plus: true, Digits: "6433316005"}},
		{"tel uri extension", "tel:+1-650-253-0000;ext=1234", Candidate{Plus: true, Digits: "16502530000", Extension: "1234"}},
		{"phone context", "tel:03-331-6005;phone-context=+64", Candidate{Plus: true, Digits: "64033316005"}},
		{"phone context without scheme", "03-331-6005;phone-context=+64", Candidate{Plus: true, Digits: "64033316005"}},
		{"domain context", "tel:03-331-6005;phone-context=example.com", Candidate{Digits: "033316005"}},
		{"isub ignored", "tel:+64-3-331-6005;isub=12345", Candidate{Plus: true, Digits: "6433316005"}},
		{"unknown param ignored", "tel:03-331-6005;phone-context=+64;a=%A1", Candidate{Plus: true, Digits: "64033316005"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNoNumber(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"no digits here",
		"+",
		"03 331 abc 6005",
		"+64 3 + 331",
		strings.Repeat("1", maxInputLength+1),
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Extract(text)
			assert.ErrorIs(t, err, ErrNoNumber)
		})
	}
}

func TestRFC3966FallsBackToNatural(t *testing.T) {
	// Not a valid URI number part, but still readable as text.
	got, err := Extract("tel:+64 3 331 6005")
	require.NoError(t, err)
	assert.Equal(t, Candidate{Plus: true, Digits: "6433316005"}, got)
}
