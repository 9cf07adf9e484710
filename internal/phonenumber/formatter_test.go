package phonenumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		country Country
		text    string
		mode    Mode
		want    string
	}{
		{"nz e164", NZ, "03-331 6005", E164, "+6433316005"},
		{"nz international", "", "+64 3 331 6005", International, "+64 3 331 6005"},
		{"nz national", "", "+64 3 331 6005", National, "03-331 6005"},
		{"nz rfc3966", NZ, "03-331 6005", RFC3966, "tel:+64-3-331-6005"},
		{"gb international", "", "+44 2070313000", International, "+44 20 7031 3000"},
		{"gb national", "", "+44 2070313000", National, "020 7031 3000"},
		{"gb mobile", GB, "07912 345678", National, "07912 345678"},
		{"us rfc3966", "", "+1 9002530000", RFC3966, "tel:+1-900-253-0000"},
		{"us international", "", "+1 9002530000", International, "+1 900-253-0000"},
		{"us national", "", "+1 9002530000", National, "(900) 253-0000"},
		{"br national", "", "+55 31 2128 6979", National, "(31) 2128-6979"},
		{"br carrier", BR, "012 3121286979", National, "0 12 (31) 2128-6979"},
		{"br carrier international", BR, "012 3121286979", International, "+55 31 2128-6979"},
		{"it international", "", "+39 02 1234 5678", International, "+39 02 1234 5678"},
		{"tr national", TR, "05321234567", National, "0532 123 45 67"},
		{"tr geographic", TR, "0212 123 4567", National, "(0212) 123 4567"},
		{"fr international", FR, "01 23 45 67 89", International, "+33 1 23 45 67 89"},
		{"no matching rule", NZ, "12", International, "+64 12"},
		{"extension", NZ, "03 331 6005 ext 12", International, "+64 3 331 6005 ext. 12"},
		{"extension national", NZ, "03 331 6005 ext 12", National, "03-331 6005 ext. 12"},
		{"preferred extension prefix", "", "+44 20 7031 3000 x 789", International, "+44 20 7031 3000 x789"},
		{"rfc3966 extension", NZ, "03 331 6005 ext 12", RFC3966, "tel:+64-3-331-6005;ext=12"},
		{"e164 drops extension", NZ, "03 331 6005 ext 12", E164, "+6433316005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.country, tt.text)
			require.NoError(t, err)

			got, err := Format(n, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			got, err = n.Format(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatUnknownCountryCode(t *testing.T) {
	n, err := Parse("", "+46 8 123 456")
	require.NoError(t, err)

	for _, mode := range []Mode{E164, International, National, RFC3966} {
		_, err := Format(n, mode)
		assert.ErrorIs(t, err, ErrInvalidCountryCode, mode.String())
	}
}

func TestFormatInvalidMode(t *testing.T) {
	_, err := Formatter{Mode: Mode(42)}.Format(nz(SourcePlus))
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestFormatterRuleOverride(t *testing.T) {
	rule, err := metadata.NewFormat(metadata.FormatSpec{
		Pattern: `(\d{4})(\d{4})`,
		Format:  "$1.$2",
	})
	require.NoError(t, err)

	got, err := Formatter{Mode: International, Rule: rule}.Format(nz(SourcePlus))
	require.NoError(t, err)
	assert.Equal(t, "+64 3331.6005", got)
}

func TestFormatterDatabaseOverride(t *testing.T) {
	db, err := metadata.NewDatabase(metadata.RegionSpec{
		ID:                           "NZ",
		CountryCode:                  64,
		NationalPrefix:               "0",
		NationalPrefixFormattingRule: "($NP$FG)",
		Formats: []metadata.FormatSpec{
			{Pattern: `(\d)(\d{7})`, Format: "$1 $2"},
		},
	})
	require.NoError(t, err)

	f := Formatter{Database: db, Mode: National}
	got, err := f.Format(nz(SourcePlus))
	require.NoError(t, err)
	assert.Equal(t, "(03) 3316005", got)

	f.Mode = International
	got, err = f.Format(nz(SourcePlus))
	require.NoError(t, err)
	assert.Equal(t, "+64 3 3316005", got)
}

func TestParseMode(t *testing.T) {
	for _, mode := range []Mode{E164, International, National, RFC3966} {
		got, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	got, err := ParseMode(" RFC3966 ")
	require.NoError(t, err)
	assert.Equal(t, RFC3966, got)

	_, err = ParseMode("pretty")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
