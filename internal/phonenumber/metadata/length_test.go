package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLength(t *testing.T) {
	db, err := NewDatabase(RegionSpec{
		ID:               "GB",
		CountryCode:      44,
		PossibleLengths:  []int{10, 7, 9, 10},
		LocalOnlyLengths: []int{4, 5, 6, 8},
	})
	require.NoError(t, err)
	gb := db.ByID("GB")

	tests := []struct {
		national string
		want     Validation
	}{
		{"123", TooShort},
		{"1234", IsPossibleLocalOnly},
		{"12345678", IsPossibleLocalOnly},
		{"1234567", IsPossible},
		{"2070313000", IsPossible},
		{"20703130001", TooLong},
	}
	for _, tt := range tests {
		t.Run(tt.national, func(t *testing.T) {
			got := gb.TestLength(tt.national)
			assert.Equal(t, tt.want, got, got.String())
		})
	}
}

func TestTestLengthInvalid(t *testing.T) {
	db, err := NewDatabase(RegionSpec{ID: "TR", CountryCode: 90, PossibleLengths: []int{7, 10}})
	require.NoError(t, err)

	v := db.ByID("TR").TestLength("12345678")
	assert.Equal(t, InvalidLength, v)
	assert.False(t, v.Possible())
}

func TestTestLengthWithoutData(t *testing.T) {
	db, err := NewDatabase(RegionSpec{ID: "ZW", CountryCode: 263})
	require.NoError(t, err)
	assert.Equal(t, IsPossible, db.ByID("ZW").TestLength("1"))
}
