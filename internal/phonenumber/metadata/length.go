package metadata

import "slices"

// Validation classifies the length of a national significant number.
type Validation uint8

const (
	IsPossible Validation = iota
	IsPossibleLocalOnly
	TooShort
	InvalidLength
	TooLong
)

func (v Validation) String() string {
	switch v {
	case IsPossible:
		return "possible"
	case IsPossibleLocalOnly:
		return "possible_local_only"
	case TooShort:
		return "too_short"
	case InvalidLength:
		return "invalid_length"
	case TooLong:
		return "too_long"
	}
	return "unknown"
}

// Possible reports whether the length is dialable, locally or otherwise.
func (v Validation) Possible() bool {
	return v == IsPossible || v == IsPossibleLocalOnly
}

// TestLength classifies national against the region's possible lengths.
// Regions without length data accept every length.
func (m *Metadata) TestLength(national string) Validation {
	lengths := m.possibleLengths
	if len(lengths) == 0 {
		return IsPossible
	}

	n := len(national)
	if slices.Contains(m.localOnlyLengths, n) {
		return IsPossibleLocalOnly
	}

	switch {
	case n < lengths[0]:
		return TooShort
	case n > lengths[len(lengths)-1]:
		return TooLong
	case slices.Contains(lengths, n):
		return IsPossible
	}
	return InvalidLength
}
