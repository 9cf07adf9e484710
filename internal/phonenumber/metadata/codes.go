package metadata

import (
	"math"

	"github.com/nyaruka/phonenumbers"
)

// unknownRegion is what phonenumbers reports for unassigned calling codes.
const unknownRegion = "ZZ"

// ituCountryCode returns the ITU assigned calling code of region, or 0.
func ituCountryCode(region string) uint16 {
	code := phonenumbers.GetCountryCodeForRegion(region)
	if code <= 0 || code > math.MaxUint16 {
		return 0
	}
	return uint16(code)
}

// ituKnownCode reports whether code is an assigned calling code, geographic or
// not.
func ituKnownCode(code uint16) bool {
	if code == 0 {
		return false
	}
	return phonenumbers.GetRegionCodeForCountryCode(int(code)) != unknownRegion
}
