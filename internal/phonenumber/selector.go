package phonenumber

import "github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"

// selectFormat returns the first rule that applies to national, or nil.
// Only the last leading-digits filter of a rule is checked; the earlier ones
// are shorter versions of it.
func selectFormat(national string, rules []*metadata.Format) *metadata.Format {
	for _, rule := range rules {
		if leading := rule.LeadingDigits(); len(leading) > 0 && !leading[len(leading)-1].MatchString(national) {
			continue
		}
		if rule.Matches(national) {
			return rule
		}
	}
	return nil
}
