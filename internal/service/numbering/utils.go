// sentiric-numbering-service/internal/service/numbering/utils.go
package numbering

import (
	"strings"
	"unicode"
)

const anonymous = "anonymous"

// extractUserPart, SIP URI/AOR'dan kullanıcı bölümünü güvenli bir şekilde ayıklar.
// Baştaki "+" korunur, diğer tüm ayraçlar atılır.
func extractUserPart(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, anonymous) {
		return anonymous
	}
	if start := strings.Index(s, "<"); start != -1 {
		s = s[start+1:]
	}
	if end := strings.Index(s, ">"); end != -1 {
		s = s[:end]
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "sip:"):
		s = s[4:]
	case strings.HasPrefix(lower, "sips:"):
		s = s[5:]
	case strings.HasPrefix(lower, "tel:"):
		// tel: URI'leri olduğu gibi çözücüye gider.
		return s
	}
	if atIndex := strings.Index(s, "@"); atIndex != -1 {
		s = s[:atIndex]
	} else if semiIndex := strings.Index(s, ";"); semiIndex != -1 {
		s = s[:semiIndex]
	}

	var sb strings.Builder
	for i, r := range s {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
