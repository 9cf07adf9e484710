package phonenumber

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

// Mode selects the output form of a Formatter.
type Mode uint8

const (
	// E164 is "+6433316005".
	E164 Mode = iota
	// International is "+64 3 331 6005".
	International
	// National is "03-331 6005".
	National
	// RFC3966 is "tel:+64-3-331-6005".
	RFC3966
)

var modeNames = [...]string{
	E164:          "e164",
	International: "international",
	National:      "national",
	RFC3966:       "rfc3966",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts the names returned by Mode.String, in any case.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

const defaultExtensionPrefix = " ext. "

// Formatter renders PhoneNumbers. The zero value formats E.164 with the
// embedded rule table.
type Formatter struct {
	// Database overrides the embedded rule table.
	Database *metadata.Database

	Mode Mode

	// Rule forces a formatting rule instead of selecting one from the table.
	Rule *metadata.Format
}

// Format formats n with the embedded rule table.
func Format(n PhoneNumber, mode Mode) (string, error) {
	return Formatter{Mode: mode}.Format(n)
}

// Format renders n. It fails only when the calling code of n has no rules.
func (f Formatter) Format(n PhoneNumber) (string, error) {
	db, err := database(f.Database)
	if err != nil {
		return "", err
	}
	meta := db.Main(n.Code.Value)
	if meta == nil {
		return "", fmt.Errorf("%w: %d", ErrInvalidCountryCode, n.Code.Value)
	}

	code := strconv.FormatUint(uint64(n.Code.Value), 10)
	national := n.National.String()

	switch f.Mode {
	case E164:
		return "+" + code + national, nil

	case International:
		return "+" + code + " " + f.pattern(meta, n, national) + extensionSuffix(meta, n.Extension), nil

	case National:
		return f.pattern(meta, n, national) + extensionSuffix(meta, n.Extension), nil

	case RFC3966:
		var b strings.Builder
		b.WriteString("tel:+")
		b.WriteString(code)
		b.WriteByte('-')
		b.WriteString(normalizeRFC3966(f.pattern(meta, n, national)))
		if n.Extension != "" {
			b.WriteString(";ext=")
			b.WriteString(string(n.Extension))
		}
		return b.String(), nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidMode, f.Mode)
}

// pattern formats the national number, falling back to the bare digits when
// no rule applies.
func (f Formatter) pattern(meta *metadata.Metadata, n PhoneNumber, national string) string {
	rule := f.Rule
	if rule == nil {
		rules := meta.InternationalFormats()
		if len(rules) == 0 || f.Mode == National {
			rules = meta.Formats()
		}
		if rule = selectFormat(national, rules); rule == nil {
			return national
		}
	}

	var transform string
	if f.Mode == National {
		switch {
		case n.Carrier != "" && rule.DomesticCarrierRule() != "":
			transform = rule.DomesticCarrierRule()
		case rule.NationalPrefixRule() != "":
			transform = rule.NationalPrefixRule()
		}
	}
	return expand(national, meta, rule, transform, n.Carrier)
}

func extensionSuffix(meta *metadata.Metadata, ext Extension) string {
	if ext == "" {
		return ""
	}
	prefix := meta.PreferredExtensionPrefix()
	if prefix == "" {
		prefix = defaultExtensionPrefix
	}
	return prefix + string(ext)
}
