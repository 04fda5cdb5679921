package device

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a language/country pair as reported by the host.
type Locale struct {
	Language string
	Country  string
}

// String formats the locale as "language_COUNTRY".
func (l Locale) String() string {
	return l.Language + "_" + l.Country
}

// ParseLocale converts a BCP 47 ("en-US") or POSIX-style ("en_US") tag into
// a Locale. The language subtag is kept as the host reported it, so legacy
// codes such as "iw" or "in" are not replaced by their modern forms. Tags the
// language package rejects are split on the first separator and kept verbatim.
func ParseLocale(tag string) Locale {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Locale{}
	}

	split := splitLocale(tag)
	parsed, err := language.Raw.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return split
	}

	loc := Locale{Language: strings.ToLower(split.Language)}
	// Region() guesses a region for bare languages; only keep an explicit one.
	if region, conf := parsed.Region(); conf == language.Exact {
		loc.Country = region.String()
	}
	return loc
}

func splitLocale(tag string) Locale {
	lang, country, _ := strings.Cut(strings.ReplaceAll(tag, "-", "_"), "_")
	if i := strings.IndexByte(country, '_'); i >= 0 {
		country = country[:i]
	}
	return Locale{Language: lang, Country: country}
}
