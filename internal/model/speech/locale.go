package speech

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	// DefaultLanguage is assumed when a reply declares no language.
	DefaultLanguage = "en"
	// DefaultLocale is used for speech when a language code is unknown.
	DefaultLocale = "en-IN"
)

var languageTags = map[string]language.Tag{
	"en": language.MustParse("en-IN"),
	"hi": language.MustParse("hi-IN"),
	"ml": language.MustParse("ml-IN"),
	"te": language.MustParse("te-IN"),
	"kn": language.MustParse("kn-IN"),
	"ta": language.MustParse("ta-IN"),
}

// SupportedLanguages lists the short codes with a dedicated speech locale.
func SupportedLanguages() []string {
	return []string{"en", "hi", "ml", "te", "kn", "ta"}
}

// LocaleFor maps a backend-declared language code to a speech locale tag.
// An empty code means DefaultLanguage; unknown codes map to DefaultLocale.
// Codes are normalized first, so "HI" and "hi-IN" resolve like "hi".
func LocaleFor(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = DefaultLanguage
	}

	if tag, ok := languageTags[baseLanguage(code)]; ok {
		return tag.String()
	}
	return DefaultLocale
}

// CanonicalLocale normalizes a locale tag such as "hi_in" to "hi-IN". Tags that
// cannot be parsed are returned trimmed but otherwise untouched.
func CanonicalLocale(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return parsed.String()
}

// Language returns the short language code of a locale tag ("hi-IN" -> "hi").
func Language(tag string) string {
	return baseLanguage(tag)
}

func baseLanguage(code string) string {
	tag, err := language.Parse(code)
	if err == nil {
		base, _ := tag.Base()
		return base.String()
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	return code
}
