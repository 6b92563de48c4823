package domain

type Locale string

const (
	LocaleEnglish Locale = "english"
	LocaleHindi   Locale = "hindi"
	LocaleMarathi Locale = "marathi"

	DefaultLocale = LocaleEnglish
)

var Locales = []Locale{LocaleEnglish, LocaleHindi, LocaleMarathi}

func (l Locale) Valid() bool {
	return l == LocaleEnglish || l == LocaleHindi || l == LocaleMarathi
}
