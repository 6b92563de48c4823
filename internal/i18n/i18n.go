// Package i18n holds the storefront's UI strings and picks a locale from an
// Accept-Language header.
package i18n

import (
	"maps"

	"golang.org/x/text/language"

	"equishare-storefront/internal/domain"
)

var tables = map[domain.Locale]map[string]string{
	domain.LocaleEnglish: {
		"appName":           "EquiShare",
		"home":              "Home",
		"allProducts":       "All Products",
		"cart":              "Cart",
		"orders":            "Orders",
		"profile":           "Profile",
		"login":             "Login",
		"logout":            "Logout",
		"loginAsRenter":     "Login as Renter",
		"loginAsOwner":      "Login as Owner",
		"searchPlaceholder": "Search equipment...",
		"pricePerDay":       "per day",
		"addToCart":         "Add to Cart",
		"viewDetails":       "View Details",
		"orderNow":          "Order Now",
		"available":         "Available",
		"notAvailable":      "Not Available",
		"rating":            "Rating",
	},
	domain.LocaleHindi: {
		"appName":           "EquiShare",
		"home":              "होम",
		"allProducts":       "सभी उत्पाद",
		"cart":              "कार्ट",
		"orders":            "ऑर्डर",
		"profile":           "प्रोफाइल",
		"login":             "लॉगिन",
		"logout":            "लॉगआउट",
		"loginAsRenter":     "किराएदार के रूप में लॉगिन",
		"loginAsOwner":      "मालिक के रूप में लॉगिन",
		"searchPlaceholder": "उपकरण खोजें...",
		"pricePerDay":       "प्रति दिन",
		"addToCart":         "कार्ट में डालें",
		"viewDetails":       "विवरण देखें",
		"orderNow":          "अभी ऑर्डर करें",
		"available":         "उपलब्ध",
		"notAvailable":      "उपलब्ध नहीं",
		"rating":            "रेटिंग",
	},
	domain.LocaleMarathi: {
		"appName":           "EquiShare",
		"home":              "होम",
		"allProducts":       "सर्व उत्पादने",
		"cart":              "कार्ट",
		"orders":            "ऑर्डर",
		"profile":           "प्रोफाइल",
		"login":             "लॉगिन",
		"logout":            "लॉगआउट",
		"loginAsRenter":     "भाडेकरू म्हणून लॉगिन",
		"loginAsOwner":      "मालक म्हणून लॉगिन",
		"searchPlaceholder": "उपकरणे शोधा...",
		"pricePerDay":       "दररोज",
		"addToCart":         "कार्टमध्ये टाका",
		"viewDetails":       "तपशील पहा",
		"orderNow":          "आता ऑर्डर करा",
		"available":         "उपलब्ध",
		"notAvailable":      "उपलब्ध नाही",
		"rating":            "रेटिंग",
	},
}

// Lookup returns the string for key in locale, falling back to English and
// then to the key itself.
func Lookup(locale domain.Locale, key string) string {
	if s, ok := tables[locale][key]; ok {
		return s
	}
	if s, ok := tables[domain.DefaultLocale][key]; ok {
		return s
	}
	return key
}

// Strings returns a copy of the full table for locale. Unknown locales get
// the English table.
func Strings(locale domain.Locale) map[string]string {
	t, ok := tables[locale]
	if !ok {
		t = tables[domain.DefaultLocale]
	}
	return maps.Clone(t)
}

var (
	supported = []language.Tag{language.English, language.Hindi, language.Marathi}
	locales   = []domain.Locale{domain.LocaleEnglish, domain.LocaleHindi, domain.LocaleMarathi}
	matcher   = language.NewMatcher(supported)
)

// Negotiate maps an Accept-Language header onto a supported locale. Empty or
// unmatched headers select the default locale.
func Negotiate(acceptLanguage string) domain.Locale {
	if acceptLanguage == "" {
		return domain.DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return domain.DefaultLocale
	}
	return locales[idx]
}
