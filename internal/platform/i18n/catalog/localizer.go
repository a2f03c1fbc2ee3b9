package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer renders catalog messages for one locale.
type Localizer struct {
	locale  string
	bundle  *Bundle
	printer *message.Printer
}

// NewLocalizer returns a localizer for locale backed by the default bundle.
// Unknown or malformed locales fall back to BaseLocale.
func NewLocalizer(locale string) *Localizer {
	return newLocalizer(Default(), locale)
}

func newLocalizer(bundle *Bundle, locale string) *Localizer {
	resolved := strings.TrimSpace(locale)
	if !bundle.HasLocale(resolved) {
		resolved = BaseLocale
	}
	tag, err := language.Parse(resolved)
	if err != nil {
		tag = language.MustParse(BaseLocale)
	}
	return &Localizer{
		locale:  resolved,
		bundle:  bundle,
		printer: message.NewPrinter(tag),
	}
}

// Locale returns the resolved locale.
func (l *Localizer) Locale() string {
	return l.locale
}

// Sprintf formats the message registered under key with args.
func (l *Localizer) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Lookup returns the raw message for key, or fallback when no locale defines it.
func (l *Localizer) Lookup(key, fallback string) string {
	if value, ok := l.bundle.Message(l.locale, key); ok {
		return value
	}
	return fallback
}
