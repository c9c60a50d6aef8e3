// Package i18n localizes the labels machine.InputButton exposes to a
// front-end (joystick/button names shown in a key-binding menu), driven off
// config.Locale. It wraps github.com/nicksnyder/go-i18n/v2, matching the
// rest of this pack's localization story, with golang.org/x/text supplying
// the BCP 47 language tags the bundle matches locales against.
package i18n

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var bundle = i18n.NewBundle(language.English)

func init() {
	mustAdd(language.English, englishMessages)
	mustAdd(language.French, frenchMessages)
}

func mustAdd(tag language.Tag, messages []*i18n.Message) {
	if err := bundle.AddMessages(tag, messages...); err != nil {
		panic(err)
	}
}

// Localizer resolves arcadecore's input-button label message IDs into one
// locale's text.
type Localizer struct {
	loc *i18n.Localizer
}

// New returns a Localizer for locale (a BCP 47 tag like "en" or "fr"). An
// empty, unrecognised, or unsupported locale falls back to English: New
// always appends "en" as a second candidate, and English is the bundle's
// own default language besides.
func New(locale string) *Localizer {
	return &Localizer{loc: i18n.NewLocalizer(bundle, locale, "en")}
}

// Label resolves an input button's canonical (English) name into this
// Localizer's locale. A name with no registered translation — e.g. a game
// wrapper's ad-hoc button label that predates this catalog — renders as
// the name itself unchanged rather than failing, since an untranslated
// label is still better than none.
func (l *Localizer) Label(name string) string {
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{MessageID: name})
	if err != nil {
		return name
	}
	return msg
}
