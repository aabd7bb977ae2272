// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

//go:embed locale/*
var locales embed.FS

// Localizer translates messages and formats times for a single language.
type Localizer struct {
	*spreak.Localizer
	humanizer *humanize.Humanizer
}

// New returns a Localizer for the given BCP 47 locale. An empty locale is detected
// from the environment.
func New(loc string) (*Localizer, error) {
	tag := language.Make(loc)
	var err error
	if loc == "" {
		tag, err = locale.Detect()
		if err != nil {
			tag = language.English // Unable to detect locale, fallback to English
		}
	}

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}

	collection := humanize.MustNew(humanize.WithLocale(de.New()))
	return &Localizer{
		Localizer: spreak.NewLocalizer(bundle, tag),
		humanizer: collection.CreateHumanizer(tag),
	}, nil
}

// FormatTime formats t in the time format of the localizer's language.
func (l *Localizer) FormatTime(t time.Time) string {
	return l.humanizer.FormatTime(t, humanize.TimeFormat)
}

// FormatDate formats t in the short date format of the localizer's language.
func (l *Localizer) FormatDate(t time.Time) string {
	return l.humanizer.FormatTime(t, humanize.ShortDateFormat)
}
