// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user-visible bfc messages for the locale of the
// running process.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the process locale cannot be determined.
const DEFAULT_LOCALE = "en-US"

var (
	printerOnce sync.Once
	printer     *message.Printer
)

// Locales returns the preferred locales of the process, most preferred first.
func Locales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("bfc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	return
}

// Printer returns the message printer for the process locale.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(message.MatchLanguage(Locales()...))
	})
	return printer
}

// For returns a message printer for a specific locale tag, such as "de-DE".
func For(tag string) *message.Printer {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.MustParse(DEFAULT_LOCALE)
	}
	return message.NewPrinter(t)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
