// Package keylog holds captured key events and the session's append-only
// event log.
package keylog

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// NonPrintable is the character representation used when a key carries no
// printable text.
const NonPrintable = "<non-printable>"

const timestampLayout = "2006-01-02T15:04:05.000000"

// Record is one captured keystroke. Fields are fixed at capture time.
type Record struct {
	Timestamp string
	KeySymbol string
	CharRepr  string
}

// FormatTimestamp renders t as an ISO-8601 UTC instant with a trailing "Z".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + "Z"
}

// CharRepr returns the printable form of text. Newlines become the two
// characters `\n`. A single non-printable key becomes NonPrintable. In
// multi-rune text such as a paste, each non-printable rune is replaced by
// its Go escape (`\t`, `\x01`) so the printable text survives and the
// saved line stays tab-separated.
func CharRepr(text string) string {
	if text == "" {
		return NonPrintable
	}
	if text == "\n" {
		return `\n`
	}
	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return NonPrintable
		}
		return text
	}

	var b strings.Builder
	for _, r := range text {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(strings.Trim(strconv.QuoteRune(r), "'"))
	}
	return b.String()
}

// NewRecord builds a Record for a key observed at t.
func NewRecord(t time.Time, keySymbol, text string) Record {
	return Record{
		Timestamp: FormatTimestamp(t),
		KeySymbol: keySymbol,
		CharRepr:  CharRepr(text),
	}
}

// DisplayLine formats r for the display panel.
func (r Record) DisplayLine() string {
	return r.Timestamp + " | " + r.KeySymbol + " | " + r.CharRepr
}

// TSVLine formats r as a tab-separated line for the saved log, without the
// trailing newline.
func (r Record) TSVLine() string {
	return r.Timestamp + "\t" + r.KeySymbol + "\t" + r.CharRepr
}
