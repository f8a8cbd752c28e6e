package multilingual

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies one of the content languages served by the platform.
type Locale string

const (
	EN Locale = "en"
	TA Locale = "ta"
	SI Locale = "si"
)

// Locales lists the supported locales in wire order.
var Locales = []Locale{EN, TA, SI}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Tamil, language.Sinhala})

// ParseLocale resolves user input such as "EN", "ta-LK" or "si" to a Locale.
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrUnknownLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	base, _ := tag.Base()
	for _, l := range Locales {
		if base.String() == string(l) {
			return l, nil
		}
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	return Locales[idx], nil
}

// Entry is a labelled value in one locale.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Field is the backend shape of a translatable attribute: a sequence of
// entries per locale. Single-valued fields hold at most one entry per locale.
type Field struct {
	EN []Entry `json:"en"`
	TA []Entry `json:"ta"`
	SI []Entry `json:"si"`
}

// Entries returns the entries stored for l. It is nil-safe.
func (f *Field) Entries(l Locale) []Entry {
	if f == nil {
		return nil
	}
	switch l {
	case EN:
		return f.EN
	case TA:
		return f.TA
	case SI:
		return f.SI
	}
	return nil
}

// Set replaces the entries stored for l.
func (f *Field) Set(l Locale, entries []Entry) {
	switch l {
	case EN:
		f.EN = entries
	case TA:
		f.TA = entries
	case SI:
		f.SI = entries
	}
}

// MarshalJSON always emits the three locale keys in en, ta, si order and
// encodes absent locales as empty arrays.
func (f Field) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range Locales {
		if i > 0 {
			buf.WriteByte(',')
		}
		entries := f.Entries(l)
		if entries == nil {
			entries = []Entry{}
		}
		b, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", string(l))
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Labels holds the fixed, translated label of a field for every locale.
type Labels map[Locale]string

// Label returns the label for l, falling back to English.
func (lb Labels) Label(l Locale) string {
	if s, ok := lb[l]; ok && s != "" {
		return s
	}
	return lb[EN]
}

// Normalize returns the first value stored for locale, or "" when the field,
// the locale or the value is absent.
func Normalize(f *Field, l Locale) string {
	entries := f.Entries(l)
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Value
}

// NormalizeAll flattens f into one string per locale.
func NormalizeAll(f *Field) map[Locale]string {
	out := make(map[Locale]string, len(Locales))
	for _, l := range Locales {
		out[l] = Normalize(f, l)
	}
	return out
}

// Denormalize builds a single-entry field for every locale. Labels are
// re-synthesized from labels, discarding whatever name the backend held.
func Denormalize(flat map[Locale]string, labels Labels) Field {
	var f Field
	for _, l := range Locales {
		f.Set(l, []Entry{{Name: labels.Label(l), Value: flat[l]}})
	}
	return f
}

// NormalizeList returns every value stored for locale, in order.
func NormalizeList(f *Field, l Locale) []string {
	entries := f.Entries(l)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out
}

// DenormalizeList builds a list-valued field; each item gets the locale label.
func DenormalizeList(lists map[Locale][]string, labels Labels) Field {
	var f Field
	for _, l := range Locales {
		items := lists[l]
		entries := make([]Entry, 0, len(items))
		for _, v := range items {
			entries = append(entries, Entry{Name: labels.Label(l), Value: v})
		}
		f.Set(l, entries)
	}
	return f
}

// Display returns the value to show for locale l. Empty values fall back to
// English.
func Display(f *Field, l Locale) string {
	if v := Normalize(f, l); v != "" {
		return v
	}
	return Normalize(f, EN)
}
