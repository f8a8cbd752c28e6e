package multilingual

import (
	"errors"
	"fmt"
)

var ErrUnknownLocale = errors.New("unknown locale")

// ParityError reports the per-locale item counts of a list field whose
// locales are out of step.
type ParityError struct {
	EN, TA, SI int
}

func (e *ParityError) Error() string {
	return fmt.Sprintf("locale item counts differ: en=%d ta=%d si=%d", e.EN, e.TA, e.SI)
}

// Counts returns the counts in en, ta, si order.
func (e *ParityError) Counts() [3]int {
	return [3]int{e.EN, e.TA, e.SI}
}

// ValidateParity requires every locale of f to hold the same number of
// entries. List fields are rendered by zipping the locales by index, so a
// mismatch would silently misalign them.
func ValidateParity(f *Field) error {
	en, ta, si := len(f.Entries(EN)), len(f.Entries(TA)), len(f.Entries(SI))
	if en == ta && ta == si {
		return nil
	}
	return &ParityError{EN: en, TA: ta, SI: si}
}

// ValidateListParity is ValidateParity for the flat form representation.
func ValidateListParity(lists map[Locale][]string) error {
	en, ta, si := len(lists[EN]), len(lists[TA]), len(lists[SI])
	if en == ta && ta == si {
		return nil
	}
	return &ParityError{EN: en, TA: ta, SI: si}
}

// Zip aligns a list field positionally: row i holds item i of every locale.
// It fails with *ParityError when the locales are out of step.
func Zip(f *Field) ([]map[Locale]string, error) {
	if err := ValidateParity(f); err != nil {
		return nil, err
	}
	n := len(f.Entries(EN))
	rows := make([]map[Locale]string, n)
	for i := 0; i < n; i++ {
		row := make(map[Locale]string, len(Locales))
		for _, l := range Locales {
			row[l] = f.Entries(l)[i].Value
		}
		rows[i] = row
	}
	return rows, nil
}
