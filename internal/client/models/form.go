package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("isodate", isoDate)
	return v
}

// isoDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp as
// stored by the backend.
func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// Attachment is a local file sent as a multipart part named Field.
type Attachment struct {
	Field string
	Path  string
}

// Form is the flat editing representation of a record.
type Form struct {
	ID          string
	Text        map[string]map[ml.Locale]string
	Lists       map[string]map[ml.Locale][]string
	Attributes  map[string]string
	Attachments []Attachment

	// extra holds attributes the descriptor does not describe; they are
	// written back untouched.
	extra map[string]json.RawMessage
}

// NewForm returns an empty form for d.
func NewForm(d *Descriptor) *Form {
	f := &Form{
		Text:       make(map[string]map[ml.Locale]string),
		Lists:      make(map[string]map[ml.Locale][]string),
		Attributes: make(map[string]string),
		extra:      make(map[string]json.RawMessage),
	}
	for _, fs := range d.Fields {
		if fs.List {
			f.Lists[fs.Name] = make(map[ml.Locale][]string)
		} else {
			f.Text[fs.Name] = make(map[ml.Locale]string)
		}
	}
	return f
}

// FormFromRecord flattens rec for editing.
func FormFromRecord(d *Descriptor, rec Record) *Form {
	f := NewForm(d)
	f.ID = rec.ID
	for _, fs := range d.Fields {
		field := rec.Field(fs.Name)
		if fs.List {
			for _, l := range ml.Locales {
				f.Lists[fs.Name][l] = ml.NormalizeList(field, l)
			}
			continue
		}
		f.Text[fs.Name] = ml.NormalizeAll(field)
	}
	for k, v := range rec.Attributes {
		if _, ok := d.Attribute(k); ok {
			f.Attributes[k] = attributeText(v)
			continue
		}
		f.extra[k] = v
	}
	return f
}

// SetText sets a single-valued translatable field.
func (f *Form) SetText(field string, l ml.Locale, value string) {
	if f.Text[field] == nil {
		f.Text[field] = make(map[ml.Locale]string)
	}
	f.Text[field][l] = value
}

// SetList sets a list-valued translatable field.
func (f *Form) SetList(field string, l ml.Locale, items []string) {
	if f.Lists[field] == nil {
		f.Lists[field] = make(map[ml.Locale][]string)
	}
	f.Lists[field][l] = items
}

// Problem is one rejected form field.
type Problem struct {
	Field   string
	Message string
}

// ValidationError blocks a submission before any request is made. Parity is
// set when a list field's locales are out of step.
type ValidationError struct {
	Problems []Problem
	Parity   *ml.ParityError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Field, p.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	if e.Parity == nil {
		return nil
	}
	return e.Parity
}

func (e *ValidationError) add(field, msg string) {
	e.Problems = append(e.Problems, Problem{Field: field, Message: msg})
}

// Record validates the form and rebuilds the backend representation.
// It fails with *ValidationError.
func (f *Form) Record(d *Descriptor) (Record, error) {
	verr := &ValidationError{}
	rec := Record{
		ID:         f.ID,
		Fields:     make(map[string]ml.Field, len(d.Fields)),
		Attributes: make(map[string]json.RawMessage, len(f.Attributes)+len(f.extra)),
	}

	for _, fs := range d.Fields {
		if fs.List {
			lists := f.Lists[fs.Name]
			if err := ml.ValidateListParity(lists); err != nil {
				var pe *ml.ParityError
				if errors.As(err, &pe) && verr.Parity == nil {
					verr.Parity = pe
				}
				verr.add(fs.Name, err.Error())
				continue
			}
			if fs.Required && len(lists[ml.EN]) == 0 {
				verr.add(fs.Name, "at least one english item is required")
				continue
			}
			rec.Fields[fs.Name] = ml.DenormalizeList(lists, fs.Labels)
			continue
		}

		flat := f.Text[fs.Name]
		if fs.Required && strings.TrimSpace(flat[ml.EN]) == "" {
			verr.add(fs.Name, "english value is required")
			continue
		}
		rec.Fields[fs.Name] = ml.Denormalize(flat, fs.Labels)
	}

	for k, v := range f.extra {
		rec.Attributes[k] = v
	}

	for _, as := range d.Attributes {
		value, present := f.Attributes[as.Name]
		if as.Rules != "" {
			if err := validate.Var(value, as.Rules); err != nil {
				verr.add(as.Name, ruleMessage(err))
				continue
			}
		}
		if !present {
			continue
		}
		raw, err := encodeAttribute(as.Kind, value)
		if err != nil {
			verr.add(as.Name, err.Error())
			continue
		}
		if raw != nil {
			rec.Attributes[as.Name] = raw
		}
	}

	for k, v := range f.Attributes {
		if _, ok := d.Attribute(k); ok {
			continue
		}
		raw, _ := json.Marshal(v)
		rec.Attributes[k] = raw
	}

	if len(verr.Problems) > 0 {
		return Record{}, verr
	}
	return rec, nil
}

func encodeAttribute(kind AttrKind, value string) (json.RawMessage, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case KindNumber:
		if value == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", value)
		}
		// re-encode so inputs like "+5" or "007" become valid JSON
		raw, err := json.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", value)
		}
		return raw, nil
	case KindBool:
		if value == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", value)
		}
		return json.Marshal(b)
	default:
		return json.Marshal(value)
	}
}

func ruleMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
	return err.Error()
}
