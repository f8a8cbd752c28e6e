package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
)

const clearMark = "-"

// fillForm walks the user through every field of d. While editing, an empty
// answer keeps the current value and "-" clears it.
func (a *App) fillForm(form *models.Form, d *models.Descriptor, editing bool) error {
	for _, fs := range d.Fields {
		for _, l := range ml.Locales {
			var err error
			if fs.List {
				err = a.promptList(form, fs, l, editing)
			} else {
				err = a.promptText(form, fs, l, editing)
			}
			if err != nil {
				return err
			}
		}
	}

	for _, as := range d.Attributes {
		current := form.Attributes[as.Name]
		value, err := GetSimpleText(a.reader, fieldPrompt(as.Name, "", current, editing), a.out)
		if err != nil {
			return err
		}
		switch {
		case value == clearMark:
			delete(form.Attributes, as.Name)
		case value != "":
			form.Attributes[as.Name] = value
		}
	}

	for _, field := range d.Attachments {
		path, err := GetSimpleText(a.reader, fmt.Sprintf("%s file path (empty to skip)", field), a.out)
		if err != nil {
			return err
		}
		if path != "" {
			form.Attachments = append(form.Attachments, models.Attachment{Field: field, Path: path})
		}
	}
	return nil
}

func (a *App) promptText(form *models.Form, fs models.FieldSpec, l ml.Locale, editing bool) error {
	current := form.Text[fs.Name][l]
	value, err := GetSimpleText(a.reader, fieldPrompt(fs.Labels.Label(l), l, current, editing), a.out)
	if err != nil {
		return err
	}
	switch {
	case value == clearMark:
		form.SetText(fs.Name, l, "")
	case value != "" || !editing:
		form.SetText(fs.Name, l, value)
	}
	return nil
}

func (a *App) promptList(form *models.Form, fs models.FieldSpec, l ml.Locale, editing bool) error {
	current := form.Lists[fs.Name][l]
	prompt := fmt.Sprintf("%s [%s], one per line", fs.Labels.Label(l), l)
	if editing && len(current) > 0 {
		prompt += fmt.Sprintf(" (current: %s; empty keeps, %q clears)", strings.Join(current, " | "), clearMark)
	}
	lines, err := GetLines(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	switch {
	case len(lines) == 1 && lines[0] == clearMark:
		form.SetList(fs.Name, l, nil)
	case len(lines) > 0 || !editing:
		form.SetList(fs.Name, l, lines)
	}
	return nil
}

func fieldPrompt(label string, l ml.Locale, current string, editing bool) string {
	p := label
	if l != "" {
		p = fmt.Sprintf("%s [%s]", label, l)
	}
	if editing && current != "" {
		p += fmt.Sprintf(" (current: %s; empty keeps, %q clears)", current, clearMark)
	}
	return p
}
