package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
	"github.com/dmitrijs2005/memoradmin/internal/client/view"
)

const maxCell = 32

// renderTable prints the rows of s. A failed load prints the inline error
// and an empty table.
func renderTable(w io.Writer, d *models.Descriptor, s view.State, l ml.Locale) {
	if s.Status == view.StatusError && s.Err != nil {
		fmt.Fprintln(w, "failed to load:", errorText(s.Err))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"ID"}
	for _, fs := range d.Fields {
		header = append(header, strings.ToUpper(fs.Name))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, rec := range s.Rows {
		cells := []string{rec.ID}
		for _, fs := range d.Fields {
			if fs.List {
				cells = append(cells, fmt.Sprintf("%d items", len(ml.NormalizeList(rec.Field(fs.Name), ml.EN))))
				continue
			}
			cells = append(cells, truncate(rec.Display(fs.Name, l)))
		}
		if rec.Deleted() {
			cells[0] += " (deleted)"
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	if len(s.Rows) == 0 {
		fmt.Fprintln(w, "(no records)")
	}
	p := s.Pagination
	fmt.Fprintf(w, "page %d/%d, %d items, %d per page", s.Page, max(p.TotalPages, 1), p.TotalItems, s.PageSize)
	if len(s.Filters) > 0 {
		parts := make([]string, 0, len(s.Filters))
		for _, f := range s.Filters {
			parts = append(parts, fmt.Sprintf("%s~%q", f.Field, f.Value))
		}
		fmt.Fprintf(w, ", filters: %s", strings.Join(parts, " "))
	}
	fmt.Fprintln(w)
}

// renderRecord prints every translatable field in all locales followed by
// the attributes.
func renderRecord(w io.Writer, d *models.Descriptor, rec *models.Record) {
	fmt.Fprintf(w, "%s %s\n", d.Name, rec.ID)
	for _, fs := range d.Fields {
		field := rec.Field(fs.Name)
		fmt.Fprintf(w, "%s:\n", fs.Name)
		if fs.List {
			rows, err := ml.Zip(field)
			if err != nil {
				fmt.Fprintf(w, "  ! %v\n", err)
				continue
			}
			for i, row := range rows {
				fmt.Fprintf(w, "  %d. %s | %s | %s\n", i+1, row[ml.EN], row[ml.TA], row[ml.SI])
			}
			continue
		}
		for _, l := range ml.Locales {
			fmt.Fprintf(w, "  %s  %s\n", l, ml.Normalize(field, l))
		}
	}

	keys := make([]string, 0, len(rec.Attributes))
	for k := range rec.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, truncateLong(rec.Attribute(k)))
	}
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxCell {
		return s
	}
	return string(r[:maxCell-1]) + "…"
}

func truncateLong(s string) string {
	r := []rune(s)
	if len(r) <= 200 {
		return s
	}
	return string(r[:199]) + "…"
}

func errorText(err error) string {
	return strings.TrimPrefix(notice(err), "! ")
}
