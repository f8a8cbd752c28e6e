// Package view holds the pagination and filter state of an entity list.
//
// A View moves idle → loading → idle | error on every query change. Only the
// newest query may settle the state: starting a new query cancels the one in
// flight and its response, if any, is dropped. Errors are kept inline; the
// view never retries by itself.
package view

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
	"golang.org/x/text/cases"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

var (
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrSuperseded is returned to a caller whose query was replaced by a
	// newer one before it settled.
	ErrSuperseded = errors.New("query superseded")
)

// Lister fetches one page of records.
type Lister interface {
	List(ctx context.Context, q client.Query) (*models.Page, error)
}

// State is a snapshot of the view.
type State struct {
	Page       int
	PageSize   int
	Filters    []client.Filter
	Rows       []models.Record
	Pagination models.Pagination
	Status     Status
	Err        error
}

type View struct {
	mu sync.Mutex

	lister Lister
	desc   *models.Descriptor
	locale ml.Locale
	fold   cases.Caser

	page     int
	pageSize int
	filters  map[string]string

	rows       []models.Record
	pagination models.Pagination
	status     Status
	err        error

	gen    uint64
	cancel context.CancelFunc
}

// New returns an idle view on page 1. Nothing is fetched until Load.
func New(lister Lister, d *models.Descriptor, pageSize int) *View {
	if pageSize < 1 {
		pageSize = 10
	}
	return &View{
		lister:   lister,
		desc:     d,
		locale:   ml.EN,
		fold:     cases.Fold(),
		page:     1,
		pageSize: pageSize,
		filters:  make(map[string]string),
	}
}

// Descriptor returns the entity being listed.
func (v *View) Descriptor() *models.Descriptor { return v.desc }

// SetLocale selects the locale used by local filtering and display.
func (v *View) SetLocale(l ml.Locale) {
	v.mu.Lock()
	v.locale = l
	v.mu.Unlock()
}

// Locale returns the display locale.
func (v *View) Locale() ml.Locale {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.locale
}

// Load queries the current page. It is also the manual retry after an error.
func (v *View) Load(ctx context.Context) error {
	return v.reload(ctx, nil)
}

// Refresh is Load under the name the list screen uses.
func (v *View) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

// SetPage moves to page n (1-based).
func (v *View) SetPage(ctx context.Context, n int) error {
	v.mu.Lock()
	total := v.pagination.TotalPages
	v.mu.Unlock()
	if n < 1 || (total > 0 && n > total) {
		return fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}
	return v.reload(ctx, func() { v.page = n })
}

// SetPageSize changes the page size and returns to page 1.
func (v *View) SetPageSize(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	return v.reload(ctx, func() {
		v.pageSize = n
		v.page = 1
	})
}

// SetFilter filters the column field by value and returns to page 1. An
// empty value removes the filter.
func (v *View) SetFilter(ctx context.Context, field, value string) error {
	return v.reload(ctx, func() {
		value = strings.TrimSpace(value)
		if value == "" {
			delete(v.filters, field)
		} else {
			v.filters[field] = value
		}
		v.page = 1
	})
}

// ClearFilters drops every filter and returns to page 1.
func (v *View) ClearFilters(ctx context.Context) error {
	return v.reload(ctx, func() {
		clear(v.filters)
		v.page = 1
	})
}

// Query returns the query the view currently represents.
func (v *View) Query() client.Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.queryLocked()
}

// Apply replaces the rows with a page re-fetched elsewhere, typically right
// after a mutation. Any query in flight is superseded.
func (v *View) Apply(page *models.Page) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.settleLocked(page, nil)
}

// Fail records err as the inline error, as if the last query had failed.
func (v *View) Fail(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.settleLocked(nil, err)
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := v.queryLocked()
	return State{
		Page:       q.Page,
		PageSize:   q.PageSize,
		Filters:    q.Filters,
		Rows:       append([]models.Record(nil), v.rows...),
		Pagination: v.pagination,
		Status:     v.status,
		Err:        v.err,
	}
}

func (v *View) reload(ctx context.Context, mutate func()) error {
	v.mu.Lock()
	if mutate != nil {
		mutate()
	}
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.status = StatusLoading
	q := v.queryLocked()
	v.mu.Unlock()

	page, err := v.lister.List(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return ErrSuperseded
	}
	cancel()
	v.cancel = nil
	v.settleLocked(page, err)
	return err
}

func (v *View) settleLocked(page *models.Page, err error) {
	if err != nil {
		v.status = StatusError
		v.err = err
		v.rows = nil
		return
	}
	v.status = StatusIdle
	v.err = nil
	if page == nil {
		v.rows = nil
		v.pagination = models.Pagination{}
		return
	}
	v.pagination = page.Pagination
	v.rows = v.filterLocked(page.Items)
}

func (v *View) queryLocked() client.Query {
	q := client.Query{Page: v.page, PageSize: v.pageSize}
	fields := make([]string, 0, len(v.filters))
	for f := range v.filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		q.Filters = append(q.Filters, client.Filter{Field: f, Value: v.filters[f]})
	}
	return q
}

// filterLocked applies the column filters locally as case-insensitive
// substring matches over display values.
func (v *View) filterLocked(items []models.Record) []models.Record {
	if len(v.filters) == 0 {
		return items
	}
	out := make([]models.Record, 0, len(items))
	for _, rec := range items {
		if v.matchesLocked(&rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (v *View) matchesLocked(rec *models.Record) bool {
	for field, want := range v.filters {
		var have string
		switch {
		case field == "id" || field == "_id":
			have = rec.ID
		default:
			if _, ok := v.desc.Field(field); ok {
				have = rec.Display(field, v.locale)
			} else {
				have = rec.Attribute(field)
			}
		}
		if !strings.Contains(v.fold.String(have), v.fold.String(want)) {
			return false
		}
	}
	return true
}
