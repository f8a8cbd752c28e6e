package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
	"github.com/dmitrijs2005/memoradmin/internal/client/view"
)

// Entities prints the registered entity names.
func (a *App) Entities(ctx context.Context) error {
	for _, name := range models.Entities() {
		d, _ := models.Lookup(name)
		a.println(fmt.Sprintf("  %-13s /%s", name, d.Path))
	}
	return nil
}

// Use switches to entity and loads its first page.
func (a *App) Use(ctx context.Context, entity string) error {
	d, err := models.Lookup(entity)
	if err != nil {
		return err
	}
	a.bind(d)
	a.savePref(ctx, lastEntityKey, d.Name)
	return a.reload(ctx, a.view.Load)
}

func (a *App) List(ctx context.Context) error {
	if a.view == nil {
		return errNoEntity
	}
	if a.view.Snapshot().Pagination.TotalPages == 0 {
		return a.reload(ctx, a.view.Load)
	}
	a.render()
	return nil
}

func (a *App) Page(ctx context.Context, n int) error {
	if a.view == nil {
		return errNoEntity
	}
	return a.reload(ctx, func(ctx context.Context) error { return a.view.SetPage(ctx, n) })
}

func (a *App) Size(ctx context.Context, n int) error {
	if a.view == nil {
		return errNoEntity
	}
	err := a.reload(ctx, func(ctx context.Context) error { return a.view.SetPageSize(ctx, n) })
	if !errors.Is(err, view.ErrInvalidPageSize) {
		a.config.PageSize = n
		a.savePref(ctx, pageSizeKey, strconv.Itoa(n))
	}
	return err
}

func (a *App) Filter(ctx context.Context, field, value string) error {
	if a.view == nil {
		return errNoEntity
	}
	return a.reload(ctx, func(ctx context.Context) error { return a.view.SetFilter(ctx, field, value) })
}

func (a *App) Clear(ctx context.Context) error {
	if a.view == nil {
		return errNoEntity
	}
	return a.reload(ctx, a.view.ClearFilters)
}

func (a *App) Refresh(ctx context.Context) error {
	if a.view == nil {
		return errNoEntity
	}
	return a.reload(ctx, a.view.Refresh)
}

// Lang changes the display locale and redraws the table.
func (a *App) Lang(ctx context.Context, locale string) error {
	l, err := ml.ParseLocale(locale)
	if err != nil {
		return err
	}
	if a.view == nil {
		return errNoEntity
	}
	a.view.SetLocale(l)
	return a.reload(ctx, a.view.Refresh)
}

// reload runs a view transition and renders the result. Load failures are
// shown inline by render, so they are not returned as notices.
func (a *App) reload(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	var ferr *client.FetchError
	if errors.As(err, &ferr) || errors.Is(err, view.ErrSuperseded) {
		err = nil
	}
	if err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) render() {
	var b strings.Builder
	renderTable(&b, a.view.Descriptor(), a.view.Snapshot(), a.view.Locale())
	a.println(strings.TrimRight(b.String(), "\n"))
}

// Show prints one record with every locale side by side.
func (a *App) Show(ctx context.Context, id string) error {
	if a.content == nil {
		return errNoEntity
	}
	rec, err := a.content.Get(ctx, id)
	if err != nil {
		return err
	}
	var b strings.Builder
	renderRecord(&b, a.content.Descriptor(), rec)
	a.println(strings.TrimRight(b.String(), "\n"))
	return nil
}

func (a *App) Create(ctx context.Context) error {
	if a.content == nil {
		return errNoEntity
	}
	d := a.content.Descriptor()
	form := models.NewForm(d)
	if err := a.fillForm(form, d, false); err != nil {
		return err
	}
	page, err := a.content.Create(ctx, form, a.view.Query())
	return a.afterMutation("created", page, err)
}

func (a *App) Edit(ctx context.Context, id string) error {
	if a.content == nil {
		return errNoEntity
	}
	d := a.content.Descriptor()
	rec, err := a.content.Get(ctx, id)
	if err != nil {
		return err
	}
	form := models.FormFromRecord(d, *rec)
	if err := a.fillForm(form, d, true); err != nil {
		return err
	}
	page, err := a.content.Update(ctx, id, form, a.view.Query())
	return a.afterMutation("updated", page, err)
}

func (a *App) Delete(ctx context.Context, id string) error {
	if a.content == nil {
		return errNoEntity
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s %s?", a.content.Descriptor().Name, id), a.out)
	if err != nil || !ok {
		return err
	}
	page, err := a.content.Delete(ctx, id, a.view.Query())
	return a.afterMutation("deleted", page, err)
}

// afterMutation applies the refreshed page. A mutation that succeeded but
// whose refresh failed still reports success and shows the load error inline.
func (a *App) afterMutation(verb string, page *models.Page, err error) error {
	var ferr *client.FetchError
	switch {
	case err == nil:
		a.view.Apply(page)
	case errors.As(err, &ferr):
		a.view.Fail(err)
	default:
		return err
	}
	a.println(fmt.Sprintf("%s %s", a.content.Descriptor().Name, verb))
	a.render()
	return nil
}

// Refs loads every reference list and prints a short summary.
func (a *App) Refs(ctx context.Context) error {
	refs, err := a.refs.Load(ctx)
	if err != nil {
		return err
	}
	kinds := make([]string, 0, len(refs))
	for k := range refs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		a.println(fmt.Sprintf("%s (%d)", k, len(refs[k])))
		for _, it := range refs[k] {
			a.println(fmt.Sprintf("  %-8s %s", it.Code, it.Name))
		}
	}
	return nil
}
