package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
)

// memGateway is an in-memory client.Gateway with real paging semantics.
type memGateway struct {
	mu      sync.Mutex
	records []models.Record
	calls   []string
	nextID  int

	listErr   error
	mutateErr error
	refErr    map[string]error
}

func newMemGateway(n int) *memGateway {
	g := &memGateway{}
	for i := 0; i < n; i++ {
		g.records = append(g.records, models.Record{ID: fmt.Sprintf("r%02d", i+1)})
	}
	g.nextID = n
	return g
}

func (g *memGateway) record(call string) {
	g.calls = append(g.calls, call)
}

func (g *memGateway) List(ctx context.Context, d *models.Descriptor, q client.Query) (*models.Page, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("list")
	if g.listErr != nil {
		return nil, g.listErr
	}

	total := len(g.records)
	pages := (total + q.PageSize - 1) / q.PageSize
	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, total)
	var items []models.Record
	if start < total {
		items = append(items, g.records[start:end]...)
	}
	return &models.Page{
		Items:      items,
		Pagination: models.Pagination{CurrentPage: q.Page, TotalPages: pages, TotalItems: total},
	}, nil
}

func (g *memGateway) Get(ctx context.Context, d *models.Descriptor, id string) (*models.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("get")
	for i := range g.records {
		if g.records[i].ID == id {
			rec := g.records[i]
			return &rec, nil
		}
	}
	return nil, &client.FetchError{Entity: d.Name, Status: 404, Err: client.ErrNotFound}
}

func (g *memGateway) Create(ctx context.Context, d *models.Descriptor, p client.Payload) (*models.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("create")
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	g.nextID++
	rec := p.Record
	rec.ID = fmt.Sprintf("r%02d", g.nextID)
	g.records = append(g.records, rec)
	return &rec, nil
}

func (g *memGateway) Update(ctx context.Context, d *models.Descriptor, id string, p client.Payload) (*models.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("update")
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	for i := range g.records {
		if g.records[i].ID == id {
			rec := p.Record
			rec.ID = id
			g.records[i] = rec
			return &rec, nil
		}
	}
	return nil, &client.MutationError{Op: "update", Entity: d.Name, Status: 404, Err: client.ErrNotFound}
}

func (g *memGateway) Delete(ctx context.Context, d *models.Descriptor, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("delete")
	if g.mutateErr != nil {
		return g.mutateErr
	}
	for i := range g.records {
		if g.records[i].ID != id {
			continue
		}
		if d.Delete == models.DeleteSoft {
			// soft-delete backends keep the row and flag it
			if g.records[i].Attributes == nil {
				g.records[i].Attributes = map[string]json.RawMessage{}
			}
			g.records[i].Attributes["isDeleted"] = json.RawMessage("true")
			return nil
		}
		g.records = append(g.records[:i], g.records[i+1:]...)
		return nil
	}
	return &client.MutationError{Op: "delete", Entity: d.Name, Status: 404, Err: client.ErrNotFound}
}

func (g *memGateway) Reference(ctx context.Context, kind string) ([]client.ReferenceItem, error) {
	g.mu.Lock()
	g.record("ref:" + kind)
	err := g.refErr[kind]
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []client.ReferenceItem{{ID: kind + "-1", Code: "X", Name: kind}}, nil
}
