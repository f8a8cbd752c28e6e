package client

import (
	"context"

	"github.com/dmitrijs2005/memoradmin/internal/client/models"
)

// Filter narrows a list query to records whose Field matches Value.
type Filter struct {
	Field string
	Value string
}

// Query selects one page of an entity collection.
type Query struct {
	Page     int
	PageSize int
	Filters  []Filter
}

// Payload is the body of a create or update call. Attachments switch the
// request to multipart/form-data.
type Payload struct {
	Record      models.Record
	Attachments []models.Attachment
}

// Gateway is the contract of the remote content backend.
type Gateway interface {
	List(ctx context.Context, d *models.Descriptor, q Query) (*models.Page, error)
	Get(ctx context.Context, d *models.Descriptor, id string) (*models.Record, error)
	Create(ctx context.Context, d *models.Descriptor, p Payload) (*models.Record, error)
	Update(ctx context.Context, d *models.Descriptor, id string, p Payload) (*models.Record, error)
	Delete(ctx context.Context, d *models.Descriptor, id string) error
	Reference(ctx context.Context, kind string) ([]ReferenceItem, error)
}

// TokenSource yields the bearer token to attach to a request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ReferenceItem is one row of auxiliary reference data (countries, colors,
// addons).
type ReferenceItem struct {
	ID   string `json:"_id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
