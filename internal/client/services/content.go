// Package services contains application services for the admin client.
// ContentService drives create/read/update/delete of one entity against the
// gateway; every successful mutation is followed by a fresh List so callers
// never patch rows in place.
package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	"github.com/dmitrijs2005/memoradmin/internal/logging"
)

// ContentService manages the records of a single entity.
//
// Create, Update and Delete return the page selected by q as re-fetched
// after the mutation. When the mutation succeeds but the re-fetch fails,
// the *client.FetchError is returned with a nil page.
type ContentService interface {
	Descriptor() *models.Descriptor
	List(ctx context.Context, q client.Query) (*models.Page, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	Create(ctx context.Context, form *models.Form, q client.Query) (*models.Page, error)
	Update(ctx context.Context, id string, form *models.Form, q client.Query) (*models.Page, error)
	Delete(ctx context.Context, id string, q client.Query) (*models.Page, error)
}

type contentService struct {
	desc    *models.Descriptor
	gateway client.Gateway
	log     logging.Logger
}

// NewContentService binds a service to one entity.
func NewContentService(d *models.Descriptor, gw client.Gateway, log logging.Logger) ContentService {
	if log == nil {
		log = logging.Nop()
	}
	return &contentService{desc: d, gateway: gw, log: log.With("entity", d.Name)}
}

func (s *contentService) Descriptor() *models.Descriptor { return s.desc }

func (s *contentService) List(ctx context.Context, q client.Query) (*models.Page, error) {
	page, err := s.gateway.List(ctx, s.desc, q)
	if err != nil {
		s.log.Warn(ctx, "list failed", "page", q.Page, "error", err)
		return nil, err
	}
	return hideDeleted(page), nil
}

func (s *contentService) Get(ctx context.Context, id string) (*models.Record, error) {
	return s.gateway.Get(ctx, s.desc, id)
}

func (s *contentService) Create(ctx context.Context, form *models.Form, q client.Query) (*models.Page, error) {
	p, err := s.payload(form)
	if err != nil {
		return nil, err
	}
	if _, err := s.gateway.Create(ctx, s.desc, p); err != nil {
		s.log.Error(ctx, "create failed", "error", err)
		return nil, err
	}
	s.log.Info(ctx, "record created")
	return s.relist(ctx, q)
}

func (s *contentService) Update(ctx context.Context, id string, form *models.Form, q client.Query) (*models.Page, error) {
	p, err := s.payload(form)
	if err != nil {
		return nil, err
	}
	if _, err := s.gateway.Update(ctx, s.desc, id, p); err != nil {
		s.log.Error(ctx, "update failed", "id", id, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "record updated", "id", id)
	return s.relist(ctx, q)
}

func (s *contentService) Delete(ctx context.Context, id string, q client.Query) (*models.Page, error) {
	if err := s.gateway.Delete(ctx, s.desc, id); err != nil {
		s.log.Error(ctx, "delete failed", "id", id, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "record deleted", "id", id)
	return s.relist(ctx, q)
}

// payload validates the form. Any problem is returned as
// *models.ValidationError before the gateway is touched.
func (s *contentService) payload(form *models.Form) (client.Payload, error) {
	rec, err := form.Record(s.desc)
	if err != nil {
		return client.Payload{}, err
	}
	for _, a := range form.Attachments {
		if !slices.Contains(s.desc.Attachments, a.Field) {
			return client.Payload{}, &models.ValidationError{Problems: []models.Problem{{
				Field:   a.Field,
				Message: fmt.Sprintf("%s does not accept attachments", s.desc.Name),
			}}}
		}
	}
	return client.Payload{Record: rec, Attachments: form.Attachments}, nil
}

func (s *contentService) relist(ctx context.Context, q client.Query) (*models.Page, error) {
	page, err := s.gateway.List(ctx, s.desc, q)
	if err != nil {
		s.log.Warn(ctx, "refresh after mutation failed", "error", err)
		return nil, err
	}
	return hideDeleted(page), nil
}

// hideDeleted drops rows carrying isDeleted=true, which soft-delete backends
// may keep returning. Pagination is left as the backend reported it.
func hideDeleted(page *models.Page) *models.Page {
	if page == nil {
		return nil
	}
	page.Items = slices.DeleteFunc(page.Items, func(r models.Record) bool { return r.Deleted() })
	return page
}
