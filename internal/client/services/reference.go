package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"golang.org/x/sync/errgroup"
)

// ReferenceService loads auxiliary lookup data.
type ReferenceService struct {
	gateway client.Gateway
}

func NewReferenceService(gw client.Gateway) *ReferenceService {
	return &ReferenceService{gateway: gw}
}

// Load fetches every reference kind concurrently. The first failure cancels
// the rest and is returned.
func (s *ReferenceService) Load(ctx context.Context) (map[string][]client.ReferenceItem, error) {
	var (
		mu  sync.Mutex
		out = make(map[string][]client.ReferenceItem)
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range client.ReferenceKinds() {
		g.Go(func() error {
			items, err := s.gateway.Reference(ctx, kind)
			if err != nil {
				return err
			}
			mu.Lock()
			out[kind] = items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
