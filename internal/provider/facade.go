package provider

import (
	"context"
	"errors"
	"fmt"
)

var _ MetalPriceSource = (*SourceFacade)(nil)

// SourceFacade is an abstraction that calls sources sequentially.
type SourceFacade struct {
	sources []MetalPriceSource
}

// NewSourceFacade creates a new SourceFacade with the given list of sources.
func NewSourceFacade(sources ...MetalPriceSource) *SourceFacade {
	return &SourceFacade{
		sources: sources,
	}
}

// Name returns "facade"; the quote returned by FetchRates carries the name of the source that answered.
func (p *SourceFacade) Name() string { return "facade" }

// FetchRates calls sources sequentially until one succeeds.
func (p *SourceFacade) FetchRates(ctx context.Context) (MetalQuote, error) {
	var errs []error
	for _, src := range p.sources {
		q, err := src.FetchRates(ctx)
		if err == nil {
			return q, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}

	return MetalQuote{}, fmt.Errorf("all sources failed: %w", errors.Join(errs...))
}
