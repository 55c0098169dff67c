package usecases

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/shared/logger"
)

const catalogFlightKey = "catalog"

// CatalogProvider loads the rule catalog once and shares one evaluator.
// Concurrent first calls collapse into a single load; a failed load is
// not cached.
type CatalogProvider struct {
	source cacfp.Source
	logger logger.Interface

	group     singleflight.Group
	mu        sync.RWMutex
	evaluator *cacfp.Evaluator
}

func NewCatalogProvider(source cacfp.Source, logger logger.Interface) *CatalogProvider {
	return &CatalogProvider{
		source: source,
		logger: logger,
	}
}

func (p *CatalogProvider) Evaluator(ctx context.Context) (*cacfp.Evaluator, error) {
	p.mu.RLock()
	cached := p.evaluator
	p.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	// the load is shared, so one caller giving up must not fail the others
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := p.group.Do(catalogFlightKey, func() (any, error) {
		p.mu.RLock()
		cached := p.evaluator
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		catalog, err := p.source.Load(loadCtx)
		if err != nil {
			p.logger.Errorw("failed to load rule catalog", "error", err)
			return nil, fmt.Errorf("failed to load rule catalog: %w", err)
		}
		if catalog.RuleCount() == 0 {
			p.logger.Warnw("rule catalog is empty, every meal will be treated as not applicable")
		}

		ev := cacfp.NewEvaluator(catalog)
		p.mu.Lock()
		p.evaluator = ev
		p.mu.Unlock()

		p.logger.Infow("rule catalog loaded",
			"age_groups", len(catalog.AgeGroups()),
			"rules", catalog.RuleCount(),
		)
		return ev, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debugw("rule catalog load shared between callers")
	}
	return v.(*cacfp.Evaluator), nil
}

// Invalidate drops the cached catalog, e.g. after reseeding.
func (p *CatalogProvider) Invalidate() {
	p.mu.Lock()
	p.evaluator = nil
	p.mu.Unlock()
}
