// Package catalog loads the views and metric names a backend offers.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/logsearch/internal/model"
)

// Catalog is what the dashboard can chart.
type Catalog struct {
	Views   []model.View
	Metrics []string
}

// Load fetches views and metric names concurrently. Either failure fails
// the whole load.
func Load(ctx context.Context, r model.CatalogReader) (Catalog, error) {
	var cat Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		views, err := r.ListViews(gctx)
		if err != nil {
			return fmt.Errorf("catalog: list views: %w", err)
		}
		cat.Views = views
		return nil
	})
	g.Go(func() error {
		metrics, err := r.ListMetrics(gctx)
		if err != nil {
			return fmt.Errorf("catalog: list metrics: %w", err)
		}
		cat.Metrics = metrics
		return nil
	})

	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// View looks a view up by name.
func (c Catalog) View(name string) (model.View, bool) {
	for _, v := range c.Views {
		if v.Name == name {
			return v, true
		}
	}
	return model.View{}, false
}

// DefaultView picks preferred when it exists, then the "logs" view, then
// the first view. With no views it returns an empty view named "logs".
func (c Catalog) DefaultView(preferred string) model.View {
	if preferred != "" {
		if v, ok := c.View(preferred); ok {
			return v
		}
	}
	if v, ok := c.View(model.DefaultViewName); ok {
		return v
	}
	if len(c.Views) > 0 {
		return c.Views[0]
	}
	return model.View{Name: model.DefaultViewName}
}

// Index returns the position of the named view, or -1.
func (c Catalog) Index(name string) int {
	for i, v := range c.Views {
		if v.Name == name {
			return i
		}
	}
	return -1
}
