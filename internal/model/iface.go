package model

import "context"

// Fetcher issues the three dashboard data requests.
type Fetcher interface {
	Density(ctx context.Context, q DensityQuery) (Series, error)
	Logs(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Metric(ctx context.Context, q MetricQuery) (Series, error)
}

// CatalogReader lists what the backend can chart.
type CatalogReader interface {
	Health(ctx context.Context) (Health, error)
	ListViews(ctx context.Context) ([]View, error)
	ListMetrics(ctx context.Context) ([]string, error)
}

// ViewAdmin creates and removes views.
type ViewAdmin interface {
	CreateView(ctx context.Context, def ViewDefinition) error
	DeleteView(ctx context.Context, name string) error
}

// Backend is the full client contract against a log-search server.
type Backend interface {
	Fetcher
	CatalogReader
	ViewAdmin
}
