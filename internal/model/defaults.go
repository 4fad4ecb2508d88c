package model

import "time"

// Shared defaults used by the CLI and the dashboard.
const (
	DefaultDensityBuckets = 120
	CompactDensityBuckets = 80
	DefaultServerURL      = "http://127.0.0.1:8000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultViewName       = "logs"
	DefaultLogPageSize    = 40
)

// DefaultStart is the fixed historical instant every time range starts from.
var DefaultStart = time.Date(2022, time.October, 5, 14, 48, 0, 0, time.UTC)
