package geocode

import (
	"time"

	"backend-tripflow/internal/gazetteer"
)

// SourceTier identifies which stage of the fallback chain produced a result.
type SourceTier string

const (
	TierStaticExact SourceTier = "static-exact"
	TierStaticFuzzy SourceTier = "static-fuzzy"
	TierExternalAPI SourceTier = "external-api"
	TierFallback    SourceTier = "fallback"
)

type Query struct {
	RawAddress string `json:"raw_address"`
}

// Result is the outcome of one resolution. Confidence is fixed by the tier:
// 1.0 exact, 0.6-0.7 fuzzy, provider relevance (default 0.8) external,
// 0.1 fallback.
type Result struct {
	NormalizedAddress string                 `json:"normalized_address"`
	Coordinates       *gazetteer.Coordinates `json:"coordinates"`
	Confidence        float64                `json:"confidence"`
	SourceTier        SourceTier             `json:"source_tier"`
}

// RetryPolicy bounds external geocoding attempts with a fixed interval.
type RetryPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

type Options struct {
	Timeout             time.Duration
	FallbackCoordinates gazetteer.Coordinates
	Retry               RetryPolicy
	// BatchPause is inserted between concurrent groups during ResolveBatch
	// to respect external rate limits.
	BatchPause time.Duration
}

const (
	defaultTimeout    = 4 * time.Second
	defaultBatchPause = 200 * time.Millisecond

	confidenceExact           = 1.0
	confidenceFuzzyFloor      = 0.6
	confidenceFuzzyCeil       = 0.7
	confidenceExternalDefault = 0.8
	confidenceFallback        = 0.1
)

// batchConcurrency is the number of simultaneous resolutions in a batch.
const batchConcurrency = 3
