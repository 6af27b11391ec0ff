package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"backend-tripflow/internal/gazetteer"
)

// Resolver turns free-text addresses into coordinates through a tiered
// fallback chain. It never returns an error: a query that misses every tier
// still yields a result at the fallback coordinates with low confidence.
type Resolver struct {
	gaz      *gazetteer.Gazetteer
	external Client
}

func NewResolver(gaz *gazetteer.Gazetteer, external Client) *Resolver {
	return &Resolver{gaz: gaz, external: external}
}

// Resolve runs the fallback chain for a single query:
// exact gazetteer → fuzzy gazetteer → external call → hard fallback.
func (r *Resolver) Resolve(ctx context.Context, query Query, opts Options) Result {
	address := strings.TrimSpace(query.RawAddress)

	if address != "" {
		if c, ok := r.gaz.Lookup(address); ok {
			return Result{
				NormalizedAddress: address,
				Coordinates:       &c,
				Confidence:        confidenceExact,
				SourceTier:        TierStaticExact,
			}
		}

		if key, c, ok := r.gaz.FuzzyLookup(address); ok {
			return Result{
				NormalizedAddress: key,
				Coordinates:       &c,
				Confidence:        fuzzyConfidence(address, key),
				SourceTier:        TierStaticFuzzy,
			}
		}

		if c, relevance, ok := r.resolveExternal(ctx, address, opts); ok {
			confidence := relevance
			if confidence <= 0 || confidence > 1 {
				confidence = confidenceExternalDefault
			}
			return Result{
				NormalizedAddress: address,
				Coordinates:       &c,
				Confidence:        confidence,
				SourceTier:        TierExternalAPI,
			}
		}
	}

	fallback := opts.FallbackCoordinates
	return Result{
		NormalizedAddress: address,
		Coordinates:       &fallback,
		Confidence:        confidenceFallback,
		SourceTier:        TierFallback,
	}
}

// ResolveBatch resolves queries with bounded concurrency, preserving input
// order. Results land in a pre-sized slice indexed by request position, so
// completion order never matters. A short pause between groups keeps the
// external provider's rate limits honest. Identical addresses are resolved
// once per batch.
func (r *Resolver) ResolveBatch(ctx context.Context, queries []Query, opts Options) []Result {
	results := make([]Result, len(queries))
	if len(queries) == 0 {
		return results
	}

	pause := opts.BatchPause
	if pause == 0 {
		pause = defaultBatchPause
	}

	cache := map[string]Result{}
	var cacheMu sync.Mutex

	for start := 0; start < len(queries); start += batchConcurrency {
		end := start + batchConcurrency
		if end > len(queries) {
			end = len(queries)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				key := strings.TrimSpace(queries[i].RawAddress)
				cacheMu.Lock()
				cached, hit := cache[key]
				cacheMu.Unlock()
				if hit {
					results[i] = cached
					return
				}

				res := r.Resolve(ctx, queries[i], opts)
				results[i] = res

				cacheMu.Lock()
				cache[key] = res
				cacheMu.Unlock()
			}(i)
		}
		wg.Wait()

		if end < len(queries) {
			time.Sleep(pause)
		}
	}

	return results
}

// resolveExternal wraps the external call with the per-request timeout and
// the deterministic retry policy. Timeouts and errors are misses, never
// propagated.
func (r *Resolver) resolveExternal(ctx context.Context, address string, opts Options) (gazetteer.Coordinates, float64, bool) {
	if r.external == nil {
		return gazetteer.Coordinates{}, 0, false
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := opts.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && opts.Retry.Interval > 0 {
			time.Sleep(opts.Retry.Interval)
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		coords, relevance, ok, err := r.external.Geocode(callCtx, address)
		cancel()

		if err == nil {
			if !ok {
				// clean miss, retrying will not help
				return gazetteer.Coordinates{}, 0, false
			}
			return coords, relevance, true
		}
	}
	return gazetteer.Coordinates{}, 0, false
}

// fuzzyConfidence scales within the 0.6-0.7 band by how much of the longer
// string the shorter one covers.
func fuzzyConfidence(query, key string) float64 {
	qLen := len([]rune(query))
	kLen := len([]rune(key))
	if qLen == 0 || kLen == 0 {
		return confidenceFuzzyFloor
	}
	shorter, longer := qLen, kLen
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	ratio := float64(shorter) / float64(longer)
	return confidenceFuzzyFloor + (confidenceFuzzyCeil-confidenceFuzzyFloor)*ratio
}
