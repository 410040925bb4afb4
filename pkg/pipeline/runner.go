package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/cache"
	"github.com/matzehuels/bedjig/pkg/errors"
	"github.com/matzehuels/bedjig/pkg/jig"
	"github.com/matzehuels/bedjig/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RenderTemplate validates p, computes the joint geometry and renders every
// requested format.
func (r *Runner) RenderTemplate(ctx context.Context, p jig.Params, opts Options) (*TemplateResult, error) {
	if err := ValidateFormats(opts.Formats, TemplateFormats); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(TemplateFormats)

	res := &TemplateResult{}

	// The params hash keys both stages; unencodable params skip the cache.
	inputHash, hashErr := cache.HashJSON(p)

	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, KindTemplate)
	start := time.Now()
	var geomKey string
	if hashErr == nil {
		geomKey = r.Keyer.GeometryKey(inputHash)
	}
	res.CacheInfo.ComputeHit = r.load(ctx, "geometry", geomKey, opts.Refresh, &res.Geometry)
	if !res.CacheInfo.ComputeHit {
		res.Geometry = jig.Compute(p)
		r.store(ctx, "geometry", geomKey, res.Geometry, cache.TTLLayout)
	}
	res.Stats.ComputeTime = time.Since(start)
	hooks.OnComputeComplete(ctx, KindTemplate, res.CacheInfo.ComputeHit, res.Stats.ComputeTime, nil)

	r.Logger.Info("computed template geometry",
		"segments", res.Geometry.SegmentCount,
		"fingers", res.Geometry.FingerCount(),
		"cutouts", res.Geometry.CutoutCount(),
		"cached", res.CacheInfo.ComputeHit,
		"duration", res.Stats.ComputeTime)

	hooks.OnRenderStart(ctx, KindTemplate, opts.Formats)
	start = time.Now()
	artifacts, hit, err := r.renderAll(ctx, KindTemplate, inputHash, hashErr == nil, opts, func(format string) ([]byte, error) {
		return RenderTemplateFormat(ctx, res.Geometry, format, opts)
	})
	hooks.OnRenderComplete(ctx, KindTemplate, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.CacheInfo.RenderHit = hit
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered template",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// RenderBed validates cfg, computes the frame layout and renders every
// requested format.
func (r *Runner) RenderBed(ctx context.Context, cfg bed.Config, opts Options) (*BedResult, error) {
	if err := ValidateFormats(opts.Formats, BedFormats); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(BedFormats)

	res := &BedResult{}
	inputHash, hashErr := cache.HashJSON(cfg)

	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, KindBed)
	start := time.Now()
	var layoutKey string
	if hashErr == nil {
		layoutKey = r.Keyer.LayoutKey(inputHash)
	}
	res.CacheInfo.ComputeHit = r.load(ctx, "layout", layoutKey, opts.Refresh, &res.Layout)
	if !res.CacheInfo.ComputeHit {
		res.Layout = bed.Compute(cfg)
		r.store(ctx, "layout", layoutKey, res.Layout, cache.TTLLayout)
	}
	res.Stats.ComputeTime = time.Since(start)
	hooks.OnComputeComplete(ctx, KindBed, res.CacheInfo.ComputeHit, res.Stats.ComputeTime, nil)

	m := res.Layout.Metrics
	r.Logger.Info("computed bed layout",
		"runners", m.RunnerCount,
		"slats", m.SlatCount,
		"cached", res.CacheInfo.ComputeHit,
		"duration", res.Stats.ComputeTime)

	hooks.OnRenderStart(ctx, KindBed, opts.Formats)
	start = time.Now()
	artifacts, hit, err := r.renderAll(ctx, KindBed, inputHash, hashErr == nil, opts, func(format string) ([]byte, error) {
		return RenderBedFormat(cfg, res.Layout, format, opts)
	})
	hooks.OnRenderComplete(ctx, KindBed, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.CacheInfo.RenderHit = hit
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered bed",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// renderAll fetches each format from the cache or renders and stores it.
// hit reports whether every artifact came from the cache.
func (r *Runner) renderAll(ctx context.Context, kind, inputHash string, cacheable bool, opts Options, render func(string) ([]byte, error)) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	cacheHooks := observability.Cache()

	for _, format := range opts.Formats {
		var key string
		if cacheable {
			key = r.Keyer.ArtifactKey(inputHash, opts.artifactKeyOpts(kind, format))
		}
		if key != "" && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				r.Logger.Debug("artifact cache hit", "kind", kind, "format", format)
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := render(format)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, false, errors.Wrap(code, err, "render %s %s", kind, format)
		}
		artifacts[format] = data
		if key != "" {
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "error", err)
			} else {
				cacheHooks.OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, allCached, nil
}

// load decodes a cached JSON value into v. Misses, refreshes and corrupt
// entries all report false.
func (r *Runner) load(ctx context.Context, keyType, key string, refresh bool, v any) bool {
	if key == "" || refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store caches the JSON encoding of v. Values with NaN or Inf cannot be
// encoded and are not cached.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	if key == "" {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Debug("result not cacheable", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
