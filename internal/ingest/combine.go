package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/arcgis"
	"github.com/sells-group/featurelayer-cli/internal/fetcher"
	"github.com/sells-group/featurelayer-cli/internal/schema"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

// ErrSourceCountMismatch is returned when source names are given but their
// count differs from the number of layer URLs.
var ErrSourceCountMismatch = eris.New("ingest: source names do not match layer count")

// CombineOptions are shared by every layer of a Combine run.
type CombineOptions struct {
	PageSize    int
	Where       string
	SourceNames []string
	// FailFast aborts the run on the first layer failure instead of
	// recording it and moving on.
	FailFast bool
}

// LayerResult reports what happened to one layer of a run.
type LayerResult struct {
	URL     string
	Source  string
	Rows    int
	Skipped bool
	Err     error
}

// CombineResult is the outcome of a Combine run.
type CombineResult struct {
	RunID  string
	Table  *table.Table
	Layers []LayerResult
}

// Failed returns the layers that did not complete.
func (r *CombineResult) Failed() []LayerResult {
	var out []LayerResult
	for _, l := range r.Layers {
		if l.Err != nil {
			out = append(out, l)
		}
	}
	return out
}

// AllFailed reports whether at least one layer ran and none succeeded.
func (r *CombineResult) AllFailed() bool {
	return len(r.Layers) > 0 && len(r.Failed()) == len(r.Layers)
}

// Combiner runs fetch, materialize and normalize per layer and stacks the
// results.
type Combiner struct {
	pager      *arcgis.Pager
	normalizer *schema.Normalizer
}

// NewCombiner creates a Combiner fetching through f. A nil normalizer uses
// the default synonym table.
func NewCombiner(f fetcher.Fetcher, n *schema.Normalizer, opts ...arcgis.PagerOption) *Combiner {
	if n == nil {
		n = schema.MustNormalizer(nil, false)
	}
	return &Combiner{pager: arcgis.NewPager(f, opts...), normalizer: n}
}

// Ingest fetches one layer and returns its normalized table.
func (c *Combiner) Ingest(ctx context.Context, l arcgis.Layer) (*table.Table, error) {
	features, err := c.pager.FetchAll(ctx, l)
	if err != nil {
		return nil, err
	}
	t, err := Materialize(features, l.Source, l.URL)
	if err != nil {
		return nil, err
	}
	return c.normalizer.Normalize(t), nil
}

// Combine ingests every URL in order and concatenates the non-empty tables by
// column union. Layer descriptors are validated before any request is made.
// When no layer yields rows the result is an empty table on the canonical
// schema.
func (c *Combiner) Combine(ctx context.Context, urls []string, opts CombineOptions) (*CombineResult, error) {
	if len(opts.SourceNames) > 0 && len(opts.SourceNames) != len(urls) {
		return nil, eris.Wrapf(ErrSourceCountMismatch, "%d source names for %d layers", len(opts.SourceNames), len(urls))
	}

	layers, err := buildLayers(urls, opts)
	if err != nil {
		return nil, err
	}

	res := &CombineResult{RunID: uuid.New().String()}
	log := zap.L().With(
		zap.String("component", "ingest.combine"),
		zap.String("run_id", res.RunID),
	)
	start := time.Now()

	var tables []*table.Table
	for i, l := range layers {
		lr := LayerResult{URL: l.URL, Source: l.Label()}

		t, err := c.Ingest(ctx, l)
		if err != nil {
			lr.Err = err
			res.Layers = append(res.Layers, lr)
			log.Error("layer failed",
				zap.Int("layer", i+1),
				zap.String("url", l.URL),
				zap.Error(err),
			)
			if opts.FailFast || ctx.Err() != nil {
				return res, eris.Wrapf(err, "ingest: layer %d (%s)", i+1, l.URL)
			}
			continue
		}

		lr.Rows = t.Len()
		if t.Empty() {
			lr.Skipped = true
			log.Info("layer empty, skipped", zap.Int("layer", i+1), zap.String("url", l.URL))
		} else {
			tables = append(tables, t)
		}
		res.Layers = append(res.Layers, lr)
	}

	if len(tables) == 0 {
		res.Table = table.New(schema.Fields...)
	} else {
		res.Table = table.Concat(tables...)
	}

	log.Info("combine complete",
		zap.Int("rows", res.Table.Len()),
		zap.Int("layers_combined", len(tables)),
		zap.Int("layers_total", len(layers)),
		zap.Int("layers_failed", len(res.Failed())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func buildLayers(urls []string, opts CombineOptions) ([]arcgis.Layer, error) {
	layers := make([]arcgis.Layer, 0, len(urls))
	for i, u := range urls {
		lopts := []arcgis.LayerOption{arcgis.WithWhere(opts.Where)}
		if opts.PageSize != 0 {
			lopts = append(lopts, arcgis.WithPageSize(opts.PageSize))
		}
		if len(opts.SourceNames) > 0 {
			lopts = append(lopts, arcgis.WithSource(opts.SourceNames[i]))
		}
		l, err := arcgis.NewLayer(u, lopts...)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: layer %d", i+1)
		}
		layers = append(layers, l)
	}
	return layers, nil
}
