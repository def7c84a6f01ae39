package arcgis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/fetcher"
)

// PageEvent describes one completed page request.
type PageEvent struct {
	Layer  Layer
	Page   int // 1-based
	Offset int
	Count  int // features in this page
	Total  int // features accumulated so far
	// Capped is set when the server hit its transfer limit with fewer
	// features than requested. The next offset still advances by the full
	// page size, so the difference is never fetched.
	Capped bool
}

// Pager downloads every feature of a layer using offset pagination.
type Pager struct {
	fetcher fetcher.Fetcher
	onPage  func(PageEvent)
}

// PagerOption customizes a Pager.
type PagerOption func(*Pager)

// WithPageHook registers fn to be called after every non-empty page.
func WithPageHook(fn func(PageEvent)) PagerOption {
	return func(p *Pager) { p.onPage = fn }
}

// NewPager creates a Pager that issues requests through f.
func NewPager(f fetcher.Fetcher, opts ...PagerOption) *Pager {
	p := &Pager{fetcher: f}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchAll requests pages of l.PageSize features starting at offset 0 until
// the server returns an empty page, and returns the features of all pages in
// request order. Any failed page aborts the fetch; no partial result is
// returned.
func (p *Pager) FetchAll(ctx context.Context, l Layer) ([]RawFeature, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	log := zap.L().With(
		zap.String("component", "arcgis.pager"),
		zap.String("url", l.URL),
	)

	var features []RawFeature
	offset := 0
	for page := 1; ; page++ {
		pageURL, err := l.QueryURL(offset)
		if err != nil {
			return nil, err
		}

		resp, err := fetcher.FetchJSON[FeaturePage](ctx, p.fetcher, pageURL)
		if err != nil {
			return nil, eris.Wrapf(err, "arcgis: fetch page %d of %s", page, l.URL)
		}
		if resp.Error != nil {
			return nil, eris.Errorf("arcgis: query error %d on page %d of %s: %s",
				resp.Error.Code, page, l.URL, resp.Error.Message)
		}

		if len(resp.Features) == 0 {
			break
		}

		features = append(features, resp.Features...)
		capped := resp.TransferLimitExceeded() && len(resp.Features) < l.PageSize
		switch {
		case capped:
			log.Warn("server capped page below page size, features will be skipped",
				zap.Int("page", page),
				zap.Int("offset", offset),
				zap.Int("page_features", len(resp.Features)),
				zap.Int("page_size", l.PageSize),
			)
		case resp.TransferLimitExceeded():
			log.Debug("server reports transfer limit exceeded", zap.Int("page", page))
		}

		log.Info("downloaded features",
			zap.Int("page", page),
			zap.Int("page_features", len(resp.Features)),
			zap.Int("total", len(features)),
		)
		if p.onPage != nil {
			p.onPage(PageEvent{
				Layer:  l,
				Page:   page,
				Offset: offset,
				Count:  len(resp.Features),
				Total:  len(features),
				Capped: capped,
			})
		}

		offset += l.PageSize
	}

	log.Info("finished downloading", zap.Int("features", len(features)))
	return features, nil
}
