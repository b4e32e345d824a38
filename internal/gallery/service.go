package gallery

import (
	"context"
	"errors"
	"time"

	"cardsapi/internal/logger"
	"cardsapi/internal/metrics"
	"cardsapi/internal/notion"
)

// Source supplies one page of raw records. *notion.Client implements it.
type Source interface {
	Query(ctx context.Context) (notion.QueryResult, error)
	Probe(ctx context.Context) (int, int, error)
	DatabaseID() string
}

type Service interface {
	Items(ctx context.Context, q Query) (Result, error)
	Probe(ctx context.Context) (int, int, error)
	Fields() Fields
}

type service struct {
	source   Source
	resolver *Resolver
	fields   Fields
}

func NewService(src Source, f Fields) Service {
	return &service{
		source:   src,
		resolver: NewResolver(f),
		fields:   f,
	}
}

func (s *service) Fields() Fields { return s.fields }

// Items fetches a page from the source and resolves it. Upstream errors are
// returned unchanged.
func (s *service) Items(ctx context.Context, q Query) (Result, error) {
	started := time.Now()
	qr, err := s.source.Query(ctx)
	metrics.ObserveUpstream(upstreamStatus(err), started)
	if err != nil {
		return Result{}, err
	}

	b := s.resolver.Resolve(qr.Results, q.Platform)
	metrics.RecordsDropped.WithLabelValues("hidden").Add(float64(b.Hidden))
	metrics.RecordsDropped.WithLabelValues("no_media").Add(float64(b.NoMedia))
	metrics.RecordsDropped.WithLabelValues("platform").Add(float64(b.OtherPlatform))
	metrics.ItemsServed.Observe(float64(len(b.Items)))

	logger.Log.WithFields(logger.Fields{
		"records":  len(qr.Results),
		"items":    len(b.Items),
		"hidden":   b.Hidden,
		"no_media": b.NoMedia,
		"platform": q.Platform,
		"has_more": qr.HasMore,
		"duration": time.Since(started),
	}).Debug("Cards resolved")

	res := Result{
		Items:      b.Items,
		DatabaseID: s.source.DatabaseID(),
		HasMore:    qr.HasMore,
	}
	if q.Debug {
		res.PropertyKeysSeen = []string{}
		if len(qr.Results) > 0 {
			res.PropertyKeysSeen = qr.Results[0].PropertyNames()
		}
	}
	return res, nil
}

func (s *service) Probe(ctx context.Context) (int, int, error) {
	return s.source.Probe(ctx)
}

func upstreamStatus(err error) int {
	if err == nil {
		return 200
	}
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
