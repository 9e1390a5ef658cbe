package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ecometer/ecometer/internal/engine/consensus"
	"github.com/ecometer/ecometer/internal/engine/geo"
	"github.com/ecometer/ecometer/internal/engine/material"
	"github.com/ecometer/ecometer/internal/geocode"
	"github.com/ecometer/ecometer/internal/logging"
	"github.com/ecometer/ecometer/internal/refdata"
)

// Engine wires the three stages over a shared reference dataset. It holds
// no per-request state and is safe for concurrent use.
type Engine struct {
	ds         *refdata.Dataset
	classifier *material.Classifier
	resolver   *geo.Resolver
	estimator  *consensus.Estimator
}

// New builds an engine over ds, using geocoder for destination lookups.
func New(ds *refdata.Dataset, geocoder geocode.Geocoder) *Engine {
	return &Engine{
		ds:         ds,
		classifier: material.NewClassifier(ds),
		resolver:   geo.NewResolver(ds, geocoder),
		estimator:  consensus.NewEstimator(ds),
	}
}

// Estimator exposes the consensus estimator, mainly for rendering the band
// ladder alongside results.
func (e *Engine) Estimator() *consensus.Estimator { return e.estimator }

// Score runs the full pipeline for one request. Classification and route
// resolution have no data dependency on each other, so they run
// concurrently; only the route leg can fail (geo.ErrInvalidLocation for an
// ungeocodable postcode, or a gazetteer infrastructure error).
func (e *Engine) Score(ctx context.Context, req Request) (*Estimate, error) {
	requestID := logging.NewTraceID()
	ctx = logging.ContextWithTraceID(ctx, requestID)

	log := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("request_id", requestID).
		Logger()
	ctx = log.WithContext(ctx)
	start := time.Now()

	log.Debug().
		Str("operation", "score").
		Str("title", req.Product.Title).
		Str("postcode", req.Postcode).
		Msg("starting estimation")

	var profile material.Profile
	var route geo.RoutePlan

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile = e.classifier.Classify(gctx, material.Input{
			Hint:          req.Product.Title,
			MaterialLabel: req.Product.MaterialLabel,
			Composition:   req.Product.Composition,
		})
		return nil
	})
	g.Go(func() error {
		var err error
		route, err = e.resolver.Resolve(gctx, req.Product.Origin, req.Postcode, req.ModeOverride)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Debug().
			Str("operation", "score").
			Err(err).
			Msg("estimation failed")
		return nil, err
	}

	weight := req.Product.WeightKg
	assumed := false
	if weight <= 0 {
		weight = DefaultWeightKg
		assumed = true
	}

	result := e.estimator.Estimate(ctx, profile, route, weight, req.Ballots)

	log.Info().
		Str("operation", "score").
		Str("grade", string(result.Grade)).
		Float64("co2_kg", result.RuleCO2Kg).
		Float64("confidence", result.Confidence).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("estimation complete")

	return &Estimate{
		RequestID:     requestID,
		Title:         req.Product.Title,
		WeightKg:      weight,
		WeightAssumed: assumed,
		Material:      profile,
		Route:         route,
		Consensus:     result,
	}, nil
}
