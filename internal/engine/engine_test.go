package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometer/ecometer/internal/engine/consensus"
	"github.com/ecometer/ecometer/internal/engine/geo"
	"github.com/ecometer/ecometer/internal/engine/material"
	"github.com/ecometer/ecometer/internal/geocode"
	"github.com/ecometer/ecometer/internal/refdata"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)
	gaz := geocode.NewStaticGazetteer(map[string]geocode.Coord{
		"SW1A 1AA": {Lat: 51.501, Lon: -0.142},
		"M1 4BT":   {Lat: 53.478, Lon: -2.243},
	})
	return New(ds, gaz)
}

func TestScorePipeline(t *testing.T) {
	e := newTestEngine(t)

	est, err := e.Score(context.Background(), Request{
		Product: ProductRecord{
			Title:  "Apple iPhone 14 Pro",
			Origin: "china",
		},
		Postcode: "SW1A 1AA",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, est.RequestID)
	assert.Equal(t, "Apple iPhone 14 Pro", est.Title)

	// Category tier resolves the phone makeup.
	assert.Equal(t, material.TierCategory, est.Material.Tier)
	assert.Equal(t, "Glass", est.Material.Primary)

	// China to London is an air route.
	assert.Equal(t, geo.ModeAir, est.Route.Mode)
	assert.Greater(t, est.Route.DistanceKm, 6000.0)

	// No weight supplied: the default applies and is flagged.
	assert.True(t, est.WeightAssumed)
	assert.InDelta(t, DefaultWeightKg, est.WeightKg, 1e-9)

	assert.NotEmpty(t, est.Consensus.Grade)
	assert.True(t, est.Consensus.Agreement)
}

func TestScoreKnownComposition(t *testing.T) {
	e := newTestEngine(t)

	est, err := e.Score(context.Background(), Request{
		Product: ProductRecord{
			Title:    "Slim jeans",
			WeightKg: 0.6,
			Origin:   "bangladesh",
			Composition: []material.CompositionEntry{
				{Material: "cotton", Fraction: 0.59},
				{Material: "polyester", Fraction: 0.41},
			},
		},
		Postcode: "M1 4BT",
	})
	require.NoError(t, err)

	assert.Equal(t, material.TierKnownFractions, est.Material.Tier)
	assert.Equal(t, "Cotton", est.Material.Primary)
	assert.False(t, est.WeightAssumed)
	assert.InDelta(t, 0.6, est.WeightKg, 1e-9)
	assert.InDelta(t,
		est.Consensus.Explanation.MaterialEmissionKg+est.Consensus.Explanation.TransportEmissionKg,
		est.Consensus.RuleCO2Kg, 1e-9)
}

func TestScoreInvalidPostcode(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Score(context.Background(), Request{
		Product:  ProductRecord{Title: "Oak desk"},
		Postcode: "ZZ99 9ZZ",
	})
	assert.ErrorIs(t, err, geo.ErrInvalidLocation)
}

func TestScoreWithBallots(t *testing.T) {
	e := newTestEngine(t)

	est, err := e.Score(context.Background(), Request{
		Product:  ProductRecord{Title: "Oak desk", Origin: "france", WeightKg: 20},
		Postcode: "SW1A 1AA",
		Ballots: []consensus.ModelBallot{
			{Model: "gbr-v2", Grade: "G", Confidence: 0.95},
		},
	})
	require.NoError(t, err)
	assert.Len(t, est.Consensus.Ballots, 1)
}

func TestScoreBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	e := newTestEngine(t)

	reqs := []Request{
		{Product: ProductRecord{Title: "Ceramic mug"}, Postcode: "SW1A 1AA"},
		{Product: ProductRecord{Title: "Wool jumper"}, Postcode: "ZZ99 9ZZ"},
		{Product: ProductRecord{Title: "Steel water bottle"}, Postcode: "M1 4BT"},
	}

	items, err := e.ScoreBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, 0, items[0].Index)
	require.NoError(t, items[0].Err)
	assert.Equal(t, "Ceramic mug", items[0].Estimate.Title)

	assert.ErrorIs(t, items[1].Err, geo.ErrInvalidLocation)
	assert.Nil(t, items[1].Estimate)

	require.NoError(t, items[2].Err)
	assert.Equal(t, "Steel water bottle", items[2].Estimate.Title)
}

func TestScoreBatchCancellation(t *testing.T) {
	e := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := make([]Request, 50)
	for i := range reqs {
		reqs[i] = Request{Product: ProductRecord{Title: "Ceramic mug"}, Postcode: "SW1A 1AA"}
	}

	_, err := e.ScoreBatch(ctx, reqs, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreConcurrentRequests(t *testing.T) {
	e := newTestEngine(t)

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := e.Score(context.Background(), Request{
				Product:  ProductRecord{Title: "Bamboo cutting board", Origin: "china"},
				Postcode: "SW1A 1AA",
			})
			done <- err
		}()
	}
	for i := 0; i < n; i++ {
		assert.NoError(t, <-done)
	}
}
