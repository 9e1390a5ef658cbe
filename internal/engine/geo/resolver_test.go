package geo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometer/ecometer/internal/geocode"
	"github.com/ecometer/ecometer/internal/refdata"
)

// testGazetteer covers a London destination plus two synthetic points at
// controlled distances from the Paris hub (48.86, 2.35): one ~1000 km due
// south and one ~2600 km away.
func testGazetteer() geocode.Geocoder {
	return geocode.NewStaticGazetteer(map[string]geocode.Coord{
		"SW1A 1AA": {Lat: 51.501, Lon: -0.142},
		"TEST 1KM": {Lat: 39.86, Lon: 2.35},
		"TEST 2KM": {Lat: 25.48, Lon: 2.35},
	})
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)
	return NewResolver(ds, testGazetteer())
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][2]geocode.Coord{
		{{Lat: 51.501, Lon: -0.142}, {Lat: 48.86, Lon: 2.35}},
		{{Lat: 23.13, Lon: 113.26}, {Lat: 51.501, Lon: -0.142}},
		{{Lat: -33.87, Lon: 151.21}, {Lat: 40.71, Lon: -74.01}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Haversine(p[0], p[1]), Haversine(p[1], p[0]), 1e-9)
	}
}

func TestHaversineKnownDistances(t *testing.T) {
	london := geocode.Coord{Lat: 51.501, Lon: -0.142}
	paris := geocode.Coord{Lat: 48.86, Lon: 2.35}
	assert.InDelta(t, 344, Haversine(london, paris), 10)

	// Identical points are zero distance.
	assert.InDelta(t, 0, Haversine(paris, paris), 1e-9)
}

func TestResolveModeSelection(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name     string
		origin   string
		postcode string
		wantMode Mode
	}{
		// France is in the water-crossing set: Paris->London (~340 km)
		// stays under the 500 km truck cutoff.
		{name: "france short haul is truck", origin: "france", postcode: "SW1A 1AA", wantMode: ModeTruck},
		// ~1000 km from the Paris hub: ship under the water-crossing
		// table where the default table would still say truck.
		{name: "france medium haul is ship", origin: "france", postcode: "TEST 1KM", wantMode: ModeShip},
		// ~2600 km: still ship under the water-crossing table.
		{name: "france long haul is ship", origin: "france", postcode: "TEST 2KM", wantMode: ModeShip},
		// China->London is far beyond the 6000 km ship cutoff.
		{name: "china to london is air", origin: "china", postcode: "SW1A 1AA", wantMode: ModeAir},
		// The UK hub to a UK postcode is a domestic truck run.
		{name: "domestic is truck", origin: "united kingdom", postcode: "SW1A 1AA", wantMode: ModeTruck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := r.Resolve(context.Background(), tt.origin, tt.postcode, "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, plan.Mode)
			assert.True(t, plan.OriginKnown)
			assert.Equal(t, plan.EmissionFactor, mustFactor(t, plan.Mode))
		})
	}
}

func mustFactor(t *testing.T, m Mode) float64 {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)
	f, ok := ds.Transport.EmissionFactors[m.String()]
	require.True(t, ok)
	return f
}

func TestResolveWaterCrossingChangesOutcome(t *testing.T) {
	r := newTestResolver(t)

	// Same ~1000 km distance; only the origin category differs. A
	// non-water-crossing origin at that distance trucks it.
	ship, err := r.Resolve(context.Background(), "france", "TEST 1KM", "")
	require.NoError(t, err)
	assert.Equal(t, ModeShip, ship.Mode)

	// Construct the comparison from a non-listed origin placed at the
	// same hub coordinate by overriding the dataset.
	ds, err := refdata.Load()
	require.NoError(t, err)
	ds.Hubs["atlantis"] = ds.Hubs["france"]
	landlocked := NewResolver(ds, testGazetteer())

	truck, err := landlocked.Resolve(context.Background(), "atlantis", "TEST 1KM", "")
	require.NoError(t, err)
	assert.Equal(t, ModeTruck, truck.Mode)
	assert.InDelta(t, ship.DistanceKm, truck.DistanceKm, 1e-9)
}

func TestResolveUnknownOriginDefaultsToHub(t *testing.T) {
	r := newTestResolver(t)

	plan, err := r.Resolve(context.Background(), "narnia", "SW1A 1AA", "")
	require.NoError(t, err)
	assert.False(t, plan.OriginKnown)

	ds, err := refdata.Load()
	require.NoError(t, err)
	hub := ds.Hubs[ds.DefaultHub]
	assert.InDelta(t, hub.Lat, plan.Origin.Lat, 1e-9)
	assert.InDelta(t, hub.Lon, plan.Origin.Lon, 1e-9)
}

func TestResolveInvalidLocation(t *testing.T) {
	r := newTestResolver(t)

	tests := []string{"ZZ99 9ZZ", "", "not a postcode"}
	for _, postcode := range tests {
		_, err := r.Resolve(context.Background(), "france", postcode, "")
		assert.ErrorIs(t, err, ErrInvalidLocation, "postcode %q", postcode)
	}
}

func TestResolveModeOverride(t *testing.T) {
	r := newTestResolver(t)

	computed, err := r.Resolve(context.Background(), "china", "SW1A 1AA", "")
	require.NoError(t, err)
	require.Equal(t, ModeAir, computed.Mode)

	overridden, err := r.Resolve(context.Background(), "china", "SW1A 1AA", "ship")
	require.NoError(t, err)
	assert.Equal(t, ModeShip, overridden.Mode)
	assert.True(t, overridden.Overridden)
	// The override swaps mode and factor but not the computed distance.
	assert.InDelta(t, computed.DistanceKm, overridden.DistanceKm, 1e-9)
	assert.Equal(t, mustFactor(t, ModeShip), overridden.EmissionFactor)

	// Unrecognized overrides are ignored, not applied.
	ignored, err := r.Resolve(context.Background(), "china", "SW1A 1AA", "rocket")
	require.NoError(t, err)
	assert.Equal(t, ModeAir, ignored.Mode)
	assert.False(t, ignored.Overridden)
}

func TestResolveDeterminism(t *testing.T) {
	r := newTestResolver(t)

	first, err := r.Resolve(context.Background(), "china", "SW1A 1AA", "")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(context.Background(), "china", "SW1A 1AA", "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveDistanceRounding(t *testing.T) {
	r := newTestResolver(t)

	plan, err := r.Resolve(context.Background(), "france", "SW1A 1AA", "")
	require.NoError(t, err)
	// One decimal place.
	assert.InDelta(t, plan.DistanceKm, math.Round(plan.DistanceKm*10)/10, 1e-9)
}
