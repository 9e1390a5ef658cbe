package geo

import (
	"context"
	"fmt"
	"math"

	"github.com/ecometer/ecometer/internal/geocode"
	"github.com/ecometer/ecometer/internal/logging"
	"github.com/ecometer/ecometer/internal/refdata"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Resolver computes route plans from the reference dataset's hub and
// transport tables plus an injected gazetteer. Safe for concurrent use.
type Resolver struct {
	ds       *refdata.Dataset
	geocoder geocode.Geocoder
}

// NewResolver builds a resolver over ds using geocoder for destination
// lookups.
func NewResolver(ds *refdata.Dataset, geocoder geocode.Geocoder) *Resolver {
	return &Resolver{ds: ds, geocoder: geocoder}
}

// Resolve builds the route plan for originID to the destination postcode.
// An empty modeOverride computes the mode from distance and origin
// category; a valid override replaces the mode and emission factor without
// touching the computed distance.
//
// Unknown origins fall back to the default hub with OriginKnown=false. An
// ungeocodable postcode returns ErrInvalidLocation; infrastructure failures
// from the gazetteer propagate as-is.
func (r *Resolver) Resolve(ctx context.Context, originID, postcode, modeOverride string) (RoutePlan, error) {
	log := logging.FromContext(ctx)

	dest, found, err := r.geocoder.Geocode(postcode)
	if err != nil {
		return RoutePlan{}, fmt.Errorf("geocode %q: %w", postcode, err)
	}
	if !found {
		return RoutePlan{}, fmt.Errorf("%w: %q", ErrInvalidLocation, postcode)
	}

	hub, originKnown := r.ds.HubFor(originID)
	origin := geocode.Coord{Lat: hub.Lat, Lon: hub.Lon}

	distance := roundToTenth(Haversine(origin, dest))

	mode := r.selectMode(originID, distance)
	overridden := false
	if modeOverride != "" {
		if m, ok := ParseMode(modeOverride); ok {
			mode = m
			overridden = true
		} else {
			log.Warn().
				Str("component", "geo").
				Str("mode_override", modeOverride).
				Msg("ignoring unrecognized mode override")
		}
	}

	log.Debug().
		Str("component", "geo").
		Str("origin", originID).
		Bool("origin_known", originKnown).
		Float64("distance_km", distance).
		Str("mode", mode.String()).
		Msg("route resolved")

	return RoutePlan{
		Origin:         origin,
		Destination:    dest,
		DistanceKm:     distance,
		Mode:           mode,
		EmissionFactor: r.ds.Transport.EmissionFactors[mode.String()],
		OriginKnown:    originKnown,
		Overridden:     overridden,
	}, nil
}

// selectMode applies the distance thresholds, using the tighter
// water-crossing table for origins that cannot reach the market overland.
// A zero distance falls into the smallest bucket (truck).
func (r *Resolver) selectMode(originID string, distanceKm float64) Mode {
	thresholds := r.ds.Transport.Default
	if r.ds.RequiresWaterCrossing(originID) {
		thresholds = r.ds.Transport.WaterCrossing
	}

	switch {
	case distanceKm < thresholds.TruckMaxKm:
		return ModeTruck
	case distanceKm < thresholds.ShipMaxKm:
		return ModeShip
	default:
		return ModeAir
	}
}

// Haversine returns the great-circle distance in km between two coordinates.
func Haversine(a, b geocode.Coord) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
