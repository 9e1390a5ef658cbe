// Package geo converts an origin identifier and a destination postcode into
// a route plan: a great-circle distance, a transport mode, and the mode's
// emission factor. Mode selection is a pure function of distance and origin
// category, so identical inputs always produce identical plans.
package geo

import (
	"fmt"

	"github.com/ecometer/ecometer/internal/geocode"
)

// Mode is a discrete transport mode.
type Mode int

const (
	// ModeTruck is road freight, used for short hauls.
	ModeTruck Mode = iota

	// ModeShip is sea freight, used for medium and long hauls from
	// origins with port access.
	ModeShip

	// ModeAir is air freight, used for the longest hauls.
	ModeAir
)

// String returns the lowercase mode name used in the dataset's emission
// factor table.
func (m Mode) String() string {
	switch m {
	case ModeTruck:
		return "truck"
	case ModeShip:
		return "ship"
	case ModeAir:
		return "air"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a Mode. Used for caller-supplied mode
// overrides; unrecognized names are rejected so a typo cannot silently
// change the emissions math.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "truck":
		return ModeTruck, true
	case "ship":
		return ModeShip, true
	case "air":
		return ModeAir, true
	default:
		return 0, false
	}
}

// RoutePlan is the resolver output.
type RoutePlan struct {
	// Origin is the hub coordinate standing in for the origin country.
	Origin geocode.Coord `json:"origin"`

	// Destination is the geocoded delivery coordinate.
	Destination geocode.Coord `json:"destination"`

	// DistanceKm is the great-circle distance, rounded to one decimal.
	DistanceKm float64 `json:"distance_km"`

	// Mode is the selected transport mode.
	Mode Mode `json:"mode"`

	// EmissionFactor is kg CO2e per kg of cargo per km for Mode.
	EmissionFactor float64 `json:"emission_factor"`

	// OriginKnown is false when the origin fell back to the default hub.
	OriginKnown bool `json:"origin_known"`

	// Overridden is true when a caller-supplied mode replaced the
	// computed one.
	Overridden bool `json:"overridden,omitempty"`
}
