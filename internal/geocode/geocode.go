// Package geocode resolves destination postcodes to coordinates.
//
// The engine consumes the Geocoder interface; the concrete lookups here are
// interchangeable collaborators. Per the collaborator contract, an
// unrecognized postcode is reported as found=false, not as an error — errors
// are reserved for lookup infrastructure failures (bad database file, I/O).
package geocode

import "strings"

// Coord is a WGS84 coordinate pair in decimal degrees.
type Coord struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Geocoder resolves a postcode to a coordinate. Implementations must treat
// "not found" as (Coord{}, false, nil).
type Geocoder interface {
	Geocode(postcode string) (Coord, bool, error)
}

// Normalize canonicalizes a postcode for lookup: uppercase with internal
// whitespace removed ("sw1a 1aa" -> "SW1A1AA").
func Normalize(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
}

// OutwardCode returns the leading outward portion of a normalized UK-style
// postcode (the part before the final three characters), or the whole code
// when it is too short to split. District-level gazetteers index on this.
func OutwardCode(normalized string) string {
	const inwardLen = 3
	if len(normalized) <= inwardLen {
		return normalized
	}
	return normalized[:len(normalized)-inwardLen]
}
