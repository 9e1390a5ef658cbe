// Package engine orchestrates the three estimation stages — material
// classification, route resolution, and consensus estimation — into a single
// request-scoped pipeline. All stages are pure functions over the immutable
// reference dataset, so any number of requests may run concurrently.
package engine

import (
	"github.com/ecometer/ecometer/internal/engine/consensus"
	"github.com/ecometer/ecometer/internal/engine/geo"
	"github.com/ecometer/ecometer/internal/engine/material"
)

// DefaultWeightKg is assumed when a product record carries no weight. The
// formula needs some mass to price material and transport emissions; half a
// kilogram is the median parcel weight in the training corpus.
const DefaultWeightKg = 0.5

// ProductRecord is the unit under evaluation, as supplied by an ingestion
// or scraping collaborator. Every field except Title is optional, and even
// an empty record still scores (at degraded confidence).
type ProductRecord struct {
	// Title is the product title.
	Title string `json:"title" yaml:"title"`

	// MaterialLabel is a raw scraped material field, if any.
	MaterialLabel string `json:"material,omitempty" yaml:"material,omitempty"`

	// WeightKg is the product weight in kg; zero means unknown.
	WeightKg float64 `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`

	// Origin is a country or region identifier, if known.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`

	// Composition is the structured material breakdown, if any.
	Composition []material.CompositionEntry `json:"composition,omitempty" yaml:"composition,omitempty"`
}

// Request is one scoring request.
type Request struct {
	// Product is the record under evaluation.
	Product ProductRecord `json:"product" yaml:"product"`

	// Postcode is the delivery destination postcode.
	Postcode string `json:"postcode" yaml:"postcode"`

	// ModeOverride optionally forces a transport mode ("truck", "ship",
	// "air") instead of the distance-derived one.
	ModeOverride string `json:"mode_override,omitempty" yaml:"mode_override,omitempty"`

	// Ballots are optional pre-computed model predictions to fold into
	// the consensus vote.
	Ballots []consensus.ModelBallot `json:"ballots,omitempty" yaml:"ballots,omitempty"`
}

// Estimate is the full scoring output: the per-stage intermediates plus the
// consensus result. It is a fresh value per request with no shared state.
type Estimate struct {
	// RequestID is the ULID assigned to this scoring request.
	RequestID string `json:"request_id"`

	// Title echoes the scored product title.
	Title string `json:"title"`

	// WeightKg is the weight the formula actually used (the record's, or
	// DefaultWeightKg when the record had none).
	WeightKg float64 `json:"weight_kg"`

	// WeightAssumed is true when WeightKg is the default, not measured.
	WeightAssumed bool `json:"weight_assumed,omitempty"`

	Material  material.Profile `json:"material"`
	Route     geo.RoutePlan    `json:"route"`
	Consensus consensus.Result `json:"consensus"`
}
