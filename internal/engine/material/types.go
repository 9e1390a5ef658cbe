// Package material resolves a canonical material makeup for a product from
// partial, noisy input. Classification is a strict five-tier cascade from
// most specific (structured composition with known mass fractions) to the
// "Mixed" fallback; the first tier that produces a result wins, and lower
// tiers carry lower confidence instead of failing.
package material

// CompositionEntry is one material in a structured composition, typically
// extracted from a product page ("59% cotton, 41% polyester").
type CompositionEntry struct {
	// Material is the raw material name as extracted.
	Material string `json:"material" yaml:"material"`

	// Fraction is the mass fraction in [0,1]; zero means unknown.
	Fraction float64 `json:"fraction,omitempty" yaml:"fraction,omitempty"`

	// ExtractionConfidence optionally records how confident the extractor
	// was in this entry; used for ranking when fractions are unknown.
	ExtractionConfidence float64 `json:"extraction_confidence,omitempty" yaml:"extraction_confidence,omitempty"`
}

// Input is the classifier's view of a product. All fields are optional;
// an entirely empty input still classifies (at the fallback tier).
type Input struct {
	// Hint is free text describing the product, usually its title.
	Hint string

	// MaterialLabel is a raw scraped material field, if any.
	MaterialLabel string

	// Composition is the structured material breakdown, if any.
	Composition []CompositionEntry
}

// SecondaryMaterial is a non-primary material in a profile.
type SecondaryMaterial struct {
	// Name is the canonical material name.
	Name string `json:"name"`

	// Fraction is the known mass fraction, or zero when unknown.
	Fraction float64 `json:"fraction,omitempty"`
}

// Profile is the classification result.
type Profile struct {
	// Primary is the canonical primary material.
	Primary string `json:"primary"`

	// PrimaryFraction is the primary's known mass fraction, or zero.
	PrimaryFraction float64 `json:"primary_fraction,omitempty"`

	// Secondaries are further materials in descending significance.
	Secondaries []SecondaryMaterial `json:"secondaries,omitempty"`

	// CompositionKnown is true when the fractions are numerically
	// meaningful; when false, intensity used an estimated 70/30 split.
	CompositionKnown bool `json:"composition_known"`

	// Confidence is the classifier's confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Tier records which cascade tier produced the profile (1..5).
	Tier int `json:"tier"`

	// IntensityKgCO2e is the blended material carbon intensity,
	// kg CO2e per kg of product mass.
	IntensityKgCO2e float64 `json:"intensity_kg_co2e"`
}

// Cascade tier numbers.
const (
	TierKnownFractions = 1
	TierComposition    = 2
	TierCategory       = 3
	TierKeywords       = 4
	TierFallback       = 5
)

// FallbackMaterial is the primary material reported when nothing matched.
const FallbackMaterial = "Mixed"
