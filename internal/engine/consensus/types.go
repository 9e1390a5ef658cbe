// Package consensus combines a deterministic rule-based CO2e estimate with
// zero or more model-based predictions into a single banded eco-grade and a
// reconciled confidence value.
package consensus

// Grade is an ordinal eco-grade ("A+" best through "G" worst). The grade
// vocabulary and its CO2e ceilings come from the reference dataset's bands.
type Grade string

// ModelBallot is one pre-computed prediction from an external inference
// service. The estimator treats ballots as opaque: it runs no inference,
// only weighted voting.
type ModelBallot struct {
	// Model identifies the predicting model.
	Model string `json:"model" yaml:"model"`

	// Grade is the predicted eco-grade.
	Grade Grade `json:"grade" yaml:"grade"`

	// Confidence is the model's reported confidence in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Explanation is the structured breakdown of the terms behind an estimate.
type Explanation struct {
	WeightKg            float64 `json:"weight_kg"`
	IntensityKgCO2e     float64 `json:"intensity_kg_co2e"`
	MaterialEmissionKg  float64 `json:"material_emission_kg"`
	DistanceKm          float64 `json:"distance_km"`
	TransportMode       string  `json:"transport_mode"`
	EmissionFactor      float64 `json:"emission_factor"`
	TransportEmissionKg float64 `json:"transport_emission_kg"`

	// ModelsAgreed / ModelsDisagreed name the models whose ballots did or
	// did not match the consensus grade.
	ModelsAgreed    []string `json:"models_agreed,omitempty"`
	ModelsDisagreed []string `json:"models_disagreed,omitempty"`
}

// Result is the final estimate.
type Result struct {
	// RuleCO2Kg is the deterministic rule-based CO2e estimate.
	RuleCO2Kg float64 `json:"rule_co2_kg"`

	// RuleGrade is the banded rule-based grade.
	RuleGrade Grade `json:"rule_grade"`

	// RuleConfidence is the heuristic confidence of the rule-based
	// source, derived from input completeness.
	RuleConfidence float64 `json:"rule_confidence"`

	// Ballots are the model predictions that participated in the vote.
	Ballots []ModelBallot `json:"ballots,omitempty"`

	// Grade is the consensus eco-grade.
	Grade Grade `json:"grade"`

	// Confidence is the winning grade's share of the total ballot
	// weight, in [0,1].
	Confidence float64 `json:"confidence"`

	// Agreement is true when every source produced the same grade.
	Agreement bool `json:"agreement"`

	Explanation Explanation `json:"explanation"`
}
