// Package refdata loads and validates the static reference dataset the
// estimation engine runs on: material carbon intensities and keywords,
// product-category defaults, country hub coordinates, transport mode
// thresholds and emission factors, and the CO2e grade bands.
//
// The dataset is loaded once at startup and treated as immutable for the
// process lifetime. A default dataset is embedded in the binary; callers may
// substitute a newer file as long as its schema version is compatible.
package refdata

// Material is one canonical material with its cradle-to-gate carbon
// intensity and the free-text keywords that identify it. Slice order in the
// dataset is meaningful: score ties resolve to the first-listed entry.
type Material struct {
	// Name is the canonical material name ("Aluminum", "Cotton", ...).
	Name string `yaml:"name"`

	// IntensityKgCO2e is kg CO2e emitted per kg of material produced.
	IntensityKgCO2e float64 `yaml:"intensity_kg_co2e"`

	// Keywords are lowercase phrases matched against product hints.
	// Multi-word keywords are stronger signals than single words.
	Keywords []string `yaml:"keywords"`
}

// Category maps a product-type phrase to a default material makeup. Used by
// the classifier before free-text keyword matching because a category match
// ("phone") is more specific than a material word match ("glass").
type Category struct {
	// Match lists the phrases that identify the category.
	Match []string `yaml:"match"`

	// Primary is the canonical primary material for the category.
	Primary string `yaml:"primary"`

	// Secondaries are additional materials, most significant first.
	Secondaries []string `yaml:"secondaries,omitempty"`

	// Confidence is the base confidence granted by a full-strength match.
	Confidence float64 `yaml:"confidence"`
}

// Hub is the representative shipping origin coordinate for a country or
// region. One fixed point per country keeps distance estimates deterministic
// when no finer origin is known.
type Hub struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// ModeThresholds are the distance cutoffs for transport mode selection.
// Distances below TruckMaxKm go by truck, below ShipMaxKm by ship, and
// everything farther by air.
type ModeThresholds struct {
	TruckMaxKm float64 `yaml:"truck_max_km"`
	ShipMaxKm  float64 `yaml:"ship_max_km"`
}

// Transport groups the mode policy: per-mode emission factors, the default
// distance thresholds, and the tighter thresholds applied to origins that
// require a water crossing regardless of raw distance.
type Transport struct {
	// EmissionFactors is kg CO2e per kg of cargo per km, keyed by mode
	// name ("truck", "ship", "air").
	EmissionFactors map[string]float64 `yaml:"emission_factors"`

	// Default thresholds apply to most origins.
	Default ModeThresholds `yaml:"default"`

	// WaterCrossing thresholds apply to origins listed in
	// WaterCrossingOrigins.
	WaterCrossing ModeThresholds `yaml:"water_crossing"`
}

// Band is one rung of the CO2e-to-grade ladder. Bands are listed best grade
// first with ascending MaxKgCO2e; a CO2e value takes the first band whose
// ceiling it is under. The final band has no ceiling (MaxKgCO2e = 0).
type Band struct {
	Grade     string  `yaml:"grade"`
	MaxKgCO2e float64 `yaml:"max_kg_co2e,omitempty"`
}

// Dataset is the full reference dataset.
type Dataset struct {
	// SchemaVersion is a semver string checked against the supported
	// range at load time.
	SchemaVersion string `yaml:"schema_version"`

	Materials  []Material `yaml:"materials"`
	Categories []Category `yaml:"categories"`

	// Synonyms rewrites hint words before category matching
	// ("mobile" -> "phone").
	Synonyms map[string]string `yaml:"synonyms"`

	// Hubs maps lowercase country/region identifiers to coordinates.
	Hubs map[string]Hub `yaml:"hubs"`

	// DefaultHub is the Hubs key used for unknown origins.
	DefaultHub string `yaml:"default_hub"`

	// WaterCrossingOrigins lists origins that cannot reach the delivery
	// market overland.
	WaterCrossingOrigins []string `yaml:"water_crossing_origins"`

	Transport Transport `yaml:"transport"`

	Bands []Band `yaml:"bands"`

	// DefaultIntensityKgCO2e is the material intensity assumed when
	// classification falls through to the final tier.
	DefaultIntensityKgCO2e float64 `yaml:"default_intensity_kg_co2e"`
}
