package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the semver constraint the dataset's schema_version must
// satisfy. Major bumps signal incompatible table layouts.
const SupportedSchema = "^1.0"

//go:embed data.yaml
var embeddedDataset []byte

// Load parses and validates the dataset embedded in the binary.
func Load() (*Dataset, error) {
	return parse(embeddedDataset)
}

// LoadFile parses and validates a dataset from an external YAML file,
// letting operators ship updated tables without a rebuild.
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	ds, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

func parse(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	ds.normalize()
	return &ds, nil
}

// Validate checks the schema version and the structural invariants the
// engine depends on. It does not second-guess the numeric values themselves
// beyond sign and ordering; the tables are configuration.
func (ds *Dataset) Validate() error {
	ver, err := semver.NewVersion(ds.SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrSchemaVersion, ds.SchemaVersion)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parse schema constraint: %w", err)
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrSchemaVersion, ds.SchemaVersion, SupportedSchema)
	}

	if len(ds.Materials) == 0 {
		return fmt.Errorf("%w: no materials", ErrInvalidDataset)
	}
	for _, m := range ds.Materials {
		if m.Name == "" {
			return fmt.Errorf("%w: material with empty name", ErrInvalidDataset)
		}
		if m.IntensityKgCO2e <= 0 {
			return fmt.Errorf("%w: material %s has non-positive intensity", ErrInvalidDataset, m.Name)
		}
	}

	known := make(map[string]bool, len(ds.Materials))
	for _, m := range ds.Materials {
		known[strings.ToLower(m.Name)] = true
	}
	for _, c := range ds.Categories {
		if len(c.Match) == 0 {
			return fmt.Errorf("%w: category for %s has no match phrases", ErrInvalidDataset, c.Primary)
		}
		if c.Confidence <= 0 || c.Confidence > 1 {
			return fmt.Errorf("%w: category %v confidence %v outside (0,1]", ErrInvalidDataset, c.Match, c.Confidence)
		}
		if !known[strings.ToLower(c.Primary)] {
			return fmt.Errorf("%w: category %v references unknown material %s", ErrInvalidDataset, c.Match, c.Primary)
		}
		for _, s := range c.Secondaries {
			if !known[strings.ToLower(s)] {
				return fmt.Errorf("%w: category %v references unknown material %s", ErrInvalidDataset, c.Match, s)
			}
		}
	}

	if len(ds.Hubs) == 0 {
		return fmt.Errorf("%w: no hubs", ErrInvalidDataset)
	}
	if _, ok := ds.Hubs[strings.ToLower(ds.DefaultHub)]; !ok {
		return fmt.Errorf("%w: default hub %q not present in hubs", ErrInvalidDataset, ds.DefaultHub)
	}

	for _, mode := range []string{"truck", "ship", "air"} {
		if f, ok := ds.Transport.EmissionFactors[mode]; !ok || f <= 0 {
			return fmt.Errorf("%w: missing or non-positive emission factor for %s", ErrInvalidDataset, mode)
		}
	}
	if err := validateThresholds("default", ds.Transport.Default); err != nil {
		return err
	}
	if err := validateThresholds("water_crossing", ds.Transport.WaterCrossing); err != nil {
		return err
	}

	if len(ds.Bands) < 2 {
		return fmt.Errorf("%w: need at least two grade bands", ErrInvalidDataset)
	}
	last := ds.Bands[len(ds.Bands)-1]
	if last.MaxKgCO2e != 0 {
		return fmt.Errorf("%w: final band %s must be open-ended", ErrInvalidDataset, last.Grade)
	}
	prev := 0.0
	for _, b := range ds.Bands[:len(ds.Bands)-1] {
		if b.Grade == "" {
			return fmt.Errorf("%w: band with empty grade", ErrInvalidDataset)
		}
		if b.MaxKgCO2e <= prev {
			return fmt.Errorf("%w: band ceilings must strictly ascend (%s at %v)", ErrInvalidDataset, b.Grade, b.MaxKgCO2e)
		}
		prev = b.MaxKgCO2e
	}

	if ds.DefaultIntensityKgCO2e <= 0 {
		return fmt.Errorf("%w: default intensity must be positive", ErrInvalidDataset)
	}

	return nil
}

func validateThresholds(name string, t ModeThresholds) error {
	if t.TruckMaxKm <= 0 || t.ShipMaxKm <= t.TruckMaxKm {
		return fmt.Errorf("%w: %s thresholds must satisfy 0 < truck < ship", ErrInvalidDataset, name)
	}
	return nil
}

// normalize lowercases the lookup keys so resolution is case-insensitive
// regardless of how the dataset file was authored.
func (ds *Dataset) normalize() {
	hubs := make(map[string]Hub, len(ds.Hubs))
	for k, v := range ds.Hubs {
		hubs[strings.ToLower(strings.TrimSpace(k))] = v
	}
	ds.Hubs = hubs
	ds.DefaultHub = strings.ToLower(strings.TrimSpace(ds.DefaultHub))

	for i, o := range ds.WaterCrossingOrigins {
		ds.WaterCrossingOrigins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	syn := make(map[string]string, len(ds.Synonyms))
	for k, v := range ds.Synonyms {
		syn[strings.ToLower(k)] = strings.ToLower(v)
	}
	ds.Synonyms = syn
}
