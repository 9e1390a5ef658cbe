package refdata

import "strings"

// MaterialByName returns the material entry whose name matches
// case-insensitively, preserving the dataset's canonical casing.
func (ds *Dataset) MaterialByName(name string) (Material, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, m := range ds.Materials {
		if strings.ToLower(m.Name) == want {
			return m, true
		}
	}
	return Material{}, false
}

// IntensityFor returns the carbon intensity for a material name, falling
// back to the dataset default for unknown materials. The second return
// reports whether the material was found.
func (ds *Dataset) IntensityFor(name string) (float64, bool) {
	if m, ok := ds.MaterialByName(name); ok {
		return m.IntensityKgCO2e, true
	}
	return ds.DefaultIntensityKgCO2e, false
}

// HubFor resolves an origin identifier to a hub coordinate. Unknown or
// empty origins resolve to the default hub; the second return reports
// whether the origin was recognized.
func (ds *Dataset) HubFor(originID string) (Hub, bool) {
	key := strings.ToLower(strings.TrimSpace(originID))
	if hub, ok := ds.Hubs[key]; ok {
		return hub, true
	}
	return ds.Hubs[ds.DefaultHub], false
}

// RequiresWaterCrossing reports whether the origin is in the
// water-crossing override set.
func (ds *Dataset) RequiresWaterCrossing(originID string) bool {
	key := strings.ToLower(strings.TrimSpace(originID))
	for _, o := range ds.WaterCrossingOrigins {
		if o == key {
			return true
		}
	}
	return false
}
