package geocode

// StaticGazetteer is an in-memory district-level gazetteer. The zero value
// is empty; NewStaticGazetteer seeds it from a map. Lookups fall back from
// the full postcode to its outward code, so a district-level table answers
// full postcodes at district precision.
type StaticGazetteer struct {
	byCode map[string]Coord
}

// NewStaticGazetteer builds a gazetteer from postcode (or outward-code)
// keys. Keys are normalized on insert.
func NewStaticGazetteer(entries map[string]Coord) *StaticGazetteer {
	byCode := make(map[string]Coord, len(entries))
	for code, coord := range entries {
		byCode[Normalize(code)] = coord
	}
	return &StaticGazetteer{byCode: byCode}
}

// Geocode implements Geocoder. It never returns an error.
func (g *StaticGazetteer) Geocode(postcode string) (Coord, bool, error) {
	norm := Normalize(postcode)
	if norm == "" {
		return Coord{}, false, nil
	}
	if c, ok := g.byCode[norm]; ok {
		return c, true, nil
	}
	if c, ok := g.byCode[OutwardCode(norm)]; ok {
		return c, true, nil
	}
	return Coord{}, false, nil
}

// BuiltinUK returns a gazetteer seeded with major UK postcode districts.
// It exists so the CLI works out of the box; production deployments point
// the engine at a full gazetteer database instead.
func BuiltinUK() *StaticGazetteer {
	return NewStaticGazetteer(map[string]Coord{
		// London
		"SW1A": {Lat: 51.501, Lon: -0.142},
		"EC1A": {Lat: 51.52, Lon: -0.097},
		"E1":   {Lat: 51.517, Lon: -0.059},
		"N1":   {Lat: 51.538, Lon: -0.1},
		"W1":   {Lat: 51.515, Lon: -0.142},
		"SE1":  {Lat: 51.498, Lon: -0.089},
		// Regional centres
		"B1":   {Lat: 52.48, Lon: -1.902},  // Birmingham
		"M1":   {Lat: 53.478, Lon: -2.243}, // Manchester
		"LS1":  {Lat: 53.797, Lon: -1.544}, // Leeds
		"L1":   {Lat: 53.404, Lon: -2.982}, // Liverpool
		"NE1":  {Lat: 54.971, Lon: -1.614}, // Newcastle
		"S1":   {Lat: 53.38, Lon: -1.47},   // Sheffield
		"BS1":  {Lat: 51.454, Lon: -2.592}, // Bristol
		"NG1":  {Lat: 52.953, Lon: -1.149}, // Nottingham
		"CB1":  {Lat: 52.199, Lon: 0.137},  // Cambridge
		"OX1":  {Lat: 51.75, Lon: -1.257},  // Oxford
		"BN1":  {Lat: 50.827, Lon: -0.139}, // Brighton
		"SO14": {Lat: 50.906, Lon: -1.397}, // Southampton
		"PL1":  {Lat: 50.371, Lon: -4.142}, // Plymouth
		"CF10": {Lat: 51.481, Lon: -3.179}, // Cardiff
		"EH1":  {Lat: 55.95, Lon: -3.188},  // Edinburgh
		"G1":   {Lat: 55.859, Lon: -4.25},  // Glasgow
		"AB10": {Lat: 57.146, Lon: -2.106}, // Aberdeen
		"BT1":  {Lat: 54.599, Lon: -5.928}, // Belfast
	})
}
