package consensus

import "github.com/ecometer/ecometer/internal/refdata"

// Bander converts CO2e values to grades using the dataset's band table.
// Bands ascend strictly, so banding is monotonic: a lower CO2e value never
// maps to a worse grade than a higher one.
type Bander struct {
	bands []refdata.Band
	rank  map[Grade]int
}

// NewBander builds a bander from the dataset's validated band table.
func NewBander(ds *refdata.Dataset) *Bander {
	rank := make(map[Grade]int, len(ds.Bands))
	for i, b := range ds.Bands {
		rank[Grade(b.Grade)] = i
	}
	return &Bander{bands: ds.Bands, rank: rank}
}

// Band returns the grade for a CO2e value in kg.
func (b *Bander) Band(co2Kg float64) Grade {
	for _, band := range b.bands[:len(b.bands)-1] {
		if co2Kg < band.MaxKgCO2e {
			return Grade(band.Grade)
		}
	}
	return Grade(b.bands[len(b.bands)-1].Grade)
}

// Rank returns the ordinal position of a grade (0 is best) and whether the
// grade exists in the band vocabulary.
func (b *Bander) Rank(g Grade) (int, bool) {
	r, ok := b.rank[g]
	return r, ok
}

// Grades returns the vocabulary in best-to-worst order.
func (b *Bander) Grades() []Grade {
	out := make([]Grade, 0, len(b.bands))
	for _, band := range b.bands {
		out = append(out, Grade(band.Grade))
	}
	return out
}
