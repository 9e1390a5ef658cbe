package material

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/ecometer/ecometer/internal/logging"
	"github.com/ecometer/ecometer/internal/refdata"
)

// Classification constants. Confidence values per tier and the split assumed
// when fractions are unknown are tuned configuration, not contracts; the tier
// ordering and tie-break rules are the load-bearing part.
const (
	knownFractionConfidence = 0.95
	compositionConfidence   = 0.8
	fallbackConfidence      = 0.1

	// fractionTolerance absorbs float noise when checking that fractions
	// sum to at most 1.
	fractionTolerance = 0.001

	// primarySplit / secondarySplit estimate the mass distribution when
	// composition fractions are unknown.
	primarySplit   = 0.7
	secondarySplit = 0.3

	// Category match scoring.
	phraseScore       = 10
	wordScore         = 3
	categoryMinScore  = 3
	categoryScoreNorm = 10

	// Keyword match scoring.
	multiWordKeywordWeight = 2
	keywordBaseConfidence  = 0.5
	keywordScoreStep       = 0.1
	keywordMaxConfidence   = 0.9
)

// tierFunc attempts one cascade tier. It reports ok=false to pass control
// to the next tier.
type tierFunc func(Input) (Profile, bool)

// Classifier classifies products against a loaded reference dataset. It is
// stateless beyond the immutable dataset and safe for concurrent use.
type Classifier struct {
	ds    *refdata.Dataset
	tiers []tierFunc
}

// NewClassifier builds a classifier over ds.
func NewClassifier(ds *refdata.Dataset) *Classifier {
	c := &Classifier{ds: ds}
	c.tiers = []tierFunc{
		c.tryKnownFractions,
		c.tryComposition,
		c.tryCategory,
		c.tryKeywords,
	}
	return c
}

// Classify resolves a material profile for the input. It is total: every
// input yields a profile, with the fallback tier absorbing anything the
// specific tiers cannot place.
func (c *Classifier) Classify(ctx context.Context, in Input) Profile {
	log := logging.FromContext(ctx)

	for _, tier := range c.tiers {
		if profile, ok := tier(in); ok {
			log.Debug().
				Str("component", "material").
				Int("tier", profile.Tier).
				Str("primary", profile.Primary).
				Float64("confidence", profile.Confidence).
				Msg("material classified")
			return profile
		}
	}

	log.Debug().
		Str("component", "material").
		Int("tier", TierFallback).
		Msg("no material signal, using fallback")
	return Profile{
		Primary:         FallbackMaterial,
		Confidence:      fallbackConfidence,
		Tier:            TierFallback,
		IntensityKgCO2e: c.ds.DefaultIntensityKgCO2e,
	}
}

// tryKnownFractions handles compositions where at least one mass fraction is
// known. Fractions that sum past 1 (beyond tolerance) are inconsistent
// extraction output; the tier declines and the fraction-free tier ranks the
// entries by order instead.
func (c *Classifier) tryKnownFractions(in Input) (Profile, bool) {
	if len(in.Composition) == 0 {
		return Profile{}, false
	}

	sum := 0.0
	anyKnown := false
	for _, e := range in.Composition {
		if e.Fraction > 0 {
			anyKnown = true
		}
		sum += e.Fraction
	}
	if !anyKnown || sum > 1+fractionTolerance {
		return Profile{}, false
	}

	entries := make([]CompositionEntry, len(in.Composition))
	copy(entries, in.Composition)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Fraction > entries[j].Fraction
	})

	primary := c.canonicalName(entries[0].Material)
	intensity := 0.0
	for _, e := range entries {
		i, _ := c.ds.IntensityFor(e.Material)
		intensity += i * e.Fraction
	}

	secondaries := make([]SecondaryMaterial, 0, len(entries)-1)
	for _, e := range entries[1:] {
		secondaries = append(secondaries, SecondaryMaterial{
			Name:     c.canonicalName(e.Material),
			Fraction: e.Fraction,
		})
	}

	return Profile{
		Primary:          primary,
		PrimaryFraction:  entries[0].Fraction,
		Secondaries:      secondaries,
		CompositionKnown: true,
		Confidence:       knownFractionConfidence,
		Tier:             TierKnownFractions,
		IntensityKgCO2e:  intensity,
	}, true
}

// tryComposition handles compositions without usable fractions: rank by the
// extractor's per-entry confidence when present, else keep input order.
func (c *Classifier) tryComposition(in Input) (Profile, bool) {
	if len(in.Composition) == 0 {
		return Profile{}, false
	}

	entries := make([]CompositionEntry, len(in.Composition))
	copy(entries, in.Composition)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ExtractionConfidence > entries[j].ExtractionConfidence
	})

	primary := c.canonicalName(entries[0].Material)
	secondaryNames := make([]string, 0, len(entries)-1)
	for _, e := range entries[1:] {
		secondaryNames = append(secondaryNames, c.canonicalName(e.Material))
	}

	return Profile{
		Primary:          primary,
		Secondaries:      secondaryList(secondaryNames),
		CompositionKnown: false,
		Confidence:       compositionConfidence,
		Tier:             TierComposition,
		IntensityKgCO2e:  c.splitIntensity(primary, secondaryNames),
	}, true
}

// tryCategory matches the hint against the product-category table. It runs
// before free-text keyword matching because a category hit ("phone") pins
// down the whole material makeup, not just one material.
func (c *Classifier) tryCategory(in Input) (Profile, bool) {
	text, words := c.hintTokens(in)
	if len(words) == 0 {
		return Profile{}, false
	}

	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	best := -1
	bestScore := 0
	for i, cat := range c.ds.Categories {
		score := categoryScore(cat, text, wordSet)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < categoryMinScore {
		return Profile{}, false
	}

	cat := c.ds.Categories[best]
	norm := math.Min(float64(bestScore), categoryScoreNorm) / categoryScoreNorm

	return Profile{
		Primary:          cat.Primary,
		Secondaries:      secondaryList(cat.Secondaries),
		CompositionKnown: false,
		Confidence:       cat.Confidence * norm,
		Tier:             TierCategory,
		IntensityKgCO2e:  c.splitIntensity(cat.Primary, cat.Secondaries),
	}, true
}

// categoryScore scores one category entry: full phrase containment beats
// per-word hits; an entry with several match phrases takes its best phrase.
func categoryScore(cat refdata.Category, text string, wordSet map[string]bool) int {
	best := 0
	for _, phrase := range cat.Match {
		phrase = strings.ToLower(phrase)
		score := 0
		if strings.Contains(text, phrase) {
			score = phraseScore
		} else {
			for _, w := range strings.Fields(phrase) {
				if wordSet[w] {
					score += wordScore
				}
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

// tryKeywords scores every canonical material by keyword occurrences in the
// hint. Multi-word keywords weigh double: "stainless steel" is a stronger
// signal than "steel". Ties keep the first-listed material.
func (c *Classifier) tryKeywords(in Input) (Profile, bool) {
	text, words := c.hintTokens(in)
	if len(words) == 0 {
		return Profile{}, false
	}

	best := -1
	bestScore := 0
	for i, m := range c.ds.Materials {
		score := 0
		for _, kw := range m.Keywords {
			kw = strings.ToLower(kw)
			weight := 1
			if strings.Contains(kw, " ") {
				weight = multiWordKeywordWeight
			}
			score += strings.Count(text, kw) * weight
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Profile{}, false
	}

	m := c.ds.Materials[best]
	confidence := math.Min(
		keywordMaxConfidence,
		keywordBaseConfidence+float64(bestScore)*keywordScoreStep,
	)

	return Profile{
		Primary:          m.Name,
		CompositionKnown: false,
		Confidence:       confidence,
		Tier:             TierKeywords,
		IntensityKgCO2e:  m.IntensityKgCO2e,
	}, true
}

// splitIntensity blends intensities with the estimated 70/30 primary/secondary
// split used whenever real fractions are unavailable. With no secondaries the
// primary carries everything.
func (c *Classifier) splitIntensity(primary string, secondaries []string) float64 {
	pi, _ := c.ds.IntensityFor(primary)
	if len(secondaries) == 0 {
		return pi
	}
	intensity := pi * primarySplit
	share := secondarySplit / float64(len(secondaries))
	for _, s := range secondaries {
		si, _ := c.ds.IntensityFor(s)
		intensity += si * share
	}
	return intensity
}

// hintTokens lowercases the hint plus material label, trims punctuation,
// applies synonym rewrites, and returns the rewritten text and word list.
func (c *Classifier) hintTokens(in Input) (string, []string) {
	raw := strings.ToLower(strings.TrimSpace(in.Hint + " " + in.MaterialLabel))
	if raw == "" {
		return "", nil
	}

	fields := strings.Fields(raw)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,;:!?()[]\"'")
		if w == "" {
			continue
		}
		if repl, ok := c.ds.Synonyms[w]; ok {
			w = repl
		}
		words = append(words, w)
	}
	return strings.Join(words, " "), words
}

// canonicalName maps a raw material name onto the dataset's canonical
// casing, keeping unknown names as-is (intensity falls back to the dataset
// default for those).
func (c *Classifier) canonicalName(raw string) string {
	if m, ok := c.ds.MaterialByName(raw); ok {
		return m.Name
	}
	return strings.TrimSpace(raw)
}

func secondaryList(names []string) []SecondaryMaterial {
	if len(names) == 0 {
		return nil
	}
	out := make([]SecondaryMaterial, 0, len(names))
	for _, n := range names {
		out = append(out, SecondaryMaterial{Name: n})
	}
	return out
}
