package consensus

import (
	"context"
	"math"

	"github.com/ecometer/ecometer/internal/engine/geo"
	"github.com/ecometer/ecometer/internal/engine/material"
	"github.com/ecometer/ecometer/internal/logging"
	"github.com/ecometer/ecometer/internal/refdata"
)

// Voting weights. Models carry a higher source weight than the rule formula
// because they see more features than the two-term physical model; both are
// tuned configuration rather than contracts.
const (
	ruleSourceWeight  = 0.6
	modelSourceWeight = 0.8

	// Rule-source heuristic confidence: a base for having title and
	// weight at all, plus a bonus per resolved input dimension.
	ruleBaseConfidence    = 0.6
	completenessBonus     = 0.1
	ruleConfidenceCeiling = 1.0

	// weightEpsilon groups float-noise-close ballot weights as ties so
	// tie-breaking does not hinge on the last bit of a product.
	weightEpsilon = 1e-9
)

// Estimator produces consensus estimates. Safe for concurrent use.
type Estimator struct {
	bander *Bander
}

// NewEstimator builds an estimator over the dataset's band table.
func NewEstimator(ds *refdata.Dataset) *Estimator {
	return &Estimator{bander: NewBander(ds)}
}

// Bander exposes the estimator's band table for rendering and validation.
func (e *Estimator) Bander() *Bander { return e.bander }

// Estimate combines the rule-based formula with any model ballots. It never
// fails: with no ballots the result degrades to the rule-based source alone
// (whose grade then wins with full agreement).
//
// Ballots carrying a grade outside the band vocabulary are dropped from the
// vote rather than poisoning it.
func (e *Estimator) Estimate(
	ctx context.Context,
	profile material.Profile,
	route geo.RoutePlan,
	weightKg float64,
	ballots []ModelBallot,
) Result {
	log := logging.FromContext(ctx)

	materialEmission := weightKg * profile.IntensityKgCO2e
	transportEmission := weightKg * route.EmissionFactor * route.DistanceKm
	ruleCO2 := materialEmission + transportEmission
	ruleGrade := e.bander.Band(ruleCO2)
	ruleConfidence := e.ruleConfidence(profile, route)

	valid := ballots[:0:0]
	for _, b := range ballots {
		if _, ok := e.bander.Rank(b.Grade); !ok {
			log.Warn().
				Str("component", "consensus").
				Str("model", b.Model).
				Str("grade", string(b.Grade)).
				Msg("dropping ballot with unknown grade")
			continue
		}
		valid = append(valid, b)
	}

	winner, confidence := e.vote(ruleGrade, ruleConfidence, valid)

	agreement := true
	var agreed, disagreed []string
	for _, b := range valid {
		if b.Grade == winner {
			agreed = append(agreed, b.Model)
		} else {
			disagreed = append(disagreed, b.Model)
		}
		if b.Grade != ruleGrade {
			agreement = false
		}
	}
	if ruleGrade != winner {
		agreement = false
	}

	log.Debug().
		Str("component", "consensus").
		Float64("rule_co2_kg", ruleCO2).
		Str("rule_grade", string(ruleGrade)).
		Str("grade", string(winner)).
		Float64("confidence", confidence).
		Int("ballots", len(valid)).
		Bool("agreement", agreement).
		Msg("consensus reached")

	return Result{
		RuleCO2Kg:      ruleCO2,
		RuleGrade:      ruleGrade,
		RuleConfidence: ruleConfidence,
		Ballots:        valid,
		Grade:          winner,
		Confidence:     confidence,
		Agreement:      agreement,
		Explanation: Explanation{
			WeightKg:            weightKg,
			IntensityKgCO2e:     profile.IntensityKgCO2e,
			MaterialEmissionKg:  materialEmission,
			DistanceKm:          route.DistanceKm,
			TransportMode:       route.Mode.String(),
			EmissionFactor:      route.EmissionFactor,
			TransportEmissionKg: transportEmission,
			ModelsAgreed:        agreed,
			ModelsDisagreed:     disagreed,
		},
	}
}

// ruleConfidence derives the rule source's heuristic confidence from input
// completeness: classification above the fallback tier and a recognized
// origin each add a bonus.
func (e *Estimator) ruleConfidence(profile material.Profile, route geo.RoutePlan) float64 {
	c := ruleBaseConfidence
	if profile.Tier < material.TierFallback {
		c += completenessBonus
	}
	if route.OriginKnown {
		c += completenessBonus
	}
	if c > ruleConfidenceCeiling {
		c = ruleConfidenceCeiling
	}
	return c
}

// vote runs the weighted plurality. A dead heat breaks toward the better
// (lower-CO2e) grade, using the band order as the deterministic tiebreaker.
func (e *Estimator) vote(ruleGrade Grade, ruleConfidence float64, ballots []ModelBallot) (Grade, float64) {
	weights := make(map[Grade]float64, len(ballots)+1)
	weights[ruleGrade] += ruleConfidence * ruleSourceWeight
	total := ruleConfidence * ruleSourceWeight

	for _, b := range ballots {
		w := b.Confidence * modelSourceWeight
		weights[b.Grade] += w
		total += w
	}

	var winner Grade
	winnerWeight := -1.0
	winnerRank := 0
	for g, w := range weights {
		rank, _ := e.bander.Rank(g)
		switch {
		case w > winnerWeight+weightEpsilon:
			winner, winnerWeight, winnerRank = g, w, rank
		case math.Abs(w-winnerWeight) <= weightEpsilon && rank < winnerRank:
			winner, winnerRank = g, rank
		}
	}

	if total <= 0 {
		return winner, 0
	}
	return winner, winnerWeight / total
}
