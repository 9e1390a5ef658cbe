package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecometer/ecometer/internal/engine"
	"github.com/ecometer/ecometer/internal/engine/geo"
	"github.com/ecometer/ecometer/internal/engine/material"
	"github.com/ecometer/ecometer/internal/models"
	"github.com/ecometer/ecometer/internal/render"
)

func newScoreCmd(a *app) *cobra.Command {
	var (
		title        string
		materialFlag string
		weight       float64
		origin       string
		postcode     string
		composition  string
		mode         string
		predictions  string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single product",
		Long: "Score estimates a product's CO2e footprint and eco-grade from its title, " +
			"optional material details, an origin country, and the delivery postcode.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := parseComposition(composition)
			if err != nil {
				return err
			}

			req := engine.Request{
				Product: engine.ProductRecord{
					Title:         title,
					MaterialLabel: materialFlag,
					WeightKg:      weight,
					Origin:        origin,
					Composition:   comp,
				},
				Postcode:     postcode,
				ModeOverride: mode,
			}

			if predictions != "" {
				ballots, loadErr := models.LoadBallots(predictions)
				if loadErr != nil {
					return loadErr
				}
				req.Ballots = ballots
			}

			est, err := a.engine.Score(cmd.Context(), req)
			if err != nil {
				if errors.Is(err, geo.ErrInvalidLocation) {
					return fmt.Errorf("postcode %q was not recognized — check the delivery postcode", postcode)
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(est)
			}
			cmd.Println(render.Estimate(est, a.engine.Estimator().Bander()))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "product title")
	cmd.Flags().StringVar(&materialFlag, "material", "", "raw material label, if known")
	cmd.Flags().Float64Var(&weight, "weight", 0, "product weight in kg")
	cmd.Flags().StringVar(&origin, "origin", "", "origin country or region")
	cmd.Flags().StringVar(&postcode, "postcode", "", "delivery postcode")
	cmd.Flags().StringVar(&composition, "composition", "",
		`structured composition, e.g. "cotton:0.59,polyester:0.41" (fractions optional)`)
	cmd.Flags().StringVar(&mode, "mode", "", "force transport mode (truck, ship, air)")
	cmd.Flags().StringVar(&predictions, "predictions", "", "model predictions file (YAML or JSON)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the estimate as JSON")

	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("postcode")

	return cmd
}

// parseComposition parses "name:fraction,name:fraction" (fractions optional)
// into composition entries.
func parseComposition(s string) ([]material.CompositionEntry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	entries := make([]material.CompositionEntry, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, frac, hasFrac := strings.Cut(part, ":")
		entry := material.CompositionEntry{Material: strings.TrimSpace(name)}
		if entry.Material == "" {
			return nil, fmt.Errorf("composition entry %q has no material name", part)
		}
		if hasFrac {
			f, err := strconv.ParseFloat(strings.TrimSpace(frac), 64)
			if err != nil || f < 0 || f > 1 {
				return nil, fmt.Errorf("composition entry %q: fraction must be a number in [0,1]", part)
			}
			entry.Fraction = f
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
