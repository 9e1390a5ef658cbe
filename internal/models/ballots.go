// Package models loads pre-computed model predictions ("ballots") produced
// by an external statistical-inference service. The engine performs no
// inference itself; it only folds these ballots into the consensus vote.
package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ecometer/ecometer/internal/engine/consensus"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidBallot indicates a prediction entry that cannot participate in
// a vote (missing model name or grade, confidence outside [0,1]).
const ErrInvalidBallot = constError("invalid model ballot")

// ballotFile is the on-disk layout. A bare list is also accepted.
type ballotFile struct {
	Predictions []consensus.ModelBallot `json:"predictions" yaml:"predictions"`
}

// LoadBallots reads model predictions from a YAML or JSON file (chosen by
// extension; .json parses as JSON, everything else as YAML, which also
// accepts JSON). Every entry is validated; one bad entry fails the load so
// a malformed predictions file is noticed rather than silently outvoted.
func LoadBallots(path string) ([]consensus.ModelBallot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read predictions %s: %w", path, err)
	}

	ballots, err := parseBallots(raw, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("predictions %s: %w", path, err)
	}
	return ballots, nil
}

func parseBallots(raw []byte, asJSON bool) ([]consensus.ModelBallot, error) {
	var file ballotFile
	var list []consensus.ModelBallot

	if asJSON {
		if err := json.Unmarshal(raw, &file); err != nil || file.Predictions == nil {
			if listErr := json.Unmarshal(raw, &list); listErr != nil {
				return nil, fmt.Errorf("parse: %w", listErr)
			}
			file.Predictions = list
		}
	} else {
		if err := yaml.Unmarshal(raw, &file); err != nil || file.Predictions == nil {
			if listErr := yaml.Unmarshal(raw, &list); listErr != nil {
				return nil, fmt.Errorf("parse: %w", listErr)
			}
			file.Predictions = list
		}
	}

	for i, b := range file.Predictions {
		if err := validate(b); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return file.Predictions, nil
}

func validate(b consensus.ModelBallot) error {
	if strings.TrimSpace(b.Model) == "" {
		return fmt.Errorf("%w: empty model id", ErrInvalidBallot)
	}
	if strings.TrimSpace(string(b.Grade)) == "" {
		return fmt.Errorf("%w: empty grade", ErrInvalidBallot)
	}
	if b.Confidence < 0 || b.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidBallot, b.Confidence)
	}
	return nil
}
