package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometer/ecometer/internal/engine"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3")

	assert.Equal(t, "ecometer", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	names := make([]string, 0, 3)
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"score", "batch", "dataset"})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		out, err := execute(t,
			"score", "--title", "Apple iPhone 14 Pro", "--origin", "china",
			"--postcode", "SW1A 1AA", "--json")
		require.NoError(t, err)

		var est engine.Estimate
		require.NoError(t, json.Unmarshal([]byte(out), &est))
		assert.Equal(t, "Apple iPhone 14 Pro", est.Title)
		assert.NotEmpty(t, est.Consensus.Grade)
		assert.True(t, est.WeightAssumed)
	})

	t.Run("unknown postcode reports a friendly error", func(t *testing.T) {
		_, err := execute(t,
			"score", "--title", "Ceramic mug", "--postcode", "ZZ99 9ZZ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ZZ99 9ZZ")
		assert.Contains(t, err.Error(), "delivery postcode")
	})

	t.Run("missing required flags", func(t *testing.T) {
		_, err := execute(t, "score", "--title", "Ceramic mug")
		assert.Error(t, err)
	})

	t.Run("bad composition", func(t *testing.T) {
		_, err := execute(t,
			"score", "--title", "Ceramic mug", "--postcode", "SW1A 1AA",
			"--composition", "clay:heaps")
		assert.Error(t, err)
	})
}

func TestDatasetCommands(t *testing.T) {
	t.Run("validate embedded", func(t *testing.T) {
		out, err := execute(t, "dataset", "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "OK")
	})

	t.Run("info", func(t *testing.T) {
		out, err := execute(t, "dataset", "info")
		require.NoError(t, err)
		assert.Contains(t, out, "schema version")
	})
}
