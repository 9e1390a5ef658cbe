package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometer/ecometer/internal/engine"
)

func TestReadRequestsNDJSON(t *testing.T) {
	in := strings.NewReader(`{"product": {"title": "Ceramic mug"}, "postcode": "SW1A 1AA"}

{"product": {"title": "Wool jumper", "origin": "china"}, "postcode": "M1 4BT", "mode_override": "ship"}
`)

	reqs, err := readRequests(in, "")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "Ceramic mug", reqs[0].Product.Title)
	assert.Equal(t, "ship", reqs[1].ModeOverride)
}

func TestReadRequestsJSONArray(t *testing.T) {
	in := strings.NewReader(`[
		{"product": {"title": "Ceramic mug"}, "postcode": "SW1A 1AA"},
		{"product": {"title": "Oak desk", "weight_kg": 24}, "postcode": "M1 4BT"}
	]`)

	reqs, err := readRequests(in, "")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.InDelta(t, 24, reqs[1].Product.WeightKg, 1e-9)
}

func TestReadRequestsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.ndjson")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"product": {"title": "Ceramic mug"}, "postcode": "SW1A 1AA"}`+"\n"), 0o600))

	reqs, err := readRequests(nil, path)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestReadRequestsErrors(t *testing.T) {
	t.Run("bad line reports line number", func(t *testing.T) {
		in := strings.NewReader(`{"product": {"title": "ok"}, "postcode": "SW1A 1AA"}
{not json}
`)
		_, err := readRequests(in, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("bad array", func(t *testing.T) {
		_, err := readRequests(strings.NewReader("[{broken"), "")
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		reqs, err := readRequests(strings.NewReader("  \n "), "")
		require.NoError(t, err)
		assert.Empty(t, reqs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readRequests(nil, filepath.Join(t.TempDir(), "nope.ndjson"))
		assert.Error(t, err)
	})
}

func TestWriteItemsJSON(t *testing.T) {
	items := []engine.BatchItem{
		{Index: 0, Estimate: &engine.Estimate{Title: "Ceramic mug", WeightKg: 0.3}},
		{Index: 1, Err: errors.New("postcode not recognized")},
	}

	var buf bytes.Buffer
	require.NoError(t, writeItemsJSON(&buf, items))

	var out []struct {
		Index    int              `json:"index"`
		Estimate *engine.Estimate `json:"estimate"`
		Error    string           `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Ceramic mug", out[0].Estimate.Title)
	assert.Empty(t, out[0].Error)
	assert.Nil(t, out[1].Estimate)
	assert.Equal(t, "postcode not recognized", out[1].Error)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
}
