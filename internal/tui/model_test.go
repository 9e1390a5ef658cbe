package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometer/ecometer/internal/engine"
	"github.com/ecometer/ecometer/internal/engine/consensus"
	"github.com/ecometer/ecometer/internal/refdata"
)

func testItems(t *testing.T) ([]engine.BatchItem, *consensus.Bander) {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)

	items := []engine.BatchItem{
		{
			Index: 0,
			Estimate: &engine.Estimate{
				Title:    "Ceramic mug",
				WeightKg: 0.3,
				Consensus: consensus.Result{
					RuleCO2Kg:  0.45,
					RuleGrade:  "A+",
					Grade:      "A+",
					Confidence: 1,
					Agreement:  true,
				},
			},
		},
		{Index: 1, Err: errors.New("postcode not recognized")},
	}
	return items, consensus.NewBander(ds)
}

func TestResultItem(t *testing.T) {
	items, bander := testItems(t)

	ok := resultItem{item: items[0], bander: bander}
	assert.Equal(t, "Ceramic mug", ok.Title())
	assert.Contains(t, ok.Description(), "A+")
	assert.Equal(t, "Ceramic mug", ok.FilterValue())

	failed := resultItem{item: items[1], bander: bander}
	assert.Equal(t, "item 1 (failed)", failed.Title())
	assert.Contains(t, failed.Description(), "postcode not recognized")
}

func TestModelNavigation(t *testing.T) {
	items, bander := testItems(t)
	m := NewModel(items, bander)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	require.True(t, m.ready)

	// Enter opens the detail pane for a scored item.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Equal(t, viewDetail, m.active)

	// Esc returns to the list.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.Equal(t, viewList, m.active)

	// Quit from the list view.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
