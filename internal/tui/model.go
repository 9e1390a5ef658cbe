// Package tui provides an interactive browser over batch scoring results:
// a filterable list of scored products with a detail pane per estimate.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecometer/ecometer/internal/engine"
	"github.com/ecometer/ecometer/internal/engine/consensus"
	"github.com/ecometer/ecometer/internal/render"
)

// view identifies which pane is active.
type view int

const (
	viewList view = iota
	viewDetail
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

// resultItem adapts one batch item to the bubbles list.
type resultItem struct {
	item   engine.BatchItem
	bander *consensus.Bander
}

func (r resultItem) Title() string {
	if r.item.Err != nil {
		return fmt.Sprintf("item %d (failed)", r.item.Index)
	}
	return r.item.Estimate.Title
}

func (r resultItem) Description() string {
	if r.item.Err != nil {
		return r.item.Err.Error()
	}
	c := r.item.Estimate.Consensus
	return fmt.Sprintf("%s  %s  %s confident",
		string(c.Grade), render.FormatCO2(c.RuleCO2Kg), render.FormatPercent(c.Confidence))
}

func (r resultItem) FilterValue() string { return r.Title() }

// Model is the bubbletea model for the results browser.
type Model struct {
	list     list.Model
	detail   viewport.Model
	bander   *consensus.Bander
	active   view
	ready    bool
	quitting bool
}

// NewModel builds the browser over scored items.
func NewModel(items []engine.BatchItem, bander *consensus.Bander) Model {
	entries := make([]list.Item, 0, len(items))
	for _, it := range items {
		entries = append(entries, resultItem{item: it, bander: bander})
	}

	l := list.New(entries, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Eco-scores"
	l.SetShowStatusBar(true)

	return Model{list: l, bander: bander}
}

// Init implements tea.Model.
func (Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.detail = viewport.New(msg.Width-h, msg.Height-v)
		m.ready = true

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.active == viewDetail {
				m.active = viewList
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.active == viewDetail {
				m.active = viewList
				return m, nil
			}
		case "enter":
			if m.active == viewList {
				if sel, ok := m.list.SelectedItem().(resultItem); ok && sel.item.Err == nil {
					m.detail.SetContent(render.Estimate(sel.item.Estimate, m.bander))
					m.detail.GotoTop()
					m.active = viewDetail
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.active == viewDetail && m.ready {
		return docStyle.Render(m.detail.View())
	}
	return docStyle.Render(m.list.View())
}

// Run launches the browser and blocks until the user quits.
func Run(items []engine.BatchItem, bander *consensus.Bander) error {
	_, err := tea.NewProgram(NewModel(items, bander), tea.WithAltScreen()).Run()
	return err
}
