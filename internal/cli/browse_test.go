package cli

import (
	"testing"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browseResponse() *app.SolveResponse {
	items := []domain.Item{{ID: "A", Length: 2}, {ID: "B", Length: 3}}
	positions := domain.NewTimeline(5)
	first := domain.NewAssignment(items, positions, [][]int{{1, 1, 0, 0, 0}, {0, 0, 1, 1, 1}})
	second := domain.NewAssignment(items, positions, [][]int{{0, 0, 0, 1, 1}, {1, 1, 1, 0, 0}})
	return &app.SolveResponse{
		Instance:     &domain.Instance{ID: "inst", Name: "tiling", TimelineLength: 5, Items: items},
		Status:       domain.RunFeasible,
		Assignment:   first,
		Alternatives: []*domain.Assignment{second},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel_PagesWithinBounds(t *testing.T) {
	m := newBrowseModel(browseResponse())
	assert.Contains(t, ansiPattern.ReplaceAllString(m.View(), ""), "assignment 1 of 2")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = model.(browseModel)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.index, "cannot page before the first")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(browseModel)
	assert.Equal(t, 1, m.index)
	view := ansiPattern.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "assignment 2 of 2")
	assert.Contains(t, view, "B B B A A")

	model, _ = m.Update(keyRunes("n"))
	m = model.(browseModel)
	assert.Equal(t, 1, m.index, "cannot page past the last")

	model, _ = m.Update(keyRunes("p"))
	m = model.(browseModel)
	assert.Equal(t, 0, m.index)
}

func TestBrowseModel_WindowSizeUsesViewport(t *testing.T) {
	m := newBrowseModel(browseResponse())

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = model.(browseModel)
	require.True(t, m.ready)
	assert.Equal(t, 80, m.vp.Width)
	assert.Equal(t, 28, m.vp.Height)
	assert.Contains(t, ansiPattern.ReplaceAllString(m.View(), ""), "A A B B B")
}

func TestBrowseModel_Quit(t *testing.T) {
	m := newBrowseModel(browseResponse())

	model, cmd := m.Update(keyRunes("q"))
	m = model.(browseModel)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, m.View())
}

func TestBrowseModel_DriverSession(t *testing.T) {
	d := teatest.New(t, newBrowseModel(browseResponse()), teatest.WithSize(100, 40))

	assert.Contains(t, d.View(), "assignment 1 of 2")
	assert.Contains(t, d.View(), "←/p: previous  →/n: next  q: quit")

	d.Press("l")
	assert.Contains(t, d.View(), "assignment 2 of 2")
	d.Press("down")
	d.Press("h")
	assert.Contains(t, d.View(), "A A B B B")

	d.Press("esc")
	assert.True(t, d.Quitting)
	d.Press("right")
	assert.Equal(t, 0, d.Model.(browseModel).index, "keys after quit are dropped")
}
