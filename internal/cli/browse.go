package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/cli/formatter"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type browseKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Next: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "previous")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

// browseModel pages through the assignments of one solve, one per screen.
type browseModel struct {
	resp     *app.SolveResponse
	all      []*domain.Assignment
	index    int
	keys     browseKeyMap
	vp       viewport.Model
	ready    bool
	quitting bool
}

func newBrowseModel(resp *app.SolveResponse) browseModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	return browseModel{
		resp: resp,
		all:  resp.Assignments(),
		keys: defaultBrowseKeys(),
		vp:   vp,
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		// header line plus help line
		m.vp.Height = max(msg.Height-2, 1)
		m.ready = true
		m.vp.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.index < len(m.all)-1 {
				m.index++
				m.vp.SetContent(m.content())
				m.vp.GotoTop()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if m.index > 0 {
				m.index--
				m.vp.SetContent(m.content())
				m.vp.GotoTop()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m browseModel) content() string {
	if len(m.all) == 0 {
		return formatter.StyleYellow.Render("No assignment satisfies the constraints.")
	}
	return formatter.FormatAssignment(m.all[m.index])
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	title := fmt.Sprintf("%s %s",
		formatter.StylePurple.Render("blockplan"),
		formatter.Dim(fmt.Sprintf("› %s › assignment %d of %d", m.resp.Instance.Name, m.index+1, len(m.all))))

	body := m.content()
	if m.ready {
		body = m.vp.View()
	}

	hints := make([]string, 0, 3)
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return strings.Join([]string{title, body, strings.Join(hints, "  ")}, "\n")
}

// outputViewportKeyMap keeps arrow left/right free for paging.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func runBrowser(resp *app.SolveResponse) error {
	_, err := tea.NewProgram(newBrowseModel(resp), tea.WithAltScreen()).Run()
	return err
}

func (a *App) browse(resp *app.SolveResponse) error {
	if a.Browse != nil {
		return a.Browse(resp)
	}
	return runBrowser(resp)
}
