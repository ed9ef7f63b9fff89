package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vetclinic/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/vetclinic/internal/app"
	"github.com/MrJamesThe3rd/vetclinic/internal/config"
)

type menuEntry struct {
	label string
	open  func(*app.Services) view.View
}

var menu = []menuEntry{
	{"Patients", func(s *app.Services) view.View { return view.NewPatientsModel(s.Patients) }},
	{"Check-ins", func(s *app.Services) view.View { return view.NewCheckInsModel(s.CheckIns) }},
	{"Invoices", func(s *app.Services) view.View { return view.NewInvoicesModel(s.Invoices) }},
	{"Dashboard", func(s *app.Services) view.View { return view.NewStatsModel(s.Stats) }},
	{"Import CSV", func(s *app.Services) view.View { return view.NewImportModel(s.Import) }},
	{"Export Invoices", func(s *app.Services) view.View { return view.NewExportModel(s.Export) }},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).PaddingLeft(1)
	helpStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
)

type model struct {
	clinic   string
	services *app.Services

	cursor  int
	current view.View // nil while the menu is shown
	width   int
	height  int
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := app.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	return model{
		clinic:   cfg.App.Name,
		services: app.NewServices(db, cfg),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	m.current = next.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menu)-1 {
			m.cursor++
		}
	case "enter":
		return m.open(m.cursor)
	default:
		if r := msg.Runes; len(r) == 1 && r[0] >= '1' && int(r[0]-'1') < len(menu) {
			return m.open(int(r[0] - '1'))
		}
	}

	return m, nil
}

func (m model) open(idx int) (tea.Model, tea.Cmd) {
	m.cursor = idx
	m.current = menu[idx].open(m.services)

	cmds := []tea.Cmd{m.current.Init()}
	if m.height > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.current != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.clinic+" / "+m.current.Title()),
			m.current.View(),
			helpStyle.Render(m.current.ShortHelp()),
		)
	}

	s := titleStyle.Render(m.clinic) + "\n\n"

	for i, entry := range menu {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		s += cursor + string(rune('1'+i)) + ". " + entry.label + "\n"
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quit")
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
