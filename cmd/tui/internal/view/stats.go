package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/vetclinic/internal/stats"
)

type StatsModel struct {
	CommonModel
	statsService *stats.Service

	dashboard *stats.Dashboard
	loading   bool
	err       error
}

func NewStatsModel(svc *stats.Service) StatsModel {
	return StatsModel{statsService: svc, loading: true}
}

func (m StatsModel) Title() string { return "Dashboard" }

func (m StatsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m StatsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatsMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m StatsModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 2)

	if m.loading {
		return style.Render("Loading dashboard...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	d := m.dashboard

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Patients", fmt.Sprint(d.Patients)),
		card("Open visits", fmt.Sprint(d.OpenCheckIns)),
		card("Seen today", fmt.Sprint(d.TodayCheckIns)),
		card("Revenue", FormatMoney(d.Revenue)),
		card("Outstanding", FormatMoney(d.Outstanding)),
	)

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Status", "Invoices", "Total", "Paid", "Balance")

	for _, st := range d.ByStatus {
		t.Row(st.Status, fmt.Sprint(st.Count), FormatMoney(st.Total), FormatMoney(st.Paid), FormatMoney(st.Balance))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		fmt.Sprintf("%d invoices, %d visits closed", d.Invoices, d.DoneCheckIns),
		t.Render(),
	))
}

func card(label, value string) string {
	return panelStyle.Width(18).MarginRight(1).Render(
		faintStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value),
	)
}

type loadStatsMsg struct {
	dashboard *stats.Dashboard
	err       error
}

func (m StatsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.statsService.Dashboard(ctx)

		return loadStatsMsg{dashboard: d, err: err}
	}
}
