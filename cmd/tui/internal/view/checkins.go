package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vetclinic/internal/checkin"
)

type checkInsState int

const (
	checkInsStateBrowse checkInsState = iota
	checkInsStateCreate
)

var checkInStatusFilters = []checkin.Status{"", checkin.StatusOpen, checkin.StatusDone}

// checkInDraft is the huh-bound form state. It lives behind a pointer so the
// bindings stay valid as the model is copied through Update.
type checkInDraft struct {
	patientID   string
	patientName string
	ownerName   string
	doctor      string
	date        string
	complaint   string
}

type CheckInsModel struct {
	CommonModel
	checkInService *checkin.Service

	state    checkInsState
	table    table.Model
	checkIns []*checkin.CheckIn
	form     *huh.Form
	draft    *checkInDraft

	statusIdx int
	loading   bool
	err       error
	status    string
}

func NewCheckInsModel(svc *checkin.Service) CheckInsModel {
	return CheckInsModel{
		checkInService: svc,
		table: newTable([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Patient", Width: 16},
			{Title: "Owner", Width: 18},
			{Title: "Doctor", Width: 14},
			{Title: "Complaint", Width: 28},
			{Title: "Status", Width: 6},
		}),
		loading: true,
	}
}

func (m CheckInsModel) Title() string { return "Check-ins" }

func (m CheckInsModel) ShortHelp() string {
	if m.state == checkInsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: status filter | t: toggle done | n: new | r: refresh"
}

func (m CheckInsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CheckInsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCheckInsMsg:
		m.loading = false
		m.err = msg.err
		m.checkIns = msg.checkIns
		m.refreshTable()

		return m, nil

	case checkInSavedMsg:
		m.state = checkInsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.message

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == checkInsStateCreate {
		return m.updateCreate(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(checkInStatusFilters)
			return m, m.loadCmd()
		case "t":
			if c := m.selected(); c != nil {
				next := checkin.StatusDone
				if c.Status == checkin.StatusDone {
					next = checkin.StatusOpen
				}

				return m, m.setStatusCmd(c.ID, next)
			}
		case "n":
			return m.enterCreate()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CheckInsModel) enterCreate() (tea.Model, tea.Cmd) {
	m.draft = &checkInDraft{date: FormatDate(time.Now())}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Patient ID").
				Description("Leave blank for an unregistered patient").
				Value(&m.draft.patientID),
			huh.NewInput().Title("Patient name").Value(&m.draft.patientName),
			huh.NewInput().Title("Owner").Value(&m.draft.ownerName),
		),
		huh.NewGroup(
			huh.NewInput().Title("Doctor").Value(&m.draft.doctor),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.draft.date).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("invalid date (YYYY-MM-DD)")
					}

					return nil
				}),
			huh.NewText().Title("Complaint").Value(&m.draft.complaint),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = checkInsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m CheckInsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = checkInsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	date, _ := time.Parse(time.DateOnly, m.draft.date)

	return m, m.createCmd(checkin.CreateParams{
		PatientID:   strings.TrimSpace(m.draft.patientID),
		PatientName: m.draft.patientName,
		OwnerName:   m.draft.ownerName,
		Doctor:      m.draft.doctor,
		Date:        date,
		Complaint:   m.draft.complaint,
	})
}

func (m CheckInsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading check-ins...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	filter := string(checkInStatusFilters[m.statusIdx])
	if filter == "" {
		filter = "all"
	}

	header := fmt.Sprintf("%d check-ins | [s] Status: %s", len(m.checkIns), activeStyle(filter))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderStyle.Render(m.table.View()),
	)

	switch {
	case m.state == checkInsStateCreate && m.form != nil:
		panel := panelStyle.Width(48).Render("New Check-in\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case m.selected() != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewDetail(m.selected()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CheckInsModel) viewDetail(c *checkin.CheckIn) string {
	patient := c.PatientName
	if c.PatientID != "" {
		patient += " (" + c.PatientID + ")"
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(patient),
		faintStyle.Render(c.ID),
		"",
	}

	for _, f := range []struct{ label, value string }{
		{"Subjective", c.Subjective},
		{"Objective", c.Objective},
		{"Assessment", c.Assessment},
		{"Plan", c.Plan},
		{"Procedures", c.Procedures},
		{"Medications", c.Medications},
		{"Follow-up", c.Followup},
	} {
		if f.value == "" {
			continue
		}

		lines = append(lines, f.label+": "+f.value)
	}

	return panelStyle.Width(40).Render(strings.Join(lines, "\n"))
}

func (m CheckInsModel) selected() *checkin.CheckIn {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.checkIns) {
		return nil
	}

	return m.checkIns[idx]
}

func (m *CheckInsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.checkIns))
	for _, c := range m.checkIns {
		rows = append(rows, table.Row{
			FormatDate(c.Date),
			c.PatientName,
			c.OwnerName,
			c.Doctor,
			c.Complaint,
			string(c.Status),
		})
	}

	m.table.SetRows(rows)
}

type loadCheckInsMsg struct {
	checkIns []*checkin.CheckIn
	err      error
}

func (m CheckInsModel) loadCmd() tea.Cmd {
	filter := checkin.ListFilter{Status: checkInStatusFilters[m.statusIdx]}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		checkIns, err := m.checkInService.List(ctx, filter)

		return loadCheckInsMsg{checkIns: checkIns, err: err}
	}
}

type checkInSavedMsg struct {
	message string
	err     error
}

func (m CheckInsModel) createCmd(params checkin.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.checkInService.Create(ctx, params)
		if err != nil {
			return checkInSavedMsg{err: err}
		}

		return checkInSavedMsg{message: fmt.Sprintf("Checked in %s on %s", c.PatientName, FormatDate(c.Date))}
	}
}

func (m CheckInsModel) setStatusCmd(id string, status checkin.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.checkInService.SetStatus(ctx, id, string(status)); err != nil {
			return checkInSavedMsg{err: err}
		}

		return checkInSavedMsg{message: fmt.Sprintf("Marked %s as %s", id, status)}
	}
}
