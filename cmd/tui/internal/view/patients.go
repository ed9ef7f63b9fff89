package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type patientsState int

const (
	patientsStateBrowse patientsState = iota
	patientsStateSearch
	patientsStateCreate
)

var speciesFilters = []string{"", "Canine", "Feline", "Avian", "Other"}

type PatientsModel struct {
	CommonModel
	patientService *patient.Service

	state    patientsState
	table    table.Model
	patients []*patient.Patient
	search   textinput.Model
	form     *huh.Form

	speciesIdx int
	filter     patient.ListFilter
	loading    bool
	err        error
	status     string

	draft *patient.CreateParams // huh bindings point here
}

func NewPatientsModel(svc *patient.Service) PatientsModel {
	si := textinput.New()
	si.Placeholder = "name, owner, phone or id"
	si.Prompt = "Search: "
	si.Width = 40

	return PatientsModel{
		patientService: svc,
		table: newTable([]table.Column{
			{Title: "ID", Width: 12},
			{Title: "Name", Width: 16},
			{Title: "Species", Width: 10},
			{Title: "Breed", Width: 14},
			{Title: "Owner", Width: 20},
			{Title: "Phone", Width: 15},
		}),
		search:  si,
		loading: true,
	}
}

func (m PatientsModel) Title() string { return "Patients" }

func (m PatientsModel) ShortHelp() string {
	switch m.state {
	case patientsStateSearch:
		return "Enter: apply | Esc: cancel"
	case patientsStateCreate:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | t: species | n: new | x: delete | r: refresh"
}

func (m PatientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PatientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPatientsMsg:
		m.loading = false
		m.err = msg.err
		m.patients = msg.patients
		m.refreshTable()

		return m, nil

	case patientSavedMsg:
		m.state = patientsStateBrowse
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

	switch m.state {
	case patientsStateSearch:
		return m.updateSearch(msg)
	case patientsStateCreate:
		return m.updateCreate(msg)
	}

	return m.updateBrowse(msg)
}

func (m PatientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = patientsStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "t":
			m.speciesIdx = (m.speciesIdx + 1) % len(speciesFilters)
			m.filter.Type = speciesFilters[m.speciesIdx]

			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		case "x":
			if p := m.selected(); p != nil {
				return m, m.deleteCmd(p.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PatientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = patientsStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.state = patientsStateBrowse
			m.filter.Query = strings.TrimSpace(m.search.Value())
			m.search.Blur()
			m.table.Focus()

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m PatientsModel) enterCreate() (tea.Model, tea.Cmd) {
	m.draft = &patient.CreateParams{}

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", field)
			}

			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.draft.Name).Validate(required("name")),
			huh.NewInput().Title("Owner").Value(&m.draft.OwnerName).Validate(required("owner")),
			huh.NewSelect[string]().
				Title("Species").
				Options(huh.NewOptions("Canine", "Feline", "Avian", "Other")...).
				Value(&m.draft.Type),
			huh.NewInput().Title("Breed").Value(&m.draft.Breed),
		),
		huh.NewGroup(
			huh.NewInput().Title("Phone").Value(&m.draft.Phone),
			huh.NewInput().Title("Email").Value(&m.draft.Email),
			huh.NewInput().Title("Address").Value(&m.draft.Address),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = patientsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m PatientsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = patientsStateBrowse
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

	return m, m.createCmd(*m.draft)
}

func (m PatientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading patients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	species := speciesFilters[m.speciesIdx]
	if species == "" {
		species = "All"
	}

	query := m.filter.Query
	if query == "" {
		query = "-"
	}

	header := fmt.Sprintf("%d patients | [t] Species: %s | [/] Search: %s",
		len(m.patients), activeStyle(species), activeStyle(query))

	if m.state == patientsStateSearch {
		header = m.search.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderStyle.Render(m.table.View()),
	)

	if m.state == patientsStateCreate && m.form != nil {
		panel := panelStyle.Width(48).Render("New Patient\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m PatientsModel) selected() *patient.Patient {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.patients) {
		return nil
	}

	return m.patients[idx]
}

func (m *PatientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.patients))
	for _, p := range m.patients {
		rows = append(rows, table.Row{p.ID, p.Name, p.Type, p.Breed, p.OwnerName, p.Phone})
	}

	m.table.SetRows(rows)
}

type loadPatientsMsg struct {
	patients []*patient.Patient
	err      error
}

func (m PatientsModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		patients, err := m.patientService.List(ctx, filter)

		return loadPatientsMsg{patients: patients, err: err}
	}
}

type patientSavedMsg struct {
	message string
	err     error
}

func (m PatientsModel) createCmd(params patient.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.patientService.Create(ctx, params)
		if err != nil {
			return patientSavedMsg{err: err}
		}

		return patientSavedMsg{message: fmt.Sprintf("Registered %s as %s", p.Name, p.ID)}
	}
}

func (m PatientsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.patientService.Delete(ctx, id); err != nil {
			return patientSavedMsg{err: err}
		}

		return patientSavedMsg{message: "Deleted " + id}
	}
}
