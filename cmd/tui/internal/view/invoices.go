package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
)

var invoiceStatusFilters = []invoice.Status{"", invoice.StatusOutstanding, invoice.StatusPaid, invoice.StatusDraft}

var invoiceSorts = []invoice.Sort{
	invoice.SortDateDesc,
	invoice.SortDateAsc,
	invoice.SortTotalDesc,
	invoice.SortBalanceDesc,
}

type InvoicesModel struct {
	CommonModel
	invoiceService *invoice.Service

	table    table.Model
	invoices []*invoice.Invoice

	picker     TimeframePicker
	picking    bool
	filter     invoice.ListFilter
	rangeLabel string
	statusIdx  int
	sortIdx    int

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(svc *invoice.Service) InvoicesModel {
	return InvoicesModel{
		invoiceService: svc,
		table: newTable([]table.Column{
			{Title: "Ref", Width: 16},
			{Title: "Date", Width: 10},
			{Title: "Patient", Width: 16},
			{Title: "Owner", Width: 18},
			{Title: "Total", Width: 10},
			{Title: "Balance", Width: 10},
			{Title: "Status", Width: 11},
		}),
		picker:     NewTimeframePicker(TimeframeAll),
		rangeLabel: TimeframeAll.String(),
		filter:     invoice.ListFilter{Sort: invoiceSorts[0]},
		loading:    true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.picking {
		return "Enter: select | Esc: cancel"
	}

	return "Esc: back | s: status | o: sort | f: period | p: mark paid | x: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		m.err = msg.err
		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.message

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.picking = false
		m.filter.From = msg.Start
		m.filter.To = msg.End
		m.rangeLabel = msg.Label
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.picking {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.picking = false
			m.table.Focus()

			return m, nil
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(invoiceStatusFilters)
			m.filter.Status = invoiceStatusFilters[m.statusIdx]

			return m, m.loadCmd()
		case "o":
			m.sortIdx = (m.sortIdx + 1) % len(invoiceSorts)
			m.filter.Sort = invoiceSorts[m.sortIdx]

			return m, m.loadCmd()
		case "f":
			m.picking = true
			m.picker.Reset()
			m.table.Blur()

			return m, nil
		case "p":
			if inv := m.selected(); inv != nil && inv.Status != invoice.StatusPaid {
				return m, m.markPaidCmd(inv.Ref)
			}
		case "x":
			if inv := m.selected(); inv != nil {
				return m, m.deleteCmd(inv.Ref)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.picking {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	status := string(m.filter.Status)
	if status == "" {
		status = "All"
	}

	header := fmt.Sprintf("%d invoices | [s] Status: %s | [o] Sort: %s | [f] Period: %s",
		len(m.invoices), activeStyle(status), activeStyle(string(m.filter.Sort)), activeStyle(m.rangeLabel))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderStyle.Render(m.table.View()),
	)

	if inv := m.selected(); inv != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewDetail(inv))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m InvoicesModel) viewDetail(inv *invoice.Invoice) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(inv.Ref))
	fmt.Fprintf(&sb, "\n%s (%s), %s\n\n", inv.PatientName, inv.PatientType, inv.OwnerName)

	for _, item := range inv.Items {
		fmt.Fprintf(&sb, "%s x %s  %s\n", item.Quantity.String(), item.Name, FormatMoney(item.Total))
	}

	fmt.Fprintf(&sb, "\nSubtotal  %s\n", FormatMoney(inv.Subtotal))
	fmt.Fprintf(&sb, "Discount  %s\n", FormatMoney(inv.Discount))
	fmt.Fprintf(&sb, "Total     %s\n", FormatMoney(inv.Total))
	fmt.Fprintf(&sb, "Paid      %s\n", FormatMoney(inv.Paid))
	fmt.Fprintf(&sb, "Balance   %s", FormatMoney(inv.Balance))

	if inv.Method != "" {
		sb.WriteString("\n\n" + faintStyle.Render("Method: "+inv.Method))
	}

	return panelStyle.Width(42).Render(sb.String())
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.Ref,
			FormatDate(inv.Date),
			inv.PatientName,
			inv.OwnerName,
			FormatMoney(inv.Total),
			FormatMoney(inv.Balance),
			string(inv.Status),
		})
	}

	m.table.SetRows(rows)
}

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoiceService.List(ctx, filter)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type invoiceSavedMsg struct {
	message string
	err     error
}

func (m InvoicesModel) markPaidCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.SetStatus(ctx, ref, invoice.PaymentParams{Status: string(invoice.StatusPaid)})
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{message: fmt.Sprintf("%s paid in full (%s)", inv.Ref, FormatMoney(inv.Paid))}
	}
}

func (m InvoicesModel) deleteCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.Delete(ctx, ref); err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{message: "Deleted " + ref}
	}
}
