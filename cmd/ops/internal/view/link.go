package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/audit"
	"github.com/cvwatch/sunlight/internal/filing"
)

type linkState int

const (
	linkStateBrowse linkState = iota
	linkStateChoose
)

// LinkModel walks the unresolved filings queue. Linking a filing to a profile
// here is the only override for a filer name the resolver could not match.
type LinkModel struct {
	CommonModel
	filingService *filing.Service
	auditService  *audit.Service

	state      linkState
	table      table.Model
	filings    []*filing.Filing
	candidates []audit.Candidate
	form       *huh.Form

	loading bool
	err     error
	status  string

	// Form binding: selected profile ID, empty means skip.
	formChoice string
}

func NewLinkModel(filingSvc *filing.Service, auditSvc *audit.Service) LinkModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Filer Name", Width: 36},
		{Title: "Contributions", Width: 14},
		{Title: "Expenditures", Width: 14},
		{Title: "Source", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return LinkModel{
		filingService: filingSvc,
		auditService:  auditSvc,
		table:         t,
	}
}

func (m LinkModel) Title() string { return "Link Unresolved Filings" }
func (m LinkModel) ShortHelp() string {
	if m.state == linkStateChoose {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | enter: link | r: refresh"
}

func (m LinkModel) Init() tea.Cmd {
	return m.loadFilingsCmd()
}

func (m LinkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadFilingsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.filings = msg.filings
		m.refreshTable()
		return m, nil

	case suggestionsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading candidates: %v", msg.err)
			return m, nil
		}
		return m.enterChooseMode(msg.candidates)

	case linkSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error linking: %v", msg.err)
		} else {
			m.status = "Filing linked."
		}
		m.state = linkStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadFilingsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case linkStateBrowse:
		return m.updateBrowse(msg)
	case linkStateChoose:
		return m.updateChoose(msg)
	}

	return m, nil
}

func (m LinkModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadFilingsCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.filings) {
				return m, nil
			}
			m.status = ""
			return m, m.loadSuggestionsCmd(m.filings[idx].FilerName)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LinkModel) enterChooseMode(candidates []audit.Candidate) (tea.Model, tea.Cmd) {
	m.candidates = candidates
	m.formChoice = ""

	options := make([]huh.Option[string], 0, len(candidates)+1)
	for _, c := range candidates {
		options = append(options, huh.NewOption(c.Name, c.ProfileID.String()))
	}
	options = append(options, huh.NewOption("Skip", ""))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("profile").
				Title("Link to profile").
				Options(options...).
				Value(&m.formChoice),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = linkStateChoose
	m.table.Blur()
	return m, m.form.Init()
}

func (m LinkModel) updateChoose(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = linkStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.formChoice == "" {
		m.state = linkStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.saveCmd()
}

func (m LinkModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading unresolved filings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.filings) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No unresolved filings. Everything is linked.")
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == linkStateChoose && m.form != nil {
		idx := m.table.Cursor()
		detail := ""
		if idx >= 0 && idx < len(m.filings) {
			f := m.filings[idx]
			detail = fmt.Sprintf("Filer: %s\nSource: %s", f.FilerName, f.SourceReference)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(fmt.Sprintf("Link Filing\n\n%s\n\n%s", detail, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LinkModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.filings))
	for _, f := range m.filings {
		rows = append(rows, table.Row{
			FormatDate(f.CreatedAt),
			f.FilerName,
			FormatAmount(f.TotalContributions),
			FormatAmount(f.TotalExpenditures),
			f.SourceReference,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadFilingsMsg struct {
	filings []*filing.Filing
	err     error
}

func (m LinkModel) loadFilingsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filings, err := m.filingService.Unresolved(ctx)
		return loadFilingsMsg{filings: filings, err: err}
	}
}

type suggestionsMsg struct {
	candidates []audit.Candidate
	err        error
}

func (m LinkModel) loadSuggestionsCmd(filerName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		candidates, err := m.auditService.Suggest(ctx, filerName)
		return suggestionsMsg{candidates: candidates, err: err}
	}
}

type linkSaveMsg struct {
	err error
}

func (m LinkModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.filings) {
		return nil
	}

	filingID := m.filings[idx].ID
	profileID, err := uuid.Parse(m.formChoice)
	if err != nil {
		return func() tea.Msg { return linkSaveMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return linkSaveMsg{err: m.filingService.LinkProfile(ctx, filingID, profileID)}
	}
}
