package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cvwatch/sunlight/internal/aggregate"
	"github.com/cvwatch/sunlight/internal/audit"
)

// maxReportRows caps each report section so a large backlog stays readable.
const maxReportRows = 10

// AuditModel runs the consistency audit and renders its findings. The "c" key
// triggers a full recompute sweep of the cached filing totals.
type AuditModel struct {
	CommonModel
	auditService     *audit.Service
	aggregateService *aggregate.Service

	report  *audit.Report
	loading bool
	err     error
	status  string
}

func NewAuditModel(auditSvc *audit.Service, aggSvc *aggregate.Service) AuditModel {
	return AuditModel{
		auditService:     auditSvc,
		aggregateService: aggSvc,
		loading:          true,
	}
}

func (m AuditModel) Title() string { return "Consistency Audit" }
func (m AuditModel) ShortHelp() string {
	return "Esc: back | r: re-run | c: recompute totals"
}

func (m AuditModel) Init() tea.Cmd {
	return m.runAuditCmd()
}

func (m AuditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case auditReportMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.report = msg.report
		return m, nil

	case recomputeMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error recomputing: %v", msg.err)
			return m, nil
		}
		if msg.drifted == 0 {
			m.status = "Recompute finished: all cached totals consistent."
		} else {
			m.status = fmt.Sprintf("Recompute finished: corrected %d drifted filings.", msg.drifted)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""
			return m, m.runAuditCmd()
		case "c":
			m.status = "Recomputing totals..."
			return m, m.recomputeCmd()
		}
	}

	return m, nil
}

func (m AuditModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Running audit...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.report == nil {
		return ""
	}

	r := m.report

	var b strings.Builder
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Filings: %d | Exact matches: %d | Unmatched: %d | Ambiguous names: %d | Duplicate groups: %d\n",
		r.FilingCount, r.ExactCount, len(r.Unmatched), len(r.Ambiguous), len(r.PotentialDuplicates))

	if len(r.Unmatched) > 0 {
		b.WriteString("\n" + sectionStyle("Unmatched filings") + "\n")
		for i, u := range r.Unmatched {
			if i >= maxReportRows {
				fmt.Fprintf(&b, "  ... and %d more\n", len(r.Unmatched)-maxReportRows)
				break
			}
			fmt.Fprintf(&b, "  %s (%s)\n", u.FilerName, u.SourceReference)
			for _, c := range u.Suggestions {
				fmt.Fprintf(&b, "    candidate: %s\n", c.Name)
			}
		}
	}

	if len(r.Ambiguous) > 0 {
		b.WriteString("\n" + sectionStyle("Ambiguous names") + "\n")
		for i, a := range r.Ambiguous {
			if i >= maxReportRows {
				fmt.Fprintf(&b, "  ... and %d more\n", len(r.Ambiguous)-maxReportRows)
				break
			}
			fmt.Fprintf(&b, "  %q matches %d profiles\n", a.Name, len(a.ProfileIDs))
		}
	}

	if len(r.PotentialDuplicates) > 0 {
		b.WriteString("\n" + sectionStyle("Potential duplicate filings") + "\n")
		for i, d := range r.PotentialDuplicates {
			if i >= maxReportRows {
				fmt.Fprintf(&b, "  ... and %d more\n", len(r.PotentialDuplicates)-maxReportRows)
				break
			}
			fmt.Fprintf(&b, "  %q across %d filings\n", d.FilerName, len(d.FilingIDs))
		}
	}

	if len(r.Unmatched) == 0 && len(r.Ambiguous) == 0 && len(r.PotentialDuplicates) == 0 {
		b.WriteString("\nNo anomalies found.\n")
	}

	content := b.String()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func sectionStyle(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(s)
}

// Messages

type auditReportMsg struct {
	report *audit.Report
	err    error
}

func (m AuditModel) runAuditCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		report, err := m.auditService.Run(ctx)
		return auditReportMsg{report: report, err: err}
	}
}

type recomputeMsg struct {
	drifted int
	err     error
}

func (m AuditModel) recomputeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		drifted, err := m.aggregateService.RecomputeAll(ctx)
		return recomputeMsg{drifted: drifted, err: err}
	}
}
