package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cvwatch/sunlight/cmd/ops/internal/view"
	"github.com/cvwatch/sunlight/internal/aggregate"
	aggregateStore "github.com/cvwatch/sunlight/internal/aggregate/store"
	"github.com/cvwatch/sunlight/internal/audit"
	auditStore "github.com/cvwatch/sunlight/internal/audit/store"
	"github.com/cvwatch/sunlight/internal/config"
	"github.com/cvwatch/sunlight/internal/database"
	"github.com/cvwatch/sunlight/internal/filing"
	filingStore "github.com/cvwatch/sunlight/internal/filing/store"
	"github.com/cvwatch/sunlight/internal/metrics"
	"github.com/cvwatch/sunlight/internal/profile"
	profileStore "github.com/cvwatch/sunlight/internal/profile/store"
)

type model struct {
	filingService    *filing.Service
	auditService     *audit.Service
	aggregateService *aggregate.Service

	currentView View

	linkView  view.LinkModel
	auditView view.AuditModel
}

type View int

const (
	ViewMenu  View = 0
	ViewLink  View = 1
	ViewAudit View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.NewRegistry())
	profileService := profile.NewService(profileStore.New(db))
	filingService := filing.NewService(filingStore.New(db))
	auditService := audit.NewService(auditStore.New(db), profileService)
	aggregateService := aggregate.NewService(aggregateStore.New(db), m)

	return model{
		filingService:    filingService,
		auditService:     auditService,
		aggregateService: aggregateService,
		currentView:      ViewMenu,
		linkView:         view.NewLinkModel(filingService, auditService),
		auditView:        view.NewAuditModel(auditService, aggregateService),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLink
				m.linkView = view.NewLinkModel(m.filingService, m.auditService)

				return m, m.linkView.Init()
			case "2":
				m.currentView = ViewAudit
				m.auditView = view.NewAuditModel(m.auditService, m.aggregateService)

				return m, m.auditView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLink:
		var newModel tea.Model
		newModel, cmd = m.linkView.Update(msg)
		m.linkView = newModel.(view.LinkModel)
	case ViewAudit:
		var newModel tea.Model
		newModel, cmd = m.auditView.Update(msg)
		m.auditView = newModel.(view.AuditModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Sunlight Ops\n\n" +
				"1. Link Unresolved Filings\n" +
				"2. Consistency Audit\n\n" +
				"q. Quit",
		)
	case ViewLink:
		return m.linkView.View()
	case ViewAudit:
		return m.auditView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
