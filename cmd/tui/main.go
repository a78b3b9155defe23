package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendly/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendly/internal/account"
	accountStore "github.com/MrJamesThe3rd/spendly/internal/account/store"
	"github.com/MrJamesThe3rd/spendly/internal/category"
	categoryStore "github.com/MrJamesThe3rd/spendly/internal/category/store"
	"github.com/MrJamesThe3rd/spendly/internal/config"
	"github.com/MrJamesThe3rd/spendly/internal/database"
	"github.com/MrJamesThe3rd/spendly/internal/export"
	"github.com/MrJamesThe3rd/spendly/internal/importer"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
	txStore "github.com/MrJamesThe3rd/spendly/internal/transaction/store"
)

type model struct {
	appName         string
	txService       *transaction.Service
	categoryService *category.Service
	importService   *importer.Service
	exportService   *export.Service

	currentView View

	importView view.ImportModel
	reviewView view.ReviewModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewImport View = 1
	ViewReview View = 2
	ViewExport View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	cancel()

	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	catSvc := category.NewService(categoryStore.New(db), cfg.Import.UncategorizedName)
	accSvc := account.NewService(accountStore.New(db))
	impSvc := importer.NewService(txSvc, catSvc, accSvc, importer.Options{
		Placeholder:    cfg.Import.PlaceholderPrefix,
		MaxUploadBytes: cfg.Import.MaxUploadBytes,
		Concurrency:    cfg.Import.SubmitConcurrency,
	})
	expSvc := export.NewService(txSvc, catSvc, accSvc)

	return model{
		appName:         cfg.App.Name,
		txService:       txSvc,
		categoryService: catSvc,
		importService:   impSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
		importView:      view.NewImportModel(impSvc),
		reviewView:      view.NewReviewModel(txSvc, catSvc),
		exportView:      view.NewExportModel(expSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.txService, m.categoryService)

				return m, m.reviewView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Import CSV\n" +
				"2. Review & Confirm\n" +
				"3. Export CSV\n\n" +
				"q. Quit",
		)
	case ViewImport:
		current = m.importView
	case ViewReview:
		current = m.reviewView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	header := lipgloss.NewStyle().Bold(true).Render(current.Title())
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, header, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
