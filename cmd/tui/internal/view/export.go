package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendly/internal/export"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStateOptions
	exportStateWriting
	exportStateDone
)

type exportOptions struct {
	path          string
	confirmedOnly bool
}

// ExportModel writes stored transactions to a CSV file that the import
// wizard can read back.
type ExportModel struct {
	exportService *export.Service

	state     exportState
	timeframe TimeframePicker
	filter    transaction.ListFilter
	opts      *exportOptions
	form      *huh.Form
	spinner   spinner.Model

	result exportResultMsg
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		timeframe:     NewTimeframePicker(TimeframeThisMonth),
		opts:          &exportOptions{},
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export CSV" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateDone {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.timeframe.Init()
}

// defaultExportPath names the file after the selected range.
func defaultExportPath(msg TimeframeSelectedMsg) string {
	if msg.All {
		return filepath.Join("exports", "transactions_all.csv")
	}

	return filepath.Join("exports", fmt.Sprintf("transactions_%s_%s.csv", FormatDate(msg.Start), FormatDate(msg.End)))
}

func validateExportPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New("path is required")
	}

	if !strings.EqualFold(filepath.Ext(p), ".csv") {
		return errors.New("file must end in .csv")
	}

	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = msg.Filter()
		m.opts.path = defaultExportPath(msg)
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Output file").
					Description("Missing directories are created").
					Validate(validateExportPath).
					Value(&m.opts.path),
				huh.NewConfirm().
					Title("Only confirmed transactions?").
					Value(&m.opts.confirmedOnly),
			),
		).WithWidth(60).WithShowHelp(false)
		m.state = exportStateOptions

		return m, m.form.Init()

	case exportResultMsg:
		m.state = exportStateDone
		m.result = msg

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			switch {
			case m.state == exportStateOptions:
				m.state = exportStateTimeframe
				m.timeframe.Reset()

				return m, nil
			case m.state == exportStateDone,
				m.state == exportStateTimeframe && m.timeframe.IsSelecting():
				return m, Back
			}
		}
	}

	var cmd tea.Cmd

	switch m.state {
	case exportStateTimeframe:
		m.timeframe, cmd = m.timeframe.Update(msg)
	case exportStateOptions:
		form, formCmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, formCmd
		}

		if m.opts.confirmedOnly {
			m.filter.Confirmed = new(true)
		}

		m.state = exportStateWriting
		cmd = tea.Batch(m.spinner.Tick, m.writeCmd())
	case exportStateWriting:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	return m, cmd
}

func (m ExportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case exportStateTimeframe:
		return pad.Render(m.timeframe.View())
	case exportStateOptions:
		return pad.Render(m.form.View())
	case exportStateWriting:
		return pad.Render(m.spinner.View() + " Writing CSV...")
	case exportStateDone:
		if m.result.err != nil {
			return pad.Render(errorStyle(fmt.Sprintf("Error: %v", m.result.err)))
		}

		return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
			successStyle("Export complete"),
			"",
			fmt.Sprintf("%d transactions written to %s", m.result.count, m.result.path),
		))
	}

	return ""
}

type exportResultMsg struct {
	path  string
	count int
	err   error
}

func (m ExportModel) writeCmd() tea.Cmd {
	svc, filter, path := m.exportService, m.filter, m.opts.path

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		n, err := writeExport(ctx, svc, filter, path)

		return exportResultMsg{path: path, count: n, err: err}
	}
}

func writeExport(ctx context.Context, svc *export.Service, filter transaction.ListFilter, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	n, err := svc.WriteCSV(ctx, f, filter)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close file: %w", closeErr)
	}

	return n, err
}
