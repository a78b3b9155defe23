package view

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/importer"
	"github.com/MrJamesThe3rd/spendly/internal/importer/csvtext"
)

const importTimeout = 2 * time.Minute

// noColumn is the select value for "no category column".
const noColumn = "\x00"

type importState int

const (
	importStateFilePick importState = iota
	importStateLoading
	importStateMapping
	importStatePreview
	importStateReassign
	importStateSubmitting
	importStateResult
)

// mappingForm holds values bound to the mapping form. It lives behind a
// pointer so huh keeps writing to the same fields as the model is copied.
type mappingForm struct {
	date, description, amount, category string
	defaultCategory, defaultAccount     string
	reassign                            string
}

type ImportModel struct {
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	form       *huh.Form
	binding    *mappingForm
	table      table.Model

	text       string
	headers    csvtext.Row
	snap       importer.Snapshot
	candidates []importer.Candidate

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
		binding:       &mappingForm{},
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Description", Width: 36},
			{Title: "Amount", Width: 12},
			{Title: "Category", Width: 20},
			{Title: "Trust", Width: 14},
		}),
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "c: change category | Enter: import | Esc: remap"
	case importStateMapping, importStateReassign:
		return "Enter: confirm | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.text = msg.text
		m.headers = msg.headers
		m.snap = msg.snap
		m.status = ""
		m.guessMapping()

		return m.startMapping()

	case submitResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.status = submitSummary(msg.res, msg.err)

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateMapping:
		return m.updateMapping(msg)
	case importStatePreview:
		return m.updatePreview(msg)
	case importStateReassign:
		return m.updateReassign(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateMapping, importStateResult:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	case importStatePreview:
		return m.startMapping()
	case importStateReassign:
		m.state = importStatePreview
		m.table.Focus()

		return m, nil
	case importStateLoading, importStateSubmitting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateLoading
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.loadFileCmd(path)
	}

	return m, cmd
}

// guessMapping preselects header cells whose name matches a field.
func (m *ImportModel) guessMapping() {
	pick := func(names ...string) string {
		for _, n := range names {
			if i := csvtext.FindIndex(m.headers, n); i >= 0 {
				return m.headers[i]
			}
		}

		if len(m.headers) > 0 {
			return m.headers[0]
		}

		return ""
	}

	b := m.binding
	b.date = pick("date", "data", "booking date")
	b.description = pick("description", "descrizione", "details")
	b.amount = pick("amount", "importo")

	b.category = noColumn
	for _, n := range []string{"category", "categoria"} {
		if i := csvtext.FindIndex(m.headers, n); i >= 0 {
			b.category = m.headers[i]
		}
	}

	if b.defaultCategory == "" || !inDirectory(m.snap.Categories, b.defaultCategory) {
		b.defaultCategory = m.snap.UncategorizedID
		if b.defaultCategory == "" && len(m.snap.Categories) > 0 {
			b.defaultCategory = m.snap.Categories[0].ID
		}
	}

	if b.defaultAccount == "" && len(m.snap.Accounts) > 0 {
		b.defaultAccount = m.snap.Accounts[0].ID
	}
}

func inDirectory(dir category.Directory, id string) bool {
	_, ok := dir.Get(id)
	return ok
}

func (m ImportModel) startMapping() (tea.Model, tea.Cmd) {
	headerOpts := huh.NewOptions([]string(m.headers)...)

	categoryColumnOpts := append([]huh.Option[string]{huh.NewOption("(no column)", noColumn)}, headerOpts...)

	accountOpts := make([]huh.Option[string], 0, len(m.snap.Accounts))
	for _, a := range m.snap.Accounts {
		accountOpts = append(accountOpts, huh.NewOption(a.Name, a.ID))
	}

	b := m.binding
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Date column").Options(headerOpts...).Value(&b.date),
			huh.NewSelect[string]().Title("Description column").Options(headerOpts...).Value(&b.description),
			huh.NewSelect[string]().Title("Amount column").Options(headerOpts...).Value(&b.amount),
			huh.NewSelect[string]().Title("Category column").Options(categoryColumnOpts...).Value(&b.category),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default category").Options(categoryOptions(m.snap.Categories)...).Value(&b.defaultCategory),
			huh.NewSelect[string]().Title("Default account").Options(accountOpts...).Value(&b.defaultAccount),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = importStateMapping

	return m, m.form.Init()
}

func categoryOptions(dir category.Directory) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(dir))
	for _, c := range dir {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	return opts
}

func (m ImportModel) mapping() importer.ColumnMapping {
	b := m.binding

	cm := importer.ColumnMapping{
		DateColumn:        b.date,
		DescriptionColumn: b.description,
		AmountColumn:      b.amount,
		DefaultCategoryID: b.defaultCategory,
		DefaultAccountID:  b.defaultAccount,
	}

	if b.category != noColumn {
		cm.CategoryColumn = new(b.category)
	}

	return cm
}

func (m ImportModel) updateMapping(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	candidates, err := m.importService.Preview(m.text, m.mapping(), m.snap)
	if err != nil {
		// Structural errors keep the session: the user fixes the mapping.
		m.status = errorStyle(fmt.Sprintf("Error: %v", err))
		return m.startMapping()
	}

	m.candidates = candidates
	m.status = fmt.Sprintf("%d transactions ready to import", len(candidates))
	m.state = importStatePreview
	m.refreshTable()
	m.table.Focus()

	return m, nil
}

func (m ImportModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "c":
			return m.startReassign()
		case "enter":
			if len(m.candidates) == 0 {
				return m, nil
			}

			m.state = importStateSubmitting
			m.status = fmt.Sprintf("Importing %d transactions...", len(m.candidates))

			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ImportModel) startReassign() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.candidates) {
		return m, nil
	}

	m.binding.reassign = m.candidates[idx].CategoryID
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category for " + m.candidates[idx].Description).
				Options(categoryOptions(m.snap.Categories)...).
				Value(&m.binding.reassign),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = importStateReassign
	m.table.Blur()

	return m, m.form.Init()
}

func (m ImportModel) updateReassign(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	idx := m.table.Cursor()
	if idx >= 0 && idx < len(m.candidates) {
		m.candidates[idx] = m.candidates[idx].Reassign(m.binding.reassign, m.snap.UncategorizedID)
	}

	m.state = importStatePreview
	m.refreshTable()
	m.table.Focus()

	return m, nil
}

func (m *ImportModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.candidates))
	for _, c := range m.candidates {
		categoryName := c.CategoryID
		if cat, ok := m.snap.Categories.Get(c.CategoryID); ok {
			categoryName = cat.Name
		}

		rows = append(rows, table.Row{c.Date, c.Description, c.Amount, categoryName, TrustLabel(c.TrustState)})
	}

	m.table.SetRows(rows)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a CSV file to import:\n\n%s", m.filePicker.View()),
		)
	case importStateLoading, importStateSubmitting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateMapping:
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, "Map columns", m.status, "", m.form.View()),
		)
	case importStatePreview, importStateReassign:
		content := lipgloss.JoinVertical(lipgloss.Left,
			m.status,
			framed(m.table.View()),
			TrustLegend(),
		)

		if m.state == importStateReassign {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().Padding(0, 2).Render(m.form.View()))
		}

		return lipgloss.NewStyle().Padding(1).Render(content)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle(m.status) + "\n\n(Esc to go back)")
}

func submitSummary(res importer.SubmitResult, err error) string {
	var batchErr *importer.BatchError
	if errors.As(err, &batchErr) {
		return fmt.Sprintf("Import failed: %s\n%d of %d transactions were stored.",
			batchErr.Error(), len(res.Created), len(res.Created)+len(res.Failures))
	}

	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	return fmt.Sprintf("Imported %d transactions.", len(res.Created))
}

// Messages

type fileLoadedMsg struct {
	text    string
	headers csvtext.Row
	snap    importer.Snapshot
	err     error
}

type submitResultMsg struct {
	res importer.SubmitResult
	err error
}

// declaredType is the media type a file picked from disk declares through
// its extension.
func declaredType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return "text/csv"
	}

	return mime.TypeByExtension(ext)
}

func (m ImportModel) loadFileCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		if err := importer.CheckMediaType(declaredType(path)); err != nil {
			return fileLoadedMsg{err: err}
		}

		f, err := os.Open(path)
		if err != nil {
			return fileLoadedMsg{err: err}
		}
		defer f.Close()

		text, err := svc.ReadUpload(f)
		if err != nil {
			return fileLoadedMsg{err: err}
		}

		headers, err := svc.Headers(text)
		if err != nil {
			return fileLoadedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := svc.Snapshot(ctx)
		if err != nil {
			return fileLoadedMsg{err: err}
		}

		return fileLoadedMsg{text: text, headers: headers, snap: snap}
	}
}

func (m ImportModel) submitCmd() tea.Cmd {
	svc := m.importService
	candidates := append([]importer.Candidate(nil), m.candidates...)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := svc.Submit(ctx, candidates)

		return submitResultMsg{res: res, err: err}
	}
}
