package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type reviewState int

const (
	reviewStateTimeframe reviewState = iota
	reviewStateList
	reviewStateCategory
)

// ReviewModel lists unconfirmed transactions and lets the user confirm them,
// optionally moving each to another category first.
type ReviewModel struct {
	txService       *transaction.Service
	categoryService *category.Service

	state     reviewState
	timeframe TimeframePicker
	filter    transaction.ListFilter
	table     table.Model
	form      *huh.Form
	choice    *string

	dir           category.Directory
	uncategorized string
	queue         []*transaction.Transaction

	status  string
	loading bool
}

func NewReviewModel(txSvc *transaction.Service, catSvc *category.Service) ReviewModel {
	return ReviewModel{
		txService:       txSvc,
		categoryService: catSvc,
		timeframe:       NewTimeframePicker(TimeframeThisWeek),
		choice:          new(string),
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Description", Width: 36},
			{Title: "Amount", Width: 12},
			{Title: "Category", Width: 20},
			{Title: "Trust", Width: 14},
		}),
	}
}

func (m ReviewModel) Title() string { return "Review Transactions" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateList {
		return "a: confirm | c: change category | r: refresh | Esc: back"
	}

	return "Enter: select | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.timeframe.Init()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = msg.Filter()
		m.filter.Confirmed = new(false)
		m.state = reviewStateList
		m.loading = true
		m.status = "Loading..."

		return m, m.fetchCmd()

	case reviewLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.dir = msg.dir
		m.uncategorized = msg.uncategorized
		m.queue = msg.txs
		m.status = fmt.Sprintf("%d transactions to review", len(m.queue))
		m.refreshTable()
		m.table.Focus()

		return m, nil

	case confirmedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.status = successStyle("Confirmed " + msg.description)

		return m, m.fetchCmd()
	}

	switch m.state {
	case reviewStateTimeframe:
		return m.updateTimeframe(msg)
	case reviewStateList:
		return m.updateList(msg)
	case reviewStateCategory:
		return m.updateCategory(msg)
	}

	return m, nil
}

func (m ReviewModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc && m.timeframe.IsSelecting() {
		return m, Back
	}

	var cmd tea.Cmd
	m.timeframe, cmd = m.timeframe.Update(msg)

	return m, cmd
}

func (m ReviewModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.state = reviewStateTimeframe
			m.timeframe.Reset()
			m.status = ""

			return m, nil
		case "r":
			m.loading = true
			return m, m.fetchCmd()
		case "a":
			if tx := m.selected(); tx != nil && !m.loading {
				return m, m.confirmCmd(tx, nil)
			}

			return m, nil
		case "c":
			if tx := m.selected(); tx != nil && !m.loading {
				return m.startCategory(tx)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReviewModel) startCategory(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	*m.choice = tx.CategoryID
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category for " + tx.Description).
				Options(categoryOptions(m.dir)...).
				Value(m.choice),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = reviewStateCategory
	m.table.Blur()

	return m, m.form.Init()
}

func (m ReviewModel) updateCategory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = reviewStateList
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

	m.state = reviewStateList
	m.table.Focus()

	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	return m, m.confirmCmd(tx, new(*m.choice))
}

func (m ReviewModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.queue) {
		return nil
	}

	return m.queue[idx]
}

func (m *ReviewModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.queue))
	for _, tx := range m.queue {
		name := tx.CategoryID
		if c, ok := m.dir.Get(tx.CategoryID); ok {
			name = c.Name
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			FormatAmount(tx.Amount),
			name,
			TrustLabel(tx.Trust(m.uncategorized)),
		})
	}

	m.table.SetRows(rows)
}

func (m ReviewModel) View() string {
	switch m.state {
	case reviewStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframe.View())
	case reviewStateList, reviewStateCategory:
		content := lipgloss.JoinVertical(lipgloss.Left,
			m.status,
			framed(m.table.View()),
			TrustLegend(),
		)

		if m.state == reviewStateCategory {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().Padding(0, 2).Render(m.form.View()))
		}

		return lipgloss.NewStyle().Padding(1).Render(content)
	}

	return ""
}

// Messages

type reviewLoadedMsg struct {
	txs           []*transaction.Transaction
	dir           category.Directory
	uncategorized string
	err           error
}

type confirmedMsg struct {
	description string
	err         error
}

func (m ReviewModel) fetchCmd() tea.Cmd {
	txSvc, catSvc, filter := m.txService, m.categoryService, m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		dir, err := catSvc.Directory(ctx)
		if err != nil {
			return reviewLoadedMsg{err: err}
		}

		txs, err := txSvc.List(ctx, filter)
		if err != nil {
			return reviewLoadedMsg{err: err}
		}

		return reviewLoadedMsg{txs: txs, dir: dir, uncategorized: catSvc.UncategorizedID(dir)}
	}
}

func (m ReviewModel) confirmCmd(tx *transaction.Transaction, categoryID *string) tea.Cmd {
	svc := m.txService
	id, description := tx.ID, tx.Description

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return confirmedMsg{description: description, err: svc.Confirm(ctx, id, categoryID)}
	}
}
