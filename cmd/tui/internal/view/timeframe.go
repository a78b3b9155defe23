package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// Timeframe is a preset date range, or a custom one typed by the user.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeNames = [...]string{
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if t < 0 || int(t) >= len(timeframeNames) {
		return "Unknown"
	}

	return timeframeNames[t]
}

// rangeFor returns the calendar days covered by tf relative to now. Weeks
// start on Monday.
func rangeFor(tf Timeframe, now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	switch tf {
	case TimeframeThisWeek:
		return now.AddDate(0, 0, 1-weekday), now
	case TimeframeLastWeek:
		end := now.AddDate(0, 0, -weekday)
		return end.AddDate(0, 0, -6), end
	case TimeframeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	case TimeframeLastMonth:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// wholeDays widens a range to midnight on start and the last second of end.
func wholeDays(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// Filter narrows a transaction listing to the selected range.
func (msg TimeframeSelectedMsg) Filter() transaction.ListFilter {
	if msg.All {
		return transaction.ListFilter{}
	}

	return transaction.ListFilter{StartDate: new(msg.Start), EndDate: new(msg.End)}
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

const (
	inputStart = iota
	inputEnd
)

// TimeframePicker selects the date range a listing is narrowed to.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	minFrame Timeframe
	now      func() time.Time

	inputs  [2]textinput.Model
	focused int

	err error
}

func newDateInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Placeholder = "YYYY-MM-DD"
	in.CharLimit = 10
	in.Width = 12
	in.Prompt = prompt

	return in
}

// NewTimeframePicker creates a picker offering minFrame and every option after it.
func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	return TimeframePicker{
		selected: minFrame,
		minFrame: minFrame,
		now:      time.Now,
		inputs: [2]textinput.Model{
			inputStart: newDateInput("Start Date: "),
			inputEnd:   newDateInput("End Date:   "),
		},
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	switch {
	case isKey && m.state == timeframeStateSelect:
		return m.updateSelect(key)
	case isKey:
		return m.updateCustom(key)
	case m.state == timeframeStateCustom:
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)

		return m, cmd
	}

	return m, nil
}

func selectRange(start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{Start: start, End: end}
	}
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.selected = max(m.selected-1, m.minFrame)
	case tea.KeyDown:
		m.selected = min(m.selected+1, TimeframeCustom)
	case tea.KeyEnter:
		switch m.selected {
		case TimeframeCustom:
			m.state = timeframeStateCustom
			m.focus(inputStart)

			return m, textinput.Blink
		case TimeframeAll:
			return m, func() tea.Msg { return TimeframeSelectedMsg{All: true} }
		}

		return m, selectRange(wholeDays(rangeFor(m.selected, m.now())))
	}

	return m, nil
}

func (m *TimeframePicker) focus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[i].Focus()
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focus(1 - m.focused)
		return m, textinput.Blink

	case "enter":
		start, end, err := m.customRange()
		m.err = err
		if err != nil {
			return m, nil
		}

		return m, selectRange(wholeDays(start, end))

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)

	return m, cmd
}

func (m TimeframePicker) customRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, m.inputs[inputStart].Value())
	if err != nil {
		return start, start, errors.New("invalid start date (YYYY-MM-DD)")
	}

	end, err := time.Parse(time.DateOnly, m.inputs[inputEnd].Value())
	if err != nil {
		return start, end, errors.New("invalid end date (YYYY-MM-DD)")
	}

	if end.Before(start) {
		return start, end, errors.New("end date is before start date")
	}

	return start, end, nil
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.state == timeframeStateCustom {
		b.WriteString("Enter Custom Range:\n\n")
		b.WriteString(m.inputs[inputStart].View() + "\n")
		b.WriteString(m.inputs[inputEnd].View() + "\n")
		b.WriteString("\n(Enter to confirm, Tab to switch, Esc to back)")
	} else {
		b.WriteString("Select Timeframe:\n\n")
		for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
			if tf == m.selected {
				b.WriteString(activeStyle("> "+tf.String()) + "\n")
				continue
			}
			b.WriteString("  " + tf.String() + "\n")
		}
		b.WriteString("\n(Enter to select, Esc to back)")
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	return b.String()
}

// IsSelecting reports whether the picker shows the preset list rather than
// the custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = m.minFrame
	m.err = nil
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focused = inputStart
}
