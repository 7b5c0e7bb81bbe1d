package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/discipline/factor"
	"github.com/wippyai/discipline/mapping"
	"github.com/wippyai/discipline/resource"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	gaugeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type opEntry struct {
	name string
	hint string
}

var ops = []opEntry{
	{"factorize", "number to factorize, e.g. 12"},
	{"makedict", "pairs as k=v,k2=v2 (use \"forbidden\" to trip the sentinel)"},
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

// lifecycleCounter tallies table events for the gauge.
type lifecycleCounter struct {
	acquired  int
	destroyed int
}

func (c *lifecycleCounter) OnResourceEvent(e resource.Event) {
	switch e.Type {
	case resource.EventAcquired:
		c.acquired++
	case resource.EventDestroyed:
		c.destroyed++
	}
}

type interactiveModel struct {
	table     *resource.Table
	counter   *lifecycleCounter
	input     textinput.Model
	result    string
	unlucky   uint64
	step      int
	selected  int
	state     modelState
	resultErr bool
}

func newInteractiveModel(unlucky uint64, step int) *interactiveModel {
	table := resource.NewTable()
	counter := &lifecycleCounter{}
	table.Subscribe(counter)

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 48

	return &interactiveModel{
		table:   table,
		counter: counter,
		input:   ti,
		unlucky: unlucky,
		step:    step,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if m.state != stateInputArgs || keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case "esc":
		if m.state != stateSelectOp {
			m.state = stateSelectOp
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.state {
	case stateSelectOp:
		switch keyMsg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(ops)-1 {
				m.selected++
			}
		case "enter":
			m.state = stateInputArgs
			m.input.SetValue("")
			m.input.Placeholder = ops[m.selected].hint
			m.input.Focus()
			return m, textinput.Blink
		}
	case stateInputArgs:
		if keyMsg.String() == "enter" {
			m.runOperation()
			m.state = stateShowResult
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case stateShowResult:
		if keyMsg.String() == "enter" {
			m.state = stateSelectOp
		}
	}

	return m, nil
}

func (m *interactiveModel) runOperation() {
	arg := strings.TrimSpace(m.input.Value())
	before := m.table.Live()

	var out string
	var err error
	switch ops[m.selected].name {
	case "factorize":
		out, err = m.factorize(arg)
	case "makedict":
		out, err = m.makedict(arg)
	}

	after := m.table.Live()
	if err != nil {
		m.resultErr = true
		m.result = fmt.Sprintf("%v\nlive resources: %d before call, %d after", err, before, after)
		return
	}
	m.resultErr = false
	m.result = out
}

func (m *interactiveModel) factorize(arg string) (string, error) {
	n, err := factor.ParseInput(arg)
	if err != nil {
		return "", err
	}
	owned, err := factor.Factorize(m.table, n,
		factor.WithUnluckyValue(m.unlucky),
		factor.WithGrowthStep(m.step),
	)
	if err != nil {
		return "", err
	}
	defer owned.Release()

	val, _ := owned.Value()
	seq := val.(*factor.Sequence)
	var b strings.Builder
	fmt.Fprintf(&b, "%d =", n)
	for i, r := range seq.Records() {
		if i > 0 {
			b.WriteString(" x")
		}
		if r.Multiplicity == 1 {
			fmt.Fprintf(&b, " %d", r.Factor)
		} else {
			fmt.Fprintf(&b, " %d^%d", r.Factor, r.Multiplicity)
		}
	}
	fmt.Fprintf(&b, "\nrecords: %d, growth events: %d", seq.Len(), seq.Grows())
	return b.String(), nil
}

func (m *interactiveModel) makedict(arg string) (string, error) {
	pairOwned := make([]resource.Owned, 0, 4)
	for _, kv := range strings.Split(arg, ",") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("bad pair %q, want k=v", kv)
		}
		k := m.table.Acquire(parseScalar(strings.TrimSpace(parts[0])))
		v := m.table.Acquire(parseScalar(strings.TrimSpace(parts[1])))
		pair := resource.NewTuple(m.table, k.Borrow(), v.Borrow())
		k.Release()
		v.Release()
		pairOwned = append(pairOwned, pair)
	}
	refs := make([]resource.Ref, len(pairOwned))
	for i, p := range pairOwned {
		refs[i] = p.Borrow()
	}
	items := resource.NewTuple(m.table, refs...)
	for _, p := range pairOwned {
		p.Release()
	}
	defer items.Release()

	owned, err := mapping.FromPairs(m.table, items.Borrow(), "interactive")
	if err != nil {
		return "", err
	}
	defer owned.Release()

	val, _ := owned.Value()
	dict := val.(*mapping.Dict)
	var b strings.Builder
	fmt.Fprintf(&b, "dict with %d entries:", dict.Len())
	for _, k := range dict.Keys() {
		ref, _ := dict.Get(k)
		v, _ := ref.Value()
		fmt.Fprintf(&b, "\n  %v: %v", k, v)
	}
	return b.String(), nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("discipline"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, op := range ops {
			line := "  " + op.name
			if i == m.selected {
				line = selectedStyle.Render("> " + op.name)
			} else {
				line = opStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("up/down: select, enter: pick, q: quit"))
	case stateInputArgs:
		b.WriteString(opStyle.Render(ops[m.selected].name) + "\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n" + helpStyle.Render("enter: run, esc: back"))
	case stateShowResult:
		b.WriteString(opStyle.Render(ops[m.selected].name) + "\n\n")
		if m.resultErr {
			b.WriteString(errorStyle.Render(m.result))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n" + helpStyle.Render("enter: back, q: quit"))
	}

	b.WriteString("\n\n")
	b.WriteString(gaugeStyle.Render(fmt.Sprintf(
		"table: %d live | %d acquired | %d destroyed",
		m.table.Live(), m.counter.acquired, m.counter.destroyed)))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(unlucky uint64, step int) error {
	m := newInteractiveModel(unlucky, step)
	defer m.table.Close()

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
