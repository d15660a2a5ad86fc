// Copyright 2025 XintLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@xintlabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/errors"
)

const (
	// scrollbackCap bounds the retained output history. Oldest lines
	// are evicted first.
	scrollbackCap = 1200

	// doublePaneMinWidth is the terminal width at which the Commands
	// tab shows the menu and output side by side.
	doublePaneMinWidth = 110
)

type tabID int

const (
	tabCommands tabID = iota
	tabOutput
	tabHelp
)

var tabNames = []string{"Commands", "Output", "Help"}

// focusMode says which widget owns key input.
type focusMode int

const (
	focusMenu focusMode = iota
	focusPrompt
	focusPalette
	focusFilter
)

// sessionState keeps last-used values so prompts can pre-fill them.
// It lives for one dashboard session and is never persisted.
type sessionState struct {
	lastQuery    string
	lastLocation string
	lastUsername string
	lastTweetID  string
	lastURL      string
	lastCommand  string
	lastStatus   string
}

// promptSpec describes the single input a menu command needs before
// it can run.
type promptSpec struct {
	field    string // session field: query, location, username, tweet_id, url
	label    string
	required bool
}

// promptForKey returns the prompt a menu key needs, if any.
func promptForKey(key string) (promptSpec, bool) {
	switch key {
	case "1":
		return promptSpec{field: "query", label: "Search query", required: true}, true
	case "2":
		return promptSpec{field: "location", label: "Location (empty for worldwide)"}, true
	case "3":
		return promptSpec{field: "username", label: "Username", required: true}, true
	case "4":
		return promptSpec{field: "tweet_id", label: "Tweet ID or URL", required: true}, true
	case "5":
		return promptSpec{field: "url", label: "Article URL", required: true}, true
	default:
		return promptSpec{}, false
	}
}

type tuiModel struct {
	globals GlobalFlags
	theme   tuiTheme

	session sessionState

	tab      tabID
	focus    focusMode
	selected int

	output []runnerLine
	filter string

	pendingKey string // menu key waiting on its prompt

	run     *commandRun
	running bool
	status  string

	input   textinput.Model
	outView viewport.Model
	spin    spinner.Model

	width  int
	height int
	ready  bool
}

type runnerLineMsg struct{ line runnerLine }

type runnerDoneMsg struct{ result runnerResult }

func newTUIModel(globals GlobalFlags, themeName string) tuiModel {
	input := textinput.New()
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Line

	theme := themeByName(themeName)
	sp.Style = theme.spinner

	return tuiModel{
		globals: globals,
		theme:   theme,
		status:  "ready",
		input:   input,
		outView: viewport.New(0, 0),
		spin:    sp,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return m.spin.Tick
}

// waitRunnerEvent blocks on the child's output channel and converts
// the next event into a message. Lines arrive until the channel
// closes; the final result follows on Done.
func waitRunnerEvent(run *commandRun) tea.Cmd {
	return func() tea.Msg {
		if line, ok := <-run.Lines; ok {
			return runnerLineMsg{line: line}
		}
		return runnerDoneMsg{result: <-run.Done}
	}
}

// appendOutput adds one line to the scrollback, trimming trailing
// whitespace and evicting the oldest lines beyond the cap.
func appendOutput(lines []runnerLine, line runnerLine) []runnerLine {
	line.Text = strings.TrimRight(line.Text, " \t\r")
	lines = append(lines, line)
	if len(lines) > scrollbackCap {
		lines = lines[len(lines)-scrollbackCap:]
	}
	return lines
}

// filterOutput returns the display text of lines matching the filter
// (case-insensitive substring; empty filter keeps everything).
func filterOutput(lines []runnerLine, filter string) []string {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if needle != "" && !strings.Contains(strings.ToLower(l.Text), needle) {
			continue
		}
		text := l.Text
		if l.Stderr {
			text = "! " + text
		}
		out = append(out, text)
	}
	return out
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case runnerLineMsg:
		m.output = appendOutput(m.output, msg.line)
		m.refreshViewport()
		m.outView.GotoBottom()
		return m, waitRunnerEvent(m.run)

	case runnerDoneMsg:
		m.running = false
		m.status = msg.result.Status
		m.session.lastStatus = msg.result.Status
		if m.run != nil {
			m.session.lastCommand = m.run.CommandLine
		}
		m.run = nil
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusPrompt:
			return m.updatePrompt(msg)
		case focusPalette:
			return m.updatePalette(msg)
		case focusFilter:
			return m.updateFilter(msg)
		default:
			return m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(menuOptions)-1 {
			m.selected++
		}
	case "tab":
		m.tab = (m.tab + 1) % 3
		m.resizeViewport()
	case "pgup":
		m.outView.PageUp()
	case "pgdown":
		m.outView.PageDown()
	case "/":
		m.focus = focusPalette
		m.input.Placeholder = "command palette"
		m.input.SetValue("")
		m.input.Focus()
	case "f", "F":
		m.focus = focusFilter
		m.input.Placeholder = "filter output"
		m.input.SetValue(m.filter)
		m.input.Focus()
	case "?":
		m.tab = tabHelp
	case "enter":
		return m.activateOption(m.selected)
	default:
		if key, ok := resolveChoice(msg.String()); ok {
			for i, opt := range menuOptions {
				if opt.Key == key {
					m.selected = i
					return m.activateOption(i)
				}
			}
		}
	}
	return m, nil
}

func (m tuiModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusMenu
		m.input.Blur()
		m.status = "cancelled"
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.focus = focusMenu
		m.input.Blur()
		return m.launchCommand(m.pendingKey, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusMenu
		m.input.Blur()
		return m, nil
	case "enter":
		query := m.input.Value()
		m.focus = focusMenu
		m.input.Blur()
		if idx, ok := matchPalette(query); ok {
			m.selected = idx
			return m.activateOption(idx)
		}
		m.status = fmt.Sprintf("no command matches %q", strings.TrimSpace(query))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusMenu
		m.input.Blur()
		return m, nil
	case "enter":
		m.filter = strings.TrimSpace(m.input.Value())
		m.focus = focusMenu
		m.input.Blur()
		m.refreshViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// activateOption handles selecting a menu entry: meta entries act
// immediately, command entries first collect their input.
func (m tuiModel) activateOption(idx int) (tea.Model, tea.Cmd) {
	opt := menuOptions[idx]
	switch opt.Key {
	case "0":
		return m, tea.Quit
	case "6":
		m.tab = tabHelp
		return m, nil
	}

	if m.running {
		m.status = "a command is already running"
		return m, nil
	}

	spec, ok := promptForKey(opt.Key)
	if !ok {
		return m, nil
	}
	m.pendingKey = opt.Key
	m.focus = focusPrompt
	m.input.Placeholder = spec.label
	m.input.SetValue(m.sessionDefault(spec.field))
	m.input.Focus()
	return m, nil
}

func (m *tuiModel) sessionDefault(field string) string {
	switch field {
	case "query":
		return m.session.lastQuery
	case "location":
		return m.session.lastLocation
	case "username":
		return m.session.lastUsername
	case "tweet_id":
		return m.session.lastTweetID
	case "url":
		return m.session.lastURL
	}
	return ""
}

func (m *tuiModel) rememberValue(field, value string) {
	switch field {
	case "query":
		m.session.lastQuery = value
	case "location":
		m.session.lastLocation = value
	case "username":
		m.session.lastUsername = value
	case "tweet_id":
		m.session.lastTweetID = value
	case "url":
		m.session.lastURL = value
	}
}

// launchCommand validates the collected input, builds the subcommand
// argument list, and spawns the child. Failures degrade to a status
// message; the session never aborts.
func (m tuiModel) launchCommand(key, value string) (tea.Model, tea.Cmd) {
	spec, _ := promptForKey(key)

	if key == "3" {
		value = strings.TrimPrefix(value, "@")
	}
	if spec.required && value == "" {
		m.status = spec.field + " is required"
		return m, nil
	}
	m.rememberValue(spec.field, value)

	var subcommand string
	var args []string
	switch key {
	case "1":
		subcommand = "search"
		args = []string{"--query", value}
	case "2":
		subcommand = "trends"
		if value != "" {
			args = []string{"--location", value}
		}
	case "3":
		subcommand = "profile"
		args = []string{value}
	case "4":
		subcommand = "thread"
		args = []string{value}
	case "5":
		subcommand = "article"
		args = []string{value}
	default:
		return m, nil
	}

	run, err := startCommand(m.globals.Policy.String(), subcommand, args)
	if err != nil {
		m.status = "spawn failed: " + err.Error()
		return m, nil
	}

	m.run = run
	m.running = true
	m.status = "running " + subcommand
	m.tab = tabOutput
	m.output = appendOutput(m.output, runnerLine{Text: "$ " + run.CommandLine})
	m.refreshViewport()
	m.outView.GotoBottom()
	return m, waitRunnerEvent(run)
}

func (m *tuiModel) resizeViewport() {
	// Header, tab bar, status, and input rows take 6 lines total.
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if m.doublePane() {
		w = m.width - menuPaneWidth - 7
	}
	if w < 10 {
		w = 10
	}
	m.outView.Width = w
	m.outView.Height = h
	m.refreshViewport()
}

func (m *tuiModel) refreshViewport() {
	m.outView.SetContent(strings.Join(filterOutput(m.output, m.filter), "\n"))
}

const menuPaneWidth = 34

func (m tuiModel) doublePane() bool {
	return m.width >= doublePaneMinWidth && m.tab == tabCommands
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.theme.title.Render("xint dashboard"))
	b.WriteString("  ")
	b.WriteString(m.theme.hint.Render("policy: " + m.globals.Policy.String()))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.tab {
	case tabOutput:
		b.WriteString(m.theme.pane.Render(m.outView.View()))
	case tabHelp:
		b.WriteString(m.theme.pane.Render(strings.Join(helpLines, "\n")))
	default:
		menu := m.renderMenu()
		if m.doublePane() {
			output := m.theme.pane.Render(m.outView.View())
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, menu, " ", output))
		} else {
			b.WriteString(menu)
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	return b.String()
}

func (m tuiModel) renderTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tabID(i) == m.tab {
			parts = append(parts, m.theme.tabActive.Render(" "+name+" "))
		} else {
			parts = append(parts, m.theme.tabInactive.Render(" "+name+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m tuiModel) renderMenu() string {
	var b strings.Builder
	for i, opt := range menuOptions {
		line := fmt.Sprintf("[%s] %s", opt.Key, opt.Label)
		if i == m.selected {
			b.WriteString(m.theme.menuSelected.Render("> " + line))
			b.WriteString("\n")
			b.WriteString(m.theme.hint.Render("    " + clipText(opt.Hint, menuPaneWidth-4)))
		} else {
			b.WriteString(m.theme.menuItem.Render("  " + line))
		}
		if i < len(menuOptions)-1 {
			b.WriteString("\n")
		}
	}
	return m.theme.pane.Width(menuPaneWidth).Render(b.String())
}

func (m tuiModel) renderStatus() string {
	status := m.status
	if m.running {
		status = m.spin.View() + " " + status
	}
	if m.filter != "" {
		status += m.theme.hint.Render("  [filter: " + m.filter + "]")
	}
	return m.theme.status.Render(status)
}

func (m tuiModel) renderInput() string {
	switch m.focus {
	case focusPrompt, focusPalette, focusFilter:
		return m.input.View()
	}
	return m.theme.hint.Render("enter run · / palette · f filter · tab switch · q quit")
}

// runTUI starts the interactive dashboard.
func runTUI(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	themeFlag := fs.String("theme", "", "Color theme: classic, minimal, or neon")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint tui [options]

Description:
  Start the interactive dashboard. Commands selected in the menu run
  as child processes of this binary under the current --policy mode;
  their output is captured into the Output tab.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Keys:
  Up/Down  move    Enter  run     Tab  switch tab
  /        palette f      filter  q    quit

Environment Variables:
  XINT_TUI_THEME   Color theme (classic|minimal|neon)

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := loadConfigOrDefault(configPath)

	// Theme precedence: flag > XINT_TUI_THEME (applied to cfg) > config.
	themeName := *themeFlag
	if themeName == "" {
		themeName = cfg.TUI.Theme
	}

	p := tea.NewProgram(newTUIModel(globals, themeName), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		errors.FatalError(errors.NewInternalError(
			"Dashboard terminated unexpectedly",
			"The terminal UI event loop returned an error",
			"Check that xint is running in a real terminal",
			err,
		), globals.JSON)
	}
}
