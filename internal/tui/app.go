// Package tui provides the interactive Bubble Tea dashboard for moneymoves.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/coach"
	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/pipeline"
	"github.com/theirongolddev/moneymoves/internal/tui/components"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// loadedMsg is sent when the ledger has been opened.
type loadedMsg struct {
	book *ledger.Book
	err  error
}

// Options configures the dashboard.
type Options struct {
	// Open loads the ledger. It runs off the UI goroutine.
	Open func(ctx context.Context) (*ledger.Book, error)
	// Config supplies display settings and is updated by the setup wizard.
	Config config.Config
	// Month is the YYYY-MM month shown first; empty means the current month.
	Month string
	// NeedSetup shows the setup wizard once the ledger is loaded.
	NeedSetup bool
	// SaveConfig persists the wizard result. Nil uses config.Save.
	SaveConfig func(config.Config) error
}

const (
	tabOverview = iota
	tabBudgets
	tabGoals
	tabGame
)

// App is the root Bubble Tea model.
type App struct {
	opts Options
	cfg  config.Config

	// Data
	book       *ledger.Book
	ledger     *model.Ledger
	coach      *coach.Coach
	summary    model.MonthSummary
	breakdown  []model.CategoryStats
	daily      []model.DailySpend
	insights   []coach.Insight
	challenges []game.ChallengeStatus
	loaded     bool
	loadErr    error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	month     string
	cursor    int
	flash     string

	// Dashboard forms (huh)
	form       *huh.Form
	formKind   formKind
	formVals   *formValues
	formTarget string

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 140
	minContentHeight = 5
	maxFormWidth     = 72
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if opts.SaveConfig == nil {
		opts.SaveConfig = config.Save
	}

	return App{
		opts:      opts,
		cfg:       opts.Config,
		month:     opts.Month,
		needSetup: opts.NeedSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.opts.Open),
		a.spinner.Tick,
	)
}

func loadCmd(open func(context.Context) (*ledger.Book, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		b, err := open(ctx)
		return loadedMsg{book: b, err: err}
	}
}

func (a App) ready() bool {
	return a.loaded && a.book != nil
}

// refresh re-reads the ledger and recomputes everything the tabs show.
func (a *App) refresh() {
	a.ledger = a.book.Ledger()
	a.summary = pipeline.MonthSummary(a.ledger, a.month)
	a.breakdown = pipeline.CategoryBreakdown(a.ledger, a.month)
	a.daily = pipeline.DailySpend(a.ledger, a.month)
	a.insights = a.coach.Insights(a.ledger, a.month)
	a.challenges = game.Status(a.ledger, a.month)
	a.moveCursor(0)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case loadedMsg:
		a.loaded = true
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		a.book = msg.book
		if a.month == "" {
			a.month = model.CurrentMonth(a.book.Clock())
		}
		a.coach = coach.New(a.book.Clock(), cli.MoneyFormatter(a.cfg.Display.CurrencySymbol))
		a.refresh()
		if a.needSetup {
			a.setupVals = NewSetupValues(a.cfg)
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if !a.ready() || a.showHelp || a.setupForm != nil || a.form != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			// Tab bar is the first line.
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.ready() {
			if a.loadErr != nil && (key == "q" || key == "esc") {
				return a, tea.Quit
			}
			return a, nil
		}

		if a.setupForm != nil {
			if key == "esc" {
				a.setupForm = nil
				a.needSetup = false
				return a, nil
			}
			return a.updateSetupForm(msg)
		}

		if a.form != nil {
			if key == "esc" {
				a.closeForm()
				return a, nil
			}
			return a.updateForm(msg)
		}

		// Any key dismisses help.
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.flash = ""
		return a.handleKey(key)
	}

	// Forward unhandled messages (cursor blinks) to the active form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	n := len(components.Tabs)

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
	case "right", "tab":
		a.switchTab((a.activeTab + 1) % n)
	case "left", "shift+tab":
		a.switchTab((a.activeTab + n - 1) % n)
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "[":
		a.shiftMonth(-1)
	case "]":
		a.shiftMonth(1)
	case "a":
		return a.openForm(formAdd)
	case "1", "2", "3", "4":
		if idx := int(key[0] - '1'); idx < len(ledger.QuickPresets) {
			a.apply(ledger.QuickAdd(ledger.QuickPresets[idx])...)
		}
	case "n":
		switch a.activeTab {
		case tabBudgets:
			return a.openForm(formCategory)
		case tabGoals:
			return a.openForm(formGoal)
		}
	case "e":
		if a.activeTab == tabBudgets {
			return a.openForm(formLimit)
		}
	case "s":
		if a.activeTab == tabGoals {
			return a.openForm(formDeposit)
		}
	case "x":
		if a.activeTab == tabGoals && a.cursor < len(a.ledger.Goals) {
			a.apply(ledger.DeleteGoal(a.ledger.Goals[a.cursor].ID)...)
		}
	case "enter":
		if a.activeTab == tabGame {
			a.claimSelected()
		}
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.switchTab(idx)
			}
		}
	}
	return a, nil
}

func (a *App) switchTab(idx int) {
	if idx == a.activeTab {
		return
	}
	a.activeTab = idx
	a.cursor = 0
}

func (a *App) listLen() int {
	switch a.activeTab {
	case tabBudgets:
		return len(a.breakdown)
	case tabGoals:
		if a.ledger == nil {
			return 0
		}
		return len(a.ledger.Goals)
	case tabGame:
		return len(a.challenges)
	}
	return 0
}

func (a *App) moveCursor(delta int) {
	n := a.listLen()
	if n == 0 {
		a.cursor = 0
		return
	}
	a.cursor = min(max(a.cursor+delta, 0), n-1)
}

func (a *App) shiftMonth(delta int) {
	t, ok := model.ParseMonth(a.month)
	if !ok {
		return
	}
	a.month = t.AddDate(0, delta, 0).Format(model.MonthLayout)
	a.refresh()
}

// apply commits mutations and reports the XP they earned.
func (a *App) apply(muts ...ledger.Mutation) {
	if len(muts) == 0 {
		return
	}
	rewards, err := a.book.Apply(context.Background(), muts...)
	if err != nil {
		a.flash = "Error: " + err.Error()
		return
	}
	a.flash = rewardText(rewards)
	a.refresh()
}

func (a *App) claimSelected() {
	if a.cursor >= len(a.challenges) {
		return
	}
	st := a.challenges[a.cursor]
	switch {
	case st.Done:
		a.flash = "Already claimed: " + st.Title
		return
	case !st.Passed:
		a.flash = "Not yet: " + st.Desc
		return
	}
	r, ok, err := a.book.Claim(context.Background(), st.ID, a.month)
	switch {
	case err != nil:
		a.flash = "Error: " + err.Error()
	case ok:
		a.flash = rewardText([]game.Reward{r})
		a.refresh()
	}
}

func rewardText(rewards []game.Reward) string {
	if len(rewards) == 0 {
		return "Saved"
	}
	parts := make([]string, len(rewards))
	for i, r := range rewards {
		parts[i] = cli.FormatXP(r.Amount) + " " + r.Reason
	}
	return strings.Join(parts, "  ")
}

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	v := &formValues{Type: string(model.Expense), Intent: ledger.Need}
	target := ""

	var f *huh.Form
	switch kind {
	case formAdd:
		if len(a.ledger.Categories) > 0 {
			v.CategoryID = a.ledger.Categories[0].ID
		}
		f = newTransactionForm(v, a.ledger.Categories)
	case formCategory:
		f = newCategoryForm(v)
	case formLimit:
		if a.cursor >= len(a.breakdown) {
			return a, nil
		}
		c := a.breakdown[a.cursor].Category
		target = c.ID
		v.Amount = c.Limit.String()
		f = newLimitForm(v, c.Name)
	case formGoal:
		f = newGoalForm(v)
	case formDeposit:
		if a.cursor >= len(a.ledger.Goals) {
			return a, nil
		}
		g := a.ledger.Goals[a.cursor]
		target = g.ID
		f = newDepositForm(v, g.Name)
	default:
		return a, nil
	}

	a.form = f.WithTheme(huh.ThemeCharm()).WithShowHelp(true).WithWidth(a.formWidth())
	a.formKind = kind
	a.formVals = v
	a.formTarget = target
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
	a.formTarget = ""
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		muts, err := a.formMutations()
		a.closeForm()
		if err != nil {
			a.flash = "Error: " + err.Error()
			return a, nil
		}
		a.apply(muts...)
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// finishSetup applies and saves the wizard choices. A failed save keeps the
// choices for this session only.
func (a *App) finishSetup() {
	a.setupVals.Apply(&a.cfg)
	theme.SetActive(a.cfg.Display.Theme)
	a.coach = coach.New(a.book.Clock(), cli.MoneyFormatter(a.cfg.Display.CurrencySymbol))
	a.refresh()

	if err := a.opts.SaveConfig(a.cfg); err != nil {
		a.flash = "Could not save config: " + err.Error()
	} else {
		a.flash = "Settings saved"
	}
	a.needSetup = false
	a.setupForm = nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) formWidth() int {
	return max(min(a.contentWidth()-8, maxFormWidth), 30)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.setupForm != nil {
		return a.viewForm("◈ Welcome to moneymoves", a.setupForm.View())
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.form != nil {
		return a.viewForm(formTitles[a.formKind], a.form.View())
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  moneymoves needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) overlay(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sub := surface(t.TextMuted)

	return a.overlay(logo.Render("◈ moneymoves") + sub.Render(" · Budget Coach") + "\n\n" +
		a.spinner.View() + sub.Render(" Opening ledger..."))
}

func (a App) viewError() string {
	t := theme.Active
	return a.overlay(
		surface(t.Red).Bold(true).Render("Could not open the ledger") + "\n\n" +
			surface(t.TextMuted).Width(60).Render(a.loadErr.Error()) + "\n\n" +
			surface(t.TextDim).Render("Press q to quit"))
}

func (a App) viewForm(title, form string) string {
	t := theme.Active
	head := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	hint := surface(t.TextDim).Render("esc to cancel")
	return a.overlay(head.Render(title) + "\n\n" + form + "\n" + hint)
}

func (a App) viewHelp() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	descStyle := surface(t.TextMuted)

	sections := []struct {
		name     string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o b g m", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"[ ]", "Previous / Next month"},
		}},
		{"Actions", [][2]string{
			{"a", "Log a transaction"},
			{"1-4", quickHelp()},
			{"n", "New category / goal"},
			{"e", "Edit budget limit"},
			{"s x", "Save to / delete goal"},
			{"Enter", "Claim challenge"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	for _, s := range sections {
		b.WriteString("\n\n" + sectionStyle.Render(s.name))
		for _, kv := range s.bindings {
			fmt.Fprintf(&b, "\n  %s  %s",
				keyStyle.Render(fmt.Sprintf("%-8s", kv[0])),
				descStyle.Render(kv[1]))
		}
	}
	b.WriteString("\n\n" + surface(t.TextDim).Render("Press any key to close"))
	return a.overlay(b.String())
}

func quickHelp() string {
	labels := make([]string, len(ledger.QuickPresets))
	for i, p := range ledger.QuickPresets {
		labels[i] = p.Label
	}
	return "Quick add: " + strings.Join(labels, ", ")
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + month pill
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	monthLabel := a.month
	if m, ok := model.ParseMonth(a.month); ok {
		monthLabel = m.Format("January 2006")
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(
			pill.Render(" [ ")+accent.Render(monthLabel)+pill.Render(" ] "))

	// 2. Status bar
	g := a.ledger.Game
	right := fmt.Sprintf("Lv %d · %s XP · %s streak",
		game.Level(g.XP), cli.FormatNumber(int64(g.XP)), cli.FormatDays(g.Streak))
	statusBar := components.RenderStatusBar(w, right, a.flash)

	// 3. Content zone
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabGoals:
		content = a.renderGoalsTab(cw)
	case tabGame:
		content = a.renderGameTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// surface is a text style on the card background.
func surface(fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(theme.Active.Surface)
}

// pad left-aligns s in a column of n cells, truncating with an ellipsis.
func pad(s string, n int) string {
	s = cli.Truncate(s, n)
	return s + strings.Repeat(" ", max(n-lipgloss.Width(s), 0))
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
