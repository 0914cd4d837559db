package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/quasiwalk/pkg/config"
	"github.com/gwillem/quasiwalk/pkg/robot"
	"github.com/gwillem/quasiwalk/pkg/walk"
)

type WalkCommand struct {
	Config   string `long:"config" short:"c" default:"quasiwalk.yaml" description:"Configuration file"`
	Steps    int    `long:"steps" short:"n" default:"-1" description:"Number of gait cycles (overrides config)"`
	Hz       int    `long:"hz" default:"-1" description:"Real-time tick rate, 0 for as fast as possible (overrides config)"`
	Viewer   string `long:"viewer" description:"socket.io viewer URL (overrides config)"`
	Record   string `long:"record" description:"Write every frame as a JSON line to this file"`
	Headless bool   `long:"headless" description:"Log to the terminal instead of showing the TUI"`
	Verbose  bool   `long:"verbose" short:"v" description:"Enable debug logging"`
	LogFile  string `long:"log-file" description:"Write logs to this file"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Chart series, in legend order.
const (
	seriesComX   = "com-x"
	seriesComY   = "com-y"
	seriesLeftZ  = "left-z"
	seriesRightZ = "right-z"
)

var seriesColors = []struct {
	name  string
	color string
}{
	{seriesComX, "196"},  // red
	{seriesComY, "226"},  // yellow
	{seriesLeftZ, "46"},  // green
	{seriesRightZ, "51"}, // cyan
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	phaseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

func (c *WalkCommand) apply(cfg *config.Config) {
	if c.Steps >= 0 {
		cfg.Walk.Steps = c.Steps
	}
	if c.Hz >= 0 {
		cfg.Walk.Hz = c.Hz
	}
	if c.Viewer != "" {
		cfg.Viewer.URL = c.Viewer
	}
	if c.Record != "" {
		cfg.Viewer.Record = c.Record
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
}

func (c *WalkCommand) Execute(args []string) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)

	// Without pacing the walk is over before the TUI has drawn anything.
	if !c.Headless && cfg.Walk.Hz == 0 {
		cfg.Walk.Hz = int(1 / cfg.Walk.TimeStep)
	}

	logs, err := setupLogging(cfg.Log, c.Verbose, !c.Headless)
	if err != nil {
		return err
	}
	defer logs.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := openViewer(ctx, cfg.Viewer)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	session, err := walk.NewSession(ctx, newHumanoid(cfg), client, sessionConfig(cfg))
	if err != nil {
		return err
	}

	if c.Headless {
		return runHeadless(ctx, session)
	}
	return runTUI(ctx, cancel, session)
}

func runHeadless(ctx context.Context, session *walk.Session) error {
	for _, foot := range robot.AllFeet() {
		logrus.Debugf("neutral pose of %s:\n%s", foot, session.Sequencer().Neutral(foot).Format())
	}

	done := make(chan struct{})
	defer close(done)
	go drainLogs(session.Logs(), done, func(msg string) {
		logrus.Debug(msg)
	})

	if err := session.Run(ctx); err != nil {
		return err
	}
	logrus.WithField("t", session.Time()).Info("walk complete")
	fmt.Println("FINISHED")
	return nil
}

func runTUI(ctx context.Context, cancel context.CancelFunc, session *walk.Session) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx)
	}()

	p := tea.NewProgram(initialWalkModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	// The user may have quit before the walk ended.
	cancel()
	err := <-errCh
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Walk interrupted.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("FINISHED")
	return nil
}

type walkModel struct {
	session  *walk.Session
	chart    *streamlinechart.Model
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	state    walk.State
	quitting bool
}

func (m *walkModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// footHeight is the height of a foot above where it started.
func (m *walkModel) footHeight(foot robot.FootName) float64 {
	neutral := m.session.Sequencer().Neutral(foot).Translation()
	return m.state.Feet[foot].Subtract(neutral).Z
}

// Messages from the session
type stateMsg walk.State
type logMsg string

func waitForState(s *walk.Session) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-s.States())
	}
}

func waitForLog(s *walk.Session) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-s.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *walkModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *walkModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialWalkModel(s *walk.Session) walkModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-0.15, 0.25),
	)

	for _, sc := range seriesColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(sc.color))
		chart.SetDataSetStyles(sc.name, runes.ThinLineStyle, style)
	}

	return walkModel{
		session: s,
		chart:   &chart,
	}
}

func (m walkModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.session),
		waitForLog(m.session),
	)
}

func (m walkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		m.state = walk.State(msg)
		m.chart.PushDataSet(seriesComX, m.state.Com.X)
		m.chart.PushDataSet(seriesComY, m.state.Com.Y)
		m.chart.PushDataSet(seriesLeftZ, m.footHeight(robot.LeftAnkle))
		m.chart.PushDataSet(seriesRightZ, m.footHeight(robot.RightAnkle))
		m.chart.DrawAll()
		if m.state.Done {
			return m, nil
		}
		return m, waitForState(m.session)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.session)
	}

	return m, nil
}

func (m walkModel) View() string {
	if m.quitting {
		return "Walk stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("quasiwalk"))
	sb.WriteString(fmt.Sprintf(" - %d step(s) ", m.session.Config().Steps))
	sb.WriteString(phaseStyle.Render(m.state.Phase.String()))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  support: %s  t=%.2fs  tick %d  com error %.3f", m.state.Support, m.state.Time, m.state.Tick, m.state.ComError)))
	if m.state.Settling {
		sb.WriteString(statusStyle.Render("  settling"))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	lines := append([]string(nil), m.logs...)
	switch {
	case m.state.Error != nil:
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.state.Error.Error()))
	case m.state.Done:
		lines = append(lines, successStyle.Render("FINISHED")+statusStyle.Render("  press 'q' to quit"))
	case len(lines) == 0:
		lines = []string{statusStyle.Render("Press 'q' to quit")}
	}
	sb.WriteString(logStyle.Render(strings.Join(lines, "\n")))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, sc := range seriesColors {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(sc.color)).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+sc.name)
	}
	return strings.Join(items, "  ")
}
