package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/puzzled"
	"github.com/SeamusWaldron/puzzled/internal/ble"
	"github.com/SeamusWaldron/puzzled/internal/config"
	"github.com/SeamusWaldron/puzzled/internal/protocol"
	"github.com/SeamusWaldron/puzzled/internal/render"
)

var (
	playGoCube      bool
	playScanTimeout time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle mode",
	Long: `Start an interactive TUI with two independent puzzles, a main one and a
scratch one for trying out sequences.

Keyboard shortcuts:
  letters     - Turn a face (lowercase) or the whole puzzle (uppercase)
  /           - Invert the next move
  ( [ {       - Open a sequence, commutator or conjugate
  digits      - Repeat the last move or group
  Backspace   - Undo, or edit the group being composed
  Enter       - Repeat the last move
  Tab         - Switch between the main and scratch puzzles
  ?           - Show the notation help
  Esc/Ctrl+C  - Quit

Click a face to turn it. With --gocube, turns of a GoCube smart cube are
fed into the focused puzzle.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playGoCube, "gocube", false, "Connect to the first GoCube found")
	playCmd.Flags().DurationVar(&playScanTimeout, "scan-timeout", 5*time.Second, "How long to scan for a GoCube")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	// netTop is the first line of the puzzle drawings in the view.
	netTop     = 3
	panelGap   = 4
	historyMax = 60
	traceMax   = 40
)

var panelNames = [2]string{"main", "scratch"}

// keyMap holds the keys that are not notation characters.
type keyMap struct {
	Undo   key.Binding
	Repeat key.Binding
	Switch key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Repeat, k.Switch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var playKeys = keyMap{
	Undo: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "undo"),
	),
	Repeat: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "repeat"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch puzzle"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "notation"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

const notationHelp = `Notation

  r        turn face r clockwise
  R        turn the whole puzzle around face r
  /r       counter-clockwise (any move or group)
  r3       repeat a move or group
  (ab)     sequence: a then b
  [ab]     commutator: a b /a /b
  {abc}    conjugate: a b c /b /a
  /{abc}   inverse conjugate: a b /c /b /a

Groups nest up to 16 deep and repeat up to 1000 times.
While a group is open, nothing is applied until it is closed.

Press any key to close this help.`

// Messages
type bleConnectedMsg struct{ name string }
type bleErrorMsg struct{ err error }
type bleMessageMsg struct{ msg *protocol.Message }
type configReloadedMsg struct{ cfg *config.Config }

// Model
type playModel struct {
	sessions [2]*puzzled.Session
	renderer *render.Renderer
	focus    int
	logger   *slog.Logger

	// BLE
	client     *ble.Client
	colors     protocol.ColorFaces
	connected  bool
	deviceName string
	battery    int
	msgChan    chan *protocol.Message
	front      puzzled.Face

	// UI
	help     help.Model
	solved   [2]bool
	showHelp bool
	err      error
	quitting bool
}

func newPlayModel(cfg *config.Config, opts []puzzled.Option, logger *slog.Logger) (*playModel, error) {
	colors, err := cfg.ColorFaces()
	if err != nil {
		return nil, err
	}

	m := &playModel{
		logger:  logger,
		colors:  colors,
		help:    help.New(),
		battery: -1,
		msgChan: make(chan *protocol.Message, 100),
	}
	for i := range m.sessions {
		s := puzzled.New(opts...)
		s.SetSolvedCallback(func() {
			m.solved[i] = true
			m.flashSolved()
		})
		m.sessions[i] = s
	}
	m.renderer = render.New(m.sessions[0].Topology(), render.NewPalette(cfg.FaceColors()), nil, logger)
	return m, nil
}

func (m *playModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return tea.Batch(m.connectBLE(), m.listenForMessages())
}

func (m *playModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg := <-m.msgChan
		return bleMessageMsg{msg: msg}
	}
}

func (m *playModel) connectBLE() tea.Cmd {
	client := m.client
	msgChan := m.msgChan
	return func() tea.Msg {
		client.SetMessageCallback(func(msg *protocol.Message) {
			select {
			case msgChan <- msg:
			default:
				// Channel full, drop message
			}
		})

		if err := client.ConnectFirst(context.Background(), playScanTimeout); err != nil {
			return bleErrorMsg{err: fmt.Errorf("GoCube connection failed: %w", err)}
		}
		if err := client.EnableOrientation(); err != nil {
			m.logger.Warn("orientation not available", "error", err)
		}
		// The sessions start solved; the cube's own tracking should agree.
		if err := client.ResetSolved(); err != nil {
			m.logger.Warn("could not reset cube state", "error", err)
		}
		return bleConnectedMsg{name: client.DeviceName()}
	}
}

// flashSolved lights the cube up when a session reaches solved.
func (m *playModel) flashSolved() {
	if m.client == nil || !m.connected {
		return
	}
	if err := m.client.FlashBacklight(); err != nil {
		m.logger.Warn("backlight flash failed", "error", err)
	}
}

func (m *playModel) session() *puzzled.Session {
	return m.sessions[m.focus]
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.handleClick(msg.X, msg.Y)
		}

	case bleConnectedMsg:
		m.connected = true
		m.deviceName = msg.name
		m.battery = m.client.Battery()

	case bleErrorMsg:
		m.err = msg.err

	case bleMessageMsg:
		m.handleDevice(msg.msg)
		return m, m.listenForMessages()

	case configReloadedMsg:
		m.reload(msg.cfg)
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, playKeys.Quit):
		m.quitting = true
		if m.client != nil {
			if m.connected {
				if err := m.client.DisableOrientation(); err != nil {
					m.logger.Debug("orientation still enabled", "error", err)
				}
			}
			m.client.Disconnect()
		}
		return tea.Quit
	case key.Matches(msg, playKeys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, playKeys.Switch):
		m.focus = 1 - m.focus
		return nil
	case key.Matches(msg, playKeys.Undo):
		m.input(puzzled.KeyUndo)
		return nil
	case key.Matches(msg, playKeys.Repeat):
		m.input(puzzled.KeyRepeat)
		return nil
	}

	switch msg.Type {
	case tea.KeySpace:
		m.input(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.input(puzzled.Key(r))
		}
	}
	return nil
}

func (m *playModel) input(k puzzled.Key) {
	m.solved[m.focus] = false
	m.err = m.session().Input(k)
}

// handleClick turns the face under the pointer and focuses its puzzle.
func (m *playModel) handleClick(x, y int) {
	panel, fx := 0, x
	width := m.panelWidth()
	if x >= width+panelGap {
		panel, fx = 1, x-width-panelGap
	}

	face, ok := m.renderer.FaceAt(fx, y-netTop)
	if !ok {
		return
	}
	m.focus = panel
	m.solved[m.focus] = false
	m.err = m.session().Click(face)
}

func (m *playModel) handleDevice(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		keys, err := protocol.MessageKeys(msg, m.colors)
		if err != nil {
			m.err = err
			return
		}
		for _, k := range keys {
			m.input(k)
		}

	case protocol.MsgTypeBattery:
		if ev, err := protocol.DecodeBattery(msg.Payload); err == nil {
			m.battery = ev.Level
		}

	case protocol.MsgTypeOrientation:
		if ev, err := protocol.DecodeOrientation(msg.Payload); err == nil {
			m.front = ev.FrontFace
		}
	}
}

// reload applies the colors of a changed config file. Topology and limit
// changes take effect on the next start.
func (m *playModel) reload(cfg *config.Config) {
	m.renderer.SetPalette(render.NewPalette(cfg.FaceColors()))
	colors, err := cfg.ColorFaces()
	if err != nil {
		m.err = err
		return
	}
	m.colors = colors
}

func (m *playModel) panelWidth() int {
	w := m.renderer.Width()
	for _, name := range panelNames {
		if n := len(name) + 2; n > w {
			w = n
		}
	}
	return w
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("puzzled"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.deviceStatus()))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(notationHelp)
		b.WriteString("\n")
		return b.String()
	}

	// Puzzles
	width := m.panelWidth()
	panels := make([]string, 0, 3)
	for i, s := range m.sessions {
		label := "  " + panelNames[i]
		if i == m.focus {
			label = focusStyle.Render("> " + panelNames[i])
		}
		body := m.renderer.Render(s.Puzzle().Stickers())
		panel := lipgloss.NewStyle().Width(width).Render(label + "\n" + body)
		panels = append(panels, panel)
		if i == 0 {
			panels = append(panels, strings.Repeat(" ", panelGap))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	b.WriteString("\n\n")

	// Held face from the GoCube orientation
	if m.front != 0 && m.renderer.IsNet() {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Holding %s:", m.front)))
		b.WriteString("\n")
		b.WriteString(strings.Join(m.renderer.Face(m.session().Puzzle().Stickers(), m.front), "\n"))
		b.WriteString("\n\n")
	}

	// Focused session
	s := m.session()
	b.WriteString(fmt.Sprintf("History: %s\n", moveStyle.Render(tail(strings.Join(s.History(), " "), historyMax))))
	b.WriteString(fmt.Sprintf("Turns:   %s\n", statusStyle.Render(tail(strings.Join(s.Trace(), " "), traceMax))))
	if s.State() == puzzled.BuildingGroup || s.Pending() != "" {
		b.WriteString(fmt.Sprintf("Input:   %s (depth %d)\n", focusStyle.Render(s.Pending()), s.Depth()))
	} else {
		b.WriteString("\n")
	}
	if m.solved[m.focus] {
		b.WriteString(focusStyle.Render("SOLVED!"))
	}
	b.WriteString("\n")

	// Error
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	b.WriteString("\n")

	// Help
	b.WriteString(helpStyle.Render("letters turn  / invert  ( [ { group  digits repeat"))
	b.WriteString("\n")
	b.WriteString(m.help.View(playKeys))
	b.WriteString("\n")

	return b.String()
}

func (m *playModel) deviceStatus() string {
	switch {
	case m.client == nil:
		return ""
	case m.connected:
		status := fmt.Sprintf("Connected: %s", m.deviceName)
		if m.battery >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", m.battery)
		}
		return status
	case m.err != nil && errors.Is(m.err, ble.ErrDeviceNotFound):
		return "No GoCube found"
	default:
		return "Connecting..."
	}
}

// tail returns the end of s, at most n bytes, marking the cut.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

func runPlay(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the TUI; logs go to a file when verbose.
	logger := newLogger(io.Discard)
	if verbose {
		f, err := tea.LogToFile("puzzled.log", "")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = newLogger(f)
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	model, err := newPlayModel(cfg, opts, logger)
	if err != nil {
		return err
	}

	if playGoCube {
		client, err := ble.NewClient(logger)
		if err != nil {
			return fmt.Errorf("BLE not available: %w", err)
		}
		model.client = client
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if path, err := config.Path(configPath); err == nil {
		if _, err := os.Stat(path); err == nil {
			watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
				p.Send(configReloadedMsg{cfg: cfg})
			}, logger)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go watchConfig(ctx, watcher, logger)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchConfig runs w until ctx ends. A watcher that cannot start only
// turns live reloading off.
func watchConfig(ctx context.Context, w *config.Watcher, logger *slog.Logger) {
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("config reload disabled", "path", w.Path(), "error", err)
	}
}
