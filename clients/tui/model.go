package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dohr-michael/scicalc/clients/tui/organisms"
	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/config"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/keymap"
)

var errNoReloader = errors.New("no config to reload")

// Options configures the keypad model.
type Options struct {
	Bus       *events.Bus
	SessionID string
	Angle     calc.AngleUnit
	KeyMap    keymap.KeyMap
	History   int
	Reloader  *config.Reloader // optional; ctrl+r reports an error without it
	Logger    *slog.Logger
}

// MainModel is the root bubbletea model of the keypad.
type MainModel struct {
	engine    *calc.Engine
	bus       *events.Bus
	sessionID string
	reloader  *config.Reloader

	keymap keymap.KeyMap
	keys   controlKeys
	help   help.Model

	events      <-chan events.Event
	unsubscribe func()

	display organisms.DisplayPanel
	keypad  organisms.Keypad
	history organisms.HistoryPanel
	info    organisms.InformationPanel

	quitting bool
}

// NewMainModel creates the root model. Every key press is dispatched to a
// fresh engine and published on opts.Bus; the history and status bar are
// fed back from the bus.
func NewMainModel(opts Options) MainModel {
	if opts.KeyMap == nil {
		opts.KeyMap = keymap.DefaultKeyMap()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.History < 1 {
		opts.History = 5
	}

	bus, sessionID := opts.Bus, opts.SessionID
	engine := calc.NewEngine(
		calc.WithAngleUnit(opts.Angle),
		calc.WithLogger(opts.Logger),
		calc.WithObserver(func(s calc.Step) {
			bus.Publish(events.NewTypedEventWithSession(events.SourceTUI, events.CalcActionFromStep(s), sessionID))
		}),
	)
	ch, unsubscribe := bus.SubscribeChan(64, events.EventCalcAction, events.EventSessionClosed)

	keypad := organisms.NewKeypad(keymap.Layout, organisms.KeypadStyles{
		Digit:    KeyStyle,
		Operator: OperatorKeyStyle,
		Function: FunctionKeyStyle,
		Memory:   MemoryKeyStyle,
		Active:   ActiveKeyStyle,
	})
	width := keypad.Width()

	display := organisms.NewDisplayPanel(organisms.DisplayStyles{
		Box:    DisplayStyle,
		Error:  ErrorStyle,
		Memory: MemoryStyle,
		Muted:  MutedStyle,
	})
	display.SetWidth(width)

	history := organisms.NewHistoryPanel(opts.History, HistoryBorderStyle, MutedStyle, ErrorStyle)
	history.SetWidth(width)

	info := organisms.NewInformationPanel(StatusBarStyle)
	info.SetSession(sessionID)
	info.SetAngle(opts.Angle.String())
	info.SetWidth(width)

	h := help.New()
	h.Width = width

	return MainModel{
		engine:      engine,
		bus:         bus,
		sessionID:   sessionID,
		reloader:    opts.Reloader,
		keymap:      opts.KeyMap,
		keys:        newControlKeys(opts.KeyMap),
		help:        h,
		events:      ch,
		unsubscribe: unsubscribe,
		display:     display,
		keypad:      keypad,
		history:     history,
		info:        info,
	}
}

// Init starts listening to the bus.
func (m MainModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update processes all incoming messages.
func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > m.keypad.Width() {
			m.help.Width = msg.Width
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CalcActionMsg:
		if msg.SessionID == m.sessionID {
			m.recordAction(msg.Payload)
		}
		return m, waitForEvent(m.events)

	case SessionClosedMsg:
		return m, waitForEvent(m.events)

	case busClosedMsg:
		return m, nil

	case ReloadRequestMsg:
		m.info.SetNotice("reloading…")
		return m, m.reload()

	case reloadedMsg:
		if msg.err != nil {
			m.info.SetNotice(fmt.Sprintf("reload failed: %v", msg.err))
			return m, nil
		}
		m.keymap = msg.keys
		m.keys = newControlKeys(msg.keys)
		m.history.SetSize(msg.cfg.TUI.History)
		m.refillHistory()
		if len(msg.changed) > 0 {
			m.info.SetNotice("config reloaded: " + strings.Join(msg.changed, ", "))
		} else {
			m.info.SetNotice("config reloaded")
		}
		return m, nil
	}

	return m, nil
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		m.info.SetNotice("reloading…")
		return m, m.reload()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	a, ok := m.keymap.Resolve(msg.String())
	if !ok {
		m.info.SetNotice(fmt.Sprintf("unbound key %q", msg.String()))
		return m, nil
	}
	m.Dispatch(a)
	return m, nil
}

// Dispatch presses a on the keypad.
func (m *MainModel) Dispatch(a calc.Action) calc.Output {
	out := m.engine.Dispatch(a)
	st := m.engine.State()
	m.display.SetOutput(out, st.Err != nil)
	m.keypad.SetActive(a)
	m.info.SetAngle(st.Angle.String())
	m.info.SetSteps(m.engine.Steps())
	m.info.SetNotice("")
	return out
}

// recordAction adds a published result to the history panel.
func (m *MainModel) recordAction(p events.CalcActionPayload) {
	if e, ok := historyEntry(p); ok {
		m.history.Add(e)
	}
}

// refillHistory rebuilds the history panel from the bus history, so a
// larger tui.history shows earlier results right after a reload.
func (m *MainModel) refillHistory() {
	var entries []organisms.HistoryEntry
	for _, e := range m.bus.History(math.MaxInt) {
		if e.SessionID != m.sessionID {
			continue
		}
		p, ok := events.GetCalcActionPayload(e)
		if !ok {
			continue
		}
		if entry, ok := historyEntry(p); ok {
			entries = append(entries, entry)
		}
	}
	m.history.Reset(entries)
}

// historyEntry keeps results: equals and function keys.
func historyEntry(p events.CalcActionPayload) (organisms.HistoryEntry, bool) {
	a, err := keymap.Parse(p.Token)
	if err != nil {
		return organisms.HistoryEntry{}, false
	}
	if a.Kind != calc.KindEquals && a.Kind != calc.KindFunction {
		return organisms.HistoryEntry{}, false
	}
	return organisms.HistoryEntry{Token: p.Token, Display: p.Display, Failed: p.Error != ""}, true
}

func (m MainModel) reload() tea.Cmd {
	r := m.reloader
	return func() tea.Msg {
		if r == nil {
			return reloadedMsg{err: errNoReloader}
		}
		before := r.Current()
		if err := r.Reload(); err != nil {
			return reloadedMsg{err: err}
		}
		cfg := r.Current()
		km, err := keymap.LoadKeyMap(cfg.Keymap.File)
		if err != nil {
			return reloadedMsg{err: err}
		}
		return reloadedMsg{cfg: cfg, keys: km, changed: config.Changed(before, cfg)}
	}
}

// Output returns what the display currently shows.
func (m MainModel) Output() calc.Output { return m.engine.Output() }

// Steps returns how many keys were dispatched.
func (m MainModel) Steps() int { return m.engine.Steps() }

// Close stops listening to the bus.
func (m MainModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// View renders the full TUI layout.
func (m MainModel) View() string {
	if m.quitting {
		return ""
	}
	return strings.Join([]string{
		m.display.View(),
		m.keypad.View(),
		m.history.View(),
		m.info.View(),
		m.help.View(m.keys),
	}, "\n")
}

// Run starts the keypad and blocks until the user quits or ctx is done.
// Changes to any of watchPaths reload the config. It returns the final
// model so callers can summarize the session.
func Run(ctx context.Context, m MainModel, watchPaths ...string) (MainModel, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if len(watchPaths) > 0 {
		w, err := config.NewWatcher(watchPaths, func() { p.Send(ReloadRequestMsg{}) })
		if err != nil {
			slog.Warn("config watcher disabled", "error", err)
		} else {
			wctx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() { _ = w.Run(wctx) }()
		}
	}

	final, err := p.Run()
	m.Close()
	if fm, ok := final.(MainModel); ok {
		m = fm
	}
	if err != nil {
		return m, fmt.Errorf("run tui: %w", err)
	}
	return m, nil
}
