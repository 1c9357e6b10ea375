package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"webdoggy/internal/config"
	"webdoggy/internal/control"
	"webdoggy/internal/doggy"
	"webdoggy/internal/page"
)

// Model hosts one doggy on one page inside the terminal.
type Model struct {
	Doggy *doggy.Controller
	Page  *page.Document

	cfg *config.Config
	log *zap.Logger

	Width          int
	Height         int
	Quitting       bool
	Message        string
	MessageExpires time.Time
	Animation      Animation
}

// frameMsg drives the update loop. gen ties it to one frame chain.
type frameMsg struct {
	gen uint64
	at  time.Time
}

type summonMsg struct{}

// controlMsg carries a control request into the event loop. The reply is
// sent from Update.
type controlMsg struct {
	req   control.Request
	reply chan control.Response
}

// NewModel creates a host for doc. The doggy is created inactive.
func NewModel(doc *page.Document, cfg *config.Config, log *zap.Logger) Model {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		Doggy: doggy.New(doc, cfg, log.Named("doggy")),
		Page:  doc,
		cfg:   cfg,
		log:   log,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.cfg.UI.SummonOnStart {
		return func() tea.Msg { return summonMsg{} }
	}
	return nil
}

func (m Model) frame(gen uint64) tea.Cmd {
	return tea.Tick(m.cfg.UI.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// summon starts a frame chain only when the doggy was not already out, so a
// single chain is ever alive.
func (m *Model) summon() tea.Cmd {
	if m.Doggy.Active() {
		return nil
	}
	gen := m.Doggy.Summon()
	m.setMessage("🐕 Doggy is here!")
	return m.frame(gen)
}

func (m *Model) dismiss() {
	if !m.Doggy.Active() {
		return
	}
	m.Doggy.Dismiss()
	m.setMessage("👋 Doggy went home")
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Page.Resize(float64(m.Width)*m.cfg.UI.CellWidth, float64(m.visibleRows())*m.cfg.UI.CellHeight)
		return m, nil

	case summonMsg:
		return m, m.summon()

	case frameMsg:
		if !m.Doggy.Frame(msg.gen, msg.at) {
			return m, nil
		}
		m.Animation = m.Animation.Track(m.Doggy.Pet().Activity, msg.at)
		return m, m.frame(msg.gen)

	case controlMsg:
		h := &host{m: &m}
		resp := control.Dispatch(h, msg.req)
		m.log.Debug("control request handled",
			zap.String("action", msg.req.Action),
			zap.Bool("success", resp.Success))
		msg.reply <- resp
		return m, h.cmd

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)
	}

	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.Doggy
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return *m, tea.Quit
	case "f1":
		return *m, m.summon()
	case "f2":
		m.dismiss()
		return *m, nil
	case "tab":
		m.Page.FocusNext()
		return *m, nil
	case "esc":
		m.Page.Focus(nil)
		return *m, nil
	case "pgup":
		m.Page.ScrollBy(-m.Page.Viewport().Height / 2)
		return *m, nil
	case "pgdown":
		m.Page.ScrollBy(m.Page.Viewport().Height / 2)
		return *m, nil
	case "backspace":
		if f := m.Page.Focused(); f != nil && f.Editable() {
			r := []rune(f.Text)
			if len(r) > 0 {
				f.Text = string(r[:len(r)-1])
			}
		}
		return *m, nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.typeRunes(msg.Runes)
		return *m, nil
	}

	if !d.Active() {
		return *m, nil
	}

	switch msg.String() {
	case "ctrl+l":
		d.CreateLadder()
	case "ctrl+b":
		d.CreateBlock()
	case "ctrl+f":
		d.ToggleFly()
	case "ctrl+up":
		d.JumpToElement(doggy.DirUp)
	case "ctrl+down":
		d.JumpToElement(doggy.DirDown)
	case "ctrl+left":
		d.JumpToElement(doggy.DirLeft)
	case "ctrl+right":
		d.JumpToElement(doggy.DirRight)
	case "up":
		d.Nudge(0, -1)
	case "down":
		d.Nudge(0, 1)
	case "left":
		d.Nudge(-1, 0)
	case "right":
		d.Nudge(1, 0)
	case "ctrl+t":
		d.TakeFromFocused()
	case "ctrl+p":
		d.PlaceMouth()
	}
	return *m, nil
}

// typeRunes delivers typed text to the focused field, or to the page body
// where the doggy may pick it up.
func (m *Model) typeRunes(runes []rune) {
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	target := "BODY"
	if f := m.Page.Focused(); f != nil && f.Editable() {
		target = f.Tag
		f.Text += string(runes)
	}
	for _, r := range runes {
		m.Doggy.KeyPress(r, target)
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	// the first line is the title bar
	x, y := m.projection().page(msg.X, msg.Y-1)
	d := m.Doggy

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.Page.ScrollBy(-m.cfg.UI.CellHeight * 3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.Page.ScrollBy(m.cfg.UI.CellHeight * 3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		// most terminals swallow ctrl+shift clicks, so alt stands in for both
		mods := doggy.Modifiers{
			Ctrl:  msg.Ctrl || msg.Alt,
			Shift: msg.Shift || msg.Alt,
			Alt:   msg.Alt,
		}
		menu := d.MenuOpen()
		d.Click(x, y, mods)
		if !menu {
			d.PointerDown(x, y)
		}
		m.focusAt(x, y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		d.ContextMenu(x, y)
	case msg.Action == tea.MouseActionMotion:
		d.PointerMove(x, y)
	case msg.Action == tea.MouseActionRelease:
		d.PointerUp()
	}
}

// focusAt focuses the topmost editable element under a click, if any.
func (m *Model) focusAt(x, y float64) {
	for _, el := range m.Page.ElementsFromPoint(x, y) {
		if doggy.IsOverlay(el) {
			continue
		}
		if el.Editable() {
			m.Page.Focus(el)
		}
		return
	}
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = doggy.TimeNow().Add(3 * time.Second)
}

func (m Model) projection() projection {
	return projection{
		cellW:   m.cfg.UI.CellWidth,
		cellH:   m.cfg.UI.CellHeight,
		scrollY: m.Page.Viewport().ScrollY,
	}
}

func (m Model) visibleRows() int {
	if m.Height <= 0 {
		return 0
	}
	rows := m.Height - 2 // title and status lines
	if rows < minVisibleRows {
		rows = minVisibleRows
	}
	return rows
}

// host adapts the model to control.Handler for one request.
type host struct {
	m   *Model
	cmd tea.Cmd
}

func (h *host) Summon() {
	if cmd := h.m.summon(); cmd != nil {
		h.cmd = cmd
	}
}

func (h *host) Dismiss() {
	h.m.dismiss()
}

func (h *host) Active() bool {
	return h.m.Doggy.Active()
}

// Sender is the part of *tea.Program the control bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Forwarder returns a control handler that runs each request inside the
// program's event loop and waits up to timeout for the answer.
func Forwarder(p Sender, timeout time.Duration) control.HandlerFunc {
	return func(req control.Request) control.Response {
		reply := make(chan control.Response, 1)
		go p.Send(controlMsg{req: req, reply: reply})

		select {
		case resp := <-reply:
			return resp
		case <-time.After(timeout):
			return control.Response{Error: "host did not answer"}
		}
	}
}
