package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popstack/internal/controller"
	"github.com/atomicstack/popstack/internal/logging/events"
	"github.com/atomicstack/popstack/internal/loop"
	"github.com/atomicstack/popstack/internal/pending"
	"github.com/atomicstack/popstack/internal/popup"
	"github.com/atomicstack/popstack/internal/theme"
)

// footerHeight is the message line plus the key help.
const footerHeight = 2

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Theme         string
	HeaderTheme   string
	StackPosition string
	Delays        popup.Delays
	NotifyTimeout time.Duration
	WorkDuration  time.Duration
	Width         int
	Height        int
	ShowStatus    bool
	Scheduler     loop.Scheduler
}

// Model implements the Bubble Tea model for the popup demo.
type Model struct {
	loop      *loop.Loop
	sched     loop.Scheduler
	hub       *popup.Hub
	container *popup.Container
	manager   *popup.Manager
	styles    *theme.Styles

	dialogs       *controller.Dialog
	stacks        *controller.Stack
	stickies      *controller.Sticky
	notifications *controller.Notification

	keys      keyMap
	help      help.Model
	search    textinput.Model
	searching bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showStatus  bool

	mouseX, mouseY int
	drag           dragState

	workDuration time.Duration
	opened       int
	infoMsg      string
	errMsg       string
	live         bool
	quitting     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the popup loop, hub, container, manager and controllers.
func NewModel(opts Options) *Model {
	l := loop.New(loop.WithScheduler(opts.Scheduler))
	styles := theme.Resolve(opts.Theme, opts.HeaderTheme)

	hub := popup.NewHub(l)
	hub.SetTheme(opts.Theme)
	hub.SetHeaderTheme(opts.HeaderTheme)
	hub.SetStackPosition(opts.StackPosition)

	c := popup.NewContainer(l, pending.New(l), popup.WithTheme(styles))
	m := &Model{
		loop:         l,
		sched:        opts.Scheduler,
		hub:          hub,
		container:    c,
		styles:       styles,
		keys:         defaultKeyMap(),
		help:         help.New(),
		showStatus:   opts.ShowStatus,
		workDuration: opts.WorkDuration,
	}
	if m.workDuration <= 0 {
		m.workDuration = 3 * time.Second
	}
	delays := opts.Delays
	if delays == (popup.Delays{}) {
		delays = popup.DefaultDelays()
	}
	m.manager = popup.NewManager(l, c,
		popup.WithDelays(delays),
		popup.WithActiveNode(m.focusedNode),
	)
	hub.SetManager(m.manager)
	hub.SetContainer(c)

	m.dialogs = controller.NewDialog(hub)
	m.stacks = controller.NewStack(hub)
	m.stickies = controller.NewSticky(hub)
	m.notifications = controller.NewNotification(hub, opts.NotifyTimeout)

	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.syncSurface()

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search popups"
	ti.Cursor.SetMode(cursor.CursorStatic)
	m.search = ti

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.live = true
	return waitForLoop(m.loop)
}

// Update responds to Bubble Tea messages, then runs every popup task they
// queued.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if handler := m.handlerFor(msg); handler != nil {
		cmd = handler(msg)
	}
	if !m.quitting {
		m.loop.Drain()
	}
	return m, cmd
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(loopWakeMsg{}):       m.handleLoopWakeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// loopWakeMsg reports that tasks were posted to the popup loop from outside
// the Bubble Tea goroutine.
type loopWakeMsg struct{}

func waitForLoop(l *loop.Loop) tea.Cmd {
	return func() tea.Msg {
		<-l.Wake()
		return loopWakeMsg{}
	}
}

func (m *Model) handleLoopWakeMsg(tea.Msg) tea.Cmd {
	if !m.live || m.quitting {
		return nil
	}
	return waitForLoop(m.loop)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	events.UI.Resize(resize.Width, resize.Height)
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncSurface()
	m.manager.ResizeOuter()
	return nil
}

func (m *Model) syncSurface() {
	m.help.Width = m.width
	m.container.SetSize(m.width, max(m.height-footerHeight, 0))
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.manager.Close()
	m.hub.SetManager(nil)
	m.hub.SetContainer(nil)
	m.loop.Close()
	return tea.Quit
}

// Hub exposes the producer-facing popup context.
func (m *Model) Hub() *popup.Hub { return m.hub }

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.errMsg = ""
}

func (m *Model) setError(err error) {
	m.errMsg = err.Error()
	m.infoMsg = ""
}
