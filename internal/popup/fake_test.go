package popup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/logging"
	"github.com/atomicstack/popstack/internal/loop"
	"github.com/atomicstack/popstack/internal/pending"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "popstack-popup")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "test.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

var fakeStates = States{
	Initializing:    "init",
	Created:         "live",
	StartDestroying: "closing",
	Destroying:      "dying",
	Destroyed:       "dead",
}

type fakeController struct {
	kind Kind
	m    *Manager

	config func(r *Record) ConfigResult
	update func(r *Record) UpdateResult

	keepOpen         bool
	quietCreate      bool
	stayInitializing bool
	reposition       bool
	keyboard         bool
	dragClose        bool
	deferDestroy     bool

	calls     map[string]int
	destroyed []string
	closed    []string
	finishers map[string]func(future.Void)
}

func newFake(m *Manager) *fakeController {
	return &fakeController{
		kind:      KindDialog,
		m:         m,
		calls:     make(map[string]int),
		finishers: make(map[string]func(future.Void)),
	}
}

func (f *fakeController) Kind() Kind     { return f.kind }
func (f *fakeController) States() States { return fakeStates }

func (f *fakeController) DefaultConfig(r *Record) ConfigResult {
	f.calls["config"]++
	if f.config != nil {
		return f.config(r)
	}
	return Proceed()
}

func (f *fakeController) ElementUpdateOptions(r *Record, _ Surface) UpdateResult {
	f.calls["updateOptions"]++
	if f.update != nil {
		return f.update(r)
	}
	return Accept()
}

func (f *fakeController) BeforeUpdateOptions(*Record) { f.calls["beforeUpdate"]++ }
func (f *fakeController) AfterUpdateOptions(*Record)  { f.calls["afterUpdate"]++ }

func (f *fakeController) ElementCreated(r *Record, _ Surface) bool {
	f.calls["created"]++
	if !f.stayInitializing {
		r.State = fakeStates.Created
	}
	return !f.quietCreate
}

func (f *fakeController) ElementUpdated(*Record, Surface) bool {
	f.calls["updated"]++
	return false
}

func (f *fakeController) ElementAfterUpdated(*Record, Surface) bool {
	f.calls["afterUpdated"]++
	return false
}

func (f *fakeController) ElementMaximized(r *Record, _ Surface, maximized bool) {
	r.Options.Maximize = maximized
}

func (f *fakeController) ElementAnimated(*Record, Surface) bool { return false }

func (f *fakeController) BeforeElementDestroyed(r *Record, _ Surface) bool {
	f.calls["beforeDestroy"]++
	if f.keepOpen {
		return false
	}
	r.State = fakeStates.StartDestroying
	return true
}

func (f *fakeController) ElementDestroyed(r *Record, _ Surface) *future.Future[future.Void] {
	r.State = fakeStates.Destroying
	f.destroyed = append(f.destroyed, r.ID)
	if !f.deferDestroy {
		return future.Done(f.m.loop)
	}
	fut, resolve, _ := future.New[future.Void](f.m.loop)
	f.finishers[r.ID] = resolve
	return fut
}

func (f *fakeController) hook(name string) bool {
	f.calls[name]++
	return f.reposition
}

func (f *fakeController) ResizeInner(*Record, Surface) bool        { return f.hook("resizeInner") }
func (f *fakeController) ResizeOuter(*Record, Surface) bool        { return f.hook("resizeOuter") }
func (f *fakeController) PageScrolled(*Record, Surface) bool       { return f.hook("pageScrolled") }
func (f *fakeController) WorkspaceResize(*Record, Surface) bool    { return f.hook("workspaceResize") }
func (f *fakeController) OrientationChanged(*Record, Surface) bool { return f.hook("orientation") }
func (f *fakeController) UpdatePosition(*Record, Surface) bool     { return f.hook("updatePosition") }

func (f *fakeController) ClosesOnOutsideClick(r *Record) bool {
	return r.Options.CloseOnOutsideClick
}

func (f *fakeController) CloseByOutsideClick(r *Record) {
	f.closed = append(f.closed, r.ID)
	f.m.Remove(r.ID)
}

func (f *fakeController) PopupMovingSize(*Record, Offset)         {}
func (f *fakeController) PopupDragStart(*Record, Surface, Offset) {}
func (f *fakeController) PopupDragEnd(*Record, Offset)            {}
func (f *fakeController) PopupMouseEnter(*Record, Surface)        {}
func (f *fakeController) PopupMouseLeave(*Record, Surface)        {}
func (f *fakeController) NeedRecalcOnKeyboardShow() bool          { return f.keyboard }

func (f *fakeController) DragNDropOnPage(_ *Record, _ Surface, inside bool, _ DragPhase) bool {
	f.calls["drag"]++
	return f.dragClose && !inside
}

type fixture struct {
	loop      *loop.Loop
	sched     *loop.ManualScheduler
	pending   *pending.Registrar
	container *Container
	manager   *Manager
	ctrl      *fakeController
}

func newFixture(t *testing.T, opts ...ManagerOption) *fixture {
	t.Helper()
	sched := loop.NewManualScheduler()
	l := loop.New(loop.WithScheduler(sched))
	reg := pending.New(l)
	c := NewContainer(l, reg)
	c.SetSize(80, 24)
	m := NewManager(l, c, opts...)
	t.Cleanup(m.Close)
	return &fixture{loop: l, sched: sched, pending: reg, container: c, manager: m, ctrl: newFake(m)}
}

// show opens a popup and commits it.
func (fx *fixture) show(opts Options) string {
	id := fx.manager.Show(opts, fx.ctrl)
	fx.loop.Drain()
	return id
}

// inside returns a node living in the mounted popup id.
func (fx *fixture) inside(t *testing.T, id string) Node {
	t.Helper()
	host, ok := fx.container.Host(id)
	if !ok {
		t.Fatalf("popup %s is not mounted", id)
	}
	return &Element{Name: "content", Parent: host}
}
