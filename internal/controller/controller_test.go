package controller

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/popstack/internal/logging"
	"github.com/atomicstack/popstack/internal/loop"
	"github.com/atomicstack/popstack/internal/pending"
	"github.com/atomicstack/popstack/internal/popup"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "popstack-controller")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "test.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type harness struct {
	loop      *loop.Loop
	sched     *loop.ManualScheduler
	hub       *popup.Hub
	container *popup.Container
	manager   *popup.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sched := loop.NewManualScheduler()
	l := loop.New(loop.WithScheduler(sched))
	hub := popup.NewHub(l)
	c := popup.NewContainer(l, pending.New(l))
	c.SetSize(80, 24)
	m := popup.NewManager(l, c)
	hub.SetManager(m)
	hub.SetContainer(c)
	t.Cleanup(m.Close)
	return &harness{loop: l, sched: sched, hub: hub, container: c, manager: m}
}

func (h *harness) show(t *testing.T, opts popup.Options, ctrl popup.Controller) *popup.Record {
	t.Helper()
	id := h.hub.Show(opts, ctrl)
	h.loop.Drain()
	r := h.hub.Find(id)
	if r == nil {
		t.Fatalf("popup %s not shown", id)
	}
	return r
}

func TestDialogCentres(t *testing.T) {
	h := newHarness(t)
	r := h.show(t, popup.Options{ID: "d"}, NewDialog(h.hub))
	want := popup.Position{X: 18, Y: 8, Width: 44, Height: 7}
	if r.Position != want {
		t.Fatalf("expected %+v, got %+v", want, r.Position)
	}
	if r.State != DefaultStates.Created {
		t.Fatalf("expected created state, got %q", r.State)
	}
	if host, ok := h.container.Host("d"); !ok || host.Position != want {
		t.Fatalf("expected the mounted host to carry the position")
	}

	h.container.SetSize(40, 10)
	h.manager.ResizeOuter()
	h.sched.Advance(10 * time.Millisecond)
	h.loop.Drain()
	if want := (popup.Position{X: 0, Y: 1, Width: 40, Height: 7}); r.Position != want {
		t.Fatalf("expected dialog clamped to the surface, got %+v", r.Position)
	}
}

func TestDialogMaximizeAndDrag(t *testing.T) {
	h := newHarness(t)
	r := h.show(t, popup.Options{ID: "d", Width: 20, Height: 4}, NewDialog(h.hub))
	h.manager.Dispatch(popup.PopupMaximized{ID: "d", Maximized: true})
	if r.Position.Width != 80 || r.Position.Height != 24 {
		t.Fatalf("expected maximized dialog to cover the surface, got %+v", r.Position)
	}
	h.manager.Dispatch(popup.PopupMaximized{ID: "d", Maximized: false})
	start := r.Position

	h.manager.Dispatch(popup.PopupDragStart{ID: "d", Offset: popup.Offset{X: 3, Y: 2}})
	h.manager.Dispatch(popup.PopupDragStart{ID: "d", Offset: popup.Offset{X: 5, Y: 1}})
	if r.Position.X != start.X+5 || r.Position.Y != start.Y+1 {
		t.Fatalf("expected drag relative to its start, got %+v from %+v", r.Position, start)
	}
	h.manager.UpdatePosition("d")
	if r.Position.X != start.X+5 {
		t.Fatalf("a dragged dialog must not snap back to centre")
	}
	h.manager.Dispatch(popup.PopupDragEnd{ID: "d"})
	h.manager.UpdatePosition("d")
	if r.Position != start {
		t.Fatalf("expected recentring after the drag, got %+v", r.Position)
	}
}

func TestStackHidesCoveredPanels(t *testing.T) {
	h := newHarness(t)
	stack := NewStack(h.hub)
	first := h.show(t, popup.Options{ID: "s1"}, stack)
	if first.Position.X != 40 || first.Position.Width != 40 || first.Position.Height != 24 {
		t.Fatalf("unexpected first panel %+v", first.Position)
	}
	second := h.show(t, popup.Options{ID: "s2", Width: 60}, stack)
	if !first.Position.Hidden || second.Position.Hidden {
		t.Fatalf("expected s1 hidden under the wider s2: %+v %+v", first.Position, second.Position)
	}
	narrow := h.show(t, popup.Options{ID: "s3", Width: 30}, stack)
	if second.Position.Hidden || narrow.Position.X != 50 {
		t.Fatalf("a narrower panel must not hide s2: %+v %+v", second.Position, narrow.Position)
	}

	h.hub.Remove("s2")
	h.loop.Drain()
	if first.Position.Hidden {
		t.Fatalf("expected s1 visible again once s2 closed")
	}
}

func TestStackOnLeft(t *testing.T) {
	h := newHarness(t)
	h.hub.SetStackPosition(popup.StackLeft)
	r := h.show(t, popup.Options{ID: "s"}, NewStack(h.hub))
	if r.Position.X != 0 {
		t.Fatalf("expected a left panel, got %+v", r.Position)
	}
}

func TestStickyPlacementAndOutsideClose(t *testing.T) {
	h := newHarness(t)
	sticky := NewSticky(h.hub)
	r := h.show(t, popup.Options{ID: "p", Data: map[string]interface{}{AnchorX: 10, AnchorY: 3}}, sticky)
	if want := (popup.Position{X: 10, Y: 4, Width: 28, Height: 5}); r.Position != want {
		t.Fatalf("expected %+v, got %+v", want, r.Position)
	}
	if !r.Options.CloseOnOutsideClick {
		t.Fatalf("expected sticky popups to close on outside clicks by default")
	}

	flipped := h.show(t, popup.Options{ID: "q", Data: map[string]interface{}{AnchorX: 70, AnchorY: 22}}, sticky)
	if want := (popup.Position{X: 52, Y: 17, Width: 28, Height: 5}); flipped.Position != want {
		t.Fatalf("expected flipped placement %+v, got %+v", want, flipped.Position)
	}

	h.manager.MouseDown(nil)
	h.loop.Drain()
	if h.hub.Find("p") != nil || h.hub.Find("q") != nil {
		t.Fatalf("expected outside press to close sticky popups")
	}
}

func TestStickyClosesOnOutsideDrag(t *testing.T) {
	h := newHarness(t)
	sticky := NewSticky(h.hub)
	h.show(t, popup.Options{ID: "p"}, sticky)
	host, _ := h.container.Host("p")
	h.manager.PageDragNDrop(popup.DragStart, &popup.Element{Parent: host})
	h.sched.Advance(10 * time.Millisecond)
	h.loop.Drain()
	if h.hub.Find("p") == nil {
		t.Fatalf("drag inside the popover must keep it")
	}
	h.manager.PageDragNDrop(popup.DragStart, nil)
	h.sched.Advance(10 * time.Millisecond)
	h.loop.Drain()
	if h.hub.Find("p") != nil {
		t.Fatalf("expected outside drag to close the popover")
	}
}

func TestNotificationsStackFromBottomRight(t *testing.T) {
	h := newHarness(t)
	notes := NewNotification(h.hub, 0)
	first := h.show(t, popup.Options{ID: "n1"}, notes)
	second := h.show(t, popup.Options{ID: "n2"}, notes)
	if second.Position.Y != 20 || first.Position.Y != 16 || first.Position.X != 44 {
		t.Fatalf("unexpected layout n1=%+v n2=%+v", first.Position, second.Position)
	}
	if !first.Options.NoAutofocus {
		t.Fatalf("notifications must not take focus")
	}
	if _, ok := h.container.Focused(); ok {
		t.Fatalf("expected nothing focused")
	}

	h.hub.Remove("n2")
	h.loop.Drain()
	if first.Position.Y != 20 {
		t.Fatalf("expected n1 to drop to the bottom, got %+v", first.Position)
	}
}

func TestNotificationAutoClose(t *testing.T) {
	h := newHarness(t)
	notes := NewNotification(h.hub, time.Second)
	h.show(t, popup.Options{ID: "n"}, notes)
	h.sched.Advance(999 * time.Millisecond)
	h.loop.Drain()
	if h.hub.Find("n") == nil {
		t.Fatalf("closed before the auto-close delay")
	}
	h.sched.Advance(time.Millisecond)
	h.loop.Drain()
	if h.hub.Find("n") != nil {
		t.Fatalf("expected notification to auto-close")
	}
	if h.sched.Active() != 0 {
		t.Fatalf("expected no timers left, got %d", h.sched.Active())
	}
}

func TestNotificationSurvivesNavigate(t *testing.T) {
	h := newHarness(t)
	h.show(t, popup.Options{ID: "n"}, NewNotification(h.hub, 0))
	h.show(t, popup.Options{ID: "d"}, NewDialog(h.hub))
	h.manager.Navigate(false)
	h.loop.Drain()
	if h.hub.Find("n") == nil || h.hub.Find("d") != nil {
		t.Fatalf("expected navigation to close only the dialog")
	}
}
