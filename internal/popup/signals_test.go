package popup

import (
	"testing"
	"time"
)

func TestPageScrolledIsDebounced(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.reposition = true
	fx.show(Options{ID: "a"})
	before := fx.container.Commits()

	fx.manager.PageScrolled()
	fx.manager.PageScrolled()
	fx.manager.PageScrolled()
	fx.loop.Drain()
	if fx.ctrl.calls["pageScrolled"] != 0 {
		t.Fatalf("reposition ran before the debounce delay")
	}

	fx.sched.Advance(10 * time.Millisecond)
	fx.loop.Drain()
	if fx.ctrl.calls["pageScrolled"] != 1 {
		t.Fatalf("expected one reposition, got %d", fx.ctrl.calls["pageScrolled"])
	}
	if fx.container.Commits() != before+1 {
		t.Fatalf("expected one redraw, got %d", fx.container.Commits()-before)
	}
}

func TestResizeWithoutChangesSkipsRedraw(t *testing.T) {
	fx := newFixture(t)
	fx.show(Options{ID: "a"})
	before := fx.container.Commits()

	fx.manager.ResizeOuter()
	fx.sched.Advance(10 * time.Millisecond)
	fx.loop.Drain()
	if fx.ctrl.calls["resizeOuter"] != 1 {
		t.Fatalf("expected the controller to be asked once")
	}
	if fx.container.Commits() != before {
		t.Fatalf("unchanged positions must not redraw")
	}
}

func TestWorkspaceResizeRunsImmediately(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.reposition = true
	fx.show(Options{ID: "a"})
	fx.show(Options{ID: "b"})
	before := fx.container.Commits()

	fx.manager.WorkspaceResize()
	fx.loop.Drain()
	if fx.ctrl.calls["workspaceResize"] != 2 || fx.container.Commits() != before+1 {
		t.Fatalf("expected both popups repositioned in one commit, calls=%v", fx.ctrl.calls)
	}
}

func TestOrientationChangeRecalculatesTwice(t *testing.T) {
	fx := newFixture(t)
	fx.show(Options{ID: "a"})

	fx.manager.OrientationChange()
	fx.sched.Advance(49 * time.Millisecond)
	fx.loop.Drain()
	if fx.ctrl.calls["orientation"] != 0 {
		t.Fatalf("recalculated before the orientation settled")
	}
	fx.sched.Advance(time.Millisecond)
	fx.loop.Drain()
	if fx.ctrl.calls["orientation"] != 1 {
		t.Fatalf("expected first recalculation, got %d", fx.ctrl.calls["orientation"])
	}
	fx.sched.Advance(150 * time.Millisecond)
	fx.loop.Drain()
	if fx.ctrl.calls["orientation"] != 2 {
		t.Fatalf("expected second recalculation, got %d", fx.ctrl.calls["orientation"])
	}
}

func TestKeyboardVisibilityRecalculatesOptedInPopups(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.keyboard = true
	fx.show(Options{ID: "a"})
	other := newFake(fx.manager)
	fx.manager.Show(Options{ID: "b"}, other)
	fx.loop.Drain()
	updated := fx.ctrl.calls["updated"]

	fx.manager.KeyboardVisibilityChange()
	fx.sched.Advance(250 * time.Millisecond)
	fx.loop.Drain()
	if fx.ctrl.calls["updated"] != updated+1 {
		t.Fatalf("expected a to be recalculated")
	}
	if other.calls["updated"] != 0 {
		t.Fatalf("b did not opt in to keyboard recalculation")
	}
}

func TestPageDragNDropIsThrottled(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.dragClose = true
	fx.show(Options{ID: "a"})
	fx.show(Options{ID: "b"})

	fx.manager.PageDragNDrop(DragStart, nil)
	fx.manager.PageDragNDrop(DragEnd, fx.inside(t, "a"))
	fx.sched.Advance(10 * time.Millisecond)
	fx.loop.Drain()

	if fx.ctrl.calls["drag"] != 2 {
		t.Fatalf("expected a single burst over both popups, got %d calls", fx.ctrl.calls["drag"])
	}
	if fx.manager.Find("a") == nil {
		t.Fatalf("drag inside a must keep it open")
	}
	if fx.manager.Find("b") != nil {
		t.Fatalf("expected b to close on an outside drag")
	}
}

func TestCloseStopsPendingSignals(t *testing.T) {
	fx := newFixture(t)
	fx.show(Options{ID: "a"})
	fx.manager.PageScrolled()
	fx.manager.PageDragNDrop(DragStart, nil)
	fx.manager.Close()
	fx.sched.Advance(time.Second)
	fx.loop.Drain()
	if fx.ctrl.calls["pageScrolled"] != 0 || fx.ctrl.calls["drag"] != 0 {
		t.Fatalf("signals fired after close: %v", fx.ctrl.calls)
	}
}
