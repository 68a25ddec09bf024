package future

import (
	"errors"
	"testing"

	"github.com/atomicstack/popstack/internal/loop"
)

func TestCallbacksRunOnLoop(t *testing.T) {
	l := loop.New()
	f, resolve, _ := New[int](l)
	got := 0
	f.Then(func(v int) { got = v })
	resolve(7)
	if got != 0 || f.Settled() {
		t.Fatalf("settlement must wait for the loop")
	}
	l.Drain()
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestFirstSettlementWins(t *testing.T) {
	l := loop.New()
	f, resolve, reject := New[string](l)
	resolve("a")
	reject(errors.New("late"))
	resolve("b")
	l.Drain()
	v, err := f.Result()
	if err != nil || v != "a" {
		t.Fatalf("expected a/nil, got %q/%v", v, err)
	}
}

func TestThenOnSettledFutureIsDeferred(t *testing.T) {
	l := loop.New()
	f := Resolved(l, 3)
	called := false
	f.Then(func(int) { called = true })
	if called {
		t.Fatalf("callback ran inline")
	}
	l.Drain()
	if !called {
		t.Fatalf("callback did not run")
	}
}

func TestCatchReceivesRejection(t *testing.T) {
	l := loop.New()
	want := errors.New("boom")
	var got error
	Rejected[Void](l, want).Catch(func(err error) { got = err })
	l.Drain()
	if !errors.Is(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAllPreservesOrder(t *testing.T) {
	l := loop.New()
	a, resolveA, _ := New[int](l)
	b, resolveB, _ := New[int](l)
	all := All(l, a, b)
	resolveB(2)
	l.Drain()
	if all.Settled() {
		t.Fatalf("all settled before every input")
	}
	resolveA(1)
	l.Drain()
	values, err := all.Result()
	if err != nil || len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Fatalf("unexpected result %v/%v", values, err)
	}
}

func TestAllRejectsOnFirstError(t *testing.T) {
	l := loop.New()
	a, _, rejectA := New[int](l)
	b, resolveB, _ := New[int](l)
	all := All(l, a, b)
	rejectA(errors.New("nope"))
	resolveB(1)
	l.Drain()
	if all.Err() == nil {
		t.Fatalf("expected rejection")
	}
}

func TestAllEmpty(t *testing.T) {
	l := loop.New()
	if !All[int](l).Settled() {
		t.Fatalf("expected empty All to be resolved")
	}
}
