package pending

import (
	"errors"
	"testing"

	"github.com/atomicstack/popstack/internal/future"
	"github.com/atomicstack/popstack/internal/loop"
)

func TestFinishWithoutPendingsResolves(t *testing.T) {
	l := loop.New()
	r := New(l)
	f := r.Finish("a", false)
	if !f.Settled() || f.Err() != nil {
		t.Fatalf("expected resolved future")
	}
}

func TestFinishWaitsForOperation(t *testing.T) {
	l := loop.New()
	r := New(l)
	op, resolve, _ := future.New[future.Void](l)
	asked := false
	r.Register("a", op, Config{OnPendingFail: func(bool) { asked = true }})
	if !r.HasRegistered("a") || r.HasRegistered("b") {
		t.Fatalf("unexpected registration state")
	}
	f := r.Finish("a", false)
	if !asked {
		t.Fatalf("expected OnPendingFail to be called")
	}
	if again := r.Finish("a", false); again != f {
		t.Fatalf("expected concurrent finish to share a future")
	}
	l.Drain()
	if f.Settled() {
		t.Fatalf("finish resolved before the operation")
	}
	resolve(future.Void{})
	l.Drain()
	if !f.Settled() || f.Err() != nil {
		t.Fatalf("expected finish to resolve, err=%v", f.Err())
	}
	if r.HasRegistered("a") {
		t.Fatalf("expected settled operation to unregister")
	}
}

func TestCancelFinishingRejectsWithErrCanceled(t *testing.T) {
	l := loop.New()
	r := New(l)
	op, _, _ := future.New[future.Void](l)
	r.Register("a", op, Config{OnPendingFail: func(bool) { r.CancelFinishing("a") }})
	f := r.Finish("a", false)
	l.Drain()
	if !errors.Is(f.Err(), ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", f.Err())
	}
	if r.IsFinishing("a") {
		t.Fatalf("expected finishing to be cleared")
	}
	if !r.HasRegistered("a") {
		t.Fatalf("cancelled finish must keep the operation registered")
	}
}

func TestFailedOperationRejectsFinish(t *testing.T) {
	l := loop.New()
	r := New(l)
	op, _, reject := future.New[future.Void](l)
	r.Register("a", op, Config{})
	f := r.Finish("a", true)
	boom := errors.New("save failed")
	reject(boom)
	l.Drain()
	if !errors.Is(f.Err(), boom) || errors.Is(f.Err(), ErrCanceled) {
		t.Fatalf("expected wrapped operation error, got %v", f.Err())
	}
}

func TestValidateFiltersRegistrations(t *testing.T) {
	l := loop.New()
	r := New(l)
	op, _, _ := future.New[future.Void](l)
	blocking := false
	r.Register("a", op, Config{Validate: func() bool { return blocking }})
	if r.HasRegistered("a") {
		t.Fatalf("expected non-blocking registration to be ignored")
	}
	blocking = true
	if !r.HasRegistered("") {
		t.Fatalf("expected empty root to match every registration")
	}
}
