package popup

import "github.com/atomicstack/popstack/internal/future"

// Surface is the part of the mount surface controllers may consult while
// positioning a popup.
type Surface interface {
	Size() (width, height int)
}

// Controller is implemented once per overlay kind. The Manager calls every
// hook with its own record; hooks may mutate Position, Sizes and State.
// Hooks returning bool report whether a redraw is needed.
type Controller interface {
	Kind() Kind
	States() States

	DefaultConfig(r *Record) ConfigResult
	ElementUpdateOptions(r *Record, s Surface) UpdateResult
	BeforeUpdateOptions(r *Record)
	AfterUpdateOptions(r *Record)

	ElementCreated(r *Record, s Surface) bool
	ElementUpdated(r *Record, s Surface) bool
	ElementAfterUpdated(r *Record, s Surface) bool
	ElementMaximized(r *Record, s Surface, maximized bool)
	ElementAnimated(r *Record, s Surface) bool
	BeforeElementDestroyed(r *Record, s Surface) bool
	ElementDestroyed(r *Record, s Surface) *future.Future[future.Void]

	ResizeInner(r *Record, s Surface) bool
	ResizeOuter(r *Record, s Surface) bool
	PageScrolled(r *Record, s Surface) bool
	WorkspaceResize(r *Record, s Surface) bool
	OrientationChanged(r *Record, s Surface) bool
	UpdatePosition(r *Record, s Surface) bool

	ClosesOnOutsideClick(r *Record) bool
	CloseByOutsideClick(r *Record)
	PopupMovingSize(r *Record, off Offset)
	PopupDragStart(r *Record, s Surface, off Offset)
	PopupDragEnd(r *Record, off Offset)
	PopupMouseEnter(r *Record, s Surface)
	PopupMouseLeave(r *Record, s Surface)
	DragNDropOnPage(r *Record, s Surface, insideDrag bool, phase DragPhase) bool
	NeedRecalcOnKeyboardShow() bool
}

type verdict int

const (
	verdictProceed verdict = iota
	verdictVeto
	verdictDeferred
)

// ConfigResult is what DefaultConfig decides about a new popup.
type ConfigResult struct {
	verdict verdict
	wait    *future.Future[future.Void]
}

// Proceed mounts the popup right away.
func Proceed() ConfigResult { return ConfigResult{verdict: verdictProceed} }

// Veto discards the popup before it is mounted.
func Veto() ConfigResult { return ConfigResult{verdict: verdictVeto} }

// Deferred mounts the popup once f resolves. A rejected f vetoes it.
func Deferred(f *future.Future[future.Void]) ConfigResult {
	if f == nil {
		return Proceed()
	}
	return ConfigResult{verdict: verdictDeferred, wait: f}
}

// UpdateResult is what ElementUpdateOptions decides about new options.
type UpdateResult struct {
	verdict verdict
	wait    *future.Future[bool]
}

// Accept commits the new options.
func Accept() UpdateResult { return UpdateResult{verdict: verdictProceed} }

// Reject restores the previous options.
func Reject() UpdateResult { return UpdateResult{verdict: verdictVeto} }

// DeferredUpdate decides once f settles; false or an error rejects.
func DeferredUpdate(f *future.Future[bool]) UpdateResult {
	if f == nil {
		return Accept()
	}
	return UpdateResult{verdict: verdictDeferred, wait: f}
}
