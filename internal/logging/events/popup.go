package events

import "github.com/atomicstack/popstack/internal/logging"

type PopupTracer struct{}

type ContainerTracer struct{}

type PendingTracer struct{}

var (
	Popup     = PopupTracer{}
	Container = ContainerTracer{}
	Pending   = PendingTracer{}
)

func (PopupTracer) Show(id, kind, template string) {
	logging.Trace("popup.show", map[string]interface{}{"id": id, "kind": kind, "template": template})
}

func (PopupTracer) Veto(id string) {
	logging.Trace("popup.veto", map[string]interface{}{"id": id})
}

func (PopupTracer) Update(id string, accepted bool) {
	logging.Trace("popup.update", map[string]interface{}{"id": id, "accepted": accepted})
}

func (PopupTracer) Remove(id string, children int) {
	logging.Trace("popup.remove", map[string]interface{}{"id": id, "children": children})
}

func (PopupTracer) RemoveVetoed(id string) {
	logging.Trace("popup.remove.vetoed", map[string]interface{}{"id": id})
}

func (PopupTracer) Removed(id string) {
	logging.Trace("popup.removed", map[string]interface{}{"id": id})
}

func (PopupTracer) Redraw(zIndexes map[string]int) {
	logging.Trace("popup.redraw", map[string]interface{}{"zindex": zIndexes})
}

func (PopupTracer) OutsideClick(closing []string) {
	logging.Trace("popup.outside-click", map[string]interface{}{"closing": closing})
}

func (PopupTracer) OverlayClick(id string) {
	logging.Trace("popup.overlay-click", map[string]interface{}{"id": id})
}

func (PopupTracer) Navigate(closing []string, vetoed bool) {
	logging.Trace("popup.navigate", map[string]interface{}{"closing": closing, "vetoed": vetoed})
}

func (PopupTracer) Signal(name string, redraw bool) {
	logging.Trace("popup.signal", map[string]interface{}{"signal": name, "redraw": redraw})
}

func (ContainerTracer) Commit(items, mounted, removed int) {
	logging.Trace("container.commit", map[string]interface{}{"items": items, "mounted": mounted, "removed": removed})
}

func (ContainerTracer) Mount(id string) {
	logging.Trace("container.mount", map[string]interface{}{"id": id})
}

func (ContainerTracer) Unmount(id string) {
	logging.Trace("container.unmount", map[string]interface{}{"id": id})
}

func (PendingTracer) Register(root string, total int) {
	logging.Trace("pending.register", map[string]interface{}{"root": root, "total": total})
}

func (PendingTracer) Finish(root string, count int) {
	logging.Trace("pending.finish", map[string]interface{}{"root": root, "count": count})
}

func (PendingTracer) Cancel(root string) {
	logging.Trace("pending.cancel", map[string]interface{}{"root": root})
}
