package popup

// Node is an element of the logical control tree. Producers pass the node
// they live in as Options.Opener; pointer events carry the node they hit.
type Node interface {
	ParentNode() Node
}

// Host is the mounted instance of a popup.
type Host interface {
	Node
	PopupID() string
}

// Isolated is implemented by nodes whose subtree must never trigger outside
// dismissal, such as wait indicators.
type Isolated interface {
	IgnoresOutsideClick() bool
}

// Backdrop is the dimming layer drawn under the overlay owner.
type Backdrop struct {
	Owner string
}

func (Backdrop) ParentNode() Node { return nil }

// Element is a plain node for producer content.
type Element struct {
	Name     string
	Parent   Node
	Isolated bool
}

func (e *Element) ParentNode() Node {
	if e == nil || e.Parent == nil {
		return nil
	}
	return e.Parent
}

func (e *Element) IgnoresOutsideClick() bool { return e != nil && e.Isolated }

// enclosingPopup returns the nearest popup host at or above n.
func enclosingPopup(n Node) (string, bool) {
	for cur := n; cur != nil; cur = cur.ParentNode() {
		if h, ok := cur.(Host); ok {
			return h.PopupID(), true
		}
	}
	return "", false
}

// ancestorPopups collects every popup host on the path from n to the root.
func ancestorPopups(n Node) map[string]bool {
	ids := make(map[string]bool)
	for cur := n; cur != nil; cur = cur.ParentNode() {
		if h, ok := cur.(Host); ok {
			ids[h.PopupID()] = true
		}
	}
	return ids
}

func inIsolatedArea(n Node) bool {
	for cur := n; cur != nil; cur = cur.ParentNode() {
		if iso, ok := cur.(Isolated); ok && iso.IgnoresOutsideClick() {
			return true
		}
	}
	return false
}
