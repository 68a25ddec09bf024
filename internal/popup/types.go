package popup

import (
	"maps"

	"github.com/atomicstack/popstack/internal/future"
)

// State is an opaque lifecycle tag. Each controller supplies its own values
// through States; the Manager only compares them for equality.
type State string

// States is the set of lifecycle tags a controller kind uses.
type States struct {
	Initializing    State
	Created         State
	StartDestroying State
	Destroying      State
	Destroyed       State
}

// Kind is the coarse overlay type tag used by exclusion rules.
type Kind string

const (
	KindDialog       Kind = "Dialog"
	KindStack        Kind = "Stack"
	KindSticky       Kind = "Sticky"
	KindNotification Kind = "Notification"
	KindConfirmation Kind = "Confirmation"
	KindMenu         Kind = "Menu"
)

// Handlers are the per-record callbacks. Each receives a copy of the
// record's options with ID filled in.
type Handlers struct {
	OnOpen   func(opts Options)
	OnClose  func(opts Options)
	OnResult func(opts Options, args ...interface{})
}

// Options is the producer-supplied configuration of one overlay. Updates
// replace it wholesale.
type Options struct {
	ID       string
	Template string
	Title    string
	Body     string

	Modal    bool
	TopPopup bool
	Maximize bool

	// ZIndex is an explicit stacking value; zero means unset.
	ZIndex         int
	ZIndexCallback func(item ItemInfo, list []ItemInfo) int

	NoAutofocus         bool
	CloseOnOutsideClick bool
	CloseOnOverlayClick bool

	// Opener is the node the producer lives in. Walking its ancestors finds
	// the enclosing popup, which becomes the parent.
	Opener Node

	Width  int
	Height int
	Data   map[string]interface{}

	Handlers Handlers
}

// ItemInfo is the read-only view handed to ZIndexCallback.
type ItemInfo struct {
	ID           string
	Kind         Kind
	ParentID     string
	ParentZIndex int
	Modal        bool
	Maximize     bool
	Template     string
}

// Sizes is the last measured size of a popup.
type Sizes struct {
	Width  int
	Height int
}

// Position is where the controller placed the popup, in terminal cells.
type Position struct {
	X, Y          int
	Width, Height int
	Hidden        bool
}

// Offset is a drag or resize delta.
type Offset struct {
	X, Y int
}

// DragPhase labels page drag-and-drop notifications.
type DragPhase string

const (
	DragStart DragPhase = "dragStart"
	DragEnd   DragPhase = "dragEnd"
	DragEnter DragPhase = "dragEnter"
)

// Record is the coordinator's representation of one live or tearing-down
// overlay.
type Record struct {
	ID         string
	Controller Controller
	Options    Options
	State      State
	ParentID   string
	Children   []*Record

	CurrentZIndex int
	Sizes         Sizes
	Position      Position
	Modal         bool

	// ActiveAfterDestroy is the node that had focus when the popup opened.
	ActiveAfterDestroy Node
	RemoveInitiator    string

	// Revision increases with every accepted options update.
	Revision uint64

	removal       *future.Future[future.Void]
	removePending *future.Future[future.Void]
	closeChildren func()
}

// Snapshot copies the record for consumers that must not mutate it. The copy
// carries no links to other records and owns its Data map. Handlers and
// ZIndexCallback are shared with the live record.
func (r *Record) Snapshot() Record {
	cp := *r
	cp.Options.Data = maps.Clone(r.Options.Data)
	cp.Children = nil
	cp.removal = nil
	cp.removePending = nil
	cp.closeChildren = nil
	return cp
}

func (r *Record) is(s func(States) State) bool {
	return r.Controller != nil && r.State == s(r.Controller.States())
}

func (r *Record) initializing() bool {
	return r.is(func(s States) State { return s.Initializing })
}

func (r *Record) gone() bool {
	return r.is(func(s States) State { return s.Destroying }) ||
		r.is(func(s States) State { return s.Destroyed })
}

func (r *Record) destroying() bool {
	return r.is(func(s States) State { return s.StartDestroying }) || r.gone()
}

func (o Options) withID(id string) Options {
	o.ID = id
	return o
}
