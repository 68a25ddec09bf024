package popup

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/popstack/internal/logging"
)

// ErrRemoveCanceled rejects a Remove whose pending operations cancelled the
// close. The popup stays open in its created state.
var ErrRemoveCanceled = errors.New("popup: remove canceled")

// Manager notifications published on the Bus.
const (
	EventPopupCreated         = "managerPopupCreated"
	EventPopupUpdated         = "managerPopupUpdated"
	EventPopupDestroyed       = "managerPopupDestroyed"
	EventPopupBeforeDestroyed = "managerPopupBeforeDestroyed"
	EventPopupMaximized       = "managerPopupMaximized"
)

// Notification is one published manager event.
type Notification struct {
	Name  string
	Item  Record
	Items []Record
}

type subscriber struct {
	id int
	fn func(Notification)
}

// Bus fans manager notifications out to subscribers. Delivery is
// synchronous; a panicking subscriber is logged and skipped.
type Bus struct {
	mu   sync.Mutex
	seq  int
	subs map[string][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscriber)}
}

// Subscribe registers fn for name and returns a function that removes it.
func (b *Bus) Subscribe(name string, fn func(Notification)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	id := b.seq
	b.subs[name] = append(b.subs[name], subscriber{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[name]
		for i, s := range list {
			if s.id == id {
				b.subs[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Notify delivers n to every subscriber of n.Name.
func (b *Bus) Notify(n Notification) {
	if b == nil {
		return
	}
	b.mu.Lock()
	list := append([]subscriber(nil), b.subs[n.Name]...)
	b.mu.Unlock()
	for _, s := range list {
		deliver(n, s.fn)
	}
}

func deliver(n Notification, fn func(Notification)) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Errorf("notification %s for %s: subscriber panicked: %v", n.Name, n.Item.ID, r))
		}
	}()
	fn(n)
}

// Events the Container and mounted hosts send to Manager.Dispatch.
type (
	PopupCreated       struct{ ID string }
	BeforePaintOnMount struct{ ID string }
	PopupUpdated       struct{ ID string }
	PopupAfterUpdated  struct{ ID string }
	PopupMouseEnter    struct{ ID string }
	PopupMouseLeave    struct{ ID string }
	PopupResizeInner   struct{ ID string }
	PopupClose         struct{ ID string }
	PopupAnimated      struct{ ID string }
	PopupActivated     struct{ ID string }

	PopupMovingSize struct {
		ID     string
		Offset Offset
	}
	PopupMaximized struct {
		ID        string
		Maximized bool
	}
	PopupDragStart struct {
		ID     string
		Offset Offset
	}
	PopupDragEnd struct {
		ID     string
		Offset Offset
	}
	PopupResult struct {
		ID   string
		Args []interface{}
	}
)
