package dom

// Touch is a single touch point of a touch event.
type Touch struct {
	ClientX float64
	ClientY float64
}

// EventInit configures a new event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
}

// Event is a DOM event dispatched on a node.
type Event struct {
	Type       string
	Detail     any
	Bubbles    bool
	Cancelable bool

	// TargetTouches carries touch points for touchstart/touchmove/touchend.
	TargetTouches []Touch

	target           *Node
	currentTarget    *Node
	stopped          bool
	defaultPrevented bool
}

// NewCustomEvent creates a custom event with the given detail.
func NewCustomEvent(typ string, detail any, init EventInit) *Event {
	return &Event{Type: typ, Detail: detail, Bubbles: init.Bubbles, Cancelable: init.Cancelable}
}

// Target returns the node the event was dispatched on.
func (e *Event) Target() *Node { return e.target }

// CurrentTarget returns the node whose listener is running.
func (e *Event) CurrentTarget() *Node { return e.currentTarget }

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks a cancelable event as canceled.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

type listener struct {
	fn func(*Event)
}

// AddEventListener registers fn for events of type typ and returns a
// function that removes it again.
func (n *Node) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		list := n.listeners[typ]
		for i, x := range list {
			if x == l {
				n.listeners[typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// DispatchEvent dispatches e on n, bubbling to ancestors when e.Bubbles
// is set. It returns false if a listener called PreventDefault.
func (n *Node) DispatchEvent(e *Event) bool {
	e.target = n
	for cur := n; cur != nil; cur = cur.parent {
		e.currentTarget = cur
		// Snapshot so listeners may unsubscribe themselves.
		list := append([]*listener(nil), cur.listeners[e.Type]...)
		for _, l := range list {
			l.fn(e)
		}
		if !e.Bubbles || e.stopped {
			break
		}
	}
	e.currentTarget = nil
	return !e.defaultPrevented
}
