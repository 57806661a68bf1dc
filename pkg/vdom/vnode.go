package vdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/transition"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // static text
	KindSlot                   // text bound to a context slot
	KindFragment               // grouping without wrapper
	KindIf                     // conditional block
	KindComponent              // nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindSlot:
		return "Slot"
	case KindFragment:
		return "Fragment"
	case KindIf:
		return "If"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a node of a view template. Templates are immutable once built
// and may be shared by any number of views.
type VNode struct {
	Kind     VKind
	Tag      string    // element tag name
	Attrs    []Attr    // static attributes
	Bound    []Binding // attributes bound to slots
	Children []*VNode
	Text     string // for KindText

	// Slot is the context slot read by KindSlot text and KindIf conditions.
	Slot   int
	Format Formatter

	Then, Else *VNode // KindIf branches

	Events      []EventHandler
	Transitions []TransitionSpec
	Actions     []ActionSpec

	Component *Component // for KindComponent
	Props     PropsFunc  // for KindComponent
	Deps      []int      // slots that feed Props
}

// Formatter turns a slot value into text.
type Formatter func(v any) string

// PropsFunc computes the props of a nested component from the parent's
// context slots.
type PropsFunc func(ctx []any) map[string]any

// Attr is a static attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Binding is an attribute whose value comes from a context slot.
type Binding struct {
	Key    string
	Slot   int
	Format Formatter
}

// EventHandler is a DOM event listener attached when the element mounts.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler func(*dom.Event)
}

// TransitionSpec attaches a transition to an element.
type TransitionSpec struct {
	Fn     transition.Func
	Params any
	Dir    transition.Direction
	// Local limits the transition to its own block being added or
	// removed, not an ancestor.
	Local bool
}

// Action is called with an element when it mounts. The returned handle,
// if any, is destroyed with the element.
type Action func(node *dom.Node, params any) ActionHandle

// ActionHandle is returned by an Action.
type ActionHandle interface {
	Destroy()
}

// ActionUpdater is implemented by handles that accept new params when
// their bound slot changes.
type ActionUpdater interface {
	Update(params any)
}

// ActionSpec attaches an action to an element. With Slot >= 0 the params
// are read from that slot and the handle is updated when it changes.
type ActionSpec struct {
	Fn     Action
	Params any
	Slot   int
}

// format renders a slot value as text.
func format(f Formatter, v any) string {
	if f != nil {
		return f(v)
	}
	return Stringify(v)
}

// Stringify is the default Formatter.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// Truthy reports whether v counts as true for an If condition.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && x == x
	default:
		return true
	}
}
