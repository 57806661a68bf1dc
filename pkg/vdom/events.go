package vdom

import (
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/transition"
)

// On handles events of the given type.
func On(event string, handler func(*dom.Event)) EventHandler {
	return EventHandler{Event: event, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler func(*dom.Event)) EventHandler { return On("click", handler) }

// OnInput handles input events.
func OnInput(handler func(*dom.Event)) EventHandler { return On("input", handler) }

// OnChange handles change events.
func OnChange(handler func(*dom.Event)) EventHandler { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler func(*dom.Event)) EventHandler { return On("submit", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler func(*dom.Event)) EventHandler { return On("keydown", handler) }

// Transition lifecycle events

// OnIntroStart handles the introstart event of a transitioning element.
func OnIntroStart(handler func(*dom.Event)) EventHandler {
	return On(transition.EventIntroStart, handler)
}

// OnIntroEnd handles the introend event.
func OnIntroEnd(handler func(*dom.Event)) EventHandler {
	return On(transition.EventIntroEnd, handler)
}

// OnOutroStart handles the outrostart event.
func OnOutroStart(handler func(*dom.Event)) EventHandler {
	return On(transition.EventOutroStart, handler)
}

// OnOutroEnd handles the outroend event.
func OnOutroEnd(handler func(*dom.Event)) EventHandler {
	return On(transition.EventOutroEnd, handler)
}

// Transitions and actions

// Transition plays fn both when the element enters and when it leaves.
func Transition(fn transition.Func, params any) TransitionSpec {
	return TransitionSpec{Fn: fn, Params: params, Dir: transition.Both}
}

// In plays fn when the element enters.
func In(fn transition.Func, params any) TransitionSpec {
	return TransitionSpec{Fn: fn, Params: params, Dir: transition.In}
}

// Out plays fn when the element leaves.
func Out(fn transition.Func, params any) TransitionSpec {
	return TransitionSpec{Fn: fn, Params: params, Dir: transition.Out}
}

// Local returns a copy of t that only plays when its own block is added
// or removed.
func Local(t TransitionSpec) TransitionSpec {
	t.Local = true
	return t
}

// Use attaches action fn with static params.
func Use(fn Action, params any) ActionSpec {
	return ActionSpec{Fn: fn, Params: params, Slot: -1}
}

// UseSlot attaches action fn with params read from a context slot.
func UseSlot(fn Action, slot int) ActionSpec {
	return ActionSpec{Fn: fn, Slot: slot}
}
