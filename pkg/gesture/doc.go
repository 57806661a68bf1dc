// Package gesture provides element actions that turn raw input events
// into higher level custom events.
//
// Each constructor has the vdom.Action signature, so it can be attached
// with vdom.Use or vdom.UseSlot:
//
//	vdom.Nav(
//		vdom.Use(gesture.SwipeToClose, nil),
//		vdom.On(gesture.EventSwipeRight, func(*dom.Event) { invalidate(2, false) }),
//	)
//
// Swipes are detected from touchstart/touchmove/touchend. A gesture that
// drifts vertically by the tolerance or more is treated as a scroll and
// dispatches nothing.
package gesture
