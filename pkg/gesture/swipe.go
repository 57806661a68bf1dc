package gesture

import (
	"math"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/vdom"
)

// Custom events dispatched by the actions in this package.
const (
	EventSwipeRight = "swiperight"
	EventSwipeLeft  = "swipeleft"
	EventExpanding  = "expanding"
)

// SwipeParams configures Swipe. Zero fields take the defaults.
type SwipeParams struct {
	// Length is the horizontal distance, in pixels, a touch must travel.
	// Defaults to 50.
	Length float64

	// Tolerance is the vertical drift at which the gesture is ignored.
	// Defaults to 50.
	Tolerance float64
}

func (p SwipeParams) withDefaults() SwipeParams {
	if p.Length <= 0 {
		p.Length = 50
	}
	if p.Tolerance <= 0 {
		p.Tolerance = 50
	}
	return p
}

// swipe tracks a single touch and reports it on touchend.
type swipe struct {
	node   *dom.Node
	params SwipeParams
	left   bool // dispatch swipeleft as well as swiperight

	startX, startY float64
	endX, endY     float64
	moved          bool

	remove []func()
}

var _ vdom.ActionUpdater = (*swipe)(nil)

// Swipe dispatches swiperight or swipeleft on node when a horizontal
// swipe of at least params.Length completes. params may be nil or a
// SwipeParams.
func Swipe(node *dom.Node, params any) vdom.ActionHandle {
	p, _ := params.(SwipeParams)
	return listen(node, p.withDefaults(), true)
}

// SwipeToClose dispatches swiperight for a swipe of more than 100px to
// the right. It is meant for drawers that close towards the edge.
func SwipeToClose(node *dom.Node, _ any) vdom.ActionHandle {
	return listen(node, SwipeParams{Length: 100, Tolerance: 100}, false)
}

func listen(node *dom.Node, params SwipeParams, left bool) *swipe {
	s := &swipe{node: node, params: params, left: left}
	s.remove = []func(){
		node.AddEventListener("touchstart", s.start),
		node.AddEventListener("touchmove", s.move),
		node.AddEventListener("touchend", s.end),
	}
	return s
}

func (s *swipe) start(e *dom.Event) {
	if len(e.TargetTouches) == 0 {
		return
	}
	s.startX, s.startY = e.TargetTouches[0].ClientX, e.TargetTouches[0].ClientY
	s.moved = false
}

func (s *swipe) move(e *dom.Event) {
	if len(e.TargetTouches) == 0 {
		return
	}
	s.endX, s.endY = e.TargetTouches[0].ClientX, e.TargetTouches[0].ClientY
	s.moved = true
}

func (s *swipe) end(*dom.Event) {
	if !s.moved {
		return
	}
	s.moved = false
	if math.Abs(s.endY-s.startY) >= s.params.Tolerance {
		return
	}
	dx := s.endX - s.startX
	switch {
	case dx > s.params.Length:
		s.dispatch(EventSwipeRight)
	case s.left && -dx > s.params.Length:
		s.dispatch(EventSwipeLeft)
	}
}

func (s *swipe) dispatch(typ string) {
	s.node.DispatchEvent(dom.NewCustomEvent(typ, nil, dom.EventInit{}))
}

// Update replaces the swipe parameters.
func (s *swipe) Update(params any) {
	if p, ok := params.(SwipeParams); ok {
		s.params = p.withDefaults()
	}
}

// Destroy removes the touch listeners.
func (s *swipe) Destroy() {
	for _, remove := range s.remove {
		remove()
	}
	s.remove = nil
}
