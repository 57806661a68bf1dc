package hydrate

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
)

// Claim results reported to an Observer.
const (
	ResultClaimed  = "claimed"
	ResultCreated  = "created"
	ResultMismatch = "mismatch"
)

// Observer receives hydration statistics.
type Observer interface {
	Claimed(result string)
	Reordered(moves int)
}

// Options configures a Session.
type Options struct {
	// Strict turns text mismatches into an E040 error returned by Err.
	// Otherwise they are repaired, counted and logged at debug level.
	Strict bool

	Logger   *slog.Logger
	Observer Observer
	Tracer   trace.Tracer
}

type mismatch struct {
	want, found string
}

// Session tracks one hydration pass and the hydration-aware insertion
// state of the containers it touches.
type Session struct {
	opts Options

	hydrating bool
	inited    map[*dom.Node]bool
	ends      map[*dom.Node]*dom.Node

	mismatches []mismatch
	claims     int

	// set by mismatch, consumed by the claim that caused it
	mismatched bool
	moves      int

	span trace.Span
}

// NewSession creates an idle session.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("vela")
	}
	return &Session{
		opts:   opts,
		inited: make(map[*dom.Node]bool),
		ends:   make(map[*dom.Node]*dom.Node),
	}
}

// Start begins a hydration pass.
func (s *Session) Start() {
	s.hydrating = true
	s.mismatches = nil
	s.mismatched = false
	s.claims = 0
	s.moves = 0
	_, s.span = s.opts.Tracer.Start(context.Background(), "vela.hydrate")
}

// End finishes the hydration pass. Later Append and Insert calls behave
// like plain DOM insertion.
func (s *Session) End() {
	if !s.hydrating {
		return
	}
	s.hydrating = false
	clear(s.inited)
	clear(s.ends)

	if s.span != nil {
		s.span.SetAttributes(
			attribute.Int("vela.claims", s.claims),
			attribute.Int("vela.moves", s.moves),
			attribute.Int("vela.mismatches", len(s.mismatches)),
		)
		if err := s.Err(); err != nil {
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		}
		s.span.End()
		s.span = nil
	}
	if len(s.mismatches) > 0 {
		s.opts.Logger.Debug("hydrate: repaired text mismatches", "count", len(s.mismatches))
	}
}

// Hydrating reports whether a pass is in progress.
func (s *Session) Hydrating() bool { return s.hydrating }

// Mismatches returns the number of text mismatches seen in this pass.
func (s *Session) Mismatches() int { return len(s.mismatches) }

// Moves returns the number of nodes moved by Reorder in this pass.
func (s *Session) Moves() int { return s.moves }

// Err returns an E040 error describing the text mismatches of the pass
// when the session is strict, and nil otherwise.
func (s *Session) Err() error {
	if !s.opts.Strict || len(s.mismatches) == 0 {
		return nil
	}
	first := s.mismatches[0]
	return errors.New("E040").
		WithDetailf("%d text node(s) differed from the expected content; first: expected %q, found %q",
			len(s.mismatches), first.want, first.found)
}

// Children returns the claim candidates of container bound to this
// session.
func (s *Session) Children(container *dom.Node) *Nodes {
	nodes := Children(container)
	nodes.session = s
	return nodes
}

// Reorder reorders target the first time it is called for that target
// within a pass and returns the number of moves.
func (s *Session) Reorder(target *dom.Node) int {
	if s.inited[target] {
		return 0
	}
	s.inited[target] = true
	moves := Reorder(target)
	s.moves += moves
	if s.opts.Observer != nil {
		s.opts.Observer.Reordered(moves)
	}
	return moves
}

// Append appends node to target. While hydrating, target is reordered
// once and node is only moved when it is out of place.
func (s *Session) Append(target, node *dom.Node) {
	if !s.hydrating {
		if node.Parent() != target || node.NextSibling() != nil {
			target.AppendChild(node)
		}
		return
	}

	s.Reorder(target)
	end, ok := s.ends[target]
	if !ok || (end != nil && end.Parent() != target) {
		end = target.FirstChild()
	}
	for end != nil && !end.HasClaimOrder() {
		end = end.NextSibling()
	}

	if node != end {
		if node.HasClaimOrder() || node.Parent() != target {
			target.InsertBefore(node, end)
		}
	} else {
		end = node.NextSibling()
	}
	s.ends[target] = end
}

// Insert inserts node into target before anchor. A nil anchor while
// hydrating behaves like Append.
func (s *Session) Insert(target, node, anchor *dom.Node) {
	if s.hydrating && anchor == nil {
		s.Append(target, node)
		return
	}
	if node.Parent() != target || node.NextSibling() != anchor {
		target.InsertBefore(node, anchor)
	}
}

func (s *Session) observe(result string) {
	if s == nil {
		return
	}
	s.claims++
	if result == ResultClaimed && s.mismatched {
		result = ResultMismatch
	}
	s.mismatched = false
	if s.opts.Observer != nil {
		s.opts.Observer.Claimed(result)
	}
}

func (s *Session) mismatch(want, found string) {
	if s == nil {
		return
	}
	s.mismatches = append(s.mismatches, mismatch{want: want, found: found})
	s.mismatched = true
	s.opts.Logger.Debug("hydrate: text mismatch",
		"expected", truncate(want), "found", truncate(found))
}

func truncate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return fmt.Sprintf("%s...(%d bytes)", s[:limit], len(s))
}
