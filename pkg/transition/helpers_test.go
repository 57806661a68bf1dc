package transition

import (
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/scheduler"
)

type env struct {
	host   *host.Manual
	sched  *scheduler.Scheduler
	engine *Engine
	doc    *dom.Node
}

func newEnv(opts ...Option) *env {
	h := host.NewManual()
	s := scheduler.New(h)
	return &env{host: h, sched: s, engine: New(s, opts...), doc: dom.NewDocument()}
}

func (e *env) element(tag string) *dom.Node {
	el := e.doc.CreateElement(tag)
	e.doc.Body().AppendChild(el)
	return el
}

// record collects transition events dispatched on node.
func record(node *dom.Node, log *[]string) {
	for _, name := range []string{EventIntroStart, EventIntroEnd, EventOutroStart, EventOutroEnd} {
		name := name
		node.AddEventListener(name, func(*dom.Event) {
			*log = append(*log, node.Tag()+":"+name)
		})
	}
}

func opacity(t, _ float64) string { return "opacity: " + num(t) }

func timed(d int) Func {
	return func(*dom.Node, any, Options) Config {
		return Config{Duration: ms(d), CSS: opacity}
	}
}

type gauges struct {
	active, groups int
}

func (g *gauges) AnimationsActive(n int) { g.active = n }
func (g *gauges) OutroGroupsOpen(n int)  { g.groups = n }
