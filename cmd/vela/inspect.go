package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/inspect"
	"github.com/vango-dev/vela/pkg/metrics"
	"github.com/vango-dev/vela/pkg/transition"
	"github.com/vango-dev/vela/pkg/vdom"
	"github.com/vango-dev/vela/pkg/vela"
)

func (a *app) inspectCmd() *cobra.Command {
	var (
		addr  string
		file  string
		demo  bool
		every time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve runtime metrics, DOM snapshots and events",
		Long: `Inspect starts a runtime on a real event loop and serves:

  /healthz    liveness
  /metrics    Prometheus metrics
  /snapshot   the current document as HTML
  /events     runtime events over a WebSocket

With --demo a ticking component with a fading badge is mounted so the
scheduler and transition engine have work to report.`,
		Example: `  vela inspect --demo
  vela inspect --file page.html --addr :7070`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Inspector.Addr
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var markup string
			if file != "" {
				var err error
				if markup, err = readInput(cmd, file); err != nil {
					return err
				}
			}
			return a.runInspect(ctx, addr, markup, demo, every)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (defaults to inspector.addr)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML file to load into the document body")
	cmd.Flags().BoolVar(&demo, "demo", false, "Mount a ticking demo component")
	cmd.Flags().DurationVar(&every, "every", time.Second, "Demo tick interval")

	return cmd
}

func (a *app) runInspect(ctx context.Context, addr, markup string, demo bool, every time.Duration) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	loop := host.NewLoop(
		host.WithFrameInterval(a.cfg.Runtime.FrameInterval),
		host.WithLogger(a.logger),
	)
	rt := vela.NewRuntime(loop,
		vela.WithLogger(a.logger),
		vela.WithStrictHydration(a.cfg.Runtime.StrictHydration),
		vela.WithMetrics(metrics.New(
			metrics.WithRegistry(reg),
			metrics.WithNamespace(a.cfg.Metrics.Namespace),
		)),
	)

	doc := dom.NewDocument()
	if markup != "" {
		if err := dom.ParseFragment(doc.Body(), markup); err != nil {
			return errors.New("E301").WithDetail("page is not valid HTML").Wrap(err)
		}
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	if demo {
		ticker := newTicker(a.cfg.Runtime.TransitionDuration)
		mounted := make(chan error, 1)
		if err := loop.Submit(func() {
			_, err := ticker.component.Mount(rt, vela.Options{Target: doc.Body()})
			mounted <- err
		}); err != nil {
			return err
		}
		if err := <-mounted; err != nil {
			return err
		}
		go ticker.run(ctx, loop, every)
	}

	srv := inspect.New(rt, doc,
		inspect.WithExecutor(loop),
		inspect.WithGatherer(reg),
		inspect.WithLogger(a.logger),
	)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}
	return <-loopErr
}

// ticker is the demo component: a counter with a badge that fades in
// on even ticks and out on odd ones.
type ticker struct {
	component  *vdom.Component
	invalidate vela.Invalidate
	count      int
}

func newTicker(fade time.Duration) *ticker {
	t := &ticker{}
	t.component = &vdom.Component{
		Name: "Ticker",
		Template: vdom.Div(vdom.Class("ticker"),
			vdom.P("ticks: ", vdom.Slot(0)),
			vdom.If(1, vdom.Span(vdom.Class("badge"),
				vdom.Transition(transition.Fade, transition.FadeParams{Duration: fade}),
				"even",
			)),
		),
		Instance: func(_ *vela.Component, _ map[string]any, invalidate vela.Invalidate) vela.Instance {
			t.invalidate = invalidate
			return vela.Instance{Ctx: []any{0, true}}
		},
	}
	return t
}

// tick advances the counter. It must run on the loop goroutine.
func (t *ticker) tick() {
	t.count++
	t.invalidate(0, t.count)
	t.invalidate(1, t.count%2 == 0)
}

func (t *ticker) run(ctx context.Context, loop *host.Loop, every time.Duration) {
	tk := time.NewTicker(every)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if err := loop.Submit(t.tick); err != nil {
				return
			}
		}
	}
}
