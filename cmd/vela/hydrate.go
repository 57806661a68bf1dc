package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/hydrate"
	"github.com/vango-dev/vela/pkg/vdom"
	"github.com/vango-dev/vela/pkg/vela"
)

func (a *app) hydrateCmd() *cobra.Command {
	var (
		serverFile string
		clientFile string
		strict     bool
		statsOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "hydrate",
		Short: "Hydrate server markup with a client template",
		Long: `Hydrate parses the server-rendered markup, mounts the client template
over it in hydration mode and prints the adopted DOM together with the
claim and mutation counts.

Matching nodes are reused, missing ones are created, leftovers are
removed, and claimed nodes that arrived out of order are moved with
the fewest insertions. Use - to read either input from stdin.`,
		Example: `  vela hydrate --server page.html --client template.html
  vela hydrate --server page.html --client template.html --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHydrate(cmd, serverFile, clientFile, strict || a.cfg.Runtime.StrictHydration, statsOnly)
		},
	}

	cmd.Flags().StringVar(&serverFile, "server", "", "Server-rendered HTML file")
	cmd.Flags().StringVar(&clientFile, "client", "", "Client template HTML file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when text content differs")
	cmd.Flags().BoolVar(&statsOnly, "stats", false, "Print only the counts")
	cmd.MarkFlagRequired("server")
	cmd.MarkFlagRequired("client")

	return cmd
}

// hydrateReport summarises one hydration pass.
type hydrateReport struct {
	HTML    string
	Claims  map[string]int
	Stats   dom.Stats
	Reorder int
}

func (a *app) runHydrate(cmd *cobra.Command, serverFile, clientFile string, strict, statsOnly bool) error {
	if serverFile == "-" && clientFile == "-" {
		return errors.New("E301").WithDetail("only one of --server and --client can read stdin")
	}
	serverHTML, err := readInput(cmd, serverFile)
	if err != nil {
		return err
	}
	clientHTML, err := readInput(cmd, clientFile)
	if err != nil {
		return err
	}

	report, err := a.hydrate(serverHTML, clientHTML, strict)
	if report != nil {
		out := cmd.OutOrStdout()
		if !statsOnly {
			fmt.Fprintln(out, report.HTML)
		}
		fmt.Fprintf(out, "claimed %d, created %d, mismatched %d\n",
			report.Claims[hydrate.ResultClaimed],
			report.Claims[hydrate.ResultCreated],
			report.Claims[hydrate.ResultMismatch])
		fmt.Fprintf(out, "inserts %d, moves %d, removes %d (reorder %d)\n",
			report.Stats.Inserts, report.Stats.Moves, report.Stats.Removes, report.Reorder)
	}
	return err
}

// hydrate adopts serverHTML with a static component built from
// clientHTML. The report is returned even when strict hydration fails.
func (a *app) hydrate(serverHTML, clientHTML string, strict bool) (*hydrateReport, error) {
	tmpl, err := vdom.ParseHTML(clientHTML)
	if err != nil {
		return nil, errors.New("E301").WithDetail("client template is not valid HTML").Wrap(err)
	}

	doc := dom.NewDocument()
	body := doc.Body()
	if err := dom.ParseFragment(body, serverHTML); err != nil {
		return nil, errors.New("E301").WithDetail("server markup is not valid HTML").Wrap(err)
	}
	doc.ResetStats()

	rt := vela.NewRuntime(host.NewManual(),
		vela.WithLogger(a.logger),
		vela.WithStrictHydration(strict),
	)
	report := &hydrateReport{Claims: make(map[string]int)}
	unsubscribe := rt.Subscribe(func(e vela.Event) {
		if e.Type == vela.EventClaim {
			if result, ok := e.Data["result"].(string); ok {
				report.Claims[result]++
			}
		}
	})
	defer unsubscribe()

	_, err = staticComponent("Page", tmpl).Mount(rt, vela.Options{Target: body, Hydrate: true})

	report.HTML = body.InnerHTML()
	report.Stats = *doc.Stats()
	report.Reorder = rt.Hydration().Moves()
	a.logger.Debug("hydrated",
		"claims", report.Claims,
		"inserts", report.Stats.Inserts,
		"moves", report.Stats.Moves,
		"removes", report.Stats.Removes,
	)
	return report, err
}

// staticComponent wraps a template without slots.
func staticComponent(name string, tmpl *vdom.VNode) *vdom.Component {
	return &vdom.Component{
		Name:     name,
		Template: tmpl,
		Instance: func(*vela.Component, map[string]any, vela.Invalidate) vela.Instance {
			return vela.Instance{}
		},
	}
}
