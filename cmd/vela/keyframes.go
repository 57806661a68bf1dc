package main

import (
	"log/slog"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/internal/export"
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/transition"
	"github.com/vango-dev/vela/pkg/vela"
)

// keyframesOptions are the flags of the keyframes command.
type keyframesOptions struct {
	effect    string
	direction string
	easing    string
	duration  time.Duration
	delay     time.Duration
	x, y      string
	opacity   float64
	target    string
	region    string
}

func (a *app) keyframesCmd() *cobra.Command {
	opts := keyframesOptions{}

	cmd := &cobra.Command{
		Use:   "keyframes",
		Short: "Generate @keyframes CSS for a built-in transition",
		Long: `Keyframes runs a built-in transition against a detached element and
writes the keyframes rule the engine generates for it.

The destination is --out, then export.target from vela.yaml, then
stdout. Targets of the form s3://bucket/key are uploaded to S3 using
the AWS_* environment credentials.`,
		Example: `  vela keyframes --effect fade
  vela keyframes --effect fly --y 200 --duration 800ms --easing cubicOut
  vela keyframes --effect fly --direction out --out s3://assets/fly.css`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKeyframes(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.effect, "effect", "e", "fade", "Transition name")
	cmd.Flags().StringVar(&opts.direction, "direction", "in", "Transition direction (in or out)")
	cmd.Flags().StringVar(&opts.easing, "easing", "", "Easing name (defaults per effect)")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Duration (defaults to runtime.transition_duration)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Delay before the animation starts")
	cmd.Flags().StringVar(&opts.x, "x", "0", "Horizontal offset for fly")
	cmd.Flags().StringVar(&opts.y, "y", "0", "Vertical offset for fly")
	cmd.Flags().Float64Var(&opts.opacity, "opacity", 0, "Starting opacity for fly")
	cmd.Flags().StringVarP(&opts.target, "out", "o", "", "Output file or s3://bucket/key")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region for s3 targets")

	return cmd
}

func (a *app) runKeyframes(cmd *cobra.Command, opts keyframesOptions) error {
	if opts.duration == 0 {
		opts.duration = a.cfg.Runtime.TransitionDuration
	}
	if opts.target == "" {
		opts.target = a.cfg.Export.Target
	}
	if opts.region == "" {
		opts.region = a.cfg.Export.Region
	}

	css, err := generateKeyframes(opts, a.logger)
	if err != nil {
		return err
	}

	var store export.Store
	if opts.target == "" {
		store = export.NewWriterStore(cmd.OutOrStdout())
	} else {
		store, err = export.Open(opts.target, opts.region)
		if err != nil {
			return err
		}
	}
	if err := store.Put(cmd.Context(), []byte(css+"\n")); err != nil {
		return err
	}
	if opts.target != "" {
		a.logger.Info("keyframes written", "target", opts.target, "bytes", len(css)+1)
	}
	return nil
}

// generateKeyframes plays one transition on a detached element and
// returns the rules the engine created.
func generateKeyframes(opts keyframesOptions, logger *slog.Logger) (string, error) {
	fn, err := transition.Lookup(opts.effect)
	if err != nil {
		return "", err
	}

	var ease func(float64) float64
	if opts.easing != "" {
		var ok bool
		if ease, ok = transition.Easings[opts.easing]; !ok {
			return "", errors.New("E301").
				WithDetailf("unknown easing %q; available: %v", opts.easing, easingNames())
		}
	}

	var params any
	switch opts.effect {
	case "fly":
		params = transition.FlyParams{
			Delay:    opts.delay,
			Duration: opts.duration,
			Easing:   ease,
			X:        opts.x,
			Y:        opts.y,
			Opacity:  opts.opacity,
		}
	default:
		params = transition.FadeParams{
			Delay:    opts.delay,
			Duration: opts.duration,
			Easing:   ease,
		}
	}

	doc := dom.NewDocument()
	node := doc.CreateElement("div")
	doc.Body().AppendChild(node)

	rt := vela.NewRuntime(host.NewManual())
	eng := rt.Transitions()
	switch opts.direction {
	case "in":
		eng.In(node, fn, params).Start()
	case "out":
		eng.Out(node, fn, params)
	default:
		return "", errors.New("E301").
			WithDetailf("direction must be in or out, got %q", opts.direction)
	}

	css := eng.CSS()
	logger.Debug("keyframes generated", "effect", opts.effect, "direction", opts.direction, "rules", len(eng.Stylesheets()))
	return css, nil
}

func easingNames() []string {
	names := make([]string, 0, len(transition.Easings))
	for name := range transition.Easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
