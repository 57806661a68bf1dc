package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/render"
	"github.com/vango-dev/vela/pkg/vdom"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		pretty      bool
		page        bool
		title       string
		lang        string
		stylesheets []string
	)

	cmd := &cobra.Command{
		Use:   "render <template.html>",
		Short: "Server-render a template to HTML",
		Long: `Render mounts a static template in a detached runtime and writes the
resulting HTML. With --page the output is a full document.

The output hydrates back onto the same template without moves.`,
		Example: `  vela render card.html
  vela render card.html --page --title "Card" --stylesheet /app.css`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tmpl, err := vdom.ParseHTML(markup)
			if err != nil {
				return errors.New("E301").WithDetail("template is not valid HTML").Wrap(err)
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty, Logger: a.logger})
			if !page {
				return r.Component(cmd.OutOrStdout(), staticComponent("Template", tmpl), nil)
			}

			return r.RenderPage(cmd.OutOrStdout(), render.PageData{
				Body:        tmpl,
				Title:       title,
				Lang:        lang,
				StyleSheets: stylesheets,
			})
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent block elements")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the output in a full HTML document")
	cmd.Flags().StringVar(&title, "title", "", "Document title (with --page)")
	cmd.Flags().StringVar(&lang, "lang", "", "Document language (with --page)")
	cmd.Flags().StringSliceVar(&stylesheets, "stylesheet", nil, "Stylesheet URL to link (with --page, repeatable)")

	return cmd
}
