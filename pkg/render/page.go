package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/vela/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the page content, usually a view snapshot.
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Styles contains inline CSS, such as exported keyframes.
	Styles []string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string // name attribute
	Content string // content attribute
}

// RenderPage renders a complete HTML document to the given writer.
// Body content is written with no surrounding whitespace so the body
// element can be hydrated as is.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<html lang=\"%s\">\n", html.EscapeString(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<body>"); err != nil {
		return err
	}
	if err := r.renderNode(w, page.Body, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	io.WriteString(w, "<head>\n")
	io.WriteString(w, "<meta charset=\"utf-8\">\n")
	io.WriteString(w, "<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")

	for _, m := range page.Meta {
		fmt.Fprintf(w, "<meta name=\"%s\" content=\"%s\">\n", html.EscapeString(m.Name), html.EscapeString(m.Content))
	}
	if page.Title != "" {
		fmt.Fprintf(w, "<title>%s</title>\n", html.EscapeString(page.Title))
	}
	for _, href := range page.StyleSheets {
		fmt.Fprintf(w, "<link rel=\"stylesheet\" href=\"%s\">\n", html.EscapeString(href))
	}
	for _, css := range page.Styles {
		// Raw text element: only a closing tag can break out.
		fmt.Fprintf(w, "<style>%s</style>\n", escapeStyle(css))
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", "<\\/")
}
