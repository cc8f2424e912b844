package layouts

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`

// Base wraps content in the shared HTML document shell.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<title>"+html.EscapeString(title)+"</title>"+htmxScript+`</head>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body class="bg-gray-50 text-gray-900"><main class="mx-auto max-w-5xl p-6">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
