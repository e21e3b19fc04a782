package html

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Page wraps body in the application layout.
func Page(title, lang string, nav, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if lang == "" {
			lang = "en"
		}
		if _, err := io.WriteString(w, `<!doctype html><html lang="`+html.EscapeString(lang)+`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`+html.EscapeString(title)+`</title><link rel="stylesheet" href="/assets/app.css"></head><body>`); err != nil {
			return err
		}
		if nav != nil {
			if err := nav.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main class="container mx-auto p-4">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`+CSRFFormScript()+`</body></html>`)
		return err
	})
}

// Flash renders a status or error banner; empty messages render nothing.
func Flash(message string, isError bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		class := "alert alert-success"
		if isError {
			class = "alert alert-error"
		}
		_, err := io.WriteString(w, `<div role="alert" class="`+class+` mb-4"><span>`+html.EscapeString(message)+`</span></div>`)
		return err
	})
}

// Raw writes trusted markup.
func Raw(markup string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}
