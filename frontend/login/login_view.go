package login

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "inbound/frontend/shared/html"
	"inbound/infrastructure/i18n"
)

// GetLoginScreen renders the sign-in form with an optional error banner.
func GetLoginScreen(errorMessage string, t *i18n.Translator) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="card max-w-sm mx-auto bg-base-100 shadow"><div class="card-body"><h1 class="card-title">`)
		b.WriteString(html.EscapeString(t.Translate("login.title", "Sign in")))
		b.WriteString(`</h1>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := sharedhtml.Flash(errorMessage, true).Render(ctx, w); err != nil {
			return err
		}
		b.Reset()
		b.WriteString(`<form method="post" action="/login" class="flex flex-col gap-2"><input class="input input-bordered" name="username" autocomplete="username" required placeholder="`)
		b.WriteString(html.EscapeString(t.Translate("login.username", "Username")))
		b.WriteString(`"><input class="input input-bordered" type="password" name="password" autocomplete="current-password" required placeholder="`)
		b.WriteString(html.EscapeString(t.Translate("login.password", "Password")))
		b.WriteString(`"><button class="btn btn-primary" type="submit">`)
		b.WriteString(html.EscapeString(t.Translate("login.submit", "Sign in")))
		b.WriteString(`</button></form></div></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return sharedhtml.Page(t.Translate("login.title", "Sign in"), t.Lang(), nil, body)
}
