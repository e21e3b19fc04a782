package settings

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"inbound/infrastructure/i18n"
)

func ReceivingSettingsPage(minimum, status string, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1 class="text-2xl font-semibold mb-4">`)
		b.WriteString(html.EscapeString(t.Translate("settings.receiving.title", "Receiving settings")))
		b.WriteString(`</h1>`)
		if status != "" {
			b.WriteString(`<div role="alert" class="alert mb-4"><span>`)
			b.WriteString(html.EscapeString(status))
			b.WriteString(`</span></div>`)
		}
		b.WriteString(`<form method="post" action="/inbound/settings/receiving" class="flex items-end gap-2"><label class="form-control"><span class="label-text">`)
		b.WriteString(html.EscapeString(t.Translate("settings.receiving.minimumExpirationDate", "Minimum expiration date")))
		b.WriteString(`</span><input class="input input-bordered" name="minimum_expiration_date" placeholder="MM/DD/YYYY" autocomplete="off" value="`)
		b.WriteString(html.EscapeString(minimum))
		b.WriteString(`"></label><button class="btn btn-primary" type="submit">`)
		b.WriteString(html.EscapeString(t.Translate("default.button.save", "Save")))
		b.WriteString(`</button></form>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
