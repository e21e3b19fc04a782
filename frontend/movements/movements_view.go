package movements

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "inbound/frontend/shared/html"
	"inbound/infrastructure/i18n"
	"inbound/infrastructure/stockmovement"
)

func MovementsPage(data PageData, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := sharedhtml.Flash(data.Message, false).Render(ctx, w); err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString(`<h1 class="text-2xl font-semibold mb-4">`)
		b.WriteString(html.EscapeString(t.Translate("stockMovement.list.title", "Stock movements")))
		b.WriteString(`</h1><div role="tablist" class="tabs tabs-boxed mb-4">`)
		for _, f := range []string{FilterOpen, FilterReceivable, FilterAll} {
			class := "tab"
			if f == data.Filter {
				class += " tab-active"
			}
			b.WriteString(`<a role="tab" class="` + class + `" href="/inbound/movements?filter=` + f + `">` + f + `</a>`)
		}
		b.WriteString(`</div><table class="table"><thead><tr>`)
		for _, h := range []string{
			t.Translate("stockMovement.field.identifier", "Identifier"),
			t.Translate("stockMovement.field.name", "Name"),
			t.Translate("stockMovement.field.origin", "Origin"),
			t.Translate("stockMovement.field.destination", "Destination"),
			t.Translate("stockMovement.field.status", "Status"),
		} {
			b.WriteString(`<th>` + html.EscapeString(h) + `</th>`)
		}
		b.WriteString(`<th></th></tr></thead><tbody>`)

		for _, row := range data.Rows {
			id := strconv.FormatInt(row.ID, 10)
			status, _ := stockmovement.Parse(row.Status)
			b.WriteString(`<tr><td><a class="link" href="/inbound/movements/` + id + `/receiving">`)
			b.WriteString(html.EscapeString(row.Identifier))
			b.WriteString(`</a></td><td>`)
			b.WriteString(html.EscapeString(row.Name))
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(row.Origin))
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(row.Destination))
			b.WriteString(`</td><td><span class="badge">`)
			b.WriteString(html.EscapeString(t.Translate(status.LabelKey(), row.Status)))
			b.WriteString(`</span></td><td>`)
			if data.IsAdmin {
				b.WriteString(`<form method="post" action="/inbound/movements/` + id + `/status" class="flex gap-1"><select class="select select-bordered select-xs" name="status">`)
				for _, s := range data.Statuses {
					b.WriteString(`<option value="` + string(s) + `"`)
					if string(s) == row.Status {
						b.WriteString(` selected`)
					}
					b.WriteString(`>` + html.EscapeString(t.Translate(s.LabelKey(), string(s))) + `</option>`)
				}
				b.WriteString(`</select><button class="btn btn-xs" type="submit">`)
				b.WriteString(html.EscapeString(t.Translate("stockMovement.action.updateStatus", "Update status")))
				b.WriteString(`</button></form>`)
			}
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
