package lines

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	sharedhtml "inbound/frontend/shared/html"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/i18n"
)

func ReceivingPage(data PageData, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := sharedhtml.Flash(data.Message, data.IsError).Render(ctx, w); err != nil {
			return err
		}

		base := "/inbound/movements/" + strconv.FormatInt(data.Movement.ID, 10)
		var b strings.Builder
		b.WriteString(`<div class="mb-4 flex items-center justify-between"><div><h1 class="text-2xl font-semibold">`)
		b.WriteString(html.EscapeString(data.Movement.Identifier + " " + data.Movement.Name))
		b.WriteString(`</h1><p class="text-sm opacity-70">`)
		b.WriteString(html.EscapeString(data.Movement.Origin + " → " + data.Movement.Destination))
		b.WriteString(` · <span class="badge">`)
		b.WriteString(html.EscapeString(t.Translate(data.Status.LabelKey(), string(data.Status))))
		b.WriteString(`</span></p></div><div class="flex gap-2"><a class="btn btn-sm" href="`)
		b.WriteString(base)
		b.WriteString(`/receiving/export.csv">CSV</a><a class="btn btn-sm" href="`)
		b.WriteString(base)
		b.WriteString(`/receiving/export.xlsx">XLSX</a></div></div>`)

		if len(data.Containers) == 0 {
			b.WriteString(`<p class="opacity-70">`)
			b.WriteString(html.EscapeString(t.Translate("receiving.page.noLines", "No shipment lines")))
			b.WriteString(`</p>`)
		}

		for _, c := range data.Containers {
			b.WriteString(`<section class="mb-6"><h2 class="text-lg font-semibold">`)
			b.WriteString(html.EscapeString(t.Translate("receiving.page.binLocation", "Bin location")))
			b.WriteString(`: `)
			b.WriteString(html.EscapeString(c.BinLocation))
			b.WriteString(`</h2><table class="table table-sm"><thead><tr><th>`)
			for i, h := range []string{
				t.Translate("receiving.field.product", "Product"),
				t.Translate("receiving.field.lot", "Lot"),
				t.Translate("receiving.field.expiry", "Expiry"),
				t.Translate("receiving.field.quantityShipped", "Quantity shipped"),
				t.Translate("receiving.field.quantityReceiving", "Quantity receiving"),
			} {
				if i > 0 {
					b.WriteString(`</th><th>`)
				}
				b.WriteString(html.EscapeString(h))
			}
			b.WriteString(`</th><th></th></tr></thead><tbody>`)
			for _, l := range c.Lines {
				lineURL := base + "/receiving/lines/" + strconv.FormatInt(l.ShipmentItemID, 10)
				b.WriteString(`<tr><td>`)
				b.WriteString(html.EscapeString(l.ProductCode + " - " + l.ProductName))
				b.WriteString(`</td><td>`)
				b.WriteString(html.EscapeString(l.LotNumber))
				b.WriteString(`</td><td>`)
				b.WriteString(html.EscapeString(l.ExpirationDate))
				b.WriteString(`</td><td>`)
				b.WriteString(html.EscapeString(formatQty(l.QuantityShipped)))
				b.WriteString(`</td><td>`)
				b.WriteString(html.EscapeString(formatQty(l.QuantityReceiving)))
				b.WriteString(`</td><td class="flex gap-1">`)
				if data.CanEdit {
					b.WriteString(`<a class="btn btn-xs" href="`)
					b.WriteString(lineURL)
					b.WriteString(`/edit">`)
					b.WriteString(html.EscapeString(t.Translate("default.button.edit", "Edit")))
					b.WriteString(`</a>`)
				}
				b.WriteString(`<a class="btn btn-xs btn-ghost" href="`)
				b.WriteString(lineURL)
				b.WriteString(`/label.pdf">`)
				b.WriteString(html.EscapeString(t.Translate("default.button.label", "Label")))
				b.WriteString(`</a></td></tr>`)
			}
			b.WriteString(`</tbody></table></section>`)
		}
		writeHistory(&b, data.History, t)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func formatQty(q decimal.NullDecimal) string {
	if !q.Valid {
		return ""
	}
	return q.Decimal.String()
}

func writeHistory(b *strings.Builder, entries []audit.Entry, t *i18n.Translator) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(`<section class="mt-8"><h2 class="text-lg font-semibold">`)
	b.WriteString(html.EscapeString(t.Translate("receiving.history.title", "Recent changes")))
	b.WriteString(`</h2><table class="table table-xs"><tbody>`)
	for _, e := range entries {
		b.WriteString(`<tr><td>`)
		b.WriteString(e.CreatedAt.Local().Format("01/02/2006 15:04"))
		b.WriteString(`</td><td>`)
		b.WriteString(html.EscapeString(e.Username))
		b.WriteString(`</td><td>`)
		b.WriteString(html.EscapeString(t.Translate("audit.action."+e.Action, e.Action)))
		b.WriteString(`</td><td>#`)
		b.WriteString(html.EscapeString(e.EntityID))
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}
