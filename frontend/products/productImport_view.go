package products

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"inbound/infrastructure/i18n"
)

type PageData struct {
	Message string
	Records []ProductRecord
}

func ProductImportPage(data PageData, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1 class="text-2xl font-semibold mb-4">`)
		b.WriteString(html.EscapeString(t.Translate("products.import.title", "Import products")))
		b.WriteString(`</h1><p class="mb-4">`)
		b.WriteString(html.EscapeString(data.Message))
		b.WriteString(`</p><form method="post" action="/inbound/products/import" enctype="multipart/form-data" class="flex gap-2 mb-6"><input class="file-input file-input-bordered" type="file" name="file" accept=".csv,text/csv" required><button class="btn btn-primary" type="submit">Import</button></form><table class="table table-sm"><thead><tr><th>Code</th><th>Name</th><th>Lot/expiry</th><th>Updated</th></tr></thead><tbody>`)
		for _, p := range data.Records {
			b.WriteString(`<tr><td>`)
			b.WriteString(html.EscapeString(p.Code))
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(p.Name))
			b.WriteString(`</td><td>`)
			if p.LotAndExpiryControl {
				b.WriteString(`✓`)
			}
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(p.UpdatedAt))
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
