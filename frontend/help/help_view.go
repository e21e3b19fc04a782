package help

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"inbound/infrastructure/i18n"
)

type section struct {
	key, def string
}

var receiverSections = []section{
	{"help.receiving.open", "Open a dispatched movement from the stock movements list to see its lines grouped by bin location."},
	{"help.receiving.edit", "Use Edit on a line to correct the lot number, expiry date or shipped quantity. Add line splits the shipment into several lots."},
	{"help.receiving.confirm", "When an existing lot with stock on hand gets a different expiry date you are asked to confirm. The new date applies to that lot everywhere."},
	{"help.receiving.labels", "Label prints an A6 lot label with a barcode. Export downloads the receiving lines as CSV or Excel."},
}

var adminSections = []section{
	{"help.admin.status", "Admins can change a movement status from the list. Only DISPATCHED movements can be received."},
	{"help.admin.settings", "The receiving settings page sets the minimum expiration date accepted during receiving."},
	{"help.admin.products", "Products are imported from CSV with the header code,name,lot_and_expiry_control."},
}

func HelpPage(data PageData, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1 class="text-2xl font-semibold mb-4">`)
		b.WriteString(html.EscapeString(t.Translate("help.title", "Help")))
		b.WriteString(`</h1>`)
		writeSections(&b, t, receiverSections)
		if data.IsAdmin {
			b.WriteString(`<h2 class="text-xl font-semibold mt-6 mb-2">`)
			b.WriteString(html.EscapeString(t.Translate("help.admin.title", "Administration")))
			b.WriteString(`</h2>`)
			writeSections(&b, t, adminSections)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeSections(b *strings.Builder, t *i18n.Translator, sections []section) {
	b.WriteString(`<ul class="list-disc pl-6 space-y-2">`)
	for _, s := range sections {
		b.WriteString(`<li>`)
		b.WriteString(html.EscapeString(t.Translate(s.key, s.def)))
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
}
