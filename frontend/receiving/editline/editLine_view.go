package editline

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ModalView is the immutable input of EditLineModal.
type ModalView struct {
	State      State
	Fields     []Field
	Translator Translator
	ActionURL  string
	CancelURL  string
}

// EditLineModal renders the row editor.
func EditLineModal(v ModalView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := v.Translator
		var b strings.Builder
		b.WriteString(`<dialog id="edit-line-modal" class="modal modal-open" open><div class="modal-box max-w-5xl"><h3 class="text-lg font-semibold">`)
		b.WriteString(html.EscapeString(translate(t, "receiving.editLine.title", "Edit line")))
		b.WriteString(`</h3><div class="font-bold mb-3">`)
		b.WriteString(html.EscapeString(translate(t, "receiving.editLine.originalQtyShipped", "Original quantity shipped")))
		b.WriteString(`: `)
		if v.State.Source.QuantityShipped.Valid {
			b.WriteString(html.EscapeString(v.State.Source.QuantityShipped.Decimal.String()))
		}
		b.WriteString(`</div><form method="post" action="`)
		b.WriteString(html.EscapeString(v.ActionURL))
		b.WriteString(`">`)
		writeHidden(&b, "line_count", strconv.Itoa(len(v.State.Rows)))
		b.WriteString(`<table class="table table-sm"><thead><tr>`)
		for _, f := range v.Fields {
			b.WriteString(`<th>`)
			b.WriteString(html.EscapeString(f.Label(t)))
			b.WriteString(`</th>`)
		}
		b.WriteString(`</tr></thead><tbody>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		for i, row := range v.State.Rows {
			class := ""
			if row.OriginalLine {
				class = ` class="bg-base-200"`
			}
			if _, err := io.WriteString(w, `<tr data-row="`+strconv.Itoa(i)+`"`+class+`>`); err != nil {
				return err
			}
			errs := v.State.Errors[i]
			for _, f := range v.Fields {
				if _, err := io.WriteString(w, `<td>`); err != nil {
					return err
				}
				if err := f.Render(t, i, row, errs).Render(ctx, w); err != nil {
					return err
				}
				if _, err := io.WriteString(w, `</td>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tr>`); err != nil {
				return err
			}
		}

		b.Reset()
		b.WriteString(`</tbody></table><div class="modal-action"><button type="submit" name="action" value="add_row" class="btn btn-outline btn-success btn-xs">`)
		b.WriteString(html.EscapeString(translate(t, "default.button.addLine", "Add line")))
		b.WriteString(`</button><a class="btn" href="`)
		b.WriteString(html.EscapeString(v.CancelURL))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(translate(t, "default.button.cancel", "Cancel")))
		b.WriteString(`</a><button type="submit" name="action" value="save" class="btn btn-primary">`)
		b.WriteString(html.EscapeString(translate(t, "default.button.save", "Save")))
		b.WriteString(`</button></div></form></div></dialog>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ConfirmDialog renders the expiry update confirmation. Both answers post to
// confirmURL; only "yes" saves.
func ConfirmDialog(c Confirmation, confirmURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<dialog id="confirm-save-modal" class="modal modal-open" open><div class="modal-box"><h3 class="text-lg font-semibold">`)
		b.WriteString(html.EscapeString(c.Title))
		b.WriteString(`</h3><p class="py-4">`)
		b.WriteString(html.EscapeString(c.Message))
		b.WriteString(`</p><div class="modal-action">`)
		writeAnswerForm(&b, confirmURL, "yes", c.Yes, "btn btn-primary")
		writeAnswerForm(&b, confirmURL, "no", c.No, "btn")
		b.WriteString(`</div></div></dialog>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeAnswerForm(b *strings.Builder, action, answer, label, class string) {
	b.WriteString(`<form method="post" action="`)
	b.WriteString(html.EscapeString(action))
	b.WriteString(`">`)
	writeHidden(b, "answer", answer)
	b.WriteString(`<button type="submit" class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</button></form>`)
}
