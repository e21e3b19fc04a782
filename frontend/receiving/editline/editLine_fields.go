package editline

import (
	"context"
	"html"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Field renders and validates one column of the row editor.
type Field interface {
	Name() string
	Label(t Translator) string
	// Attributes resolves the input attributes for row.
	Attributes(row Line) map[string]string
	ErrorFor(errs FieldErrors) string
	Render(t Translator, index int, row Line, errs FieldErrors) templ.Component
}

type fieldBase struct {
	name         string
	formName     string
	labelKey     string
	defaultLabel string
	attrs        map[string]string
}

func (f fieldBase) Name() string { return f.name }

func (f fieldBase) Label(t Translator) string {
	return translate(t, f.labelKey, f.defaultLabel)
}

func (f fieldBase) ErrorFor(errs FieldErrors) string {
	if errs == nil {
		return ""
	}
	return errs[f.name]
}

func (f fieldBase) staticAttributes() map[string]string {
	out := make(map[string]string, len(f.attrs)+1)
	for k, v := range f.attrs {
		out[k] = v
	}
	return out
}

func (f fieldBase) inputName(index int) string {
	return rowInputName(index, f.formName)
}

// ProductSelectField picks the product of a row; locked on the original row.
type ProductSelectField struct {
	fieldBase
	Options []ProductRef
}

func (f ProductSelectField) Attributes(row Line) map[string]string {
	attrs := f.staticAttributes()
	if row.Disabled {
		attrs["disabled"] = "disabled"
	}
	return attrs
}

func (f ProductSelectField) Render(t Translator, index int, row Line, errs FieldErrors) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		attrs := f.Attributes(row)
		selected := int64(0)
		if row.Product != nil {
			selected = row.Product.ID
		}

		var b strings.Builder
		b.WriteString(`<select class="select select-bordered select-sm w-full" name="`)
		b.WriteString(f.inputName(index))
		b.WriteString(`"`)
		writeAttributes(&b, attrs)
		b.WriteString(`>`)
		for _, opt := range f.Options {
			b.WriteString(`<option value="`)
			b.WriteString(strconv.FormatInt(opt.ID, 10))
			b.WriteString(`"`)
			if opt.ID == selected {
				b.WriteString(` selected`)
			}
			b.WriteString(`>`)
			b.WriteString(html.EscapeString(opt.Label()))
			b.WriteString(`</option>`)
		}
		b.WriteString(`</select>`)
		// Disabled controls are not submitted.
		if _, disabled := attrs["disabled"]; disabled {
			writeHidden(&b, f.inputName(index), strconv.FormatInt(selected, 10))
		}
		writeFieldError(&b, t, f.ErrorFor(errs))
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// TextField is a free text input.
type TextField struct {
	fieldBase
	value func(Line) string
}

func (f TextField) Attributes(Line) map[string]string {
	attrs := f.staticAttributes()
	if _, ok := attrs["type"]; !ok {
		attrs["type"] = "text"
	}
	return attrs
}

func (f TextField) Render(t Translator, index int, row Line, errs FieldErrors) templ.Component {
	return renderInput(f.fieldBase, f.Attributes(row), f.value(row), t, index, errs)
}

// DateField is an MM/DD/YYYY date input.
type DateField struct {
	fieldBase
}

func (f DateField) Attributes(Line) map[string]string {
	attrs := f.staticAttributes()
	attrs["type"] = "text"
	attrs["placeholder"] = "MM/DD/YYYY"
	return attrs
}

func (f DateField) Render(t Translator, index int, row Line, errs FieldErrors) templ.Component {
	return renderInput(f.fieldBase, f.Attributes(row), row.ExpirationDate, t, index, errs)
}

// NumberField is a numeric quantity input.
type NumberField struct {
	fieldBase
}

func (f NumberField) Attributes(Line) map[string]string {
	attrs := f.staticAttributes()
	attrs["type"] = "number"
	attrs["step"] = "any"
	return attrs
}

func (f NumberField) Render(t Translator, index int, row Line, errs FieldErrors) templ.Component {
	value := ""
	if row.QuantityShipped.Valid {
		value = row.QuantityShipped.Decimal.String()
	}
	return renderInput(f.fieldBase, f.Attributes(row), value, t, index, errs)
}

// NewLineFields builds the row editor columns once per form.
func NewLineFields(products []ProductRef) []Field {
	return []Field{
		ProductSelectField{
			fieldBase: fieldBase{
				name:         FieldProduct,
				formName:     "product_id",
				labelKey:     "receiving.field.product",
				defaultLabel: "Product",
			},
			Options: products,
		},
		TextField{
			fieldBase: fieldBase{
				name:         FieldLotNumber,
				formName:     "lot_number",
				labelKey:     "receiving.field.lot",
				defaultLabel: "Lot",
			},
			value: func(l Line) string { return l.LotNumber },
		},
		DateField{
			fieldBase: fieldBase{
				name:         FieldExpirationDate,
				formName:     "expiration_date",
				labelKey:     "receiving.field.expiry",
				defaultLabel: "Expiry",
				attrs: map[string]string{
					"data-date-format": "MM/DD/YYYY",
					"autocomplete":     "off",
				},
			},
		},
		NumberField{
			fieldBase: fieldBase{
				name:         FieldQuantityShipped,
				formName:     "quantity_shipped",
				labelKey:     "receiving.field.quantityShipped",
				defaultLabel: "Quantity shipped",
			},
		},
	}
}

func renderInput(f fieldBase, attrs map[string]string, value string, t Translator, index int, errs FieldErrors) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		msg := f.ErrorFor(errs)
		class := "input input-bordered input-sm w-full"
		if msg != "" {
			class += " input-error"
		}

		var b strings.Builder
		b.WriteString(`<input class="`)
		b.WriteString(class)
		b.WriteString(`" name="`)
		b.WriteString(f.inputName(index))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
		writeAttributes(&b, attrs)
		b.WriteString(`>`)
		writeFieldError(&b, t, msg)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeAttributes(b *strings.Builder, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(` `)
		b.WriteString(html.EscapeString(k))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[k]))
		b.WriteString(`"`)
	}
}

func writeHidden(b *strings.Builder, name, value string) {
	b.WriteString(`<input type="hidden" name="`)
	b.WriteString(html.EscapeString(name))
	b.WriteString(`" value="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`">`)
}

func writeFieldError(b *strings.Builder, t Translator, code string) {
	if code == "" {
		return
	}
	b.WriteString(`<p class="mt-1 text-xs text-error" data-error-code="`)
	b.WriteString(html.EscapeString(code))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(ErrorMessage(t, code)))
	b.WriteString(`</p>`)
}

func rowInputName(index int, name string) string {
	return "lines." + strconv.Itoa(index) + "." + name
}
