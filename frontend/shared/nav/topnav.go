package nav

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"inbound/infrastructure/i18n"
	"inbound/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username    string
	Role        string
	Lang        string
	Languages   []string
	Permissions map[string]int
}

type link struct {
	code, href, key, def string
}

var links = []link{
	{"MOVEMENTS_LIST_VIEW", "/inbound/movements", "app.nav.movements", "Stock movements"},
	{"PRODUCTS_IMPORT_VIEW", "/inbound/products/import", "app.nav.products", "Products"},
	{"SETTINGS_RECEIVING_VIEW", "/inbound/settings/receiving", "app.nav.settings", "Settings"},
	{"ADMIN_USERS_LIST_VIEW", "/inbound/admin/users", "app.nav.users", "Users"},
	{"HELP_VIEW", "/inbound/help", "app.nav.help", "Help"},
}

func BuildTopNavData(session models.Session, t *i18n.Translator) TopNavData {
	return TopNavData{
		Username:    session.User.Username,
		Role:        session.User.Role,
		Lang:        t.Lang(),
		Languages:   t.Languages(),
		Permissions: session.ScreenPermissions,
	}
}

// TopNav renders the links the session may open.
func TopNav(data TopNavData, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<nav class="navbar bg-base-200 px-4"><div class="flex-1 gap-2"><a class="btn btn-ghost text-lg" href="/">`)
		b.WriteString(html.EscapeString(t.Translate("app.title", "Inbound")))
		b.WriteString(`</a>`)
		for _, l := range links {
			if data.Permissions[l.code] == 0 {
				continue
			}
			b.WriteString(`<a class="btn btn-ghost btn-sm" href="`)
			b.WriteString(l.href)
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(t.Translate(l.key, l.def)))
			b.WriteString(`</a>`)
		}
		b.WriteString(`</div><div class="flex-none gap-2">`)
		for _, lang := range data.Languages {
			class := "btn btn-ghost btn-xs"
			if lang == data.Lang {
				class += " btn-active"
			}
			b.WriteString(`<a class="`)
			b.WriteString(class)
			b.WriteString(`" href="/lang/`)
			b.WriteString(html.EscapeString(lang))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(strings.ToUpper(lang)))
			b.WriteString(`</a>`)
		}
		b.WriteString(`<span class="text-sm opacity-70">`)
		b.WriteString(html.EscapeString(data.Username))
		b.WriteString(`</span><form method="post" action="/logout"><button class="btn btn-sm" type="submit">`)
		b.WriteString(html.EscapeString(t.Translate("app.nav.logout", "Log out")))
		b.WriteString(`</button></form></div></nav>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
