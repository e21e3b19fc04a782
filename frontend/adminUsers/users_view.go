package adminusers

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "inbound/frontend/shared/html"
	"inbound/infrastructure/i18n"
)

func UsersListPage(data PageData, t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="text-2xl font-semibold mb-4">`+html.EscapeString(t.Translate("admin.users.title", "Users"))+`</h1>`); err != nil {
			return err
		}
		if err := sharedhtml.Flash(data.Status, false).Render(ctx, w); err != nil {
			return err
		}
		if err := sharedhtml.Flash(data.ErrorMessage, true).Render(ctx, w); err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString(`<form method="post" action="/inbound/admin/users" class="flex gap-2 mb-6"><input class="input input-bordered" name="username" required placeholder="username"><input class="input input-bordered" type="password" name="password" required placeholder="password"><select class="select select-bordered" name="role">`)
		for _, role := range data.Roles {
			b.WriteString(`<option value="` + html.EscapeString(role) + `">` + html.EscapeString(role) + `</option>`)
		}
		b.WriteString(`</select><button class="btn btn-primary" type="submit">`)
		b.WriteString(html.EscapeString(t.Translate("admin.users.create", "Create user")))
		b.WriteString(`</button></form><table class="table table-sm"><thead><tr><th>ID</th><th>Username</th><th>Role</th><th>Created</th></tr></thead><tbody>`)
		for _, u := range data.Users {
			b.WriteString(`<tr><td>`)
			b.WriteString(strconv.FormatInt(u.ID, 10))
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(u.Username))
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(u.Role))
			b.WriteString(`</td><td>`)
			b.WriteString(html.EscapeString(u.CreatedAt))
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
