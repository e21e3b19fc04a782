package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog holds every loaded locale and picks the best one for a request.
type Catalog struct {
	bundle  *goi18n.Bundle
	matcher language.Matcher
	tags    []language.Tag
}

// NewCatalog loads the embedded YAML catalogs. defaultLang is used for
// requests whose preferences match no loaded locale.
func NewCatalog(defaultLang string) (*Catalog, error) {
	return NewCatalogFS(embeddedLocales, "locales", defaultLang)
}

// NewCatalogFS loads every *.yaml under root; the file name is the language tag.
func NewCatalogFS(fsys fs.FS, root, defaultLang string) (*Catalog, error) {
	def, err := language.Parse(strings.TrimSpace(defaultLang))
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLang, err)
	}

	bundle := goi18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(fsys, path.Join(root, entry.Name())); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", entry.Name(), err)
		}
	}

	// The matcher falls back to its first tag, so the default goes first.
	tags := []language.Tag{def}
	for _, tag := range bundle.LanguageTags() {
		if tag != def {
			tags = append(tags, tag)
		}
	}

	return &Catalog{
		bundle:  bundle,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}, nil
}

// Languages lists the loaded locales, default first.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		out = append(out, tag.String())
	}
	return out
}

// Match resolves an explicit preference (cookie value) and an Accept-Language
// header to one of the loaded locales.
func (c *Catalog) Match(preferred, acceptLanguage string) language.Tag {
	var prefs []language.Tag
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		if tag, err := language.Parse(preferred); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if accepted, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		prefs = append(prefs, accepted...)
	}
	_, index, _ := c.matcher.Match(prefs...)
	return c.tags[index]
}

// Translator returns a translator bound to tag.
func (c *Catalog) Translator(tag language.Tag) *Translator {
	return &Translator{
		localizer: goi18n.NewLocalizer(c.bundle, tag.String()),
		tag:       tag,
		languages: c.Languages(),
	}
}

// Translator looks up messages for one locale.
type Translator struct {
	localizer *goi18n.Localizer
	tag       language.Tag
	languages []string
}

// Translate returns the message for key, or defaultMessage when the key is
// not in the catalog. A nil translator always returns defaultMessage.
func (t *Translator) Translate(key, defaultMessage string) string {
	if t == nil || t.localizer == nil {
		return defaultMessage
	}
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID: key,
		DefaultMessage: &goi18n.Message{
			ID:    key,
			Other: defaultMessage,
		},
	})
	if err != nil || msg == "" {
		return defaultMessage
	}
	return msg
}

// Lang is the BCP 47 tag of the translator.
func (t *Translator) Lang() string {
	if t == nil {
		return language.English.String()
	}
	return t.tag.String()
}

// Languages lists the locales the user can switch to.
func (t *Translator) Languages() []string {
	if t == nil {
		return nil
	}
	return t.languages
}

// CookieName holds the language picked by the user.
const CookieName = "lang"

// LanguageCookie persists lang for a year; maxAge<0 clears it.
func LanguageCookie(lang string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// FromRequest picks the translator for r from the lang cookie and Accept-Language.
func (c *Catalog) FromRequest(r *http.Request) *Translator {
	preferred := ""
	if cookie, err := r.Cookie(CookieName); err == nil {
		preferred = cookie.Value
	}
	return c.Translator(c.Match(preferred, r.Header.Get("Accept-Language")))
}
