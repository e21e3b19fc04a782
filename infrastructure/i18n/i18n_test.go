package i18n

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestEmbeddedCatalogTranslates(t *testing.T) {
	c, err := NewCatalog("en")
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	langs := c.Languages()
	if len(langs) != 2 || langs[0] != "en" {
		t.Fatalf("unexpected languages: %v", langs)
	}

	fr := c.Translator(c.Match("fr", ""))
	if got := fr.Translate("login.title", "Sign in"); got != "Connexion" {
		t.Fatalf("expected french title, got %q", got)
	}
	if got := fr.Translate("no.such.key", "fallback"); got != "fallback" {
		t.Fatalf("expected default for missing key, got %q", got)
	}
}

func TestMatchPrefersCookieThenHeader(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.yaml": {Data: []byte("greeting: \"Hello\"\n")},
		"l/fr.yaml": {Data: []byte("greeting: \"Bonjour\"\n")},
	}
	c, err := NewCatalogFS(fsys, "l", "en")
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	cases := []struct {
		cookie, header, want string
	}{
		{"", "fr-CA,fr;q=0.9", "fr"},
		{"en", "fr", "en"},
		{"", "de-DE", "en"},
		{"xx", "", "en"},
	}
	for _, tc := range cases {
		if got := c.Match(tc.cookie, tc.header).String(); got != tc.want {
			t.Fatalf("cookie=%q header=%q: expected %s, got %s", tc.cookie, tc.header, tc.want, got)
		}
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(LanguageCookie("fr", 60))
	if got := c.FromRequest(req).Translate("greeting", "Hi"); got != "Bonjour" {
		t.Fatalf("expected Bonjour, got %q", got)
	}
}

func TestNilTranslatorReturnsDefaults(t *testing.T) {
	var tr *Translator
	if tr.Translate("any", "default") != "default" || tr.Lang() != "en" || tr.Languages() != nil {
		t.Fatalf("nil translator must fall back to defaults")
	}
}
