package i18n

import (
	"net/http/httptest"
	"testing"
)

func TestMain(m *testing.M) {
	// Translation files live next to this package
	if err := LoadTranslations("."); err != nil {
		panic(err)
	}
	m.Run()
}

func TestTranslate(t *testing.T) {
	if got := T("en", "Login"); got != "Log in" {
		t.Errorf("Expected 'Log in', got '%s'", got)
	}
	if got := T("cs", "Login"); got != "Přihlásit se" {
		t.Errorf("Expected Czech translation, got '%s'", got)
	}
}

func TestTranslateFallback(t *testing.T) {
	// Unknown language falls back to English
	if got := T("de", "Login"); got != "Log in" {
		t.Errorf("Expected English fallback, got '%s'", got)
	}
	// Unknown key falls through to the key itself
	if got := T("en", "NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("Expected key passthrough, got '%s'", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"cs-CZ, cs;q=0.9, en;q=0.8", "cs"},
		{"en-US,en;q=0.5", "en"},
		{"de-DE, de;q=0.9", "en"},
		{"", "en"},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if c.header != "" {
			r.Header.Set("Accept-Language", c.header)
		}
		if got := DetectLanguage(r); got != c.want {
			t.Errorf("Accept-Language %q: expected %s, got %s", c.header, c.want, got)
		}
	}
}
