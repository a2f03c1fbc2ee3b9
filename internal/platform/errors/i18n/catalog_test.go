package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback.Locale() != "en-US" {
		t.Fatalf("fallback locale = %q, want en-US", fallback.Locale())
	}
	if got := fallback.Format("GAME_OVER", nil); got != base.Format("GAME_OVER", nil) {
		t.Fatalf("fallback message = %q, want %q", got, base.Format("GAME_OVER", nil))
	}
}

func TestGetCatalogTraditionalChinese(t *testing.T) {
	cat := GetCatalog("zh-TW")
	if cat.Locale() != "zh-TW" {
		t.Fatalf("locale = %q, want zh-TW", cat.Locale())
	}
	if got := cat.Format("BATTLE_NOT_ACTIVE", nil); got == "BATTLE_NOT_ACTIVE" {
		t.Fatal("expected translated message")
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
	if got := cat.Format("code", map[string]string{"Name": "Ra"}); got != "hello Ra" {
		t.Fatalf("Format = %q, want %q", got, "hello Ra")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
