package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if GetCatalog("") != base {
		t.Fatal("expected empty locale to resolve to en-US catalog")
	}
}

func TestGetCatalogMatchesRegionlessTag(t *testing.T) {
	got := GetCatalog("pt")
	if got.locale != "pt-BR" {
		t.Fatalf("GetCatalog(pt) locale = %q, want %q", got.locale, "pt-BR")
	}
	got = GetCatalog("fr-FR, pt-BR;q=0.8")
	if got.locale != "pt-BR" {
		t.Fatalf("GetCatalog(accept list) locale = %q, want %q", got.locale, "pt-BR")
	}
}

func TestCatalogsCoverSameCodes(t *testing.T) {
	for code := range enUSCatalog.messages {
		if _, ok := ptBRCatalog.messages[code]; !ok {
			t.Fatalf("pt-BR catalog missing %s", code)
		}
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := &Catalog{locale: "test", messages: map[Code]string{
		"code": "hello {{.Name}}",
	}}

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	got := GetCatalog("en-US").Format(CodeInvalidRange, map[string]string{"Min": "9", "Max": "1"})
	if got != "Minimum 9 is greater than maximum 1" {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := &Catalog{locale: "test", messages: map[Code]string{
		"code": "{{ if .Name }}",
	}}
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}
