package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLocale(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write locale: %v", err)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "test.yaml", `
en:
  garden:
    empty: "Your garden is empty."
  menu:
    feed: "Feed"
ru:
  garden:
    empty: "Ваш сад пуст."
`)

	manager, err := LoadFromDir(dir, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	en := manager.Translator("en")
	if got := en.T("garden.empty"); got != "Your garden is empty." {
		t.Errorf("T(garden.empty) = %q", got)
	}

	ru := manager.Translator("ru")
	if got := ru.T("garden.empty"); got != "Ваш сад пуст." {
		t.Errorf("ru T(garden.empty) = %q", got)
	}

	// Missing keys fall back to the default language, then to the key itself.
	if got := ru.T("menu.feed"); got != "Feed" {
		t.Errorf("ru fallback T(menu.feed) = %q", got)
	}
	if got := en.T("menu.unknown"); got != "menu.unknown" {
		t.Errorf("unknown key T = %q", got)
	}
}

func TestLoadFromDirMissingDefaultLang(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "test.yaml", "ru:\n  a: \"б\"\n")

	if _, err := LoadFromDir(dir, "en"); err == nil {
		t.Fatal("expected error for missing default language")
	}
}

func TestUnknownLanguageFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "test.yaml", "en:\n  hello: \"Hi\"\n")

	manager, err := LoadFromDir(dir, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr := manager.Translator("fr")
	if tr.Lang() != "en" {
		t.Errorf("Lang() = %q, expected en", tr.Lang())
	}
	if got := tr.T("hello"); got != "Hi" {
		t.Errorf("T(hello) = %q", got)
	}
}
