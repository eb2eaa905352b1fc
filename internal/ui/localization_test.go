package ui

import "testing"

func TestLocalizationFallbacks(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("es")
	if got := l.GetText(KeyTabHome); got != "Inicio" {
		t.Errorf("Expected Spanish text 'Inicio', got '%s'", got)
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected system language to fall back to en, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("Expected unknown key to be returned as is, got '%s'", got)
	}
}

func TestLocalizationTablesComplete(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		if _, ok := l.texts["es"][key]; !ok {
			t.Errorf("Expected Spanish translation for %s", key)
		}
	}
	if len(l.texts["es"]) != len(l.texts["en"]) {
		t.Errorf("Expected %d Spanish texts, got %d", len(l.texts["en"]), len(l.texts["es"]))
	}
}
