package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestCompactThemeSizes(t *testing.T) {
	th := NewCompactTheme()
	if got := th.Size(theme.SizeNamePadding); got != 3 {
		t.Errorf("Expected padding 3, got %v", got)
	}
	if got, want := th.Size(theme.SizeNameHeadingText), theme.DefaultTheme().Size(theme.SizeNameHeadingText); got != want {
		t.Errorf("Expected default heading size %v, got %v", want, got)
	}
}

func TestCompactThemeChartGrid(t *testing.T) {
	th := NewCompactTheme()
	light := th.Color(ColorNameChartGrid, theme.VariantLight)
	dark := th.Color(ColorNameChartGrid, theme.VariantDark)
	if light == dark {
		t.Error("Expected distinct grid colors per variant")
	}
	if got := th.Color(theme.ColorNamePrimary, theme.VariantLight); got != (color.RGBA{R: 0, G: 56, B: 168, A: 255}) {
		t.Errorf("Unexpected primary color %v", got)
	}
}
