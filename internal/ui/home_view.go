package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// newHomeView introduces both tools and offers shortcuts to their sections
func newHomeView(l *Localization, openTranslator, openExports func()) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(l.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText
	intro := widget.NewLabel(l.GetText(KeyHomeIntro))

	translator := widget.NewLabel(l.GetText(KeyHomeTranslator))
	translator.Wrapping = fyne.TextWrapWord
	exportsText := widget.NewLabel(l.GetText(KeyHomeExports))
	exportsText.Wrapping = fyne.TextWrapWord

	cards := container.NewAdaptiveGrid(2,
		widget.NewCard(IconVideo+" "+l.GetText(KeyTabTranslator), "",
			container.NewVBox(translator, widget.NewButton(l.GetText(KeyTabTranslator), openTranslator))),
		widget.NewCard(IconChart+" "+l.GetText(KeyTabExports), "",
			container.NewVBox(exportsText, widget.NewButton(l.GetText(KeyTabExports), openExports))),
	)

	return container.NewVBox(title, intro, cards)
}

func newAboutView(l *Localization, version string) fyne.CanvasObject {
	text := widget.NewLabel(l.GetText(KeyAboutText))
	text.Wrapping = fyne.TextWrapWord
	return container.NewVBox(
		widget.NewLabelWithStyle(l.GetText(KeyAppTitle)+" v"+version, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		text,
	)
}
