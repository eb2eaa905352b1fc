package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/pipeline"
)

// Section indexes in the tab bar
const (
	SectionHome = iota
	SectionTranslator
	SectionExports
	SectionAbout
)

// parallelSetter is implemented by managers that can resize their worker limit at runtime
type parallelSetter interface {
	SetMaxParallel(n int)
}

// RootUI is the dashboard shell: it owns the window, the menu and the section tabs
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	jobs         pipeline.Manager
	exportData   ExportData
	version      string

	tabs       *container.AppTabs
	translator *TranslatorView
	exports    *ExportsView
}

// NewRootUI creates the shell and sets the window content
func NewRootUI(window fyne.Window, settings *config.Settings, jobs pipeline.Manager, exportData ExportData, version string) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		jobs:         jobs,
		exportData:   exportData,
		version:      version,
	}
	ui.setupUI(SectionHome)
	log.Printf("Dashboard ready (language=%s)", localization.GetCurrentLanguage())
	return ui
}

// setupUI (re)builds every section and selects the given tab
func (ui *RootUI) setupUI(selected int) {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.createMenu()

	ui.translator = NewTranslatorView(ui.window, ui.jobs, ui.settings, l)
	ui.exports = NewExportsView(ui.window, ui.exportData, l)

	ui.tabs = container.NewAppTabs(
		container.NewTabItem(l.GetText(KeyTabHome), container.NewPadded(newHomeView(l,
			func() { ui.SelectSection(SectionTranslator) },
			func() { ui.SelectSection(SectionExports) },
		))),
		container.NewTabItem(l.GetText(KeyTabTranslator), container.NewPadded(ui.translator.Content())),
		container.NewTabItem(l.GetText(KeyTabExports), container.NewPadded(ui.exports.Content())),
		container.NewTabItem(l.GetText(KeyTabAbout), container.NewPadded(newAboutView(l, ui.version))),
	)
	ui.tabs.SelectIndex(selected)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	header := container.NewBorder(nil, nil, ui.logo(), settingsBtn)

	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, ui.tabs))
}

// SelectSection switches to a section tab
func (ui *RootUI) SelectSection(index int) {
	if ui.tabs != nil && index >= 0 && index < len(ui.tabs.Items) {
		ui.tabs.SelectIndex(index)
	}
}

func (ui *RootUI) logo() fyne.CanvasObject {
	res, err := LoadLogoResource()
	if err != nil {
		return widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	img := canvas.NewImageFromResource(res)
	img.SetMinSize(fyne.NewSize(32, 32))
	img.FillMode = canvas.ImageFillContain
	return img
}

func (ui *RootUI) createMenu() {
	l := ui.localization
	settingsItem := fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	for _, code := range languageCodes(l.GetAvailableLanguages()) {
		langCode := code
		item := fyne.NewMenuItem(l.GetAvailableLanguages()[code], func() {
			ui.onLanguageChange(langCode)
		})
		item.Checked = l.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(l.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.rebuild()
}

// rebuild recreates the sections with the current language, keeping the selected tab
func (ui *RootUI) rebuild() {
	selected := SectionHome
	if ui.tabs != nil {
		selected = ui.tabs.SelectedIndex()
	}
	ui.setupUI(selected)
}

func (ui *RootUI) onShowSettings() {
	before := ui.settings.GetLanguage()
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		if ps, ok := ui.jobs.(parallelSetter); ok {
			ps.SetMaxParallel(ui.settings.GetMaxParallelJobs())
		}
		if lang := ui.settings.GetLanguage(); lang != before {
			ui.localization.SetLanguage(lang)
			ui.rebuild()
		}
		dialog.ShowInformation(ui.localization.GetText(KeySettings),
			ui.localization.GetText(KeySettingsSaved)+"\n"+ui.localization.GetText(KeyRestartRequired), ui.window)
	})
}
