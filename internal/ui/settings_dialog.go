package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/platform"
)

// Whisper model sizes offered in the settings dialog
var WhisperModels = []string{"tiny", "base", "small", "medium", "large"}

// SettingsDialog edits config.Settings
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	outputDirEntry    *widget.Entry
	tempDirEntry      *widget.Entry
	maxParallelSelect *widget.Select
	targetSelect      *widget.Select
	transcriberSelect *widget.Select
	whisperSelect     *widget.Select
	sourceSelect      *widget.Select
	languageSelect    *widget.Select
	autoOpenCheck     *widget.Check
}

// ShowSettingsDialog opens the dialog; onSaved runs after a confirmed save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}
	sd.createUI()
	return sd
}

// Show loads the current values and displays the dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.outputDirEntry = widget.NewEntry()
	sd.tempDirEntry = widget.NewEntry()

	parallel := make([]string, 0, config.MaxParallelLimit)
	for i := 1; i <= config.MaxParallelLimit; i++ {
		parallel = append(parallel, strconv.Itoa(i))
	}
	sd.maxParallelSelect = widget.NewSelect(parallel, nil)
	sd.targetSelect = widget.NewSelect(config.LanguageNames(), nil)

	backends := []string{}
	for _, b := range sd.settings.GetTranscriberOptions() {
		backends = append(backends, string(b))
	}
	sd.transcriberSelect = widget.NewSelect(backends, nil)
	sd.whisperSelect = widget.NewSelect(WhisperModels, nil)

	sources := []string{}
	for _, s := range sd.settings.GetExportSourceOptions() {
		sources = append(sources, string(s))
	}
	sd.sourceSelect = widget.NewSelect(sources, nil)

	sd.languageSelect = widget.NewSelect(languageCodes(sd.settings.GetLanguageOptions()), nil)
	sd.autoOpenCheck = widget.NewCheck(l.GetText(KeyAutoOpen), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyOutputDirectory), dirRow(sd.outputDirEntry, l, sd.window)),
		widget.NewFormItem(l.GetText(KeyTempDirectory), dirRow(sd.tempDirEntry, l, sd.window)),
		widget.NewFormItem(l.GetText(KeyMaxParallel), sd.maxParallelSelect),
		widget.NewFormItem(l.GetText(KeyDefaultTarget), sd.targetSelect),
		widget.NewFormItem(l.GetText(KeyTranscriber), sd.transcriberSelect),
		widget.NewFormItem(l.GetText(KeyWhisperModel), sd.whisperSelect),
		widget.NewFormItem(l.GetText(KeyExportSource), sd.sourceSelect),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.autoOpenCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func dirRow(entry *widget.Entry, l *Localization, window fyne.Window) fyne.CanvasObject {
	browse := widget.NewButton(l.GetText(KeyBrowse), func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			entry.SetText(uri.Path())
		}, window)
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}

func languageCodes(options map[string]string) []string {
	codes := make([]string, 0, len(options))
	for code := range options {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.tempDirEntry.SetText(sd.settings.GetTempDirectory())
	sd.maxParallelSelect.SetSelected(strconv.Itoa(sd.settings.GetMaxParallelJobs()))
	sd.targetSelect.SetSelected(config.LanguageName(sd.settings.GetTargetLanguage()))
	sd.transcriberSelect.SetSelected(string(sd.settings.GetTranscriber()))
	sd.whisperSelect.SetSelected(sd.settings.GetWhisperModel())
	sd.sourceSelect.SetSelected(string(sd.settings.GetExportSource()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.autoOpenCheck.SetChecked(sd.settings.GetAutoOpenOnReady())
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	if err := sd.validate(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	sd.apply()
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// validate checks the directory fields as they would be saved
func (sd *SettingsDialog) validate() error {
	outputDir, tempDir := sd.outputDirEntry.Text, sd.tempDirEntry.Text
	if outputDir == "" {
		outputDir = sd.settings.GetOutputDirectory()
	}
	if tempDir == "" {
		tempDir = sd.settings.GetTempDirectory()
	}
	return platform.ValidateWorkDirs(outputDir, tempDir)
}

// apply writes the form values back to settings; empty fields are left unchanged
func (sd *SettingsDialog) apply() {
	if sd.outputDirEntry.Text != "" {
		sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)
	}
	if sd.tempDirEntry.Text != "" {
		sd.settings.SetTempDirectory(sd.tempDirEntry.Text)
	}
	if n, err := strconv.Atoi(sd.maxParallelSelect.Selected); err == nil {
		sd.settings.SetMaxParallelJobs(n)
	}
	if code := config.LanguageCode(sd.targetSelect.Selected); code != "" {
		sd.settings.SetTargetLanguage(code)
	}
	if sd.transcriberSelect.Selected != "" {
		sd.settings.SetTranscriber(config.TranscriberBackend(sd.transcriberSelect.Selected))
	}
	if sd.whisperSelect.Selected != "" {
		sd.settings.SetWhisperModel(sd.whisperSelect.Selected)
	}
	if sd.sourceSelect.Selected != "" {
		sd.settings.SetExportSource(config.ExportSource(sd.sourceSelect.Selected))
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
	sd.settings.SetAutoOpenOnReady(sd.autoOpenCheck.Checked)
}
