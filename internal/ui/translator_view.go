package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/pipeline"
	"github.com/ytget/ytdash/internal/platform"
)

// TranslatorView is the YouTube Translator section: the request form,
// the job list and the most recent translated videos
type TranslatorView struct {
	window       fyne.Window
	jobs         pipeline.Manager
	settings     *config.Settings
	localization *Localization

	urlEntry     *widget.Entry
	nameEntry    *widget.Entry
	langSelect   *widget.Select
	translateBtn *widget.Button
	notice       *widget.Label
	jobList      *widget.List
	emptyLabel   *widget.Label
	outputsBox   *fyne.Container

	mu           sync.Mutex
	items        []*model.TranslationJob
	lastRefresh  time.Time
	refreshQueue bool

	content fyne.CanvasObject
}

// NewTranslatorView builds the section and subscribes to job updates
func NewTranslatorView(window fyne.Window, jobs pipeline.Manager, settings *config.Settings, localization *Localization) *TranslatorView {
	v := &TranslatorView{
		window:       window,
		jobs:         jobs,
		settings:     settings,
		localization: localization,
		items:        jobs.GetAllJobs(),
	}
	v.build()
	jobs.SetUpdateCallback(v.onJobUpdate)
	return v
}

// Content returns the section's root object
func (v *TranslatorView) Content() fyne.CanvasObject {
	return v.content
}

func (v *TranslatorView) build() {
	l := v.localization

	v.urlEntry = widget.NewEntry()
	v.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	v.urlEntry.Validator = v.validateURL
	v.urlEntry.OnSubmitted = func(string) { v.onTranslateClick() }

	v.nameEntry = widget.NewEntry()
	v.nameEntry.SetPlaceHolder(l.GetText(KeyVideoName))

	v.langSelect = widget.NewSelect(config.LanguageNames(), nil)
	v.langSelect.SetSelected(config.LanguageName(v.settings.GetTargetLanguage()))

	v.translateBtn = widget.NewButton(l.GetText(KeyTranslate), v.onTranslateClick)
	v.translateBtn.Importance = widget.HighImportance

	v.notice = widget.NewLabel("")
	v.notice.Wrapping = fyne.TextWrapWord
	v.notice.Hide()

	form := container.NewVBox(
		v.urlEntry,
		container.NewGridWithColumns(2,
			v.nameEntry,
			container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyTargetLanguage)), nil, v.langSelect),
		),
		container.NewBorder(nil, nil, nil, v.translateBtn, v.notice),
	)

	v.jobList = widget.NewList(
		func() int {
			v.mu.Lock()
			defer v.mu.Unlock()
			return len(v.items)
		},
		func() fyne.CanvasObject {
			row := NewJobRow(nil, v.localization)
			row.SetCallbacks(v.onStopJob, v.onRemoveJob, v.onRevealFile, v.onOpenFile, v.onCopyPath)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			v.mu.Lock()
			if id >= len(v.items) {
				v.mu.Unlock()
				return
			}
			job := v.items[id]
			v.mu.Unlock()
			if row, ok := obj.(*JobRow); ok {
				row.UpdateJob(job)
			}
		},
	)
	v.emptyLabel = widget.NewLabel(l.GetText(KeyNoJobs))
	v.emptyLabel.Alignment = fyne.TextAlignCenter

	v.outputsBox = container.NewVBox()
	refreshBtn := widget.NewButton(l.GetText(KeyRefresh), v.refreshOutputs)
	refreshBtn.Importance = widget.LowImportance
	outputs := widget.NewCard(l.GetText(KeyRecentOutputs), "", container.NewBorder(nil, nil, nil, refreshBtn, v.outputsBox))

	jobsHeader := widget.NewLabelWithStyle(l.GetText(KeyJobs), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.content = container.NewBorder(
		container.NewVBox(form, widget.NewSeparator(), jobsHeader),
		outputs,
		nil,
		nil,
		container.NewStack(v.emptyLabel, v.jobList),
	)

	v.syncEmptyState()
	v.refreshOutputs()
}

func (v *TranslatorView) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !platform.ValidateYouTubeURL(input) {
		return platform.ErrInvalidURL
	}
	return nil
}

func (v *TranslatorView) onTranslateClick() {
	l := v.localization
	urlText := cleanInput(v.urlEntry.Text)
	if urlText == "" {
		v.showNotice(l.GetText(KeyPleaseEnterURL))
		return
	}

	req := pipeline.Request{
		URL:            urlText,
		TargetLanguage: config.LanguageCode(v.langSelect.Selected),
		VideoName:      strings.TrimSpace(v.nameEntry.Text),
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = v.settings.GetTargetLanguage()
	}

	log.Printf("Starting translation of %s to %s", req.URL, req.TargetLanguage)
	job, err := v.jobs.StartTranslation(req)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrInvalidURL):
			v.showNotice(l.GetText(KeyInvalidURL))
		case errors.Is(err, pipeline.ErrDuplicateJob):
			v.showNotice(l.GetText(KeyAlreadyInQueue))
		default:
			v.showNotice(err.Error())
		}
		return
	}

	v.upsert(job)
	v.urlEntry.SetText("")
	v.nameEntry.SetText("")
	if job.Status == model.TaskStatusPending {
		v.showNotice(l.GetText(KeyTranslationQueued))
	} else {
		v.showNotice(l.GetText(KeyTranslationStarted))
	}
	v.jobList.Refresh()
	v.syncEmptyState()
}

// onJobUpdate runs on pipeline goroutines
func (v *TranslatorView) onJobUpdate(job *model.TranslationJob) {
	completed := v.upsert(job)

	if job.Status.IsFinished() {
		fyne.Do(func() {
			v.jobList.Refresh()
			v.syncEmptyState()
			if job.Status == model.TaskStatusCompleted {
				v.refreshOutputs()
			}
		})
	} else {
		v.debouncedRefresh()
	}

	if completed {
		v.sendCompletionNotification(job)
	}
}

// upsert stores a job snapshot, newest first, and reports whether it just completed
func (v *TranslatorView) upsert(job *model.TranslationJob) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, existing := range v.items {
		if existing.ID == job.ID {
			completed := existing.Status != model.TaskStatusCompleted && job.Status == model.TaskStatusCompleted
			v.items[i] = job
			return completed
		}
	}
	v.items = append([]*model.TranslationJob{job}, v.items...)
	return job.Status == model.TaskStatusCompleted
}

func (v *TranslatorView) remove(jobID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, existing := range v.items {
		if existing.ID == jobID {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return
		}
	}
}

// debouncedRefresh limits list refreshes to one per UIUpdateDebounce
func (v *TranslatorView) debouncedRefresh() {
	v.mu.Lock()
	if v.refreshQueue {
		v.mu.Unlock()
		return
	}
	wait := UIUpdateDebounce - time.Since(v.lastRefresh)
	v.refreshQueue = true
	v.mu.Unlock()

	go func() {
		if wait > 0 {
			time.Sleep(wait)
		}
		v.mu.Lock()
		v.refreshQueue = false
		v.lastRefresh = time.Now()
		v.mu.Unlock()
		fyne.Do(v.jobList.Refresh)
	}()
}

func (v *TranslatorView) syncEmptyState() {
	v.mu.Lock()
	empty := len(v.items) == 0
	v.mu.Unlock()
	if empty {
		v.emptyLabel.Show()
	} else {
		v.emptyLabel.Hide()
	}
}

func (v *TranslatorView) refreshOutputs() {
	files, err := v.jobs.RecentOutputs(RecentOutputsLimit)
	v.outputsBox.RemoveAll()
	if err != nil {
		log.Printf("Failed to list recent outputs: %v", err)
	}
	if len(files) == 0 {
		v.outputsBox.Add(widget.NewLabel(v.localization.GetText(KeyNoOutputs)))
		return
	}
	for _, f := range files {
		path := f.Path
		label := fmt.Sprintf("%s %s (%s)", IconVideo, f.Name, platform.FormatFileSize(f.Size))
		btn := widget.NewButton(label, func() { v.onOpenFile(path) })
		btn.Alignment = widget.ButtonAlignLeading
		btn.Importance = widget.LowImportance
		v.outputsBox.Add(btn)
	}
}

func (v *TranslatorView) showNotice(message string) {
	v.notice.SetText(message)
	v.notice.Show()
}

func (v *TranslatorView) onStopJob(jobID string) {
	if err := v.jobs.StopJob(jobID); err != nil {
		log.Printf("Error stopping job %s: %v", jobID, err)
		v.showNotice(err.Error())
	}
}

func (v *TranslatorView) onRemoveJob(jobID string) {
	if err := v.jobs.RemoveJob(jobID); err != nil {
		log.Printf("Error removing job %s: %v", jobID, err)
		v.showNotice(err.Error())
		return
	}
	v.remove(jobID)
	v.jobList.Refresh()
	v.syncEmptyState()
}

func (v *TranslatorView) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyErrorOpeningFile), err), v.window)
	}
}

func (v *TranslatorView) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyErrorOpeningFile), err), v.window)
	}
}

func (v *TranslatorView) onCopyPath(filePath string) {
	fyne.CurrentApp().Clipboard().SetContent(filePath)
	v.showNotice(v.localization.GetText(KeyPathCopied))
}

func (v *TranslatorView) sendCompletionNotification(job *model.TranslationJob) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   v.localization.GetText(KeyTranslationDone),
		Content: job.GetDisplayTitle(),
	})

	fyne.Do(func() { v.showToast(job) })

	if v.settings.GetAutoOpenOnReady() && job.OutputPath != "" {
		log.Printf("Auto-opening completed job %s: %s", job.ID, job.OutputPath)
		fyne.Do(func() { v.onOpenFile(job.OutputPath) })
	}
}

// showToast shows an in-app popup with quick actions for a finished video
func (v *TranslatorView) showToast(job *model.TranslationJob) {
	titleLabel := widget.NewLabelWithStyle(v.localization.GetText(KeyTranslationDone), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	messageLabel := widget.NewLabel(job.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toast *widget.PopUp
	revealBtn := widget.NewButton(v.localization.GetText(KeyReveal), func() { v.onRevealFile(job.OutputPath) })
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(v.localization.GetText(KeyOpen), func() { v.onOpenFile(job.OutputPath) })
	closeBtn := widget.NewButton(IconClose, func() { toast.Hide() })
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)

	toast = widget.NewPopUp(content, v.window.Canvas())
	canvasSize := v.window.Canvas().Size()
	toast.Resize(fyne.NewSize(ToastWidth, ToastHeight))
	toast.ShowAtPosition(fyne.NewPos(canvasSize.Width-ToastWidth-ToastMargin, ToastMargin))

	time.AfterFunc(ToastAutoHide, func() { fyne.Do(toast.Hide) })
}

// cleanInput strips control whitespace pasted along with URLs
func cleanInput(s string) string {
	s = strings.NewReplacer("\n", "", "\r", "", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
