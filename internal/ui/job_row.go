package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/platform"
)

// Progress calculation constants
const (
	MaxProgressPercent = 100
	MinProgressPercent = 1
)

// JobRow renders one translation job with its stage, progress and actions
type JobRow struct {
	widget.BaseWidget

	job          *model.TranslationJob
	localization *Localization

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	detailLabel   *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar

	stopBtn   *widget.Button
	revealBtn *widget.Button
	playBtn   *widget.Button
	copyBtn   *widget.Button
	removeBtn *widget.Button

	onStop     func(jobID string)
	onRemove   func(jobID string)
	onReveal   func(filePath string)
	onOpen     func(filePath string)
	onCopyPath func(filePath string)
}

// NewJobRow creates a row for job. A nil job renders as an empty pending row.
func NewJobRow(job *model.TranslationJob, localization *Localization) *JobRow {
	if job == nil {
		job = &model.TranslationJob{Status: model.TaskStatusPending}
	}

	jr := &JobRow{
		job:          job,
		localization: localization,
	}
	jr.ExtendBaseWidget(jr)
	jr.createUI()
	jr.updateFromJob()
	return jr
}

// SetCallbacks sets the action callbacks
func (jr *JobRow) SetCallbacks(
	onStop func(jobID string),
	onRemove func(jobID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
	onCopyPath func(filePath string),
) {
	jr.onStop = onStop
	jr.onRemove = onRemove
	jr.onReveal = onReveal
	jr.onOpen = onOpen
	jr.onCopyPath = onCopyPath
}

// UpdateJob replaces the rendered job snapshot
func (jr *JobRow) UpdateJob(job *model.TranslationJob) {
	if job == nil {
		return
	}
	jr.job = job
	jr.updateFromJob()
	jr.Refresh()
}

func (jr *JobRow) createUI() {
	jr.titleLabel = widget.NewLabel("")
	jr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	jr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	jr.statusLabel = widget.NewLabel("")
	jr.statusLabel.Alignment = fyne.TextAlignTrailing
	jr.detailLabel = widget.NewLabel("")
	jr.detailLabel.TextStyle = fyne.TextStyle{Italic: true}
	jr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	jr.progressLabel = widget.NewLabel("")
	jr.progressLabel.Alignment = fyne.TextAlignTrailing
	jr.progressBar = widget.NewProgressBar()
	jr.progressBar.TextFormatter = func() string { return "" }

	jr.stopBtn = widget.NewButton(jr.localization.GetText(KeyStop), func() {
		if jr.onStop != nil {
			jr.onStop(jr.job.ID)
		}
	})
	jr.removeBtn = widget.NewButton(IconClose, func() {
		if jr.onRemove != nil {
			jr.onRemove(jr.job.ID)
		}
	})
	jr.removeBtn.Importance = widget.LowImportance

	jr.revealBtn = widget.NewButton(jr.localization.GetText(KeyReveal), func() {
		if jr.onReveal != nil && hasOutput(jr.job) {
			jr.onReveal(jr.job.OutputPath)
		}
	})
	jr.playBtn = widget.NewButton(jr.localization.GetText(KeyOpen), func() {
		if jr.onOpen != nil && hasOutput(jr.job) {
			jr.onOpen(jr.job.OutputPath)
		}
	})
	jr.copyBtn = widget.NewButton(jr.localization.GetText(KeyCopyPath), func() {
		if jr.onCopyPath != nil && hasOutput(jr.job) {
			jr.onCopyPath(jr.job.OutputPath)
		}
	})
}

func (jr *JobRow) updateFromJob() {
	jr.titleLabel.SetText(jobTitle(jr.job))

	text, importance := statusText(jr.job.Status)
	jr.statusLabel.Importance = importance
	jr.statusLabel.SetText(text)
	jr.detailLabel.SetText(detailText(jr.job))

	percent := effectivePercent(jr.job)
	jr.progressBar.SetValue(float64(percent) / MaxProgressPercent)
	if jr.job.Status.IsFinished() {
		jr.progressLabel.SetText("")
	} else {
		jr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
	}

	jr.updateButtons()
}

func (jr *JobRow) updateButtons() {
	jr.stopBtn.SetText(jr.localization.GetText(KeyStop))
	jr.revealBtn.SetText(jr.localization.GetText(KeyReveal))
	jr.playBtn.SetText(jr.localization.GetText(KeyOpen))
	jr.copyBtn.SetText(jr.localization.GetText(KeyCopyPath))

	if jr.job.Status.IsFinished() || jr.job.Status == model.TaskStatusStopping {
		jr.stopBtn.Disable()
	} else {
		jr.stopBtn.Enable()
	}

	if jr.job.Status.IsFinished() {
		jr.removeBtn.Enable()
	} else {
		jr.removeBtn.Disable()
	}

	for _, btn := range []*widget.Button{jr.revealBtn, jr.playBtn, jr.copyBtn} {
		if hasOutput(jr.job) {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// jobTitle joins the display title with the target language name
func jobTitle(job *model.TranslationJob) string {
	title := strings.Join(strings.Fields(job.GetDisplayTitle()), " ")
	if job.TargetLanguage == "" {
		return title
	}
	return title + MiddleDotSeparator + config.LanguageName(job.TargetLanguage)
}

// statusText returns the status label text and its importance
func statusText(status model.TaskStatus) (string, widget.Importance) {
	switch status {
	case model.TaskStatusError:
		return IconError + " " + status.String(), widget.DangerImportance
	case model.TaskStatusCompleted:
		return IconDone + " " + status.String(), widget.SuccessImportance
	case model.TaskStatusPending:
		return IconPending + " " + status.String(), widget.MediumImportance
	case model.TaskStatusStopped, model.TaskStatusStopping:
		return IconStop + " " + status.String(), widget.WarningImportance
	}
	if status.IsActive() {
		return IconPlay + " " + status.String(), widget.HighImportance
	}
	return status.String(), widget.MediumImportance
}

// detailText is the second line of a row: the stage detail while running,
// segment counts and size when done, the error when failed
func detailText(job *model.TranslationJob) string {
	switch job.Status {
	case model.TaskStatusError:
		if job.LastError != "" {
			return job.LastError
		}
		return DashPlaceholder
	case model.TaskStatusCompleted:
		parts := []string{}
		if job.SegmentsSpoken > 0 {
			parts = append(parts, fmt.Sprintf("%d/%d segments", job.SegmentsSpoken, job.SegmentsTotal))
		}
		if job.FileSize > 0 {
			parts = append(parts, platform.FormatFileSize(job.FileSize))
		}
		if d := job.Duration(); d > 0 {
			parts = append(parts, d.Round(time.Second).String())
		}
		if len(parts) == 0 {
			return job.Status.StageLabel()
		}
		return strings.Join(parts, MiddleDotSeparator)
	case model.TaskStatusPending, model.TaskStatusStopped:
		return ""
	}
	if job.Detail != "" {
		return job.Detail
	}
	return job.Status.StageLabel()
}

// effectivePercent derives a 0..100 value, preferring Percent and falling
// back to Progress so a started job never shows 0%
func effectivePercent(job *model.TranslationJob) int {
	if job.Status == model.TaskStatusCompleted {
		return MaxProgressPercent
	}
	percent := job.Percent
	if percent <= 0 && job.Progress > 0 {
		percent = int(job.Progress*MaxProgressPercent + 0.5)
		if percent == 0 {
			percent = MinProgressPercent
		}
	}
	return max(0, min(percent, MaxProgressPercent))
}

func hasOutput(job *model.TranslationJob) bool {
	return job.Status == model.TaskStatusCompleted && job.OutputPath != ""
}

// CreateRenderer creates the widget renderer
func (jr *JobRow) CreateRenderer() fyne.WidgetRenderer {
	return &jobRowRenderer{row: jr}
}

type jobRowRenderer struct {
	row    *JobRow
	layout *fyne.Container
}

func (r *jobRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(fyne.NewSize(max(size.Width, RowMinWidth), max(size.Height, RowMinHeight)))
}

func (r *jobRowRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	ms := r.layout.MinSize()
	return fyne.NewSize(max(ms.Width, RowMinWidth), max(ms.Height, RowMinHeight))
}

func (r *jobRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

func (r *jobRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

func (r *jobRowRenderer) Destroy() {}

func (r *jobRowRenderer) createLayout() {
	jr := r.row

	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, jr.statusLabel),
		fixedWidth(PercentLabelWidth, jr.progressLabel),
	)
	actions := container.NewHBox(jr.stopBtn, jr.revealBtn, jr.playBtn, jr.copyBtn, jr.removeBtn)
	rightCluster := container.NewBorder(nil, nil, nil, actions, info)

	text := container.NewVBox(jr.titleLabel, jr.detailLabel)
	top := container.NewBorder(nil, nil, nil, rightCluster, text)

	r.layout = container.NewVBox(top, jr.progressBar, widget.NewSeparator())
}
