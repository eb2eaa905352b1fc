package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "⏹"
	IconPending  = "⏳"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✅"
	IconVideo    = "🎬"
	IconChart    = "📊"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
	MoneyFormat         = "$%.2fM"
)

// Layout sizing (JobRow / lists)
const (
	StatusLabelWidth  float32 = 110
	DetailLabelWidth  float32 = 160
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 64
	RowDefaultH  float32 = 72
)

// Chart canvas sizing
const (
	ChartMinWidth    float32 = 640
	ChartPadding     float32 = 48
	ChartLabelWidth  float32 = 140
	ChartPointRadius float32 = 4
	ChartBubbleMin   float32 = 6
	ChartBubbleMax   float32 = 28
	ChartTextSize    float32 = 11
	ChartTitleSize   float32 = 14
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 320
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Window and dialog sizes
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 480
)

// Recent outputs shown in the translator section
const (
	RecentOutputsLimit = 5
)
