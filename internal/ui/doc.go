package ui

// Package ui contains the Fyne-based desktop dashboard. It composes the Home,
// YouTube Translator, Uruguay Export Data and About sections, routes user input
// to the translation pipeline or the export data service and renders what they
// return. All UI strings are localized via Localization.
