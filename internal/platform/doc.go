package platform

// Package platform contains OS/platform integration glue: YouTube URL checks,
// filesystem helpers for output and temp files, and OS open/reveal.
