// Package pipeline runs video translation jobs: download, audio extraction,
// transcription, segment translation, speech synthesis, mixing and the final
// merge back into the video. It manages the job lifecycle, a bounded number
// of concurrent jobs, stop requests and progress notifications.
package pipeline
