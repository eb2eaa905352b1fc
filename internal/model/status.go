package model

// TaskStatus represents the status of a translation job
type TaskStatus string

const (
	// TaskStatusPending means the job is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the job is in the process of starting
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means the source video is being downloaded
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusExtracting means the audio track is being extracted
	TaskStatusExtracting TaskStatus = "Extracting"

	// TaskStatusTranscribing means speech is being converted to text
	TaskStatusTranscribing TaskStatus = "Transcribing"

	// TaskStatusTranslating means transcript segments are being translated
	TaskStatusTranslating TaskStatus = "Translating"

	// TaskStatusSynthesizing means translated speech is being generated
	TaskStatusSynthesizing TaskStatus = "Synthesizing"

	// TaskStatusMerging means the new audio is being muxed into the video
	TaskStatusMerging TaskStatus = "Merging"

	// TaskStatusStopping means the job is in the process of stopping
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the job was stopped by user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the job finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the job failed with an error
	TaskStatusError TaskStatus = "Error"
)

// stageProgress holds the overall progress reported when a stage begins.
var stageProgress = map[TaskStatus]float64{
	TaskStatusDownloading:  0.1,
	TaskStatusExtracting:   0.3,
	TaskStatusTranscribing: 0.5,
	TaskStatusTranslating:  0.7,
	TaskStatusSynthesizing: 0.8,
	TaskStatusMerging:      0.9,
	TaskStatusCompleted:    1.0,
}

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the job is in an active state
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusStarting, TaskStatusDownloading, TaskStatusExtracting, TaskStatusTranscribing,
		TaskStatusTranslating, TaskStatusSynthesizing, TaskStatusMerging, TaskStatusStopping:
		return true
	}
	return false
}

// IsFinished returns true if the job is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// StageProgress returns the nominal overall progress (0.0 to 1.0) at the start of the stage.
// Non-stage statuses return 0.
func (ts TaskStatus) StageProgress() float64 {
	return stageProgress[ts]
}

// StageLabel returns the progress text shown while the stage runs
func (ts TaskStatus) StageLabel() string {
	switch ts {
	case TaskStatusDownloading:
		return "Downloading video..."
	case TaskStatusExtracting:
		return "Extracting audio with FFmpeg..."
	case TaskStatusTranscribing:
		return "Transcribing speech..."
	case TaskStatusTranslating:
		return "Translating text..."
	case TaskStatusSynthesizing:
		return "Generating translated speech..."
	case TaskStatusMerging:
		return "Generating final video..."
	case TaskStatusCompleted:
		return "Complete!"
	}
	return ts.String()
}
