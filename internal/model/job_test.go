package model

import (
	"strings"
	"testing"
	"time"
)

func TestNewVideoID(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{"my_video", "es", "my_video_es"},
		{"", "fr", "video_1700000000_fr"},
		{"  spaced name ", "de", "spaced_name_de"},
		{"../../etc/passwd", "en", "etc_passwd_en"},
		{"***", "ja", "video_1700000000_ja"},
	}

	for _, test := range tests {
		result := NewVideoID(test.name, test.lang, now)
		if result != test.expected {
			t.Errorf("NewVideoID(%q, %q) = %q, expected %q", test.name, test.lang, result, test.expected)
		}
	}
}

func TestTranslationJob_SetStage(t *testing.T) {
	job := &TranslationJob{Status: TaskStatusPending}

	job.SetStage(TaskStatusTranscribing)
	if job.Percent != 50 {
		t.Errorf("Expected percent 50, got %d", job.Percent)
	}
	if job.Detail != "Transcribing speech..." {
		t.Errorf("Expected detail 'Transcribing speech...', got '%s'", job.Detail)
	}

	// Progress never goes backwards
	job.SetStage(TaskStatusDownloading)
	if job.Percent != 50 {
		t.Errorf("Expected percent to stay 50, got %d", job.Percent)
	}
}

func TestTranslationJob_SetSubProgress(t *testing.T) {
	job := &TranslationJob{}
	job.SetStage(TaskStatusTranslating)

	job.SetSubProgress(0.5)
	if job.Percent != 75 {
		t.Errorf("Expected percent 75, got %d", job.Percent)
	}

	job.SetSubProgress(5)
	if job.Percent != 80 {
		t.Errorf("Expected percent clamped to 80, got %d", job.Percent)
	}
}

func TestTranslationJob_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		output   string
		url      string
		expected string
	}{
		{"Video Title", "", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "/out/my_video_es.mp4", "https://youtube.com/watch?v=123", "my_video_es"},
		{"", "", "https://youtube.com/watch?v=456", "https://youtube.com/watch?v=456"},
		{"https://youtube.com/watch?v=789", "", "https://youtube.com/watch?v=789", "https://youtube.com/watch?v=789"},
	}

	for _, test := range tests {
		job := &TranslationJob{Title: test.title, OutputPath: test.output, URL: test.url}
		result := job.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s' = '%s', expected '%s'", test.title, result, test.expected)
		}
	}
}

func TestTranslationJob_Duration(t *testing.T) {
	job := &TranslationJob{}
	if job.Duration() != 0 {
		t.Errorf("Expected zero duration for unstarted job, got %v", job.Duration())
	}

	start := time.Now().Add(-time.Minute)
	job.StartedAt = start
	job.FinishedAt = start.Add(30 * time.Second)
	if job.Duration() != 30*time.Second {
		t.Errorf("Expected 30s, got %v", job.Duration())
	}
}

func TestTotalDuration(t *testing.T) {
	segments := []TranslatedSegment{
		{Start: 0, End: 2.5},
		{Start: 8, End: 12.25},
		{Start: 3, End: 7},
	}
	if got := TotalDuration(segments); got != 12.25 {
		t.Errorf("Expected 12.25, got %v", got)
	}
	if got := TotalDuration(nil); got != 0 {
		t.Errorf("Expected 0 for no segments, got %v", got)
	}
	if !strings.Contains(TaskStatusMerging.StageLabel(), "final video") {
		t.Errorf("Unexpected merge label: %s", TaskStatusMerging.StageLabel())
	}
}
