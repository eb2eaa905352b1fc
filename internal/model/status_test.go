package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, true},
		{TaskStatusDownloading, true},
		{TaskStatusExtracting, true},
		{TaskStatusTranscribing, true},
		{TaskStatusTranslating, true},
		{TaskStatusSynthesizing, true},
		{TaskStatusMerging, true},
		{TaskStatusStopping, true},
		{TaskStatusStopped, false},
		{TaskStatusCompleted, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, false},
		{TaskStatusDownloading, false},
		{TaskStatusMerging, false},
		{TaskStatusStopping, false},
		{TaskStatusStopped, true},
		{TaskStatusCompleted, true},
		{TaskStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_StageProgress(t *testing.T) {
	order := []TaskStatus{
		TaskStatusDownloading,
		TaskStatusExtracting,
		TaskStatusTranscribing,
		TaskStatusTranslating,
		TaskStatusSynthesizing,
		TaskStatusMerging,
		TaskStatusCompleted,
	}

	prev := 0.0
	for _, status := range order {
		p := status.StageProgress()
		if p <= prev {
			t.Errorf("Expected %s progress to exceed %.2f, got %.2f", status, prev, p)
		}
		prev = p
	}

	if TaskStatusCompleted.StageProgress() != 1.0 {
		t.Errorf("Expected completed progress 1.0, got %.2f", TaskStatusCompleted.StageProgress())
	}
	if TaskStatusPending.StageProgress() != 0 {
		t.Errorf("Expected pending progress 0, got %.2f", TaskStatusPending.StageProgress())
	}
}

func TestTaskStatus_String(t *testing.T) {
	status := TaskStatusTranscribing
	expected := "Transcribing"
	result := status.String()

	if result != expected {
		t.Errorf("TaskStatus.String() = %s, expected %s", result, expected)
	}
}
