package media

import (
	"fmt"
	"strconv"
)

// FFmpeg constants
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	OverwriteFlag = "-y"

	// Audio settings for speech processing
	SpeechSampleRate = "16000"
	SpeechChannels   = "1"
	PCMCodec         = "pcm_s16le"
	WAVFormat        = "wav"

	// Final video settings
	CopyCodec    = "copy"
	AudioCodec   = "aac"
	AudioBitrate = "128k"
	VideoMap     = "0:v:0"
	AudioMap     = "1:a:0"

	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"

	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
)

// ExtractAudioArgs returns the ffmpeg argument variants for audio extraction,
// in the order they should be tried
func ExtractAudioArgs(videoPath, outPath string) [][]string {
	return [][]string{
		{
			OverwriteFlag,
			"-i", videoPath,
			"-vn",
			"-acodec", PCMCodec,
			"-ar", SpeechSampleRate,
			"-ac", SpeechChannels,
			outPath,
		},
		{
			OverwriteFlag,
			"-i", videoPath,
			"-vn",
			"-ar", SpeechSampleRate,
			"-ac", SpeechChannels,
			"-f", WAVFormat,
			outPath,
		},
		{
			OverwriteFlag,
			"-i", videoPath,
			"-vn",
			outPath,
		},
	}
}

// ProbeDurationArgs builds the ffprobe arguments that print the container duration
func ProbeDurationArgs(path string) []string {
	return []string{
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		path,
	}
}

// SilenceArgs builds arguments generating duration seconds of 16 kHz mono silence
func SilenceArgs(duration float64, outPath string) []string {
	return []string{
		OverwriteFlag,
		"-f", "lavfi",
		"-i", "anullsrc=sample_rate=" + SpeechSampleRate + ":channel_layout=mono",
		"-t", formatSeconds(duration),
		outPath,
	}
}

// PositionArgs builds arguments that delay clip by start seconds and convert it to 16 kHz mono WAV
func PositionArgs(clipPath string, start float64, outPath string) []string {
	ms := int(start * 1000)
	if ms < 0 {
		ms = 0
	}
	return []string{
		OverwriteFlag,
		"-i", clipPath,
		"-af", fmt.Sprintf("adelay=%d|%d", ms, ms),
		"-ar", SpeechSampleRate,
		"-ac", SpeechChannels,
		outPath,
	}
}

// MixArgs builds arguments mixing all inputs into one track as long as the longest input
func MixArgs(inputs []string, outPath string) []string {
	args := []string{OverwriteFlag}
	filter := ""
	for i, in := range inputs {
		args = append(args, "-i", in)
		filter += fmt.Sprintf("[%d:a]", i)
	}
	filter += fmt.Sprintf("amix=inputs=%d:duration=longest", len(inputs))
	return append(args, "-filter_complex", filter, outPath)
}

// MergeArgs builds arguments that replace the audio of videoPath with audioPath
func MergeArgs(videoPath, audioPath, outPath string) []string {
	return []string{
		OverwriteFlag,
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", CopyCodec,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-map", VideoMap,
		"-map", AudioMap,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outPath,
	}
}

func formatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
