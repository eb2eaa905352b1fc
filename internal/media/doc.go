// Package media wraps the ffmpeg and ffprobe command line tools used by the
// translation pipeline: audio extraction, duration probing, silence generation,
// clip positioning, track mixing and the final video/audio merge.
package media
