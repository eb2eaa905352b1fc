package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/aws/aws-sdk-go/service/transcribeservice/transcribeserviceiface"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/ytget/ytdash/internal/model"
)

// Amazon Transcribe constants
const (
	AWSKeyPrefix        = "ytdash/audio/"
	AWSJobPrefix        = "ytdash-"
	DefaultPollInterval = 5 * time.Second
	SegmentGapSeconds   = 1.0
)

// AWS transcribes audio with Amazon Transcribe. The audio is uploaded to S3,
// a job with automatic language identification is started and polled, and the
// transcript JSON is downloaded from the URI the job reports.
type AWS struct {
	uploader     s3manageriface.UploaderAPI
	s3           s3iface.S3API
	transcribe   transcribeserviceiface.TranscribeServiceAPI
	http         *resty.Client
	bucket       string
	pollInterval time.Duration
}

// NewAWS creates an Amazon Transcribe backend for region and bucket
func NewAWS(region, bucket string) (*AWS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required for aws transcription")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return NewAWSWithClients(s3manager.NewUploader(sess), s3.New(sess), transcribeservice.New(sess), resty.New(), bucket), nil
}

// NewAWSWithClients wires the backend with explicit service clients
func NewAWSWithClients(uploader s3manageriface.UploaderAPI, s3c s3iface.S3API, ts transcribeserviceiface.TranscribeServiceAPI, http *resty.Client, bucket string) *AWS {
	return &AWS{
		uploader:     uploader,
		s3:           s3c,
		transcribe:   ts,
		http:         http,
		bucket:       bucket,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval changes how often job status is checked
func (a *AWS) SetPollInterval(d time.Duration) {
	a.pollInterval = d
}

// Transcribe implements Transcriber
func (a *AWS) Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate job id: %w", err)
	}
	jobName := AWSJobPrefix + id.String()
	key := AWSKeyPrefix + jobName + filepath.Ext(audioPath)

	if err := a.upload(ctx, audioPath, key); err != nil {
		return nil, err
	}
	defer a.deleteObject(key)

	mediaURI := fmt.Sprintf("s3://%s/%s", a.bucket, key)
	_, err = a.transcribe.StartTranscriptionJobWithContext(ctx, &transcribeservice.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		Media:                &transcribeservice.Media{MediaFileUri: aws.String(mediaURI)},
		MediaFormat:          aws.String(mediaFormat(audioPath)),
		IdentifyLanguage:     aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start transcription job: %w", err)
	}
	log.Printf("Started transcription job %s for %s", jobName, mediaURI)

	job, err := a.waitForJob(ctx, jobName)
	if err != nil {
		return nil, err
	}

	resp, err := a.http.R().SetContext(ctx).Get(aws.StringValue(job.Transcript.TranscriptFileUri))
	if err != nil {
		return nil, fmt.Errorf("failed to download transcript: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download transcript: status %d", resp.StatusCode())
	}

	t, err := ParseAWSTranscript(resp.Body())
	if err != nil {
		return nil, err
	}
	if t.Language == "" {
		t.Language = languagePrefix(aws.StringValue(job.LanguageCode))
	}
	return finish(t)
}

func (a *AWS) upload(ctx context.Context, audioPath, key string) error {
	file, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio: %w", err)
	}
	defer file.Close()

	_, err = a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload audio to s3: %w", err)
	}
	return nil
}

func (a *AWS) deleteObject(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := a.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Failed to delete s3://%s/%s: %v", a.bucket, key, err)
	}
}

func (a *AWS) waitForJob(ctx context.Context, jobName string) (*transcribeservice.TranscriptionJob, error) {
	for {
		out, err := a.transcribe.GetTranscriptionJobWithContext(ctx, &transcribeservice.GetTranscriptionJobInput{
			TranscriptionJobName: aws.String(jobName),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get transcription job: %w", err)
		}

		job := out.TranscriptionJob
		if job != nil {
			switch aws.StringValue(job.TranscriptionJobStatus) {
			case transcribeservice.TranscriptionJobStatusCompleted:
				if job.Transcript == nil || aws.StringValue(job.Transcript.TranscriptFileUri) == "" {
					return nil, fmt.Errorf("transcription job %s completed without transcript", jobName)
				}
				return job, nil
			case transcribeservice.TranscriptionJobStatusFailed:
				return nil, fmt.Errorf("transcription job %s failed: %s", jobName, aws.StringValue(job.FailureReason))
			}
		}

		select {
		case <-time.After(a.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

type awsTranscript struct {
	Results struct {
		LanguageCode string `json:"language_code"`
		Items        []struct {
			StartTime    string `json:"start_time"`
			EndTime      string `json:"end_time"`
			Type         string `json:"type"`
			Alternatives []struct {
				Content string `json:"content"`
			} `json:"alternatives"`
		} `json:"items"`
	} `json:"results"`
}

// ParseAWSTranscript groups Amazon Transcribe items into sentence segments.
// A segment closes on sentence punctuation or when the pause before the next
// word exceeds SegmentGapSeconds.
func ParseAWSTranscript(data []byte) (*model.Transcript, error) {
	var raw awsTranscript
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse aws transcript: %w", err)
	}

	t := &model.Transcript{Language: languagePrefix(raw.Results.LanguageCode)}

	var current *model.Segment
	var words []string
	flush := func() {
		if current != nil && len(words) > 0 {
			current.Text = strings.Join(words, " ")
			t.Segments = append(t.Segments, *current)
		}
		current = nil
		words = nil
	}

	for _, item := range raw.Results.Items {
		if len(item.Alternatives) == 0 {
			continue
		}
		content := item.Alternatives[0].Content

		if item.Type == "punctuation" {
			if len(words) > 0 {
				words[len(words)-1] += content
			}
			if content == "." || content == "?" || content == "!" {
				flush()
			}
			continue
		}

		start, _ := strconv.ParseFloat(item.StartTime, 64)
		end, _ := strconv.ParseFloat(item.EndTime, 64)

		if current != nil && start-current.End > SegmentGapSeconds {
			flush()
		}
		if current == nil {
			current = &model.Segment{Start: start}
		}
		current.End = end
		words = append(words, content)
		if end > t.Duration {
			t.Duration = end
		}
	}
	flush()

	return t, nil
}

func mediaFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return transcribeservice.MediaFormatWav
	}
	return ext
}

// languagePrefix maps "en-US" to "en"
func languagePrefix(code string) string {
	if i := strings.Index(code, "-"); i > 0 {
		return code[:i]
	}
	return code
}
