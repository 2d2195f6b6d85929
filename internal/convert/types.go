package convert

import "github.com/google/uuid"

// Job status values reported back to the orchestrator.
const (
	StatusCompleted  = "COMPLETED"
	StatusInProgress = "IN_PROGRESS"
	StatusFailed     = "FAILED"
)

// DefaultOutputPrefix is used when the request does not name one.
const DefaultOutputPrefix = "converted/"

// ResultFileName is the single HTML object every conversion writes under
// the job's output prefix. The status handler keys off the .html suffix.
const ResultFileName = "converted.html"

type ConvertRequest struct {
	JobID             string                 `json:"jobId,omitempty"`
	InputS3Bucket     string                 `json:"inputS3Bucket"`
	InputS3Key        string                 `json:"inputS3Key"`
	OutputS3Bucket    string                 `json:"outputS3Bucket"`
	OutputS3Prefix    string                 `json:"outputS3Prefix,omitempty"`
	ConversionOptions map[string]interface{} `json:"conversionOptions,omitempty"`
}

// ConversionSummary carries the placeholder counters alongside the list of
// objects the conversion produced.
type ConversionSummary struct {
	HTMLPath              string   `json:"html_path"`
	OutputFiles           []string `json:"output_files"`
	PDFPages              int      `json:"pdf_pages"`
	ImagesExtracted       int      `json:"images_extracted"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

type ConvertResponse struct {
	JobID            string             `json:"jobId"`
	Status           string             `json:"status"`
	OutputLocation   string             `json:"outputLocation,omitempty"`
	ConversionResult *ConversionSummary `json:"conversionResult,omitempty"`
	Error            string             `json:"error,omitempty"`
	InputLocation    string             `json:"inputLocation"`
}

type StatusRequest struct {
	JobID          string `json:"jobId,omitempty"`
	OutputS3Bucket string `json:"outputS3Bucket"`
	OutputS3Prefix string `json:"outputS3Prefix,omitempty"`
}

// StatusResponse always carries filesFound on success, even when empty.
// The FAILED shape omits it, hence the pointer.
type StatusResponse struct {
	JobID          string    `json:"jobId"`
	Status         string    `json:"status"`
	OutputLocation string    `json:"outputLocation"`
	FilesFound     *[]string `json:"filesFound,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// MakeJobID derives a job id from the invocation's request id, falling back
// to a generated one when the runtime did not supply any.
func MakeJobID(requestID string) string {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return "job-" + requestID
}

func S3URI(bucket string, key string) string {
	return "s3://" + bucket + "/" + key
}
