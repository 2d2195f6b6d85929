package convert

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

type ListFunc func(bucket string, prefix string) ([]string, error)

// StatusHandler reports whether a job's output has appeared yet. It is
// read-only and idempotent; the orchestrator polls it until the job leaves
// IN_PROGRESS.
type StatusHandler struct {
	List ListFunc
}

func (h *StatusHandler) HandleRequest(ctx context.Context, req StatusRequest) StatusResponse {
	// Resolve the id, prefix, and output location before touching storage
	// so the FAILED response is well-formed even on malformed input.
	jobID := req.JobID
	if jobID == "" {
		jobID = "unknown"
	}
	outputPrefix := req.OutputS3Prefix
	if outputPrefix == "" {
		outputPrefix = DefaultOutputPrefix
	}
	jobPrefix := outputPrefix + jobID + "/"
	outputLocation := S3URI(req.OutputS3Bucket, jobPrefix)

	if req.OutputS3Bucket == "" {
		return failedStatus(jobID, outputLocation, missingField("outputS3Bucket"))
	}

	keys, err := h.List(req.OutputS3Bucket, jobPrefix)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"job_id": jobID,
			"bucket": req.OutputS3Bucket,
		}).Error("Status listing failed")
		return failedStatus(jobID, outputLocation, opError("list output objects", err))
	}

	filesFound := make([]string, 0, len(keys))
	status := StatusInProgress
	for _, key := range keys {
		rel := strings.TrimPrefix(key, jobPrefix)
		filesFound = append(filesFound, rel)
		if strings.HasSuffix(rel, ".html") {
			status = StatusCompleted
		}
	}

	logrus.WithFields(logrus.Fields{
		"job_id": jobID,
		"status": status,
		"files":  len(filesFound),
	}).Info("Checked job status")

	return StatusResponse{
		JobID:          jobID,
		Status:         status,
		OutputLocation: outputLocation,
		FilesFound:     &filesFound,
	}
}

func failedStatus(jobID string, outputLocation string, err error) StatusResponse {
	return StatusResponse{
		JobID:          jobID,
		Status:         StatusFailed,
		OutputLocation: outputLocation,
		Error:          err.Error(),
	}
}
