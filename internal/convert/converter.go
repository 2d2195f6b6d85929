package convert

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ConversionJob describes one staged source document.
type ConversionJob struct {
	JobID     string
	RequestID string
	Bucket    string
	Key       string
	Size      int64
	Options   map[string]interface{}
}

// Converter turns a staged source document into the bytes of the HTML
// result object. A real PDF parser can be dropped in here without touching
// request or response handling.
type Converter interface {
	Convert(job ConversionJob) ([]byte, error)
}

// PlaceholderConverter ignores the staged file's content and synthesizes a
// fixed HTML document from the job metadata.
type PlaceholderConverter struct{}

func (PlaceholderConverter) Convert(job ConversionJob) ([]byte, error) {
	opts, err := json.MarshalIndent(optionsOrEmpty(job.Options), "", "  ")
	if err != nil {
		return nil, err
	}
	html := fmt.Sprintf(resultTemplate,
		job.JobID,
		job.Key,
		job.RequestID,
		job.Bucket, job.Key,
		groupDigits(job.Size),
		string(opts),
	)
	return []byte(html), nil
}

func optionsOrEmpty(options map[string]interface{}) map[string]interface{} {
	if options == nil {
		return map[string]interface{}{}
	}
	return options
}

// groupDigits renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	start := 0
	if s[0] == '-' {
		start = 1
	}
	out := s[:start]
	for i := start; i < len(s); i++ {
		if i > start && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(s[i])
	}
	return out
}

const resultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Converted PDF Document</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; }
        .conversion-info { background-color: #f0f8ff; border: 1px solid #0066cc; border-radius: 5px; padding: 15px; margin-bottom: 20px; }
        .metadata { background-color: #f9f9f9; border-left: 4px solid #ccc; padding: 10px 15px; margin: 10px 0; }
    </style>
</head>
<body>
    <div class="conversion-info">
        <h1>PDF to HTML Conversion Result</h1>
        <p><strong>Job ID:</strong> %s</p>
        <p><strong>Original File:</strong> %s</p>
        <p><strong>Request ID:</strong> %s</p>
    </div>

    <div class="metadata">
        <h2>Document Metadata</h2>
        <ul>
            <li><strong>Source:</strong> s3://%s/%s</li>
            <li><strong>File Size:</strong> %s bytes</li>
            <li><strong>Processing Options:</strong> %s</li>
        </ul>
    </div>

    <div class="content">
        <h2>Document Content</h2>
        <p><em>This is a placeholder conversion. A full implementation would integrate a real PDF to HTML engine in place of this strategy.</em></p>

        <p>In a full implementation, this would:</p>
        <ul>
            <li>Parse text, images, and structure from the PDF</li>
            <li>Generate accessible HTML with proper semantic markup</li>
            <li>Include extracted images with appropriate alt text</li>
            <li>Preserve document layout and formatting</li>
        </ul>
    </div>
</body>
</html>`
