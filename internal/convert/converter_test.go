package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderConverter(t *testing.T) {
	html, err := PlaceholderConverter{}.Convert(ConversionJob{
		JobID:     "job1",
		RequestID: "req-abc",
		Bucket:    "in-bucket",
		Key:       "docs/report.pdf",
		Size:      1234567,
		Options: map[string]interface{}{
			"ocr": true,
		},
	})
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "<strong>Job ID:</strong> job1")
	assert.Contains(t, body, "<strong>Original File:</strong> docs/report.pdf")
	assert.Contains(t, body, "<strong>Request ID:</strong> req-abc")
	assert.Contains(t, body, "s3://in-bucket/docs/report.pdf")
	assert.Contains(t, body, "1,234,567 bytes")
	assert.Contains(t, body, `"ocr": true`)
	assert.Contains(t, body, "<!DOCTYPE html>")
}

func TestPlaceholderConverterNoOptions(t *testing.T) {
	html, err := PlaceholderConverter{}.Convert(ConversionJob{
		JobID: "job1",
		Size:  10,
	})
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>Processing Options:</strong> {}")
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupDigits(tt.n))
	}
}
