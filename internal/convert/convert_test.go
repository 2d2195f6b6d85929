package convert

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	objects map[string][]byte

	uploads     map[string][]byte
	contentType string
	metadata    map[string]string
	downloadErr error
	uploadErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: map[string][]byte{},
		uploads: map[string][]byte{},
	}
}

func (f *fakeStore) download(bucket string, key string, fileName string) (int64, error) {
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	body, ok := f.objects[bucket+"/"+key]
	if !ok {
		return 0, errors.New("NoSuchKey: " + bucket + "/" + key)
	}
	if err := ioutil.WriteFile(fileName, body, 0644); err != nil {
		return 0, err
	}
	return int64(len(body)), nil
}

func (f *fakeStore) upload(bucket string, key string, body []byte, contentType string, metadata map[string]string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[bucket+"/"+key] = body
	f.contentType = contentType
	f.metadata = metadata
	return nil
}

func newHandler(store *fakeStore) *ConvertHandler {
	return &ConvertHandler{
		Download:  store.download,
		Upload:    store.upload,
		Converter: PlaceholderConverter{},
	}
}

func lambdaCtx(requestID string) context.Context {
	return lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: requestID,
	})
}

func TestConvertSuccess(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/docs/report.pdf"] = []byte("%PDF-1.4 fake")

	resp := newHandler(store).HandleRequest(lambdaCtx("req-1"), ConvertRequest{
		JobID:          "job1",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "docs/report.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "job1", resp.JobID)
	assert.Equal(t, "s3://out-bucket/converted/job1/", resp.OutputLocation)
	assert.Equal(t, "s3://in-bucket/docs/report.pdf", resp.InputLocation)
	assert.Empty(t, resp.Error)

	require.NotNil(t, resp.ConversionResult)
	assert.Equal(t, "s3://out-bucket/converted/job1/converted.html", resp.ConversionResult.HTMLPath)
	assert.Equal(t, []string{"converted/job1/converted.html"}, resp.ConversionResult.OutputFiles)
	assert.Equal(t, 1, resp.ConversionResult.PDFPages)
	assert.Equal(t, 0, resp.ConversionResult.ImagesExtracted)
	assert.Equal(t, 1.0, resp.ConversionResult.ProcessingTimeSeconds)

	body, ok := store.uploads["out-bucket/converted/job1/converted.html"]
	require.True(t, ok, "result object not written")
	assert.Contains(t, string(body), "job1")
	assert.Equal(t, "text/html", store.contentType)
	assert.Equal(t, map[string]string{
		"job-id":               "job1",
		"source-bucket":        "in-bucket",
		"source-key":           "docs/report.pdf",
		"conversion-timestamp": "req-1",
	}, store.metadata)
}

func TestConvertCustomPrefixAndOptions(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a.pdf"] = []byte("x")

	resp := newHandler(store).HandleRequest(lambdaCtx("req-2"), ConvertRequest{
		JobID:          "job2",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
		OutputS3Prefix: "results/",
		ConversionOptions: map[string]interface{}{
			"ocr": true,
		},
	})

	require.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "s3://out-bucket/results/job2/", resp.OutputLocation)
	body := string(store.uploads["out-bucket/results/job2/converted.html"])
	assert.Contains(t, body, `"ocr": true`)
}

func TestConvertDecodesPercentEncodedKey(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a b.pdf"] = []byte("x")

	resp := newHandler(store).HandleRequest(lambdaCtx("req-3"), ConvertRequest{
		JobID:          "job3",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a%20b.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "s3://in-bucket/a b.pdf", resp.InputLocation)
	assert.Equal(t, "a b.pdf", store.metadata["source-key"])
}

func TestConvertGeneratesJobID(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a.pdf"] = []byte("x")

	resp := newHandler(store).HandleRequest(lambdaCtx("req-4"), ConvertRequest{
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "job-req-4", resp.JobID)
	_, ok := store.uploads["out-bucket/converted/job-req-4/converted.html"]
	assert.True(t, ok)
}

func TestConvertGeneratesJobIDWithoutLambdaContext(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a.pdf"] = []byte("x")

	resp := newHandler(store).HandleRequest(context.Background(), ConvertRequest{
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusCompleted, resp.Status)
	assert.True(t, strings.HasPrefix(resp.JobID, "job-"))
	assert.Greater(t, len(resp.JobID), len("job-"))
}

func TestConvertMissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		req  ConvertRequest
		want string
	}{
		{
			name: "missing input bucket",
			req:  ConvertRequest{InputS3Key: "a.pdf", OutputS3Bucket: "out"},
			want: "inputS3Bucket",
		},
		{
			name: "missing input key",
			req:  ConvertRequest{InputS3Bucket: "in", OutputS3Bucket: "out"},
			want: "inputS3Key",
		},
		{
			name: "missing output bucket",
			req:  ConvertRequest{InputS3Bucket: "in", InputS3Key: "a.pdf"},
			want: "outputS3Bucket",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			resp := newHandler(store).HandleRequest(lambdaCtx("req-5"), tt.req)

			require.Equal(t, StatusFailed, resp.Status)
			assert.Contains(t, resp.Error, tt.want)
			assert.NotEmpty(t, resp.JobID)
			// Rebuilt from whatever fields were present, no secondary error.
			assert.Equal(t, "s3://"+tt.req.InputS3Bucket+"/"+tt.req.InputS3Key, resp.InputLocation)
			assert.Nil(t, resp.ConversionResult)
			assert.Empty(t, store.uploads)
		})
	}
}

func TestConvertDownloadFailure(t *testing.T) {
	store := newFakeStore()
	store.downloadErr = errors.New("access denied")

	resp := newHandler(store).HandleRequest(lambdaCtx("req-6"), ConvertRequest{
		JobID:          "job6",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Error, "download source object")
	assert.Contains(t, resp.Error, "access denied")
	assert.Empty(t, store.uploads)
}

func TestConvertUploadFailure(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a.pdf"] = []byte("x")
	store.uploadErr = errors.New("bucket gone")

	resp := newHandler(store).HandleRequest(lambdaCtx("req-7"), ConvertRequest{
		JobID:          "job7",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Error, "upload result object")
}

func TestConvertRemovesTempFile(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a.pdf"] = []byte("x")

	var staged string
	handler := newHandler(store)
	inner := handler.Download
	handler.Download = func(bucket string, key string, fileName string) (int64, error) {
		staged = fileName
		return inner(bucket, key, fileName)
	}

	resp := handler.HandleRequest(lambdaCtx("req-8"), ConvertRequest{
		JobID:          "job8",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusCompleted, resp.Status)
	require.NotEmpty(t, staged)
	_, err := os.Stat(staged)
	assert.True(t, os.IsNotExist(err), "temp file should be removed")
}

func TestConvertRemovesTempFileOnFailure(t *testing.T) {
	store := newFakeStore()
	store.objects["in-bucket/a.pdf"] = []byte("x")
	store.uploadErr = errors.New("bucket gone")

	var staged string
	handler := newHandler(store)
	inner := handler.Download
	handler.Download = func(bucket string, key string, fileName string) (int64, error) {
		staged = fileName
		return inner(bucket, key, fileName)
	}

	resp := handler.HandleRequest(lambdaCtx("req-9"), ConvertRequest{
		JobID:          "job9",
		InputS3Bucket:  "in-bucket",
		InputS3Key:     "a.pdf",
		OutputS3Bucket: "out-bucket",
	})

	require.Equal(t, StatusFailed, resp.Status)
	require.NotEmpty(t, staged)
	_, err := os.Stat(staged)
	assert.True(t, os.IsNotExist(err), "temp file should be removed")
}
