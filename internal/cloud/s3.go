// Package cloud wraps the handful of S3 operations the converter needs
// behind narrow interfaces so handlers and tests stay decoupled from the
// AWS SDK service clients.
package cloud

import (
	"bytes"
	"io"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Location struct {
	Bucket string
	Key    string
}

type S3GetObject interface {
	GetObject(*s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

// DownloadObjectToFile fetches an object into a local file and returns the
// number of bytes written.
func DownloadObjectToFile(svc S3GetObject, loc S3Location, fileName string) (int64, error) {
	out, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return 0, err
	}
	defer out.Body.Close()

	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return io.Copy(file, out.Body)
}

type S3PutObject interface {
	PutObject(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

// PutObject writes body to the location with the given content type and
// descriptive metadata.
func PutObject(svc S3PutObject, loc S3Location, body []byte, contentType string, metadata map[string]string) error {
	meta := make(map[string]*string, len(metadata))
	for k, v := range metadata {
		meta[k] = aws.String(v)
	}
	_, err := svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    meta,
	})
	return err
}

type S3ListObjects interface {
	ListObjectsV2Pages(*s3.ListObjectsV2Input, func(*s3.ListObjectsV2Output, bool) bool) error
}

// ListKeys returns every object key under the prefix, across pages.
func ListKeys(svc S3ListObjects, bucket string, prefix string) ([]string, error) {
	keys := []string{}
	err := svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, aws.StringValue(obj.Key))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func MakeSignedURI(svc s3iface.S3API, bucket string, key string) (string, error) {
	reqo, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	uri, err := reqo.Presign(15 * time.Minute)
	if err != nil {
		log.Println("Failed to sign request", err)
	}
	return uri, err
}

func UploadFileToS3(sess *session.Session, fileName string, loc S3Location) error {
	uploader := s3manager.NewUploader(sess)

	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
		Body:   file,
	})
	return err
}
