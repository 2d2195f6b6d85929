package main

import (
	"context"

	"example.com/docconvert/internal/cloud"
	"example.com/docconvert/internal/convert"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

func main() {

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	s3Service := s3.New(sess)

	handler := convert.ConvertHandler{
		Download: func(bucket string, key string, fileName string) (int64, error) {
			return cloud.DownloadObjectToFile(s3Service, cloud.S3Location{Bucket: bucket, Key: key}, fileName)
		},
		Upload: func(bucket string, key string, body []byte, contentType string, metadata map[string]string) error {
			return cloud.PutObject(s3Service, cloud.S3Location{Bucket: bucket, Key: key}, body, contentType, metadata)
		},
		Converter: convert.PlaceholderConverter{},
	}

	lambda.Start(func(ctx context.Context, req convert.ConvertRequest) (convert.ConvertResponse, error) {
		return handler.HandleRequest(ctx, req), nil
	})
}
