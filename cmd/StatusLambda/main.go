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

	handler := convert.StatusHandler{
		List: func(bucket string, prefix string) ([]string, error) {
			return cloud.ListKeys(s3Service, bucket, prefix)
		},
	}

	lambda.Start(func(ctx context.Context, req convert.StatusRequest) (convert.StatusResponse, error) {
		return handler.HandleRequest(ctx, req), nil
	})
}
