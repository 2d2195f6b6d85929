package main

import (
	"encoding/json"
	"net/http"
	"os"

	"example.com/docconvert/internal/cloud"
	"example.com/docconvert/internal/convert"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

var (
	g_session        *session.Session
	g_s3             s3iface.S3API
	g_outputBucket   string
	g_outputPrefix   string
	g_convertHandler convert.ConvertHandler
	g_statusHandler  convert.StatusHandler
)

func main() {

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	g_session, _ = session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)
	g_s3 = s3.New(g_session)
	g_outputBucket = os.Getenv("OUTPUT_BUCKET")
	g_outputPrefix = os.Getenv("OUTPUT_PREFIX")
	if g_outputPrefix == "" {
		g_outputPrefix = convert.DefaultOutputPrefix
	}
	logrus.Info("Output bucket: ", g_outputBucket)

	g_convertHandler = convert.ConvertHandler{
		Download: func(bucket string, key string, fileName string) (int64, error) {
			return cloud.DownloadObjectToFile(g_s3, cloud.S3Location{Bucket: bucket, Key: key}, fileName)
		},
		Upload: func(bucket string, key string, body []byte, contentType string, metadata map[string]string) error {
			return cloud.PutObject(g_s3, cloud.S3Location{Bucket: bucket, Key: key}, body, contentType, metadata)
		},
		Converter: convert.PlaceholderConverter{},
	}
	g_statusHandler = convert.StatusHandler{
		List: func(bucket string, prefix string) ([]string, error) {
			return cloud.ListKeys(g_s3, bucket, prefix)
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/ping", PingHandler)
	r.HandleFunc("/convert", ConvertHandler).Methods("POST")
	r.HandleFunc("/status", StatusHandler).Methods("POST")
	r.HandleFunc("/jobs/{id}/download", DownloadHandler).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	n := negroni.Classic()
	n.UseHandler(r)
	n.Run(":" + port)
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, "pong", nil)
}

func ConvertHandler(w http.ResponseWriter, r *http.Request) {
	var req convert.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, nil, err)
		return
	}
	// Stand in for the Lambda runtime's per-invocation request id.
	ctx := lambdacontext.NewContext(r.Context(), &lambdacontext.LambdaContext{
		AwsRequestID: uuid.New().String(),
	})
	WriteResponse(w, g_convertHandler.HandleRequest(ctx, req), nil)
}

func StatusHandler(w http.ResponseWriter, r *http.Request) {
	var req convert.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, nil, err)
		return
	}
	WriteResponse(w, g_statusHandler.HandleRequest(r.Context(), req), nil)
}

// DownloadHandler returns a presigned URL for a completed job's HTML result.
func DownloadHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["id"]
	key := g_outputPrefix + jobID + "/" + convert.ResultFileName
	uri, err := cloud.MakeSignedURI(g_s3, g_outputBucket, key)
	WriteResponse(w, uri, err)
}

func WriteResponse(w http.ResponseWriter, body interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(body)
}
