package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"example.com/docconvert/internal/cloud"
	"example.com/docconvert/internal/convert"
	"github.com/aws/aws-sdk-go/aws/session"
)

type args struct {
	fileName *string
	key      *string
	job      *string
}

func main() {
	var arg args

	uploadCommand := flag.NewFlagSet("upload", flag.ExitOnError)
	arg.fileName = uploadCommand.String("filename", "", "The file to be uploaded")

	convertCommand := flag.NewFlagSet("convert", flag.ExitOnError)
	arg.key = convertCommand.String("key", "", "The input object key")
	arg.job = convertCommand.String("job", "", "The job id (optional)")

	statusCommand := flag.NewFlagSet("status", flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Println("usage: docctl upload|convert|status")
		os.Exit(2)
	}
	switch os.Args[1] {
	case "upload":
		uploadCommand.Parse(os.Args[2:])
	case "convert":
		convertCommand.Parse(os.Args[2:])
	case "status":
		arg.job = statusCommand.String("job", "", "The job id")
		statusCommand.Parse(os.Args[2:])
	default:
		fmt.Printf("%q is not valid command.\n", os.Args[1])
		os.Exit(2)
	}

	config, err := LoadConfiguration("configuration.json")
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	if uploadCommand.Parsed() {
		DoUpload(arg, config)
	}
	if convertCommand.Parsed() {
		DoConvert(arg, config)
	}
	if statusCommand.Parsed() {
		DoStatus(arg, config)
	}
	os.Exit(0)
}

func DoUpload(arg args, config Config) error {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	key := "uploads/" + filepath.Base(*arg.fileName)
	err := cloud.UploadFileToS3(sess, *arg.fileName, cloud.S3Location{
		Bucket: config.InputBucket,
		Key:    key,
	})
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Println("Uploaded to s3://" + config.InputBucket + "/" + key)
	return nil
}

func DoConvert(arg args, config Config) error {
	req := convert.ConvertRequest{
		JobID:          *arg.job,
		InputS3Bucket:  config.InputBucket,
		InputS3Key:     *arg.key,
		OutputS3Bucket: config.OutputBucket,
	}
	data, err := cloud.PostJSON(config.Api+"/convert", req)
	fmt.Println(string(data))
	return err
}

func DoStatus(arg args, config Config) error {
	req := convert.StatusRequest{
		JobID:          *arg.job,
		OutputS3Bucket: config.OutputBucket,
	}
	data, err := cloud.PostJSON(config.Api+"/status", req)
	fmt.Println(string(data))
	return err
}

type Config struct {
	Api          string `json:"api"`
	InputBucket  string `json:"inputBucket"`
	OutputBucket string `json:"outputBucket"`
}

func LoadConfiguration(file string) (Config, error) {
	var config Config
	configFile, err := os.Open(file)
	if err != nil {
		return config, err
	}
	defer configFile.Close()
	err = json.NewDecoder(configFile).Decode(&config)
	return config, err
}
