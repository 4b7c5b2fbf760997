package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/aeiou-exam/backend/email"
	"github.com/aeiou-exam/backend/exam"
	"github.com/aeiou-exam/backend/http"
	"github.com/aeiou-exam/backend/s3bucket"
	"github.com/aeiou-exam/backend/subm"
	"github.com/aeiou-exam/backend/task"
	"github.com/aeiou-exam/backend/upload"
	"github.com/aeiou-exam/backend/user"
	"github.com/aeiou-exam/backend/userdetail"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("no .env file found, relying on environment")
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	region := envOr("AWS_REGION", "eu-central-1")

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		slog.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	ddbClient := dynamodb.NewFromConfig(cfg)

	userSrvc := user.NewUserSrvc(
		user.NewDynamoDbUserTable(ddbClient, envOr("DDB_USERS_TABLE", "aeiou_users")),
		user.NewDynamoDbOtpTable(ddbClient, envOr("DDB_OTPS_TABLE", "aeiou_otps")),
		buildEmailSender(ctx, cfg),
	)
	detailSrvc := userdetail.NewDetailSrvc(
		userdetail.NewDynamoDbDetailTable(ddbClient, envOr("DDB_DETAILS_TABLE", "aeiou_user_details")))
	taskSrvc := task.NewTaskSrvc(
		task.NewDynamoDbTaskTable(ddbClient, envOr("DDB_TASKS_TABLE", "aeiou_tasks")))
	examSrvc := exam.NewExamSrvc(
		exam.NewDynamoDbExamTable(ddbClient, envOr("DDB_EXAMS_TABLE", "aeiou_exams")))
	submSrvc := subm.NewSubmissionSrvc(taskSrvc, examSrvc,
		subm.NewDynamoDbSubmTable(ddbClient, envOr("DDB_SUBMS_TABLE", "aeiou_submissions")))

	bucket, err := s3bucket.NewS3Bucket(ctx, region, envOr("S3_MEDIA_BUCKET", "aeiou-exam-media"))
	if err != nil {
		slog.Error("failed to init media bucket", "error", err)
		os.Exit(1)
	}
	mediaSrvc := upload.NewMediaSrvc(bucket)

	origins := strings.Split(envOr("CORS_ORIGINS", "http://localhost:3000"), ",")

	httpServer := http.NewHttpServer(http.Services{
		Users:   userSrvc,
		Details: detailSrvc,
		Tasks:   taskSrvc,
		Exams:   examSrvc,
		Subms:   submSrvc,
		Media:   mediaSrvc,
	}, []byte(jwtKey), origins)

	address := envOr("LISTEN_ADDR", ":8080")
	log.Printf("Starting server on %s", address)
	err = httpServer.Start(address)
	log.Printf("Server stopped with error: %v", err)
}

// buildEmailSender wires OTP delivery. With a queue configured, emails
// go through SQS and a background worker drains them into SendGrid.
// Without one they are sent inline, and without a SendGrid key they are
// just logged.
func buildEmailSender(ctx context.Context, cfg aws.Config) user.EmailSender {
	sendgridKey := os.Getenv("SENDGRID_API_KEY")
	appName := envOr("APP_NAME", "AEIOU Exam")
	fromEmail := envOr("EMAIL_FROM", "no-reply@aeiou.example.com")

	var sender email.Sender
	if sendgridKey != "" {
		sender = email.NewSendgridSender(sendgridKey, appName, fromEmail)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, logging OTP emails to console")
		sender = email.NewConsoleSender(slog.Default())
	}

	queueUrl := os.Getenv("EMAIL_QUEUE_URL")
	if queueUrl == "" {
		return sender
	}

	sqsClient := sqs.NewFromConfig(cfg)
	go func() {
		if err := email.StartEmailWorker(ctx, sqsClient, queueUrl, sender, slog.Default()); err != nil {
			slog.Error("email worker stopped", "error", err)
		}
	}()
	return email.NewSqsDispatcher(sqsClient, queueUrl)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
