package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// otpEmailJob is the queue message exchanged between the API process
// and the email worker.
type otpEmailJob struct {
	ToEmail string `json:"to_email"`
	ToName  string `json:"to_name"`
	Code    string `json:"code"`
}

// SqsDispatcher enqueues OTP emails instead of sending them inline, so
// a slow mail provider never blocks a registration request.
type SqsDispatcher struct {
	client   *sqs.Client
	queueUrl string
}

func NewSqsDispatcher(client *sqs.Client, queueUrl string) *SqsDispatcher {
	return &SqsDispatcher{client: client, queueUrl: queueUrl}
}

func (d *SqsDispatcher) SendOtpEmail(ctx context.Context, toEmail string, toName string, code string) error {
	body, err := json.Marshal(otpEmailJob{
		ToEmail: toEmail,
		ToName:  toName,
		Code:    code,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email job: %w", err)
	}

	_, err = d.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(d.queueUrl),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue email job: %w", err)
	}
	return nil
}

// Sender is what the worker hands jobs to, typically SendgridSender.
type Sender interface {
	SendOtpEmail(ctx context.Context, toEmail string, toName string, code string) error
}

// StartEmailWorker receives queued email jobs until ctx is cancelled.
// Failed sends are not deleted so the queue redelivers them.
func StartEmailWorker(ctx context.Context, client *sqs.Client, queueUrl string, sender Sender, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			output, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
				QueueUrl:            aws.String(queueUrl),
				MaxNumberOfMessages: 10,
				WaitTimeSeconds:     1,
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("failed to receive email jobs", "error", err)
				continue
			}

			for _, msg := range output.Messages {
				if msg.Body == nil || msg.ReceiptHandle == nil {
					continue
				}

				var job otpEmailJob
				if err := json.Unmarshal([]byte(*msg.Body), &job); err != nil {
					logger.Error("failed to unmarshal email job", "error", err)
					continue
				}

				handle := *msg.ReceiptHandle
				go func(job otpEmailJob, handle string) {
					if err := sender.SendOtpEmail(ctx, job.ToEmail, job.ToName, job.Code); err != nil {
						logger.Error("failed to send email", "to", job.ToEmail, "error", err)
						return
					}
					_, err := client.DeleteMessage(context.TODO(), &sqs.DeleteMessageInput{
						QueueUrl:      aws.String(queueUrl),
						ReceiptHandle: aws.String(handle),
					})
					if err != nil {
						logger.Error("failed to ack email job", "error", err)
					}
				}(job, handle)
			}
		}
	}
}
