package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type sqsAPI interface {
	SendMessage(context.Context, *sqs.SendMessageInput, ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher delivers booking events to an SQS queue.
type SQSPublisher struct {
	client   sqsAPI
	queueURL string
}

var _ Publisher = (*SQSPublisher)(nil)

// NewSQSPublisher creates a publisher around the provided SQS client.
func NewSQSPublisher(client sqsAPI, queueURL string) *SQSPublisher {
	if client == nil {
		panic("events: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("events: SQS queueURL cannot be empty")
	}
	return &SQSPublisher{client: client, queueURL: queueURL}
}

func (p *SQSPublisher) Publish(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("events: failed to marshal envelope: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("events: failed to send SQS message: %w", err)
	}
	return nil
}

// MemoryPublisher collects envelopes in memory. Used in tests and when no
// queue is configured.
type MemoryPublisher struct {
	Published []Envelope
}

var _ Publisher = (*MemoryPublisher)(nil)

func (p *MemoryPublisher) Publish(_ context.Context, env Envelope) error {
	p.Published = append(p.Published, env)
	return nil
}
