// Package mail delivers pickup-code emails. The service does not speak SMTP
// itself: SQSMailer hands each mail to a queue consumed by the email worker,
// LogMailer only logs it and is meant for local runs.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hubflow/internal/core/ports"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the part of the SQS client the mailer uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Template names the email the worker renders.
const Template = "pickup_code"

// SQSMailer publishes pickup-code mails to an SQS queue.
type SQSMailer struct {
	sqs      SQSAPI
	queueURL string
}

var _ ports.Mailer = (*SQSMailer)(nil)

func NewSQSMailer(client SQSAPI, queueURL string) (*SQSMailer, error) {
	if client == nil {
		return nil, fmt.Errorf("sqs client is required")
	}
	if queueURL == "" {
		return nil, fmt.Errorf("queue url is required")
	}
	return &SQSMailer{sqs: client, queueURL: queueURL}, nil
}

// NewSQSClient loads the default AWS configuration for region.
func NewSQSClient(ctx context.Context, region string) (*sqs.Client, error) {
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return sqs.NewFromConfig(cfg), nil
}

type pickupCodeMessage struct {
	Template    string    `json:"template"`
	To          string    `json:"to"`
	BuyerName   string    `json:"buyerName"`
	OrderNumber string    `json:"orderNumber"`
	HubName     string    `json:"hubName"`
	Code        string    `json:"code"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// SendPickupCode enqueues the mail. The order number is sent as an attribute
// so the worker can deduplicate redeliveries without parsing the body.
func (m *SQSMailer) SendPickupCode(ctx context.Context, mail ports.PickupCodeMail) error {
	body, err := json.Marshal(pickupCodeMessage{
		Template:    Template,
		To:          mail.To,
		BuyerName:   mail.BuyerName,
		OrderNumber: mail.OrderNumber,
		HubName:     mail.HubName,
		Code:        mail.Code,
		ExpiresAt:   mail.ExpiresAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode pickup mail: %w", err)
	}

	_, err = m.sqs.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    sdkaws.String(m.queueURL),
		MessageBody: sdkaws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"template": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(Template)},
			"orderNumber": {
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(mail.OrderNumber),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send pickup mail for %s: %w", mail.OrderNumber, err)
	}
	return nil
}
