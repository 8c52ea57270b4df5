package service

import (
	"context"
	"fmt"
	"log/slog"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI は SESMailer が使う sesv2.Client のメソッド
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer は AWS SES v2 でリマインダーを送信します
type SESMailer struct {
	client sesAPI
	from   string
}

// NewSESMailer は ses.auth_type に応じて認証方法を切り替えてクライアントを生成します
func NewSESMailer(ctx context.Context, cfg *config.Config) (Mailer, error) {
	if cfg.SES.From == "" {
		return nil, fmt.Errorf("mailer: ses.from is required")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.SES.Region)}

	switch cfg.SES.AuthType {
	case "static_credentials":
		slog.Info("Configuring SES with static credentials.")
		if cfg.SES.AccessKeyID == "" || cfg.SES.SecretAccessKey == "" {
			return nil, fmt.Errorf("mailer: ses.access_key_id and ses.secret_access_key are required for static_credentials")
		}
		creds := credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	case "iam_role":
		// SDK のデフォルトの認証情報チェーンに任せる
		slog.Info("Configuring SES with IAM Role credentials.")
	default:
		slog.Warn("Unknown SES auth_type specified, defaulting to IAM Role.", "type", cfg.SES.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: load AWS config: %w", err)
	}
	return &SESMailer{client: sesv2.NewFromConfig(awsCfg), from: cfg.SES.From}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		logger.Error("Failed to send email via SES", "error", err, "to", to)
		return fmt.Errorf("ses send: %w", err)
	}

	logger.Info("Email sent successfully via SES", "to", to, "subject", subject, "message_id", aws.ToString(out.MessageId))
	return nil
}
