package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends operational email via Amazon SES. With no from
// address configured it runs disabled and skips every send.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendBackupReport mails a summary of a completed game-state export
func (s *EmailService) SendBackupReport(ctx context.Context, toEmail, outputPath string, backup *BackupData) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): backup report to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("CardQuest backup completed: %s", backup.ExportedAt.Format("2006-01-02 15:04"))
	textBody := fmt.Sprintf(`Game-state backup completed.

File: %s
Exported at: %s

Questions:   %d
Answers:     %d
Players:     %d
Cards:       %d
Owned cards: %d
Rewards:     %d
Redemptions: %d
`, outputPath, backup.ExportedAt.Format("2006-01-02 15:04:05"),
		len(backup.Questions), len(backup.Answers), len(backup.Players),
		len(backup.Cards), len(backup.PlayerCards), len(backup.Rewards), len(backup.Redemptions))

	return s.sendEmail(ctx, toEmail, subject, textBody)
}

// sendEmail sends a plain-text email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
