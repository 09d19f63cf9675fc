package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// CertificateEmail - данные письма о выданном сертификате
type CertificateEmail struct {
	ToEmail     string
	StudentName string
	CourseTitle string
	Code        string
	IssuedAt    time.Time
}

// EmailService sends transactional emails.
type EmailService interface {
	SendCertificateIssued(ctx context.Context, msg CertificateEmail) error
}

// NoopEmailService is used when email delivery is not configured.
type NoopEmailService struct{}

func (s *NoopEmailService) SendCertificateIssued(ctx context.Context, msg CertificateEmail) error {
	log.Printf("[EmailService] noop send certificate %s to=%s", msg.Code, msg.ToEmail)
	return nil
}

// ResendEmailService sends emails via Resend REST API.
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendCertificateIssued уведомляет студента о выдаче сертификата.
// Код сертификата используется как ключ идемпотентности.
func (s *ResendEmailService) SendCertificateIssued(ctx context.Context, msg CertificateEmail) error {
	if msg.ToEmail == "" || msg.Code == "" {
		return fmt.Errorf("toEmail and code are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.ToEmail},
		Subject: fmt.Sprintf("Your certificate for %s", msg.CourseTitle),
		Text:    certificateText(msg),
		Html:    certificateHTML(msg),
	}
	options := &resend.SendEmailOptions{IdempotencyKey: "certificate-" + msg.Code}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func certificateText(msg CertificateEmail) string {
	return fmt.Sprintf("Congratulations, %s! You have completed %s.\nCertificate code: %s\nIssued: %s",
		msg.StudentName, msg.CourseTitle, msg.Code, msg.IssuedAt.Format(CertificateDateLayout))
}

func certificateHTML(msg CertificateEmail) string {
	return fmt.Sprintf("<p>Congratulations, %s!</p><p>You have completed <strong>%s</strong>.</p><p>Certificate code: <strong>%s</strong><br>Issued: %s</p>",
		msg.StudentName, msg.CourseTitle, msg.Code, msg.IssuedAt.Format(CertificateDateLayout))
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
