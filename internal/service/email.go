package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"equishare-storefront/internal/config"
	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
)

// NewEmailService picks the provider named in cfg. It returns nil when email is
// disabled.
func NewEmailService(cfg config.EmailConfig) EmailService {
	switch cfg.Provider {
	case "smtp":
		return &smtpEmailService{
			dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
			from:     cfg.From,
			fromName: cfg.FromName,
		}
	case "sendgrid":
		return &sendGridEmailService{
			client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
			from:     cfg.From,
			fromName: cfg.FromName,
		}
	}
	return nil
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpEmailService struct {
	dialer   mailDialer
	from     string
	fromName string
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, to, name string, order domain.OrderRecord) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", confirmationSubject(order))
	m.SetBody("text/plain", confirmationBody(name, order))

	logger.ExternalServiceCall("smtp", "SendOrderConfirmation", "orderID", order.ID)
	err := s.dialer.DialAndSend(m)
	logger.ExternalServiceResult("smtp", "SendOrderConfirmation", err, "orderID", order.ID)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client   sendGridClient
	from     string
	fromName string
}

func (s *sendGridEmailService) SendOrderConfirmation(ctx context.Context, to, name string, order domain.OrderRecord) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		confirmationSubject(order),
		mail.NewEmail(name, to),
		confirmationBody(name, order),
		"",
	)

	logger.ExternalServiceCall("sendgrid", "SendOrderConfirmation", "orderID", order.ID)
	resp, err := s.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "SendOrderConfirmation", err, "orderID", order.ID)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}

func confirmationSubject(order domain.OrderRecord) string {
	return fmt.Sprintf("Your EquiShare order #%d", order.ID)
}

func confirmationBody(name string, order domain.OrderRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThank you for your order. We will deliver to:\n%s\n\n", name, order.DeliveryAddress)
	for _, l := range order.Lines {
		fmt.Fprintf(&b, "  %d x %s @ %s per day\n", l.Quantity, l.Name, formatRupees(l.PricePerDayCents))
	}
	fmt.Fprintf(&b, "\nRental period: %d day(s)\nTotal: %s\n", order.DurationDays, formatRupees(order.TotalCents))
	b.WriteString("\nBest regards,\nThe EquiShare Team")
	return b.String()
}

func formatRupees(cents int64) string {
	return fmt.Sprintf("₹%d.%02d", cents/100, cents%100)
}
