// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/bazaarline/storefront-backend/internal/config"
	"github.com/bazaarline/storefront-backend/internal/models"
)

// NotificationService sends transactional order emails. Callers fire these
// from goroutines after the order write commits; a delivery failure is logged
// and never fails the order.
type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

func (s *NotificationService) SendOrderConfirmation(order *models.Order) {
	tmpl := s.getEmailTemplate("order_confirmation")

	data := map[string]interface{}{
		"Name":          order.ShippingDetails.Name,
		"OrderID":       order.ID.String(),
		"TotalAmount":   fmt.Sprintf("%.2f", order.TotalAmount),
		"Currency":      s.config.Shop.Currency,
		"PaymentMethod": string(order.PaymentMethod),
		"Items":         order.Items,
		"OrderURL":      fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Order confirmed - %s", shortOrderID(order.ID.String()))
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		logrus.WithError(err).Error("Failed to render order confirmation email")
		return
	}

	if err := s.sendEmail(order.CustomerEmail, subject, body); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send order confirmation email")
	}
}

func (s *NotificationService) SendStatusUpdate(order *models.Order) {
	tmpl := s.getEmailTemplate("order_status")

	data := map[string]interface{}{
		"Name":     order.ShippingDetails.Name,
		"OrderID":  order.ID.String(),
		"Status":   string(order.CurrentStatus()),
		"OrderURL": fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Order %s - %s", shortOrderID(order.ID.String()), order.CurrentStatus())
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		logrus.WithError(err).Error("Failed to render order status email")
		return
	}

	if err := s.sendEmail(order.CustomerEmail, subject, body); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send order status email")
	}
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s <%s>\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.config.Email.FromName, s.config.Email.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_confirmation": {
			Subject: "Order Confirmed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.Name}}!</h2>
	<p>Your order <strong>{{.OrderID}}</strong> has been placed.</p>
	<table>
	{{range .Items}}
		<tr><td>{{.Name}}</td><td>x{{.Quantity}}</td></tr>
	{{end}}
	</table>
	<p>Total: {{.Currency}} {{.TotalAmount}} ({{.PaymentMethod}})</p>
	<a href="{{.OrderURL}}">View your order</a>
</body>
</html>`,
		},
		"order_status": {
			Subject: "Order Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your order <strong>{{.OrderID}}</strong> is now <strong>{{.Status}}</strong>.</p>
	<a href="{{.OrderURL}}">View your order</a>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    `<html><body><p>{{.Message}}</p></body></html>`,
	}
}

// shortOrderID is the first id segment, enough for a subject line.
func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
