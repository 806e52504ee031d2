package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"backend/models"

	"golang.org/x/net/html"
	"gorm.io/gorm"
)

// convertHTMLToText converts HTML template bodies to plain text for sending.
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := strings.ReplaceAll(text.String(), "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}

// EmailService sends templated notification mail. Templates live in the
// email_templates table; a built-in default backs every type so a fresh
// database can still notify.
type EmailService struct {
	db *gorm.DB
}

func NewEmailService(db *gorm.DB) *EmailService {
	return &EmailService{db: db}
}

// Template types used by the handlers.
const (
	TemplateWelcomeUser    = "welcome_user"
	TemplateWelcomeAgent   = "welcome_agent"
	TemplateOrderCancelled = "order_cancelled"
	TemplatePasswordReset  = "password_reset"
)

var builtinTemplates = map[string]models.EmailTemplate{
	TemplateWelcomeUser: {
		TemplateType: TemplateWelcomeUser,
		Subject:      "Your account is ready",
		Body: "<p>Hello {{user_name}},</p>" +
			"<p>An account has been created for you with the role {{role}}.</p>" +
			"<p>Email: {{email}}<br>Password: {{password}}</p>" +
			"<p>Log in at {{login_url}} and change your password.</p>",
	},
	TemplateWelcomeAgent: {
		TemplateType: TemplateWelcomeAgent,
		Subject:      "Freight agent account created",
		Body: "<p>Hello {{agent_name}},</p>" +
			"<p>Your freight agent account is ready. You can now submit quotes against open orders.</p>" +
			"<p>Email: {{email}}<br>Password: {{password}}</p>" +
			"<p>Log in at {{login_url}}.</p>",
	},
	TemplateOrderCancelled: {
		TemplateType: TemplateOrderCancelled,
		Subject:      "Order {{order_number}} cancelled",
		Body: "<p>Order {{order_number}} has been cancelled.</p>" +
			"<p>Reason: {{cancel_reason}}</p>" +
			"<p>No further quotes are required for this order.</p>",
	},
	TemplatePasswordReset: {
		TemplateType: TemplatePasswordReset,
		Subject:      "Reset your password",
		Body: "<p>Click the link below to reset your password:</p>" +
			"<p>{{reset_url}}</p>" +
			"<p>This link will expire in 15 minutes.</p>",
	},
}

// SendTemplatedEmail sends mail of the given type to one recipient, using
// the default DB template when present and the built-in otherwise.
func (es *EmailService) SendTemplatedEmail(templateType string, to string, data models.EmailData) error {
	tmpl := builtinTemplates[templateType]
	if es.db != nil {
		var dbTmpl models.EmailTemplate
		err := es.db.Where("template_type = ? AND is_default = ?", templateType, true).First(&dbTmpl).Error
		if err == nil {
			tmpl = dbTmpl
		}
	}
	if tmpl.Subject == "" {
		return fmt.Errorf("no template for type %q", templateType)
	}

	subject := es.processTemplate(tmpl.Subject, data)
	body := convertHTMLToText(es.processTemplate(tmpl.Body, data))

	return sendEmail(to, subject, body)
}

// processTemplate substitutes {{variable}} placeholders.
func (es *EmailService) processTemplate(templateStr string, data models.EmailData) string {
	variables := map[string]string{
		"user_name":     data.UserName,
		"agent_name":    data.AgentName,
		"email":         data.Email,
		"password":      data.Password,
		"role":          data.Role,
		"order_number":  data.OrderNumber,
		"cancel_reason": data.CancelReason,
		"login_url":     data.LoginURL,
		"reset_url":     data.ResetURL,
		"support_email": data.SupportEmail,
	}

	result := templateStr
	for key, value := range variables {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), value)
	}
	return result
}

func sendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	if host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}
	if port == "" {
		port = "587"
	}

	auth := smtp.PlainAuth("", user, pass, host)

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body + "\r\n")

	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// SendWelcomeUserEmail mails credentials to a newly created main user or
// coordinator.
func (es *EmailService) SendWelcomeUserEmail(user models.User, plainPassword string) error {
	return es.SendTemplatedEmail(TemplateWelcomeUser, user.Email, models.EmailData{
		UserName:     strings.TrimSpace(user.FirstName + " " + user.LastName),
		Email:        user.Email,
		Password:     plainPassword,
		Role:         user.RoleName,
		LoginURL:     os.Getenv("FRONTEND_BASE_URL") + "/login",
		SupportEmail: os.Getenv("SUPPORT_EMAIL"),
	})
}

// SendWelcomeAgentEmail mails credentials to a newly created freight agent.
func (es *EmailService) SendWelcomeAgentEmail(agent models.Agent, plainPassword string) error {
	return es.SendTemplatedEmail(TemplateWelcomeAgent, agent.Email, models.EmailData{
		AgentName:    agent.Name,
		Email:        agent.Email,
		Password:     plainPassword,
		LoginURL:     os.Getenv("FRONTEND_BASE_URL") + "/login",
		SupportEmail: os.Getenv("SUPPORT_EMAIL"),
	})
}

// SendCancellationNotice notifies every agent that quoted the order. A
// failure for one recipient does not stop the rest; the first error is
// returned for logging.
func (es *EmailService) SendCancellationNotice(orderNumber, reason string, agentEmails []string) error {
	var firstErr error
	for _, to := range agentEmails {
		err := es.SendTemplatedEmail(TemplateOrderCancelled, to, models.EmailData{
			OrderNumber:  orderNumber,
			CancelReason: reason,
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SendPasswordResetEmail mails the reset link.
func (es *EmailService) SendPasswordResetEmail(to, resetURL string) error {
	return es.SendTemplatedEmail(TemplatePasswordReset, to, models.EmailData{
		Email:    to,
		ResetURL: resetURL,
	})
}
