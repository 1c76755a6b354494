package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tech-hub-api/internal/models"
)

const layout = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #1f2937; }
        .container { max-width: 600px; margin: 0 auto; padding: 24px; }
        .footer { margin-top: 32px; font-size: 12px; color: #6b7280; }
    </style>
</head>
<body>
<div class="container">
{{template "body" .}}
<div class="footer">Amass Tech Hub</div>
</div>
</body>
</html>`

const welcomeBody = `{{define "body"}}
<h2>Welcome to the Amass Tech Hub newsletter{{if .Name}}, {{.Name}}{{end}}!</h2>
<p>You are now subscribed with <strong>{{.Email}}</strong>. Expect the latest news, tutorials and tools in your inbox.</p>
<p>If this wasn't you, you can unsubscribe at any time.</p>
{{end}}`

const contactBody = `{{define "body"}}
<h2>New contact message</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
{{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
<p style="white-space: pre-wrap">{{.Message}}</p>
{{end}}`

var (
	welcomeTemplate = template.Must(template.Must(template.New("welcome").Parse(layout)).Parse(welcomeBody))
	contactTemplate = template.Must(template.Must(template.New("contact").Parse(layout)).Parse(contactBody))
)

// WelcomeEmail builds the newsletter welcome message for a new or returning subscriber
func WelcomeEmail(s *models.Subscriber) (*Message, error) {
	html, err := render(welcomeTemplate, s)
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      []string{s.Email},
		Subject: "Welcome to the Amass Tech Hub newsletter",
		HTML:    html,
	}, nil
}

// ContactNotification builds the admin notification for a contact form submission
func ContactNotification(to string, msg *models.ContactMessage) (*Message, error) {
	html, err := render(contactTemplate, msg)
	if err != nil {
		return nil, err
	}
	subject := "New contact message from " + msg.Name
	if msg.Subject != "" {
		subject = "Contact: " + msg.Subject
	}
	return &Message{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}, nil
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
