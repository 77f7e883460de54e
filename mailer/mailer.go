// Package mailer delivers generated reports over SMTP.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/model"
)

// Mailer sends report emails with the PDF attached. A Mailer with no SMTP
// credentials is "unconfigured": sending is skipped and reported as such, it
// is not an error.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// New builds a Mailer from the app configuration.
func New(cfg config.AppConfig) *Mailer {
	return &Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.FromEmail,
		FromName: cfg.FromName,
	}
}

// Configured reports whether SMTP credentials are present.
func (m *Mailer) Configured() bool {
	return m.Username != "" && m.Password != ""
}

// TestConnection dials the SMTP server and quits, without sending anything.
func (m *Mailer) TestConnection() error {
	if !m.Configured() {
		return fmt.Errorf("smtp credentials not configured")
	}
	c, err := smtp.Dial(fmt.Sprintf("%s:%s", m.Host, m.Port))
	if err != nil {
		return err
	}
	return c.Quit()
}

type bodyData struct {
	CompanyName string
	ReportTitle string
	Period      string
	Date        string
}

var bodyTemplate = template.Must(template.New("report-email").Parse(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #1e3a8a; color: white; padding: 20px; text-align: center; }
		.content { padding: 30px; background-color: #f9f9f9; }
		.info-box {
			background-color: #e0e7ff;
			border-left: 4px solid #1e3a8a;
			padding: 15px;
			margin: 20px 0;
		}
		.footer {
			padding: 20px;
			text-align: center;
			color: #666;
			font-size: 12px;
		}
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>{{.ReportTitle}}</h1>
		</div>

		<div class="content">
			<p>Hello,</p>

			<p>Your requested security report is attached to this email as a PDF.</p>

			<div class="info-box">
				<strong>Report:</strong> {{.ReportTitle}}<br>
				<strong>Period:</strong> {{.Period}}<br>
				<strong>Generated:</strong> {{.Date}}
			</div>

			<p>This report contains confidential security information. Please handle it accordingly.</p>
		</div>

		<div class="footer">
			<p>{{.CompanyName}} Security Team<br>
			This is an automated message, please do not reply.</p>
		</div>
	</div>
</body>
</html>
`))

// SendReport emails the generated PDF to the recipient. Delivery failures
// come back as DeliveryError; the PDF on disk is untouched either way.
func (m *Mailer) SendReport(recipient string, payload model.ReportPayload, pdfPath string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp credentials not configured")
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return &model.DeliveryError{Recipient: recipient, Err: err}
	}

	data := bodyData{
		CompanyName: payload.CompanyName,
		ReportTitle: payload.ReportTitle,
		Period:      payload.PeriodDescription,
		Date:        payload.GeneratedAt.Format("January 2, 2006"),
	}
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return &model.DeliveryError{Recipient: recipient, Err: err}
	}

	subject := fmt.Sprintf("%s - %s (%s)", payload.CompanyName, payload.ReportTitle, payload.PeriodDescription)
	msg, err := buildMessage(m.FromName, m.From, recipient, subject, body.String(), filepath.Base(pdfPath), pdf)
	if err != nil {
		return &model.DeliveryError{Recipient: recipient, Err: err}
	}

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	if err := smtp.SendMail(addr, auth, m.From, []string{recipient}, msg); err != nil {
		return &model.DeliveryError{Recipient: recipient, Err: err}
	}
	return nil
}

// buildMessage assembles a multipart MIME message with an HTML body and one
// base64-encoded PDF attachment.
func buildMessage(fromName, from, to, subject, htmlBody, filename string, pdf []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", fromName, from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", w.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	bodyPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	attachment, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(pdf)
	// RFC 2045 line length limit for base64 bodies.
	for len(encoded) > 76 {
		if _, err := fmt.Fprintf(attachment, "%s\r\n", encoded[:76]); err != nil {
			return nil, err
		}
		encoded = encoded[76:]
	}
	if _, err := fmt.Fprintf(attachment, "%s\r\n", encoded); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
