package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// ContactEmailData holds the data for contact form notification emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
	SiteOwner   string
	Year        int
}

const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Contact Form Submission</title>
</head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 0;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 20px; text-align: center;">
        <h1 style="color: white; margin: 0; font-size: 28px;">New Contact Message</h1>
        <p style="color: rgba(255,255,255,0.9); margin: 10px 0 0 0; font-size: 14px;">From your portfolio website</p>
    </div>
    <div style="background: #f9fafb; padding: 40px 20px;">
        <div style="background: white; padding: 30px; border-radius: 12px; margin-bottom: 20px;">
            <h2 style="color: #667eea; margin: 0 0 20px 0; font-size: 20px;">Contact Information</h2>
            <table style="width: 100%; border-collapse: collapse;">
                <tr>
                    <td style="padding: 15px 0; border-bottom: 1px solid #e5e7eb;"><strong>Name</strong></td>
                    <td style="padding: 15px 0; border-bottom: 1px solid #e5e7eb; text-align: right;">{{.SenderName}}</td>
                </tr>
                <tr>
                    <td style="padding: 15px 0; border-bottom: 1px solid #e5e7eb;"><strong>Email</strong></td>
                    <td style="padding: 15px 0; border-bottom: 1px solid #e5e7eb; text-align: right;">
                        <a href="mailto:{{.SenderEmail}}" style="color: #667eea;">{{.SenderEmail}}</a>
                    </td>
                </tr>
                <tr>
                    <td style="padding: 15px 0;"><strong>Subject</strong></td>
                    <td style="padding: 15px 0; text-align: right;">{{.Subject}}</td>
                </tr>
            </table>
        </div>
        <div style="background: white; padding: 30px; border-radius: 12px;">
            <h2 style="color: #667eea; margin: 0 0 20px 0; font-size: 20px;">Message</h2>
            <div style="color: #374151; font-size: 15px; white-space: pre-wrap; word-wrap: break-word;">{{.Message}}</div>
        </div>
        <div style="text-align: center; margin-top: 30px;">
            <a href="mailto:{{.SenderEmail}}?subject=Re: {{.Subject}}"
               style="display: inline-block; background: #667eea; color: white; padding: 14px 32px; text-decoration: none; border-radius: 8px;">
                Reply to {{.SenderName}}
            </a>
        </div>
    </div>
    <div style="background: #111827; padding: 30px 20px; text-align: center;">
        <p style="color: #9ca3af; margin: 0; font-size: 13px;">This email was sent from your portfolio contact form</p>
        <p style="color: #6b7280; margin: 10px 0 0 0; font-size: 12px;">&copy; {{.Year}} {{.SiteOwner}}</p>
    </div>
</body>
</html>`

const contactTextTemplate = `New contact message from your portfolio website

Name:    {{.SenderName}}
Email:   {{.SenderEmail}}
Subject: {{.Subject}}

{{.Message}}
`

var (
	contactHTML = htmltemplate.Must(htmltemplate.New("contact_html").Parse(contactHTMLTemplate))
	contactText = texttemplate.Must(texttemplate.New("contact_text").Parse(contactTextTemplate))
)

// RenderContactEmail renders the HTML and plain-text bodies of a contact notification.
// All values are escaped in the HTML body.
func RenderContactEmail(data ContactEmailData) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := contactHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute html email template: %w", err)
	}

	var textBuf bytes.Buffer
	if err := contactText.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text email template: %w", err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}
