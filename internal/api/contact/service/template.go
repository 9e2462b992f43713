package contactService

import (
	"bytes"
	htmlTemplate "html/template"
	"strings"
	textTemplate "text/template"
)

type mailData struct {
	SiteName     string
	Name         string
	Email        string
	Phone        string
	Subject      string
	Message      string
	MessageLines []string
	SentAt       string
	Year         int
}

var htmlMail = htmlTemplate.Must(htmlTemplate.New("contact_html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Arial', sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%); }
    .header { background: linear-gradient(135deg, #4158D0 0%, #C850C0 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: white; padding: 30px; border-radius: 0 0 10px 10px; box-shadow: 0 5px 15px rgba(0,0,0,0.1); }
    .info-row { margin: 15px 0; padding: 15px; background: #f8f9fa; border-left: 4px solid #4158D0; border-radius: 5px; }
    .label { font-weight: bold; color: #4158D0; display: block; margin-bottom: 5px; }
    .value { color: #555; }
    .message-box { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-top: 20px; border: 1px solid #e0e0e0; }
    .footer { text-align: center; margin-top: 20px; padding: 20px; color: #7f8c8d; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🎉 Yeni İletişim Formu Mesajı</h1>
      <p>{{.SiteName}} Web Sitesi</p>
    </div>
    <div class="content">
      <div class="info-row">
        <span class="label">👤 Ad Soyad:</span>
        <span class="value">{{.Name}}</span>
      </div>
      <div class="info-row">
        <span class="label">📧 E-posta:</span>
        <span class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></span>
      </div>
      <div class="info-row">
        <span class="label">📱 Telefon:</span>
        <span class="value"><a href="tel:{{.Phone}}">{{.Phone}}</a></span>
      </div>
      <div class="info-row">
        <span class="label">📌 Konu:</span>
        <span class="value">{{.Subject}}</span>
      </div>
      <div class="message-box">
        <span class="label">💬 Mesaj:</span>
        <p class="value">{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
      </div>
      <div class="footer">
        <p>Bu mesaj {{.SentAt}} tarihinde gönderildi.</p>
        <p>{{.SiteName}} © {{.Year}}</p>
      </div>
    </div>
  </div>
</body>
</html>
`))

var textMail = textTemplate.Must(textTemplate.New("contact_text").Parse(`Yeni İletişim Formu Mesajı

Ad Soyad: {{.Name}}
E-posta: {{.Email}}
Telefon: {{.Phone}}
Konu: {{.Subject}}

Mesaj:
{{.Message}}

Gönderim Tarihi: {{.SentAt}}
`))

func renderMail(data mailData) (string, string, error) {
	data.MessageLines = strings.Split(strings.ReplaceAll(data.Message, "\r\n", "\n"), "\n")

	var html bytes.Buffer
	if err := htmlMail.Execute(&html, data); err != nil {
		return "", "", err
	}

	var text bytes.Buffer
	if err := textMail.Execute(&text, data); err != nil {
		return "", "", err
	}

	return html.String(), text.String(), nil
}
