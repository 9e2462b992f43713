package smtp

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"
)

// Message is a multipart/alternative email with a text and an HTML part.
type Message struct {
	From    mail.Address
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
	Date    time.Time
}

func (m Message) Bytes() ([]byte, error) {
	if len(m.To) == 0 {
		return nil, fmt.Errorf("message has no recipients")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	header := []string{
		"From: " + m.From.String(),
		"To: " + strings.Join(m.To, ", "),
		"Subject: " + mime.QEncoding.Encode("utf-8", m.Subject),
		"Date: " + date.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", mw.Boundary()),
	}
	if m.ReplyTo != "" {
		header = append(header, "Reply-To: "+m.ReplyTo)
	}
	buf.WriteString(strings.Join(header, "\r\n") + "\r\n\r\n")

	if err := writePart(mw, "text/plain; charset=utf-8", m.Text); err != nil {
		return nil, err
	}
	if err := writePart(mw, "text/html; charset=utf-8", m.HTML); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writePart(mw *multipart.Writer, contentType, body string) error {
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}

	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}
