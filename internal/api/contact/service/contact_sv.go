package contactService

import (
	"dijital-backend/internal/api/contact"
	contextPkg "dijital-backend/pkg/context"
	"dijital-backend/pkg/smtp"
	"net/mail"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const sentAtLayout = "02.01.2006 15:04:05"

func (s *contactService) SendContactMessage(ctx context.Context, req contact.ContactRequest) error {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now().In(s.opts.Location)

	html, text, err := renderMail(mailData{
		SiteName: s.opts.SiteName,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		SentAt:   now.Format(sentAtLayout),
		Year:     now.Year(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to render contact mail")
		return contact.ErrSendFailed
	}

	msg := smtp.Message{
		From: mail.Address{
			Name:    s.opts.SiteName + " Web Sitesi",
			Address: s.opts.Sender,
		},
		To:      []string{s.opts.Recipient},
		ReplyTo: req.Email,
		Subject: "🔔 Yeni İletişim Formu: " + req.Subject,
		Text:    text,
		HTML:    html,
		Date:    now,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"reply_to":   req.Email,
			"error":      err.Error(),
		}).Error("Failed to send contact mail")
		return contact.ErrSendFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"from":       req.Email,
		"to":         s.opts.Recipient,
	}).Info("Contact mail sent")

	return nil
}
