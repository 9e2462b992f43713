package contactService

import (
	"context"
	"dijital-backend/internal/api/contact"
	"dijital-backend/pkg/smtp"
	"time"

	"github.com/sirupsen/logrus"
)

type IContactService interface {
	SendContactMessage(ctx context.Context, req contact.ContactRequest) error
}

type Options struct {
	SiteName  string
	Sender    string
	Recipient string
	Location  *time.Location
}

type contactService struct {
	log    *logrus.Logger
	mailer smtp.ItfSmtp
	opts   Options
	now    func() time.Time
}

func NewContactService(log *logrus.Logger, mailer smtp.ItfSmtp, opts Options) IContactService {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &contactService{
		log:    log,
		mailer: mailer,
		opts:   opts,
		now:    time.Now,
	}
}
