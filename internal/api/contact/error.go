package contact

import (
	"dijital-backend/pkg/response"
	"net/http"
)

const (
	MessageMissingFields = "Lütfen tüm alanları doldurun."
	MessageInvalidEmail  = "Geçerli bir e-posta adresi girin."
	MessageSent          = "Mesajınız başarıyla gönderildi! En kısa sürede size dönüş yapacağız."
)

var (
	ErrMissingFields = response.NewError(http.StatusBadRequest, MessageMissingFields)
	ErrInvalidEmail  = response.NewError(http.StatusBadRequest, MessageInvalidEmail)
	ErrSendFailed    = response.NewError(http.StatusInternalServerError, "Mesaj gönderilirken bir hata oluştu. Lütfen daha sonra tekrar deneyin.")
)
