package contact

import "strings"

type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,contactemail"`
	Phone   string `json:"phone" form:"phone" validate:"required"`
	Subject string `json:"subject" form:"subject" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
}

// Normalize trims every field so whitespace-only input counts as missing.
func (r ContactRequest) Normalize() ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}
