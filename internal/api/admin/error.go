package admin

import (
	"dijital-backend/pkg/response"
	"net/http"
)

const (
	MessageLoginSuccess = "Giriş başarılı"
)

var (
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
	ErrIssueToken         = response.NewError(http.StatusInternalServerError, "Oturum oluşturulamadı")
)
