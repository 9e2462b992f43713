package blogs

import (
	"dijital-backend/pkg/response"
	"net/http"
)

const (
	DefaultCategory = "Genel"
	DefaultAuthor   = "Admin"

	MessageTitleContentRequired = "Başlık ve içerik alanları zorunludur."
)

var (
	ErrBlogNotFound    = response.NewError(http.StatusNotFound, "Blog yazısı bulunamadı")
	ErrReadBlogs       = response.NewError(http.StatusInternalServerError, "Blog yazıları okunamadı")
	ErrCreateBlog      = response.NewError(http.StatusInternalServerError, "Blog yazısı oluşturulamadı")
	ErrUpdateBlog      = response.NewError(http.StatusInternalServerError, "Blog yazısı güncellenemedi")
	ErrDeleteBlog      = response.NewError(http.StatusInternalServerError, "Blog yazısı silinemedi")
	ErrInvalidBlogData = response.NewError(http.StatusBadRequest, MessageTitleContentRequired)
)
