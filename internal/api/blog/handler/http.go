package blogHandler

import (
	blogsService "dijital-backend/internal/api/blog/service"
	"dijital-backend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BlogsHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	blogsService blogsService.IBlogsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	bs blogsService.IBlogsService,
) *BlogsHandler {
	return &BlogsHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		blogsService: bs,
	}
}

func (h *BlogsHandler) Start(srv fiber.Router) {
	blogs := srv.Group("/blogs")

	// Public endpoints
	blogs.Get("", h.GetAllBlogs)
	blogs.Get("/:id", h.GetBlogByID)

	// Admin endpoints
	blogs.Post("", h.middleware.NewAdminMiddleware, h.CreateBlog)
	blogs.Put("/:id", h.middleware.NewAdminMiddleware, h.UpdateBlog)
	blogs.Delete("/:id", h.middleware.NewAdminMiddleware, h.DeleteBlog)
}
