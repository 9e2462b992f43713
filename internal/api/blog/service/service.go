package blogService

import (
	"context"
	"dijital-backend/internal/api/blog"
	blogsRepository "dijital-backend/internal/api/blog/repository"
	"dijital-backend/internal/entity"
	"dijital-backend/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
)

type IBlogsService interface {
	GetAllBlogs(ctx context.Context) ([]entity.BlogPost, error)
	GetBlogByID(ctx context.Context, id string) (entity.BlogPost, error)
	CreateBlog(ctx context.Context, req blogs.CreateBlogRequest) (entity.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest) (entity.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) (entity.BlogPost, error)
}

type Defaults struct {
	Image    string
	Location *time.Location
}

type blogsService struct {
	log       *logrus.Logger
	blogsRepo blogsRepository.Repository
	utils     utils.IUtils
	defaults  Defaults
	now       func() time.Time
}

func NewBlogsService(
	log *logrus.Logger,
	blogsRepo blogsRepository.Repository,
	utils utils.IUtils,
	defaults Defaults,
) IBlogsService {
	if defaults.Location == nil {
		defaults.Location = time.Local
	}

	return &blogsService{
		log:       log,
		blogsRepo: blogsRepo,
		utils:     utils,
		defaults:  defaults,
		now:       time.Now,
	}
}
