package blogService

import (
	"dijital-backend/internal/api/blog"
	"dijital-backend/internal/entity"
	contextPkg "dijital-backend/pkg/context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	excerptLength = 150
	dateLayout    = "02.01.2006"
)

func (s *blogsService) GetAllBlogs(ctx context.Context) ([]entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	posts, err := s.blogsRepo.List(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get blogs")
		return nil, blogs.ErrReadBlogs
	}

	return posts, nil
}

func (s *blogsService) GetBlogByID(ctx context.Context, id string) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	blogID, ok := parseID(id)
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("Blog id is not numeric")
		return entity.BlogPost{}, blogs.ErrBlogNotFound
	}

	post, err := s.blogsRepo.Get(ctx, blogID)
	if err != nil {
		return entity.BlogPost{}, s.repoError(requestID, id, err, blogs.ErrReadBlogs, "Failed to get blog")
	}

	return post, nil
}

func (s *blogsService) CreateBlog(ctx context.Context, req blogs.CreateBlogRequest) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return entity.BlogPost{}, blogs.ErrInvalidBlogData
	}

	now := s.now()
	timestamp := entity.FormatTimestamp(now)

	post := entity.BlogPost{
		ID:        s.utils.NewTimestampID(now),
		Title:     title,
		Content:   content,
		Excerpt:   orDefault(req.Excerpt, makeExcerpt(content)),
		Category:  orDefault(req.Category, blogs.DefaultCategory),
		Author:    orDefault(req.Author, blogs.DefaultAuthor),
		Image:     orDefault(req.Image, s.defaults.Image),
		Date:      now.In(s.defaults.Location).Format(dateLayout),
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}

	created, err := s.blogsRepo.Create(ctx, post)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create blog")
		return entity.BlogPost{}, blogs.ErrCreateBlog
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         created.ID,
	}).Info("Blog created")

	return created, nil
}

func (s *blogsService) UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	blogID, ok := parseID(id)
	if !ok {
		return entity.BlogPost{}, blogs.ErrBlogNotFound
	}

	updatedAt := entity.FormatTimestamp(s.now())

	post, err := s.blogsRepo.Update(ctx, blogID, func(post *entity.BlogPost) {
		post.Title = orDefault(req.Title, post.Title)
		post.Content = orDefault(req.Content, post.Content)
		post.Excerpt = orDefault(req.Excerpt, post.Excerpt)
		post.Category = orDefault(req.Category, post.Category)
		post.Author = orDefault(req.Author, post.Author)
		post.Image = orDefault(req.Image, post.Image)
		post.UpdatedAt = updatedAt
	})
	if err != nil {
		return entity.BlogPost{}, s.repoError(requestID, id, err, blogs.ErrUpdateBlog, "Failed to update blog")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         post.ID,
	}).Info("Blog updated")

	return post, nil
}

func (s *blogsService) DeleteBlog(ctx context.Context, id string) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	blogID, ok := parseID(id)
	if !ok {
		return entity.BlogPost{}, blogs.ErrBlogNotFound
	}

	post, err := s.blogsRepo.Delete(ctx, blogID)
	if err != nil {
		return entity.BlogPost{}, s.repoError(requestID, id, err, blogs.ErrDeleteBlog, "Failed to delete blog")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         post.ID,
	}).Info("Blog deleted")

	return post, nil
}

// repoError passes not-found through and collapses every other repository
// failure into the operation's 500 error.
func (s *blogsService) repoError(requestID, id string, err error, fallback error, msg string) error {
	if errors.Is(err, blogs.ErrBlogNotFound) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("Blog not found")
		return blogs.ErrBlogNotFound
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         id,
		"error":      err.Error(),
	}).Error(msg)
	return fallback
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func makeExcerpt(content string) string {
	if utf8.RuneCountInString(content) <= excerptLength {
		return content
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}
