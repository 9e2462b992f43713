package blogRepository

import (
	"database/sql"
	"dijital-backend/internal/api/blog"
	"dijital-backend/internal/entity"
	contextPkg "dijital-backend/pkg/context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const maxIDAttempts = 16

type SQLExecutor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type BlogDB struct {
	ID        int64          `db:"id"`
	Title     sql.NullString `db:"title"`
	Content   sql.NullString `db:"content"`
	Excerpt   sql.NullString `db:"excerpt"`
	Category  sql.NullString `db:"category"`
	Author    sql.NullString `db:"author"`
	Image     sql.NullString `db:"image"`
	Date      sql.NullString `db:"date"`
	CreatedAt sql.NullString `db:"created_at"`
	UpdatedAt sql.NullString `db:"updated_at"`
}

// postgresRepository stores posts as rows of blog_posts. created_at holds
// fixed-width UTC timestamps, so ordering it as text is chronological.
type postgresRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPostgres(ctx context.Context, db *sqlx.DB, log *logrus.Logger) (Repository, error) {
	if _, err := db.ExecContext(ctx, querySchema); err != nil {
		return nil, fmt.Errorf("create blog_posts table: %w", err)
	}

	return &postgresRepository{db: db, log: log}, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []BlogDB

	if err := r.db.SelectContext(ctx, &rows, queryGetAllBlogs); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllBlogs execution err")
		return nil, err
	}

	posts := make([]entity.BlogPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, makeBlog(row))
	}

	return posts, nil
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (entity.BlogPost, error) {
	return r.get(ctx, r.db, queryGetBlogByID, id)
}

func (r *postgresRepository) get(ctx context.Context, q SQLExecutor, rawQuery string, id int64) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row BlogDB

	query, args, err := sqlx.Named(rawQuery, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlogByID named query preparation err")
		return entity.BlogPost{}, err
	}
	query = q.Rebind(query)

	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.BlogPost{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("GetBlogByID execution err")
		return entity.BlogPost{}, err
	}

	return makeBlog(row), nil
}

func (r *postgresRepository) Create(ctx context.Context, post entity.BlogPost) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		query, args, err := sqlx.Named(queryCreateBlog, toArgs(post))
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to build SQL query for CreateBlog")
			return entity.BlogPost{}, err
		}
		query = r.db.Rebind(query)

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Database error when creating blog")
			return entity.BlogPost{}, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return entity.BlogPost{}, err
		}
		if affected == 1 {
			return post, nil
		}

		post.ID++
	}

	return entity.BlogPost{}, fmt.Errorf("no free id after %d attempts", maxIDAttempts)
}

func (r *postgresRepository) Update(ctx context.Context, id int64, apply func(post *entity.BlogPost)) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return entity.BlogPost{}, err
	}
	defer tx.Rollback()

	post, err := r.get(ctx, tx, queryGetBlogByIDForUpdate, id)
	if err != nil {
		return entity.BlogPost{}, err
	}

	apply(&post)
	post.ID = id

	query, args, err := sqlx.Named(queryUpdateBlog, toArgs(post))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBlog named query preparation err")
		return entity.BlogPost{}, err
	}
	query = tx.Rebind(query)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("UpdateBlog execution err")
		return entity.BlogPost{}, err
	}

	if err := tx.Commit(); err != nil {
		return entity.BlogPost{}, err
	}

	return post, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (entity.BlogPost, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row BlogDB

	query, args, err := sqlx.Named(queryDeleteBlog, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBlog named query preparation err")
		return entity.BlogPost{}, err
	}
	query = r.db.Rebind(query)

	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.BlogPost{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("DeleteBlog execution err")
		return entity.BlogPost{}, err
	}

	return makeBlog(row), nil
}

func toArgs(post entity.BlogPost) map[string]interface{} {
	return map[string]interface{}{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"excerpt":    post.Excerpt,
		"category":   post.Category,
		"author":     post.Author,
		"image":      post.Image,
		"date":       post.Date,
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}
}

func makeBlog(row BlogDB) entity.BlogPost {
	return entity.BlogPost{
		ID:        row.ID,
		Title:     row.Title.String,
		Content:   row.Content.String,
		Excerpt:   row.Excerpt.String,
		Category:  row.Category.String,
		Author:    row.Author.String,
		Image:     row.Image.String,
		Date:      row.Date.String,
		CreatedAt: row.CreatedAt.String,
		UpdatedAt: row.UpdatedAt.String,
	}
}
