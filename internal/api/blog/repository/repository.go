package blogRepository

import (
	"dijital-backend/internal/entity"

	"golang.org/x/net/context"
)

// Repository is the blog post collection, ordered newest first.
// Every method is safe for concurrent use; Update and Delete are atomic
// read-modify-write operations on the stored collection.
type Repository interface {
	List(ctx context.Context) ([]entity.BlogPost, error)
	Get(ctx context.Context, id int64) (entity.BlogPost, error)
	Create(ctx context.Context, post entity.BlogPost) (entity.BlogPost, error)
	Update(ctx context.Context, id int64, apply func(post *entity.BlogPost)) (entity.BlogPost, error)
	Delete(ctx context.Context, id int64) (entity.BlogPost, error)
}
