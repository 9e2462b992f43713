package blogRepository

import (
	"bytes"
	"dijital-backend/internal/api/blog"
	"dijital-backend/internal/entity"
	contextPkg "dijital-backend/pkg/context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// fileRepository keeps the whole collection as one JSON array in a single
// file. Every mutation rewrites the file through a temp file and a rename,
// and mutations are serialized so concurrent writers cannot lose updates.
type fileRepository struct {
	path string
	mu   sync.RWMutex
	log  *logrus.Logger
}

func NewFile(path string, log *logrus.Logger) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create blog data dir: %w", err)
	}

	r := &fileRepository{path: path, log: log}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := r.save([]entity.BlogPost{}); err != nil {
			return nil, fmt.Errorf("initialize blog data file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat blog data file: %w", err)
	}

	return r, nil
}

func (r *fileRepository) List(ctx context.Context) ([]entity.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts, err := r.load()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"path":       r.path,
			"error":      err.Error(),
		}).Error("Failed to read blog data file")
		return nil, err
	}

	return posts, nil
}

func (r *fileRepository) Get(ctx context.Context, id int64) (entity.BlogPost, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return entity.BlogPost{}, err
	}

	if i := indexOf(posts, id); i >= 0 {
		return posts[i], nil
	}

	return entity.BlogPost{}, blogs.ErrBlogNotFound
}

func (r *fileRepository) Create(ctx context.Context, post entity.BlogPost) (entity.BlogPost, error) {
	err := r.mutate(ctx, "create", func(posts []entity.BlogPost) ([]entity.BlogPost, error) {
		for indexOf(posts, post.ID) >= 0 {
			post.ID++
		}
		return append([]entity.BlogPost{post}, posts...), nil
	})
	if err != nil {
		return entity.BlogPost{}, err
	}

	return post, nil
}

func (r *fileRepository) Update(ctx context.Context, id int64, apply func(post *entity.BlogPost)) (entity.BlogPost, error) {
	var updated entity.BlogPost

	err := r.mutate(ctx, "update", func(posts []entity.BlogPost) ([]entity.BlogPost, error) {
		i := indexOf(posts, id)
		if i < 0 {
			return nil, blogs.ErrBlogNotFound
		}

		apply(&posts[i])
		posts[i].ID = id
		updated = posts[i]

		return posts, nil
	})
	if err != nil {
		return entity.BlogPost{}, err
	}

	return updated, nil
}

func (r *fileRepository) Delete(ctx context.Context, id int64) (entity.BlogPost, error) {
	var removed entity.BlogPost

	err := r.mutate(ctx, "delete", func(posts []entity.BlogPost) ([]entity.BlogPost, error) {
		i := indexOf(posts, id)
		if i < 0 {
			return nil, blogs.ErrBlogNotFound
		}

		removed = posts[i]
		return append(posts[:i], posts[i+1:]...), nil
	})
	if err != nil {
		return entity.BlogPost{}, err
	}

	return removed, nil
}

// mutate runs fn on the freshly loaded collection under the write lock and
// persists the result. Nothing is written when fn fails.
func (r *fileRepository) mutate(ctx context.Context, op string, fn func([]entity.BlogPost) ([]entity.BlogPost, error)) error {
	requestID := contextPkg.GetRequestID(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	posts, err := r.load()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("Failed to read blog data file")
		return err
	}

	next, err := fn(posts)
	if err != nil {
		return err
	}

	if err := r.save(next); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("Failed to write blog data file")
		return err
	}

	return nil
}

func (r *fileRepository) load() ([]entity.BlogPost, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.BlogPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []entity.BlogPost{}, nil
	}

	var posts []entity.BlogPost
	if err := jsoniter.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if posts == nil {
		posts = []entity.BlogPost{}
	}

	return posts, nil
}

func (r *fileRepository) save(posts []entity.BlogPost) error {
	if posts == nil {
		posts = []entity.BlogPost{}
	}

	data, err := jsoniter.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blog posts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".blogs-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}

	return nil
}

func indexOf(posts []entity.BlogPost, id int64) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
