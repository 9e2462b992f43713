package blogRepository

const (
	querySchema = `
		CREATE TABLE IF NOT EXISTS blog_posts (
			id         BIGINT PRIMARY KEY,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			excerpt    TEXT NOT NULL DEFAULT '',
			category   TEXT NOT NULL DEFAULT '',
			author     TEXT NOT NULL DEFAULT '',
			image      TEXT NOT NULL DEFAULT '',
			date       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT ''
		)
	`

	queryCreateBlog = `
		INSERT INTO blog_posts (
			id,
			title,
			content,
			excerpt,
			category,
			author,
			image,
			date,
			created_at,
			updated_at
		) VALUES (
			:id,
			:title,
			:content,
			:excerpt,
			:category,
			:author,
			:image,
			:date,
			:created_at,
			:updated_at
		)
		ON CONFLICT (id) DO NOTHING
	`

	queryGetBlogByID = `
		SELECT
			id,
			title,
			content,
			excerpt,
			category,
			author,
			image,
			date,
			created_at,
			updated_at
		FROM blog_posts
		WHERE id = :id
	`

	queryGetBlogByIDForUpdate = queryGetBlogByID + `
		FOR UPDATE
	`

	queryGetAllBlogs = `
		SELECT
			id,
			title,
			content,
			excerpt,
			category,
			author,
			image,
			date,
			created_at,
			updated_at
		FROM blog_posts
		ORDER BY created_at DESC, id DESC
	`

	queryUpdateBlog = `
		UPDATE blog_posts
		SET
			title = :title,
			content = :content,
			excerpt = :excerpt,
			category = :category,
			author = :author,
			image = :image,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteBlog = `
		DELETE FROM blog_posts
		WHERE id = :id
		RETURNING
			id,
			title,
			content,
			excerpt,
			category,
			author,
			image,
			date,
			created_at,
			updated_at
	`
)
