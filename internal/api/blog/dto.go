package blogs

type CreateBlogRequest struct {
	Title    string `json:"title" form:"title" validate:"notblank"`
	Content  string `json:"content" form:"content" validate:"notblank"`
	Excerpt  string `json:"excerpt" form:"excerpt"`
	Category string `json:"category" form:"category"`
	Author   string `json:"author" form:"author"`
	Image    string `json:"image" form:"image"`
}

// UpdateBlogRequest carries a partial update; blank fields keep the stored value.
type UpdateBlogRequest struct {
	Title    string `json:"title" form:"title"`
	Content  string `json:"content" form:"content"`
	Excerpt  string `json:"excerpt" form:"excerpt"`
	Category string `json:"category" form:"category"`
	Author   string `json:"author" form:"author"`
	Image    string `json:"image" form:"image"`
}
