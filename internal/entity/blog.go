package entity

import "time"

const TimestampLayout = "2006-01-02T15:04:05.000Z"

type BlogPost struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Excerpt   string `json:"excerpt" db:"excerpt"`
	Category  string `json:"category" db:"category"`
	Author    string `json:"author" db:"author"`
	Image     string `json:"image" db:"image"`
	Date      string `json:"date" db:"date"`
	CreatedAt string `json:"createdAt" db:"created_at"`
	UpdatedAt string `json:"updatedAt,omitempty" db:"updated_at"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
