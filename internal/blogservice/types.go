package blogservice

import (
	"time"
)

type Blog struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	// Content is stored in Markdown format.
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
	Views    int64    `json:"views"`
	// Image is the public path of the attached image, or empty.
	Image string `json:"image"`
	// Thumbnail always mirrors Image.
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogInput carries the client supplied fields of a blog post. The image is never
// part of it; it is attached separately.
type BlogInput struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Tags     Tags   `json:"tags"`
	Featured bool   `json:"featured"`
}

type Filter struct {
	FeaturedOnly bool
}

type Stats struct {
	TotalPosts int64 `json:"total_posts"`
	TotalViews int64 `json:"total_views"`
}

type BlogService struct {
	store Store
	now   func() time.Time
}
