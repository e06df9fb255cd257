package blogservice

import (
	"context"
	"strings"

	"github.com/sushihentaime/contenthub/internal/common"
)

func NewBlogService(store Store) *BlogService {
	return &BlogService{store: store, now: common.Now}
}

// ValidateInput trims the fields of in and checks them. Handlers call it before
// storing an attachment so invalid requests never touch the upload directory.
func (s *BlogService) ValidateInput(in *BlogInput) error {
	normalizeInput(in)

	v := common.NewValidator()
	validateBlogInput(v, in)
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

// CreateBlog creates a new blog post. image is the public path of an already stored
// attachment, or empty.
func (s *BlogService) CreateBlog(ctx context.Context, in *BlogInput, image string) (*Blog, error) {
	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}

	image = strings.TrimSpace(image)
	v := common.NewValidator()
	validateImage(v, image)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := newBlog(common.NewID(), in, image)
	blog.CreatedAt = s.now()

	if err := s.store.Insert(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// GetBlog returns a blog post by its ID without counting a view.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*Blog, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.Get(ctx, id)
}

// ViewBlog returns a blog post by its ID and counts the fetch as one view.
func (s *BlogService) ViewBlog(ctx context.Context, id string) (*Blog, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.IncrementViews(ctx, id)
}

// ListBlogs returns blog posts, newest first.
func (s *BlogService) ListBlogs(ctx context.Context, filter Filter) ([]Blog, error) {
	return s.store.List(ctx, filter)
}

// UpdateBlog replaces every client supplied field of the post. Omitted optional
// fields fall back to their defaults. image is the path the post should reference
// afterwards.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in *BlogInput, image string) (*Blog, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}

	image = strings.TrimSpace(image)
	v := common.NewValidator()
	validateImage(v, image)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := newBlog(id, in, image)
	if err := s.store.Update(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog deletes a blog post and returns its last state so the caller can
// clean up the attached image.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) (*Blog, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.Delete(ctx, id)
}

// Analytics returns the number of posts and the sum of their views.
func (s *BlogService) Analytics(ctx context.Context) (*Stats, error) {
	return s.store.Stats(ctx)
}

func normalizeInput(in *BlogInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Content = strings.TrimSpace(sanitizeMarkdown(in.Content))
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
	in.Date = strings.TrimSpace(in.Date)
	in.Tags = in.Tags.normalize()
}

func newBlog(id string, in *BlogInput, image string) *Blog {
	return &Blog{
		ID:        id,
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Author:    in.Author,
		Category:  in.Category,
		Date:      in.Date,
		Tags:      []string(in.Tags),
		Featured:  in.Featured,
		Image:     image,
		Thumbnail: image,
	}
}
