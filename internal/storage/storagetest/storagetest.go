// Package storagetest checks a storage.Backend against the contract every engine
// must honour.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/contenthub/internal/blogservice"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/contactservice"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
	"github.com/sushihentaime/contenthub/internal/storage"
	"github.com/sushihentaime/contenthub/internal/testimonialservice"
)

// Run exercises a backend. newBackend must return an empty backend for every call.
func Run(t *testing.T, newBackend func(t *testing.T) *storage.Backend) {
	testCases := []struct {
		name string
		fn   func(t *testing.T, b *storage.Backend)
	}{
		{name: "ping", fn: testPing},
		{name: "blogs", fn: testBlogs},
		{name: "blog ordering", fn: testBlogOrdering},
		{name: "blog views", fn: testBlogViews},
		{name: "contacts", fn: testContacts},
		{name: "testimonials", fn: testTestimonials},
		{name: "subscribers", fn: testSubscribers},
		{name: "documents", fn: testDocuments},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newBackend(t))
		})
	}
}

var base = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func testPing(t *testing.T, b *storage.Backend) {
	assert.NoError(t, b.Ping(context.Background()))
}

func newBlog(title string, createdAt time.Time) *blogservice.Blog {
	return &blogservice.Blog{
		ID:        common.NewID(),
		Title:     title,
		Content:   "body",
		Tags:      []string{"go", "a, b"},
		Image:     "/uploads/x.png",
		Thumbnail: "/uploads/x.png",
		CreatedAt: createdAt,
	}
}

func testBlogs(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	blog := newBlog("first", base)
	blog.Featured = true
	require.NoError(t, b.Blogs.Insert(ctx, blog))
	assert.ErrorIs(t, b.Blogs.Insert(ctx, blog), common.ErrDuplicateRecord)

	got, err := b.Blogs.Get(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.Title, got.Title)
	assert.Equal(t, blog.Tags, got.Tags)
	assert.True(t, blog.CreatedAt.Equal(got.CreatedAt))

	other := newBlog("second", base.Add(time.Minute))
	other.Tags = []string{}
	require.NoError(t, b.Blogs.Insert(ctx, other))

	featured, err := b.Blogs.List(ctx, blogservice.Filter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, blog.ID, featured[0].ID)

	update := &blogservice.Blog{ID: blog.ID, Title: "renamed", Content: "new", Tags: []string{}, Image: "", Thumbnail: ""}
	require.NoError(t, b.Blogs.Update(ctx, update))
	assert.Equal(t, "renamed", update.Title)
	assert.Empty(t, update.Tags)
	assert.False(t, update.Featured)
	assert.True(t, blog.CreatedAt.Equal(update.CreatedAt))

	assert.ErrorIs(t, b.Blogs.Update(ctx, &blogservice.Blog{ID: common.NewID(), Title: "x", Content: "y"}), common.ErrRecordNotFound)

	deleted, err := b.Blogs.Delete(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", deleted.Title)

	_, err = b.Blogs.Get(ctx, blog.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = b.Blogs.Delete(ctx, blog.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func testBlogOrdering(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	inserts := []struct {
		title string
		at    time.Time
	}{
		{"a", base},
		{"b", base.Add(time.Hour)},
		{"c", base},
		{"d", base.Add(-time.Hour)},
		{"e", base.Add(time.Hour)},
	}
	for _, in := range inserts {
		require.NoError(t, b.Blogs.Insert(ctx, newBlog(in.title, in.at)))
	}

	blogs, err := b.Blogs.List(ctx, blogservice.Filter{})
	require.NoError(t, err)

	var titles []string
	for _, blog := range blogs {
		titles = append(titles, blog.Title)
	}
	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, titles)
}

func testBlogViews(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	stats, err := b.Blogs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &blogservice.Stats{}, stats)

	first := newBlog("first", base)
	second := newBlog("second", base)
	require.NoError(t, b.Blogs.Insert(ctx, first))
	require.NoError(t, b.Blogs.Insert(ctx, second))

	for i := 1; i <= 3; i++ {
		got, err := b.Blogs.IncrementViews(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.Views)
	}
	_, err = b.Blogs.IncrementViews(ctx, second.ID)
	require.NoError(t, err)

	_, err = b.Blogs.IncrementViews(ctx, common.NewID())
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	stats, err = b.Blogs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &blogservice.Stats{TotalPosts: 2, TotalViews: 4}, stats)
}

func testContacts(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	sub := &contactservice.Submission{ID: common.NewID(), Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Hello", CreatedAt: base}
	require.NoError(t, b.Contacts.Insert(ctx, sub))
	other := &contactservice.Submission{ID: common.NewID(), Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Hello", CreatedAt: base.Add(time.Second)}
	require.NoError(t, b.Contacts.Insert(ctx, other))

	read, err := b.Contacts.SetRead(ctx, sub.ID, true)
	require.NoError(t, err)
	assert.True(t, read.Read)

	yes := true
	list, err := b.Contacts.List(ctx, contactservice.Filter{Read: &yes})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sub.ID, list[0].ID)

	all, err := b.Contacts.List(ctx, contactservice.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ID)

	update := &contactservice.Submission{ID: sub.ID, Name: "Ann", Email: "ann@example.com", Phone: "123", Subject: "Changed", Message: "Hello"}
	require.NoError(t, b.Contacts.Update(ctx, update))
	assert.True(t, update.Read)
	assert.Equal(t, "123", update.Phone)

	_, err = b.Contacts.SetRead(ctx, common.NewID(), true)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = b.Contacts.Delete(ctx, sub.ID)
	require.NoError(t, err)
	_, err = b.Contacts.Get(ctx, sub.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func testTestimonials(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	shown := &testimonialservice.Testimonial{ID: common.NewID(), Name: "Ann", Company: "Acme", Rating: 5, Active: true, CreatedAt: base}
	hidden := &testimonialservice.Testimonial{ID: common.NewID(), Name: "Bob", Company: "Acme", Rating: 3, CreatedAt: base}
	require.NoError(t, b.Testimonials.Insert(ctx, shown))
	require.NoError(t, b.Testimonials.Insert(ctx, hidden))

	active, err := b.Testimonials.List(ctx, testimonialservice.Filter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, shown.ID, active[0].ID)

	all, err := b.Testimonials.List(ctx, testimonialservice.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, shown.ID, all[0].ID)

	got, err := b.Testimonials.SetActive(ctx, hidden.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Active)

	update := &testimonialservice.Testimonial{ID: shown.ID, Name: "Ann", Company: "Acme", Rating: 4, Testimonial: "Good", Active: false}
	require.NoError(t, b.Testimonials.Update(ctx, update))
	assert.Equal(t, 4, update.Rating)
	assert.True(t, shown.CreatedAt.Equal(update.CreatedAt))

	_, err = b.Testimonials.Delete(ctx, shown.ID)
	require.NoError(t, err)
	_, err = b.Testimonials.Delete(ctx, shown.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func testSubscribers(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	ann := &newsletterservice.Subscriber{ID: common.NewID(), Email: "ann@example.com", SubscribedAt: base}
	bob := &newsletterservice.Subscriber{ID: common.NewID(), Email: "bob@example.com", Name: "Bob", SubscribedAt: base.Add(time.Minute)}
	require.NoError(t, b.Subscribers.Insert(ctx, ann))
	require.NoError(t, b.Subscribers.Insert(ctx, bob))

	dup := &newsletterservice.Subscriber{ID: common.NewID(), Email: "ann@example.com", SubscribedAt: base}
	assert.ErrorIs(t, b.Subscribers.Insert(ctx, dup), common.ErrDuplicateRecord)

	got, err := b.Subscribers.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = b.Subscribers.GetByEmail(ctx, "carl@example.com")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	at := base.Add(time.Hour)
	left, err := b.Subscribers.SetSubscribed(ctx, ann.ID, false, at)
	require.NoError(t, err)
	assert.True(t, left.Unsubscribed)
	require.NotNil(t, left.UnsubscribedAt)
	assert.True(t, at.Equal(*left.UnsubscribedAt))

	active, err := b.Subscribers.List(ctx, newsletterservice.SubscriberFilter{Status: newsletterservice.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, bob.ID, active[0].ID)

	gone, err := b.Subscribers.List(ctx, newsletterservice.SubscriberFilter{Status: newsletterservice.StatusUnsubscribed})
	require.NoError(t, err)
	require.Len(t, gone, 1)
	assert.Equal(t, ann.ID, gone[0].ID)

	all, err := b.Subscribers.List(ctx, newsletterservice.SubscriberFilter{Status: newsletterservice.StatusAll})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bob.ID, all[0].ID)

	selected, err := b.Subscribers.List(ctx, newsletterservice.SubscriberFilter{Status: newsletterservice.StatusAll, IDs: []string{ann.ID, common.NewID()}})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, ann.ID, selected[0].ID)

	back, err := b.Subscribers.SetSubscribed(ctx, ann.ID, true, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, back.Unsubscribed)
	assert.Nil(t, back.UnsubscribedAt)

	clash := &newsletterservice.Subscriber{ID: bob.ID, Email: "ann@example.com", Name: "Bob"}
	assert.ErrorIs(t, b.Subscribers.Update(ctx, clash), common.ErrDuplicateRecord)

	rename := &newsletterservice.Subscriber{ID: bob.ID, Email: "robert@example.com", Name: "Robert"}
	require.NoError(t, b.Subscribers.Update(ctx, rename))
	assert.Equal(t, "robert@example.com", rename.Email)
	assert.True(t, bob.SubscribedAt.Equal(rename.SubscribedAt))

	_, err = b.Subscribers.Delete(ctx, bob.ID)
	require.NoError(t, err)
	_, err = b.Subscribers.Get(ctx, bob.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func testDocuments(t *testing.T, b *storage.Backend) {
	ctx := context.Background()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	doc := &newsletterservice.Document{ID: common.NewID(), Name: "Issue 1", Category: "monthly", Date: date, Filename: "1-2-a.pdf", OriginalName: "a.pdf", UploadedAt: base}
	require.NoError(t, b.Documents.Insert(ctx, doc))

	later := &newsletterservice.Document{ID: common.NewID(), Name: "Issue 2", Category: "monthly", Date: date, Filename: "3-4-b.pdf", OriginalName: "b.pdf", UploadedAt: base.Add(time.Hour)}
	require.NoError(t, b.Documents.Insert(ctx, later))

	got, err := b.Documents.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, date.Equal(got.Date), "got %s", got.Date)
	assert.Equal(t, "1-2-a.pdf", got.Filename)

	docs, err := b.Documents.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, later.ID, docs[0].ID)

	update := &newsletterservice.Document{ID: doc.ID, Name: "Issue one", Category: "monthly", Date: date, Filename: "5-6-c.pdf", OriginalName: "c.pdf"}
	require.NoError(t, b.Documents.Update(ctx, update))
	assert.Equal(t, "5-6-c.pdf", update.Filename)
	assert.True(t, base.Equal(update.UploadedAt))

	deleted, err := b.Documents.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "5-6-c.pdf", deleted.Filename)

	_, err = b.Documents.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}
