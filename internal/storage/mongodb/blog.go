package mongodb

import (
	"context"
	"time"

	"github.com/sushihentaime/contenthub/internal/blogservice"
	"github.com/sushihentaime/contenthub/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type blogDoc struct {
	ID        string    `bson:"_id"`
	Seq       int64     `bson:"seq"`
	Title     string    `bson:"title"`
	Excerpt   string    `bson:"excerpt"`
	Content   string    `bson:"content"`
	Author    string    `bson:"author"`
	Category  string    `bson:"category"`
	Date      string    `bson:"date"`
	Tags      []string  `bson:"tags"`
	Featured  bool      `bson:"featured"`
	Views     int64     `bson:"views"`
	Image     string    `bson:"image"`
	Thumbnail string    `bson:"thumbnail"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *blogDoc) blog() *blogservice.Blog {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	return &blogservice.Blog{
		ID:        d.ID,
		Title:     d.Title,
		Excerpt:   d.Excerpt,
		Content:   d.Content,
		Author:    d.Author,
		Category:  d.Category,
		Date:      d.Date,
		Tags:      tags,
		Featured:  d.Featured,
		Views:     d.Views,
		Image:     d.Image,
		Thumbnail: d.Thumbnail,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

type BlogStore struct {
	c *collection[blogDoc]
}

func NewBlogStore(db *mongo.Database) *BlogStore {
	return &BlogStore{c: newCollection[blogDoc](db, blogsCollection, "created_at")}
}

func (s *BlogStore) Insert(ctx context.Context, blog *blogservice.Blog) error {
	seq, err := s.c.nextSeq(ctx)
	if err != nil {
		return err
	}

	return s.c.insert(ctx, &blogDoc{
		ID:        blog.ID,
		Seq:       seq,
		Title:     blog.Title,
		Excerpt:   blog.Excerpt,
		Content:   blog.Content,
		Author:    blog.Author,
		Category:  blog.Category,
		Date:      blog.Date,
		Tags:      nonNil(blog.Tags),
		Featured:  blog.Featured,
		Views:     blog.Views,
		Image:     blog.Image,
		Thumbnail: blog.Thumbnail,
		CreatedAt: blog.CreatedAt,
	})
}

func (s *BlogStore) Get(ctx context.Context, id string) (*blogservice.Blog, error) {
	doc, err := s.c.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return doc.blog(), nil
}

func (s *BlogStore) List(ctx context.Context, filter blogservice.Filter) ([]blogservice.Blog, error) {
	query := bson.M{}
	if filter.FeaturedOnly {
		query["featured"] = true
	}

	docs, err := s.c.find(ctx, query)
	if err != nil {
		return nil, err
	}

	blogs := make([]blogservice.Blog, len(docs))
	for i := range docs {
		blogs[i] = *docs[i].blog()
	}

	return blogs, nil
}

func (s *BlogStore) Update(ctx context.Context, blog *blogservice.Blog) error {
	doc, err := s.c.update(ctx, blog.ID, bson.M{"$set": bson.M{
		"title":     blog.Title,
		"excerpt":   blog.Excerpt,
		"content":   blog.Content,
		"author":    blog.Author,
		"category":  blog.Category,
		"date":      blog.Date,
		"tags":      nonNil(blog.Tags),
		"featured":  blog.Featured,
		"image":     blog.Image,
		"thumbnail": blog.Thumbnail,
	}})
	if err != nil {
		return err
	}

	*blog = *doc.blog()
	return nil
}

func (s *BlogStore) Delete(ctx context.Context, id string) (*blogservice.Blog, error) {
	doc, err := s.c.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.blog(), nil
}

func (s *BlogStore) IncrementViews(ctx context.Context, id string) (*blogservice.Blog, error) {
	doc, err := s.c.update(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return nil, err
	}
	return doc.blog(), nil
}

func (s *BlogStore) Stats(ctx context.Context) (*blogservice.Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_posts", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}

	cursor, err := s.c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.MongoError(err)
	}

	var results []struct {
		TotalPosts int64 `bson:"total_posts"`
		TotalViews int64 `bson:"total_views"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.MongoError(err)
	}

	stats := &blogservice.Stats{}
	if len(results) > 0 {
		stats.TotalPosts = results[0].TotalPosts
		stats.TotalViews = results[0].TotalViews
	}

	return stats, nil
}
