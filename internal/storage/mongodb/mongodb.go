package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	blogsCollection        = "blogs"
	contactsCollection     = "contact_submissions"
	testimonialsCollection = "testimonials"
	subscribersCollection  = "newsletter_subscribers"
	documentsCollection    = "newsletter_uploads"
	countersCollection     = "counters"
)

type conn struct {
	db *mongo.Database
}

func (c conn) Ping(ctx context.Context) error {
	return common.MongoError(c.db.Client().Ping(ctx, readpref.Primary()))
}

func (c conn) Close() error {
	return common.CloseMongo(c.db)
}

// New returns a backend over db after making sure its indexes exist.
func New(ctx context.Context, db *mongo.Database) (*storage.Backend, error) {
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &storage.Backend{
		Driver:       storage.DriverMongo,
		Blogs:        NewBlogStore(db),
		Contacts:     NewContactStore(db),
		Testimonials: NewTestimonialStore(db),
		Subscribers:  NewSubscriberStore(db),
		Documents:    NewDocumentStore(db),
		Conn:         conn{db: db},
	}, nil
}

// EnsureIndexes creates the listing indexes and the unique subscriber email index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		blogsCollection:        {{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "seq", Value: 1}}}},
		contactsCollection:     {{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "seq", Value: 1}}}},
		testimonialsCollection: {{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "seq", Value: 1}}}},
		documentsCollection:    {{Keys: bson.D{{Key: "uploaded_at", Value: -1}, {Key: "seq", Value: 1}}}},
		subscribersCollection: {
			{Keys: bson.D{{Key: "subscribed_at", Value: -1}, {Key: "seq", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, common.MongoError(err))
		}
	}

	return nil
}

// collection wraps the CRUD calls shared by every store. D is the stored document type.
type collection[D any] struct {
	coll     *mongo.Collection
	counters *mongo.Collection
	sort     bson.D
}

func newCollection[D any](db *mongo.Database, name, sortField string) *collection[D] {
	return &collection[D]{
		coll:     db.Collection(name),
		counters: db.Collection(countersCollection),
		sort:     bson.D{{Key: sortField, Value: -1}, {Key: "seq", Value: 1}},
	}
}

// nextSeq returns the next insertion sequence number of the collection.
func (c *collection[D]) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := c.counters.FindOneAndUpdate(ctx, bson.M{"_id": c.coll.Name()}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, common.MongoError(err)
	}

	return counter.Seq, nil
}

func (c *collection[D]) insert(ctx context.Context, doc *D) error {
	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrDuplicateRecord
	}
	return common.MongoError(err)
}

func (c *collection[D]) findOne(ctx context.Context, filter any) (*D, error) {
	var doc D
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoError(err)
	}
	return &doc, nil
}

func (c *collection[D]) find(ctx context.Context, filter any) ([]D, error) {
	cursor, err := c.coll.Find(ctx, filter, options.Find().SetSort(c.sort))
	if err != nil {
		return nil, common.MongoError(err)
	}

	docs := []D{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.MongoError(err)
	}

	return docs, nil
}

func (c *collection[D]) update(ctx context.Context, id string, update any) (*D, error) {
	var doc D
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, mongoError(err)
	}
	return &doc, nil
}

func (c *collection[D]) remove(ctx context.Context, id string) (*D, error) {
	var doc D
	if err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mongoError(err)
	}
	return &doc, nil
}

func mongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrRecordNotFound
	case mongo.IsDuplicateKeyError(err):
		return common.ErrDuplicateRecord
	default:
		return common.MongoError(err)
	}
}
