package mongodb

import (
	"context"
	"time"

	"github.com/sushihentaime/contenthub/internal/newsletterservice"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type subscriberDoc struct {
	ID             string     `bson:"_id"`
	Seq            int64      `bson:"seq"`
	Email          string     `bson:"email"`
	Name           string     `bson:"name"`
	SubscribedAt   time.Time  `bson:"subscribed_at"`
	Unsubscribed   bool       `bson:"unsubscribed"`
	UnsubscribedAt *time.Time `bson:"unsubscribed_at"`
}

func (d *subscriberDoc) subscriber() *newsletterservice.Subscriber {
	s := &newsletterservice.Subscriber{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		SubscribedAt: d.SubscribedAt.UTC(),
		Unsubscribed: d.Unsubscribed,
	}
	if d.UnsubscribedAt != nil {
		at := d.UnsubscribedAt.UTC()
		s.UnsubscribedAt = &at
	}
	return s
}

type SubscriberStore struct {
	c *collection[subscriberDoc]
}

func NewSubscriberStore(db *mongo.Database) *SubscriberStore {
	return &SubscriberStore{c: newCollection[subscriberDoc](db, subscribersCollection, "subscribed_at")}
}

func (s *SubscriberStore) Insert(ctx context.Context, sub *newsletterservice.Subscriber) error {
	seq, err := s.c.nextSeq(ctx)
	if err != nil {
		return err
	}

	return s.c.insert(ctx, &subscriberDoc{
		ID:             sub.ID,
		Seq:            seq,
		Email:          sub.Email,
		Name:           sub.Name,
		SubscribedAt:   sub.SubscribedAt,
		Unsubscribed:   sub.Unsubscribed,
		UnsubscribedAt: sub.UnsubscribedAt,
	})
}

func (s *SubscriberStore) Get(ctx context.Context, id string) (*newsletterservice.Subscriber, error) {
	doc, err := s.c.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return doc.subscriber(), nil
}

func (s *SubscriberStore) GetByEmail(ctx context.Context, email string) (*newsletterservice.Subscriber, error) {
	doc, err := s.c.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return doc.subscriber(), nil
}

func (s *SubscriberStore) List(ctx context.Context, filter newsletterservice.SubscriberFilter) ([]newsletterservice.Subscriber, error) {
	query := bson.M{}
	switch filter.Status {
	case newsletterservice.StatusActive:
		query["unsubscribed"] = false
	case newsletterservice.StatusUnsubscribed:
		query["unsubscribed"] = true
	}
	if filter.IDs != nil {
		query["_id"] = bson.M{"$in": filter.IDs}
	}

	docs, err := s.c.find(ctx, query)
	if err != nil {
		return nil, err
	}

	subs := make([]newsletterservice.Subscriber, len(docs))
	for i := range docs {
		subs[i] = *docs[i].subscriber()
	}

	return subs, nil
}

func (s *SubscriberStore) Update(ctx context.Context, sub *newsletterservice.Subscriber) error {
	doc, err := s.c.update(ctx, sub.ID, bson.M{"$set": bson.M{
		"email": sub.Email,
		"name":  sub.Name,
	}})
	if err != nil {
		return err
	}

	*sub = *doc.subscriber()
	return nil
}

func (s *SubscriberStore) Delete(ctx context.Context, id string) (*newsletterservice.Subscriber, error) {
	doc, err := s.c.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.subscriber(), nil
}

func (s *SubscriberStore) SetSubscribed(ctx context.Context, id string, subscribed bool, at time.Time) (*newsletterservice.Subscriber, error) {
	set := bson.M{"unsubscribed": !subscribed, "unsubscribed_at": nil}
	if !subscribed {
		set["unsubscribed_at"] = at
	}

	doc, err := s.c.update(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return doc.subscriber(), nil
}

type documentDoc struct {
	ID           string    `bson:"_id"`
	Seq          int64     `bson:"seq"`
	Name         string    `bson:"name"`
	Category     string    `bson:"category"`
	Date         time.Time `bson:"date"`
	Filename     string    `bson:"filename"`
	OriginalName string    `bson:"original_name"`
	UploadedAt   time.Time `bson:"uploaded_at"`
}

func (d *documentDoc) document() *newsletterservice.Document {
	return &newsletterservice.Document{
		ID:           d.ID,
		Name:         d.Name,
		Category:     d.Category,
		Date:         d.Date.UTC(),
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		UploadedAt:   d.UploadedAt.UTC(),
	}
}

type DocumentStore struct {
	c *collection[documentDoc]
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{c: newCollection[documentDoc](db, documentsCollection, "uploaded_at")}
}

func (s *DocumentStore) Insert(ctx context.Context, doc *newsletterservice.Document) error {
	seq, err := s.c.nextSeq(ctx)
	if err != nil {
		return err
	}

	return s.c.insert(ctx, &documentDoc{
		ID:           doc.ID,
		Seq:          seq,
		Name:         doc.Name,
		Category:     doc.Category,
		Date:         doc.Date,
		Filename:     doc.Filename,
		OriginalName: doc.OriginalName,
		UploadedAt:   doc.UploadedAt,
	})
}

func (s *DocumentStore) Get(ctx context.Context, id string) (*newsletterservice.Document, error) {
	d, err := s.c.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return d.document(), nil
}

func (s *DocumentStore) List(ctx context.Context) ([]newsletterservice.Document, error) {
	docs, err := s.c.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	out := make([]newsletterservice.Document, len(docs))
	for i := range docs {
		out[i] = *docs[i].document()
	}

	return out, nil
}

func (s *DocumentStore) Update(ctx context.Context, doc *newsletterservice.Document) error {
	d, err := s.c.update(ctx, doc.ID, bson.M{"$set": bson.M{
		"name":          doc.Name,
		"category":      doc.Category,
		"date":          doc.Date,
		"filename":      doc.Filename,
		"original_name": doc.OriginalName,
	}})
	if err != nil {
		return err
	}

	*doc = *d.document()
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) (*newsletterservice.Document, error) {
	d, err := s.c.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.document(), nil
}
