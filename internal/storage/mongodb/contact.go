package mongodb

import (
	"context"
	"time"

	"github.com/sushihentaime/contenthub/internal/contactservice"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type submissionDoc struct {
	ID        string    `bson:"_id"`
	Seq       int64     `bson:"seq"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	Subject   string    `bson:"subject"`
	Message   string    `bson:"message"`
	Read      bool      `bson:"read"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *submissionDoc) submission() *contactservice.Submission {
	return &contactservice.Submission{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type ContactStore struct {
	c *collection[submissionDoc]
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{c: newCollection[submissionDoc](db, contactsCollection, "created_at")}
}

func (s *ContactStore) Insert(ctx context.Context, sub *contactservice.Submission) error {
	seq, err := s.c.nextSeq(ctx)
	if err != nil {
		return err
	}

	return s.c.insert(ctx, &submissionDoc{
		ID:        sub.ID,
		Seq:       seq,
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Subject:   sub.Subject,
		Message:   sub.Message,
		Read:      sub.Read,
		CreatedAt: sub.CreatedAt,
	})
}

func (s *ContactStore) Get(ctx context.Context, id string) (*contactservice.Submission, error) {
	doc, err := s.c.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return doc.submission(), nil
}

func (s *ContactStore) List(ctx context.Context, filter contactservice.Filter) ([]contactservice.Submission, error) {
	query := bson.M{}
	if filter.Read != nil {
		query["read"] = *filter.Read
	}

	docs, err := s.c.find(ctx, query)
	if err != nil {
		return nil, err
	}

	subs := make([]contactservice.Submission, len(docs))
	for i := range docs {
		subs[i] = *docs[i].submission()
	}

	return subs, nil
}

func (s *ContactStore) Update(ctx context.Context, sub *contactservice.Submission) error {
	doc, err := s.c.update(ctx, sub.ID, bson.M{"$set": bson.M{
		"name":    sub.Name,
		"email":   sub.Email,
		"phone":   sub.Phone,
		"subject": sub.Subject,
		"message": sub.Message,
	}})
	if err != nil {
		return err
	}

	*sub = *doc.submission()
	return nil
}

func (s *ContactStore) Delete(ctx context.Context, id string) (*contactservice.Submission, error) {
	doc, err := s.c.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.submission(), nil
}

func (s *ContactStore) SetRead(ctx context.Context, id string, read bool) (*contactservice.Submission, error) {
	doc, err := s.c.update(ctx, id, bson.M{"$set": bson.M{"read": read}})
	if err != nil {
		return nil, err
	}
	return doc.submission(), nil
}
