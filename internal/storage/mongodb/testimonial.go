package mongodb

import (
	"context"
	"time"

	"github.com/sushihentaime/contenthub/internal/testimonialservice"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type testimonialDoc struct {
	ID          string    `bson:"_id"`
	Seq         int64     `bson:"seq"`
	Name        string    `bson:"name"`
	Company     string    `bson:"company"`
	Rating      int       `bson:"rating"`
	Testimonial string    `bson:"testimonial"`
	Active      bool      `bson:"active"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d *testimonialDoc) testimonial() *testimonialservice.Testimonial {
	return &testimonialservice.Testimonial{
		ID:          d.ID,
		Name:        d.Name,
		Company:     d.Company,
		Rating:      d.Rating,
		Testimonial: d.Testimonial,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type TestimonialStore struct {
	c *collection[testimonialDoc]
}

func NewTestimonialStore(db *mongo.Database) *TestimonialStore {
	return &TestimonialStore{c: newCollection[testimonialDoc](db, testimonialsCollection, "created_at")}
}

func (s *TestimonialStore) Insert(ctx context.Context, t *testimonialservice.Testimonial) error {
	seq, err := s.c.nextSeq(ctx)
	if err != nil {
		return err
	}

	return s.c.insert(ctx, &testimonialDoc{
		ID:          t.ID,
		Seq:         seq,
		Name:        t.Name,
		Company:     t.Company,
		Rating:      t.Rating,
		Testimonial: t.Testimonial,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
	})
}

func (s *TestimonialStore) Get(ctx context.Context, id string) (*testimonialservice.Testimonial, error) {
	doc, err := s.c.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return doc.testimonial(), nil
}

func (s *TestimonialStore) List(ctx context.Context, filter testimonialservice.Filter) ([]testimonialservice.Testimonial, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["active"] = true
	}

	docs, err := s.c.find(ctx, query)
	if err != nil {
		return nil, err
	}

	testimonials := make([]testimonialservice.Testimonial, len(docs))
	for i := range docs {
		testimonials[i] = *docs[i].testimonial()
	}

	return testimonials, nil
}

func (s *TestimonialStore) Update(ctx context.Context, t *testimonialservice.Testimonial) error {
	doc, err := s.c.update(ctx, t.ID, bson.M{"$set": bson.M{
		"name":        t.Name,
		"company":     t.Company,
		"rating":      t.Rating,
		"testimonial": t.Testimonial,
		"active":      t.Active,
	}})
	if err != nil {
		return err
	}

	*t = *doc.testimonial()
	return nil
}

func (s *TestimonialStore) Delete(ctx context.Context, id string) (*testimonialservice.Testimonial, error) {
	doc, err := s.c.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.testimonial(), nil
}

func (s *TestimonialStore) SetActive(ctx context.Context, id string, active bool) (*testimonialservice.Testimonial, error) {
	doc, err := s.c.update(ctx, id, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return nil, err
	}
	return doc.testimonial(), nil
}
