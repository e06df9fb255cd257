package contactservice

import "context"

// Store persists contact submissions. Unknown ids yield common.ErrRecordNotFound.
type Store interface {
	Insert(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter Filter) ([]Submission, error)
	// Update replaces the client supplied fields and fills in Read and CreatedAt.
	Update(ctx context.Context, s *Submission) error
	Delete(ctx context.Context, id string) (*Submission, error)
	SetRead(ctx context.Context, id string, read bool) (*Submission, error)
}
