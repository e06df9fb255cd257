package contactservice

import (
	"context"

	"github.com/sushihentaime/contenthub/internal/common"
)

func NewContactService(store Store) *ContactService {
	return &ContactService{store: store, now: common.Now}
}

// CreateSubmission stores a new, unread contact form submission.
func (s *ContactService) CreateSubmission(ctx context.Context, in *SubmissionInput) (*Submission, error) {
	normalizeInput(in)

	v := common.NewValidator()
	validateInput(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	sub := &Submission{
		ID:        common.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now(),
	}

	if err := s.store.Insert(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *ContactService) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.Get(ctx, id)
}

// ListSubmissions returns submissions newest first.
func (s *ContactService) ListSubmissions(ctx context.Context, filter Filter) ([]Submission, error) {
	return s.store.List(ctx, filter)
}

// UpdateSubmission replaces the client supplied fields. The read flag is left as is.
func (s *ContactService) UpdateSubmission(ctx context.Context, id string, in *SubmissionInput) (*Submission, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	normalizeInput(in)

	v := common.NewValidator()
	validateInput(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	sub := &Submission{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	}

	if err := s.store.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// MarkRead sets the read flag of a submission.
func (s *ContactService) MarkRead(ctx context.Context, id string, read bool) (*Submission, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.SetRead(ctx, id, read)
}

func (s *ContactService) DeleteSubmission(ctx context.Context, id string) (*Submission, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.Delete(ctx, id)
}
