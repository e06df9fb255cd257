package newsletterservice

import (
	"context"
	"strings"

	"github.com/sushihentaime/contenthub/internal/common"
)

// ValidateDocument trims and checks the metadata of a newsletter document.
// Handlers call it before storing the PDF.
func (s *NewsletterService) ValidateDocument(in *DocumentInput) error {
	normalizeDocument(in)

	v := common.NewValidator()
	validateDocument(v, in)
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

// CreateDocument records an uploaded newsletter PDF.
func (s *NewsletterService) CreateDocument(ctx context.Context, in *DocumentInput, file File) (*Document, error) {
	doc, err := s.documentFromInput(common.NewID(), in, file)
	if err != nil {
		return nil, err
	}
	doc.UploadedAt = s.now()

	if err := s.documents.Insert(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *NewsletterService) GetDocument(ctx context.Context, id string) (*Document, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.documents.Get(ctx, id)
}

// ListDocuments returns documents, most recently uploaded first.
func (s *NewsletterService) ListDocuments(ctx context.Context) ([]Document, error) {
	return s.documents.List(ctx)
}

// UpdateDocument replaces the metadata of a document and the file it points at.
func (s *NewsletterService) UpdateDocument(ctx context.Context, id string, in *DocumentInput, file File) (*Document, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	doc, err := s.documentFromInput(id, in, file)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument removes a document and returns its last state so the caller can
// delete the PDF.
func (s *NewsletterService) DeleteDocument(ctx context.Context, id string) (*Document, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.documents.Delete(ctx, id)
}

func (s *NewsletterService) documentFromInput(id string, in *DocumentInput, file File) (*Document, error) {
	normalizeDocument(in)
	file.Filename = strings.TrimSpace(file.Filename)
	file.OriginalName = strings.TrimSpace(file.OriginalName)

	v := common.NewValidator()
	validateDocument(v, in)
	validateFile(v, file)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return &Document{
		ID:           id,
		Name:         in.Name,
		Category:     in.Category,
		Date:         in.date,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
	}, nil
}
