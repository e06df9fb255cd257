package contactservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/contactservice"
	"github.com/sushihentaime/contenthub/internal/storage/memory"
)

func validInput() *contactservice.SubmissionInput {
	return &contactservice.SubmissionInput{
		Name:    " Ann ",
		Email:   " Ann@Example.COM ",
		Subject: "Hello",
		Message: "I would like a quote.",
	}
}

func TestCreateSubmission(t *testing.T) {
	testCases := []struct {
		name        string
		modify      func(in *contactservice.SubmissionInput)
		expectedErr string
	}{
		{name: "valid", modify: func(*contactservice.SubmissionInput) {}},
		{name: "with phone", modify: func(in *contactservice.SubmissionInput) { in.Phone = "+1 555 0100" }},
		{name: "missing name", modify: func(in *contactservice.SubmissionInput) { in.Name = "" }, expectedErr: "name"},
		{name: "missing email", modify: func(in *contactservice.SubmissionInput) { in.Email = "" }, expectedErr: "email"},
		{name: "malformed email", modify: func(in *contactservice.SubmissionInput) { in.Email = "ann@example" }, expectedErr: "email"},
		{name: "email with spaces", modify: func(in *contactservice.SubmissionInput) { in.Email = "a nn@example.com" }, expectedErr: "email"},
		{name: "missing subject", modify: func(in *contactservice.SubmissionInput) { in.Subject = " " }, expectedErr: "subject"},
		{name: "missing message", modify: func(in *contactservice.SubmissionInput) { in.Message = "" }, expectedErr: "message"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := contactservice.NewContactService(memory.NewContactStore())
			ctx := context.Background()

			in := validInput()
			tc.modify(in)

			sub, err := s.CreateSubmission(ctx, in)
			if tc.expectedErr != "" {
				var verr common.ValidationError
				require.True(t, errors.As(err, &verr), "got %v", err)
				assert.Contains(t, verr.Errors, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Ann", sub.Name)
			assert.Equal(t, "ann@example.com", sub.Email)
			assert.False(t, sub.Read)

			got, err := s.GetSubmission(ctx, sub.ID)
			require.NoError(t, err)
			assert.Equal(t, sub, got)
		})
	}
}

func TestMarkReadAndFilter(t *testing.T) {
	s := contactservice.NewContactService(memory.NewContactStore())
	ctx := context.Background()

	first, err := s.CreateSubmission(ctx, validInput())
	require.NoError(t, err)
	second, err := s.CreateSubmission(ctx, validInput())
	require.NoError(t, err)

	read, err := s.MarkRead(ctx, first.ID, true)
	require.NoError(t, err)
	assert.True(t, read.Read)

	yes, no := true, false

	all, err := s.ListSubmissions(ctx, contactservice.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyRead, err := s.ListSubmissions(ctx, contactservice.Filter{Read: &yes})
	require.NoError(t, err)
	require.Len(t, onlyRead, 1)
	assert.Equal(t, first.ID, onlyRead[0].ID)

	unread, err := s.ListSubmissions(ctx, contactservice.Filter{Read: &no})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, second.ID, unread[0].ID)

	_, err = s.MarkRead(ctx, common.NewID(), true)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestUpdateSubmissionKeepsReadFlag(t *testing.T) {
	s := contactservice.NewContactService(memory.NewContactStore())
	ctx := context.Background()

	sub, err := s.CreateSubmission(ctx, validInput())
	require.NoError(t, err)

	_, err = s.MarkRead(ctx, sub.ID, true)
	require.NoError(t, err)

	in := validInput()
	in.Subject = "Changed"
	updated, err := s.UpdateSubmission(ctx, sub.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Changed", updated.Subject)
	assert.True(t, updated.Read)
	assert.True(t, sub.CreatedAt.Equal(updated.CreatedAt))
}

func TestDeleteSubmission(t *testing.T) {
	s := contactservice.NewContactService(memory.NewContactStore())
	ctx := context.Background()

	sub, err := s.CreateSubmission(ctx, validInput())
	require.NoError(t, err)

	deleted, err := s.DeleteSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, deleted.ID)

	_, err = s.GetSubmission(ctx, sub.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = s.DeleteSubmission(ctx, "42")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}
