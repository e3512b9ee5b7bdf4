package cmd_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nestar/idverify-backend/internal/application/verification/cmd"
	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/tests/builders"
	"gitlab.com/nestar/idverify-backend/tests/mocks"
)

func newStudentDocumentFixture() (*cmd.SubmitStudentDocumentHandler, *mocks.AccountRepo, *mocks.DocumentStore) {
	repo := mocks.NewAccountRepo()
	store := mocks.NewDocumentStore()
	h := cmd.NewSubmitStudentDocumentHandler(cmd.SubmitStudentDocumentHandlerArgs{
		AccountRepo: repo,
		Store:       store,
	})
	return h, repo, store
}

func TestSubmitStudentDocumentHandler_Handle(t *testing.T) {
	t.Parallel()

	h, repo, store := newStudentDocumentFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		Build())

	res, err := h.Handle(t.Context(), cmd.SubmitStudentDocument{
		Email:       "applicant@example.com",
		Filename:    "student-card.JPG",
		ContentType: "image/jpeg",
		File:        strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.DocumentKey, "documents/"))
	assert.True(t, strings.HasSuffix(res.DocumentKey, ".jpg"))
	store.AssertFileExists(t, res.DocumentKey)

	// the account stays parked until a reviewer approves it
	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
	assert.Equal(t, res.DocumentKey, repo.Account(t, "applicant@example.com").DocumentKey())
}

func TestSubmitStudentDocumentHandler_Handle_StoreFailure(t *testing.T) {
	t.Parallel()

	h, repo, store := newStudentDocumentFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		Build())
	store.UploadErr = assert.AnError

	_, err := h.Handle(t.Context(), cmd.SubmitStudentDocument{
		Email:       "applicant@example.com",
		Filename:    "card.png",
		ContentType: "image/png",
		File:        strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))
	assert.Empty(t, repo.Account(t, "applicant@example.com").DocumentKey())
}

func TestSubmitStudentDocumentHandler_Handle_UnknownAccount(t *testing.T) {
	t.Parallel()

	h, _, store := newStudentDocumentFixture()

	_, err := h.Handle(t.Context(), cmd.SubmitStudentDocument{
		Email:       "ghost@example.com",
		Filename:    "card.png",
		ContentType: "image/png",
		File:        strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
	assert.Equal(t, 0, store.FileCount())
}

func TestSubmitStudentDocumentHandler_Handle_ApprovedAccountRejected(t *testing.T) {
	t.Parallel()

	h, repo, _ := newStudentDocumentFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusApproved).
		Build())

	_, err := h.Handle(t.Context(), cmd.SubmitStudentDocument{
		Email:       "applicant@example.com",
		Filename:    "card.png",
		ContentType: "image/png",
		File:        strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrAlreadyApproved)
}
