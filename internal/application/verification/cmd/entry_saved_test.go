package cmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nestar/idverify-backend/internal/application/verification/cmd"
	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/internal/domain/submission"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/tests/builders"
	"gitlab.com/nestar/idverify-backend/tests/mocks"
)

const testReturnURL = "https://nestar.example.com/v1/verification/complete"

func newEntrySavedFixture() (*cmd.EntrySavedHandler, *mocks.AccountRepo, *mocks.SessionGateway) {
	repo := mocks.NewAccountRepo()
	gateway := mocks.NewSessionGateway()
	h := cmd.NewEntrySavedHandler(cmd.EntrySavedHandlerArgs{
		AccountRepo: repo,
		Gateway:     gateway,
		ReturnURL:   testReturnURL,
	})
	return h, repo, gateway
}

func mustSubmission(t *testing.T, email, role, method string) *submission.Submission {
	t.Helper()
	s, err := submission.New(email, role, method)
	require.NoError(t, err)
	return s
}

func seedPendingAccount(t *testing.T, repo *mocks.AccountRepo, email string) {
	t.Helper()
	repo.SeedAccount(t, builders.NewAccountBuilder().WithEmail(email).Build())
}

func TestEntrySavedHandler_Handle_DocumentMethodStartsSession(t *testing.T) {
	t.Parallel()

	h, repo, _ := newEntrySavedFixture()
	seedPendingAccount(t, repo, "applicant@example.com")
	sub := mustSubmission(t, "applicant@example.com", "student", "document")

	res, err := h.Handle(t.Context(), cmd.EntrySaved{Submission: sub})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RedirectURL)
	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusAwaitingVerification)

	a := repo.Account(t, "applicant@example.com")
	assert.NotEmpty(t, a.VerificationSessionID())
	assert.Equal(t, "student", a.Role())
}

func TestEntrySavedHandler_Handle_NoVerificationMethod(t *testing.T) {
	t.Parallel()

	h, repo, _ := newEntrySavedFixture()
	seedPendingAccount(t, repo, "applicant@example.com")
	sub := mustSubmission(t, "applicant@example.com", "student", "")

	res, err := h.Handle(t.Context(), cmd.EntrySaved{Submission: sub})
	require.NoError(t, err)

	assert.Empty(t, res.RedirectURL)
	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}

func TestEntrySavedHandler_Handle_UnknownAccount(t *testing.T) {
	t.Parallel()

	h, repo, _ := newEntrySavedFixture()
	sub := mustSubmission(t, "ghost@example.com", "student", "document")

	_, err := h.Handle(t.Context(), cmd.EntrySaved{Submission: sub})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
	repo.AssertAccountNotExists(t, "ghost@example.com")
}

func TestEntrySavedHandler_Handle_ResubmitResetsApprovedAccount(t *testing.T) {
	t.Parallel()

	h, repo, _ := newEntrySavedFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusApproved).
		WithSessionID("vs_old").
		Build())

	sub := mustSubmission(t, "applicant@example.com", "staff", "")

	_, err := h.Handle(t.Context(), cmd.EntrySaved{Submission: sub})
	require.NoError(t, err)

	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)

	a := repo.Account(t, "applicant@example.com")
	assert.Empty(t, a.VerificationSessionID())
	assert.Equal(t, "staff", a.Role())
}

func TestEntrySavedHandler_Handle_StudentIDMethodStartsNoSession(t *testing.T) {
	t.Parallel()

	h, repo, _ := newEntrySavedFixture()
	seedPendingAccount(t, repo, "applicant@example.com")
	sub := mustSubmission(t, "applicant@example.com", "student", "student_id")

	res, err := h.Handle(t.Context(), cmd.EntrySaved{Submission: sub})
	require.NoError(t, err)

	assert.Empty(t, res.RedirectURL)
	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}

func TestEntrySavedHandler_Handle_GatewayFailure(t *testing.T) {
	t.Parallel()

	h, repo, gateway := newEntrySavedFixture()
	seedPendingAccount(t, repo, "applicant@example.com")
	gateway.CreateErr = assert.AnError

	sub := mustSubmission(t, "applicant@example.com", "student", "document")

	_, err := h.Handle(t.Context(), cmd.EntrySaved{Submission: sub})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))

	// the account is parked before the gateway call, so the reset survives
	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}
