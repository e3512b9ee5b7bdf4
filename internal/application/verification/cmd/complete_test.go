package cmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nestar/idverify-backend/internal/application/verification/cmd"
	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/internal/domain/verification"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/tests/builders"
	"gitlab.com/nestar/idverify-backend/tests/mocks"
)

func newCompleteFixture() (*cmd.CompleteHandler, *mocks.AccountRepo, *mocks.SessionGateway) {
	repo := mocks.NewAccountRepo()
	gateway := mocks.NewSessionGateway()
	h := cmd.NewCompleteHandler(cmd.CompleteHandlerArgs{
		AccountRepo: repo,
		Gateway:     gateway,
	})
	return h, repo, gateway
}

func TestCompleteHandler_Handle_Verified(t *testing.T) {
	t.Parallel()

	h, repo, gateway := newCompleteFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusAwaitingVerification).
		WithSessionID("vs_123").
		Build())
	gateway.SeedSession(verification.Session{
		ID:     "vs_123",
		Status: verification.SessionStatusVerified,
		Email:  "applicant@example.com",
	})

	err := h.Handle(t.Context(), cmd.Complete{SessionID: "vs_123"})
	require.NoError(t, err)

	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusApproved)
}

func TestCompleteHandler_Handle_VerifiedWithoutEmailMetadata(t *testing.T) {
	t.Parallel()

	h, repo, gateway := newCompleteFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusAwaitingVerification).
		WithSessionID("vs_123").
		Build())
	gateway.SeedSession(verification.Session{
		ID:     "vs_123",
		Status: verification.SessionStatusVerified,
	})

	err := h.Handle(t.Context(), cmd.Complete{SessionID: "vs_123"})
	require.NoError(t, err)

	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusApproved)
}

func TestCompleteHandler_Handle_AlreadyApproved(t *testing.T) {
	t.Parallel()

	h, repo, gateway := newCompleteFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusApproved).
		WithSessionID("vs_123").
		Build())
	gateway.SeedSession(verification.Session{
		ID:     "vs_123",
		Status: verification.SessionStatusVerified,
		Email:  "applicant@example.com",
	})

	err := h.Handle(t.Context(), cmd.Complete{SessionID: "vs_123"})
	require.NoError(t, err)

	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusApproved)
}

func TestCompleteHandler_Handle_NotVerified(t *testing.T) {
	t.Parallel()

	statuses := []verification.SessionStatus{
		verification.SessionStatusProcessing,
		verification.SessionStatusRequiresInput,
		verification.SessionStatusCanceled,
	}

	for _, status := range statuses {
		t.Run(status.String(), func(t *testing.T) {
			t.Parallel()

			h, repo, gateway := newCompleteFixture()
			repo.SeedAccount(t, builders.NewAccountBuilder().
				WithEmail("applicant@example.com").
				WithStatus(account.StatusAwaitingVerification).
				WithSessionID("vs_123").
				Build())
			gateway.SeedSession(verification.Session{
				ID:     "vs_123",
				Status: status,
				Email:  "applicant@example.com",
			})

			err := h.Handle(t.Context(), cmd.Complete{SessionID: "vs_123"})
			require.Error(t, err)
			assert.ErrorIs(t, err, account.ErrVerificationIncomplete)

			repo.AssertAccountStatus(t, "applicant@example.com", account.StatusAwaitingVerification)
		})
	}
}

func TestCompleteHandler_Handle_GatewayFailure(t *testing.T) {
	t.Parallel()

	h, repo, gateway := newCompleteFixture()
	repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusAwaitingVerification).
		WithSessionID("vs_123").
		Build())
	gateway.RetrieveErr = assert.AnError

	err := h.Handle(t.Context(), cmd.Complete{SessionID: "vs_123"})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))

	repo.AssertAccountStatus(t, "applicant@example.com", account.StatusAwaitingVerification)
}

func TestCompleteHandler_Handle_UnknownAccount(t *testing.T) {
	t.Parallel()

	h, _, gateway := newCompleteFixture()
	gateway.SeedSession(verification.Session{
		ID:     "vs_orphan",
		Status: verification.SessionStatusVerified,
		Email:  "ghost@example.com",
	})

	err := h.Handle(t.Context(), cmd.Complete{SessionID: "vs_orphan"})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}
