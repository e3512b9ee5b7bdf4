package account_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
)

func TestNewAccount(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		a, err := account.NewAccount("applicant@example.com", "student")
		require.NoError(t, err)
		require.NotNil(t, a)

		assert.Equal(t, "applicant@example.com", a.Email())
		assert.Equal(t, "student", a.Role())
		assert.Equal(t, account.StatusPendingReview, a.Status())
		assert.Empty(t, a.VerificationSessionID())

		events := a.GetUncommittedEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*account.MarkedPending)
		require.True(t, ok)
		assert.Equal(t, a.ID(), evt.AccountID)
		assert.Equal(t, "applicant@example.com", evt.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		a, err := account.NewAccount("not-an-email", "student")
		require.Error(t, err)
		assert.Nil(t, a)
	})

	t.Run("empty email", func(t *testing.T) {
		t.Parallel()
		a, err := account.NewAccount("", "")
		require.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestAccount_MarkPending(t *testing.T) {
	t.Parallel()

	t.Run("resets approved account", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:                    account.NewID(),
			Email:                 "applicant@example.com",
			Status:                account.StatusApproved,
			VerificationSessionID: "vs_old",
		})

		require.NoError(t, a.MarkPending("student"))
		assert.Equal(t, account.StatusPendingReview, a.Status())
		assert.Empty(t, a.VerificationSessionID())
		assert.Equal(t, "student", a.Role())
		require.Len(t, a.GetUncommittedEvents(), 1)
	})

	t.Run("keeps role when empty", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Email:  "applicant@example.com",
			Role:   "staff",
			Status: account.StatusPendingReview,
		})

		require.NoError(t, a.MarkPending(""))
		assert.Equal(t, "staff", a.Role())
	})

	t.Run("nil account", func(t *testing.T) {
		t.Parallel()
		var a *account.Account
		assert.Error(t, a.MarkPending("student"))
	})
}

func TestAccount_StartDocumentVerification(t *testing.T) {
	t.Parallel()

	t.Run("from pending review", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Email:  "applicant@example.com",
			Status: account.StatusPendingReview,
		})

		require.NoError(t, a.StartDocumentVerification("vs_123"))
		assert.Equal(t, account.StatusAwaitingVerification, a.Status())
		assert.Equal(t, "vs_123", a.VerificationSessionID())

		events := a.GetUncommittedEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*account.VerificationStarted)
		require.True(t, ok)
		assert.Equal(t, "vs_123", evt.SessionID)
	})

	t.Run("empty session id", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Status: account.StatusPendingReview,
		})
		assert.Error(t, a.StartDocumentVerification(""))
	})

	t.Run("wrong status", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Status: account.StatusApproved,
		})
		err := a.StartDocumentVerification("vs_123")
		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrInvalidStatus)
	})
}

func TestAccount_AttachStudentDocument(t *testing.T) {
	t.Parallel()

	t.Run("stays pending", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Email:  "applicant@example.com",
			Status: account.StatusPendingReview,
		})

		require.NoError(t, a.AttachStudentDocument("documents/abc.jpg"))
		assert.Equal(t, account.StatusPendingReview, a.Status())
		assert.Equal(t, "documents/abc.jpg", a.DocumentKey())
		require.Len(t, a.GetUncommittedEvents(), 1)
	})

	t.Run("approved account rejected", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Status: account.StatusApproved,
		})
		err := a.AttachStudentDocument("documents/abc.jpg")
		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrAlreadyApproved)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Status: account.StatusPendingReview,
		})
		assert.Error(t, a.AttachStudentDocument(""))
	})
}

func TestAccount_Approve(t *testing.T) {
	t.Parallel()

	t.Run("from awaiting verification", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:                    account.NewID(),
			Email:                 "applicant@example.com",
			Status:                account.StatusAwaitingVerification,
			VerificationSessionID: "vs_123",
		})

		require.NoError(t, a.Approve())
		assert.True(t, a.IsApproved())

		events := a.GetUncommittedEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*account.Approved)
		require.True(t, ok)
		assert.Equal(t, "vs_123", evt.SessionID)
	})

	t.Run("already approved", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Status: account.StatusApproved,
		})
		err := a.Approve()
		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrAlreadyApproved)
		assert.Empty(t, a.GetUncommittedEvents())
	})

	t.Run("pending review rejected", func(t *testing.T) {
		t.Parallel()
		a := account.Rehydrate(account.RehydrateArgs{
			ID:     account.NewID(),
			Status: account.StatusPendingReview,
		})
		err := a.Approve()
		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrInvalidStatus)
		assert.False(t, errors.Is(err, account.ErrAlreadyApproved))
	})

	t.Run("nil account", func(t *testing.T) {
		t.Parallel()
		var a *account.Account
		assert.Error(t, a.Approve())
	})
}
