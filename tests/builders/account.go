package builders

import (
	"time"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
)

type AccountBuilder struct {
	args account.RehydrateArgs
}

func NewAccountBuilder() *AccountBuilder {
	now := time.Now().UTC()
	return &AccountBuilder{
		args: account.RehydrateArgs{
			ID:        account.NewID(),
			Email:     "applicant@example.com",
			Role:      "student",
			Status:    account.StatusPendingReview,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.args.Email = email
	return b
}

func (b *AccountBuilder) WithRole(role string) *AccountBuilder {
	b.args.Role = role
	return b
}

func (b *AccountBuilder) WithStatus(status account.Status) *AccountBuilder {
	b.args.Status = status
	return b
}

func (b *AccountBuilder) WithSessionID(sessionID string) *AccountBuilder {
	b.args.VerificationSessionID = sessionID
	return b
}

func (b *AccountBuilder) WithDocumentKey(key string) *AccountBuilder {
	b.args.DocumentKey = key
	return b
}

func (b *AccountBuilder) Build() *account.Account {
	return account.Rehydrate(b.args)
}
