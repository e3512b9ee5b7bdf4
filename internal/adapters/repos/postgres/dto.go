package postgres

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
)

type AccountDTO struct {
	ID                    uuid.UUID
	Email                 string
	Role                  string
	Status                string
	VerificationSessionID *string
	DocumentKey           *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func AccountToDomain(dto AccountDTO) *account.Account {
	return account.Rehydrate(account.RehydrateArgs{
		ID:                    account.ID(dto.ID),
		Email:                 dto.Email,
		Role:                  dto.Role,
		Status:                account.Status(dto.Status),
		VerificationSessionID: derefString(dto.VerificationSessionID),
		DocumentKey:           derefString(dto.DocumentKey),
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	})
}

func DomainToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:                    uuid.UUID(a.ID()),
		Email:                 a.Email(),
		Role:                  a.Role(),
		Status:                a.Status().String(),
		VerificationSessionID: nullableString(a.VerificationSessionID()),
		DocumentKey:           nullableString(a.DocumentKey()),
		CreatedAt:             a.CreatedAt(),
		UpdatedAt:             a.UpdatedAt(),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
