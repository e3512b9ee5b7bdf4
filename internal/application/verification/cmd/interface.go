package cmd

import (
	"context"
	"io"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/internal/domain/verification"
)

var (
	tracer = otel.Tracer("idverify/application/verification/cmd")
	logger = otelslog.NewLogger("idverify/application/verification/cmd")
)

type AccountRepo interface {
	GetAccountByEmail(ctx context.Context, email string) (*account.Account, error)
	GetAccountBySessionID(ctx context.Context, sessionID string) (*account.Account, error)
	SaveAccount(ctx context.Context, a *account.Account) error
	UpdateAccountByEmail(ctx context.Context, email string, fn func(context.Context, *account.Account) error) error
	UpdateAccountBySessionID(ctx context.Context, sessionID string, fn func(context.Context, *account.Account) error) error
}

type SessionGateway interface {
	CreateSession(ctx context.Context, email, returnURL string) (verification.SessionHandle, error)
	RetrieveSession(ctx context.Context, sessionID string) (verification.Session, error)
}

type DocumentStore interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
}
