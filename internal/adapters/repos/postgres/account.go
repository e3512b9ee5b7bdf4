package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/otelx"
	"gitlab.com/nestar/idverify-backend/pkg/postgres"
	"gitlab.com/nestar/idverify-backend/pkg/watermillx"
)

const accountColumns = "id, email, role, status, verification_session_id, document_s3_key, created_at, updated_at"

type AccountRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewAccountRepo creates a new instance of AccountRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewAccountRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *AccountRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &AccountRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

func (re *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	ctx, span := re.tracer.Start(ctx, "AccountRepo.GetAccountByEmail")
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email = $1;`, accountColumns)

	dto, err := scanAccount(re.pool.QueryRow(ctx, query, email))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account by email")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return AccountToDomain(dto), nil
}

func (re *AccountRepo) GetAccountBySessionID(ctx context.Context, sessionID string) (*account.Account, error) {
	ctx, span := re.tracer.Start(ctx, "AccountRepo.GetAccountBySessionID")
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE verification_session_id = $1;`, accountColumns)

	dto, err := scanAccount(re.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account by session id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return AccountToDomain(dto), nil
}

func (re *AccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	ctx, span := re.tracer.Start(ctx, "AccountRepo.SaveAccount")
	defer span.End()

	dto := DomainToAccountDTO(a)

	query := `
        INSERT INTO accounts (id, email, role, status, verification_session_id, document_s3_key, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	return postgres.WithTx(ctx, re.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query,
			dto.ID, dto.Email, dto.Role, dto.Status,
			dto.VerificationSessionID, dto.DocumentKey,
			dto.CreatedAt, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert account")
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return errorx.NewConflict().WithCause(err)
			}
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting account")
			return fmt.Errorf("failed to insert account: %w", ErrNoRowsAffected)
		}

		if events := a.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, re.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

func (re *AccountRepo) UpdateAccountByEmail(
	ctx context.Context,
	email string,
	fn func(ctx context.Context, a *account.Account) error,
) error {
	ctx, span := re.tracer.Start(ctx, "AccountRepo.UpdateAccountByEmail")
	defer span.End()

	return re.update(ctx, span, "email", email, fn)
}

func (re *AccountRepo) UpdateAccountBySessionID(
	ctx context.Context,
	sessionID string,
	fn func(ctx context.Context, a *account.Account) error,
) error {
	ctx, span := re.tracer.Start(ctx, "AccountRepo.UpdateAccountBySessionID")
	defer span.End()

	return re.update(ctx, span, "verification_session_id", sessionID, fn)
}

// update locks the matching row, applies fn to the rehydrated aggregate, and
// writes the result and any recorded events back in one transaction.
func (re *AccountRepo) update(
	ctx context.Context,
	span trace.Span,
	column string,
	arg any,
	fn func(ctx context.Context, a *account.Account) error,
) error {
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	selectquery := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s = $1 FOR UPDATE;`, accountColumns, column)
	updatequery := `
        UPDATE accounts
        SET email = $2, role = $3, status = $4,
            verification_session_id = $5, document_s3_key = $6,
            updated_at = $7
        WHERE id = $1;
    `

	return postgres.WithTx(ctx, re.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto, err := scanAccount(tx.QueryRow(ctx, selectquery, arg))
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get account for update")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return err
		}

		a := AccountToDomain(dto)

		fnerr := fn(ctx, a)
		if fnerr != nil && !errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "failed to apply update function")
			return fnerr
		}

		dto = DomainToAccountDTO(a)

		res, err := tx.Exec(ctx, updatequery,
			dto.ID, dto.Email, dto.Role, dto.Status,
			dto.VerificationSessionID, dto.DocumentKey, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update account")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating account")
			return fmt.Errorf("failed to update account: %w", ErrNoRowsAffected)
		}

		if events := a.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, re.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}

		if fnerr != nil && errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "update function returned an error but is allowed to continue")
			return fnerr
		}
		return nil
	})
}

func scanAccount(row pgx.Row) (AccountDTO, error) {
	var dto AccountDTO
	err := row.Scan(
		&dto.ID, &dto.Email, &dto.Role, &dto.Status,
		&dto.VerificationSessionID, &dto.DocumentKey,
		&dto.CreatedAt, &dto.UpdatedAt,
	)
	return dto, err
}
