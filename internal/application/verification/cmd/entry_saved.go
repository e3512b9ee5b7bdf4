package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/internal/domain/submission"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
)

type EntrySaved struct {
	Submission *submission.Submission
}

type EntrySavedResult struct {
	// RedirectURL is the gateway's hosted verification page. Empty when the
	// submission starts no document check.
	RedirectURL string
}

type EntrySavedHandler struct {
	tracer    trace.Tracer
	logger    *slog.Logger
	repo      AccountRepo
	gateway   SessionGateway
	returnURL string
}

type EntrySavedHandlerArgs struct {
	Tracer      trace.Tracer
	Logger      *slog.Logger
	AccountRepo AccountRepo
	Gateway     SessionGateway
	ReturnURL   string
}

func NewEntrySavedHandler(args EntrySavedHandlerArgs) *EntrySavedHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &EntrySavedHandler{
		tracer:    args.Tracer,
		logger:    args.Logger,
		repo:      args.AccountRepo,
		gateway:   args.Gateway,
		returnURL: args.ReturnURL,
	}
}

// Handle parks the submitting account and, for document submissions, opens a
// verification session with the gateway.
func (h *EntrySavedHandler) Handle(ctx context.Context, cmd EntrySaved) (EntrySavedResult, error) {
	const op = "cmd.EntrySavedHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "EntrySavedHandler.Handle",
		trace.WithAttributes(
			attribute.String("email", logging.RedactEmail(cmd.Submission.Email())),
			attribute.String("method", cmd.Submission.Method().String()),
		),
	)
	defer span.End()

	if err := h.parkAccount(ctx, cmd.Submission); err != nil {
		return EntrySavedResult{}, errorx.Wrap(err, op)
	}

	if cmd.Submission.Method() != submission.MethodDocument {
		return EntrySavedResult{}, nil
	}

	handle, err := h.gateway.CreateSession(ctx, cmd.Submission.Email(), h.returnURL)
	if err != nil {
		span.AddEvent("failed to create verification session")
		return EntrySavedResult{}, errorx.Wrap(errorx.NewUpstreamServiceError().WithCause(err), op)
	}

	err = h.repo.UpdateAccountByEmail(ctx, cmd.Submission.Email(), func(ctx context.Context, a *account.Account) error {
		return a.StartDocumentVerification(handle.ID)
	})
	if err != nil {
		return EntrySavedResult{}, errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "verification session started",
		slog.String("email", logging.RedactEmail(cmd.Submission.Email())),
		slog.String("session_id", logging.RedactSessionID(handle.ID)),
	)

	return EntrySavedResult{RedirectURL: handle.URL}, nil
}

// parkAccount resets the matching account to pending review. The form host
// provisions the account right before the webhook fires, so a missing account
// is fatal: the submission is aborted, nothing is retried.
func (h *EntrySavedHandler) parkAccount(ctx context.Context, sub *submission.Submission) error {
	const op = "cmd.EntrySavedHandler.parkAccount"

	err := h.repo.UpdateAccountByEmail(ctx, sub.Email(), func(ctx context.Context, a *account.Account) error {
		return a.MarkPending(sub.Role())
	})
	if err != nil {
		return errorx.Wrap(err, op)
	}

	return nil
}
