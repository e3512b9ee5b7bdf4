package cmd

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
	"gitlab.com/nestar/idverify-backend/pkg/otelx"
)

type Complete struct {
	SessionID string
}

type CompleteHandler struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	repo    AccountRepo
	gateway SessionGateway
}

type CompleteHandlerArgs struct {
	Tracer      trace.Tracer
	Logger      *slog.Logger
	AccountRepo AccountRepo
	Gateway     SessionGateway
}

func NewCompleteHandler(args CompleteHandlerArgs) *CompleteHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &CompleteHandler{
		tracer:  args.Tracer,
		logger:  args.Logger,
		repo:    args.AccountRepo,
		gateway: args.Gateway,
	}
}

// Handle re-fetches the session from the gateway and approves the account
// only when the gateway reports it verified. The session status is never
// trusted from the request itself.
func (h *CompleteHandler) Handle(ctx context.Context, cmd Complete) error {
	const op = "cmd.CompleteHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "CompleteHandler.Handle",
		trace.WithAttributes(attribute.String("session_id", logging.RedactSessionID(cmd.SessionID))),
	)
	defer span.End()

	sess, err := h.gateway.RetrieveSession(ctx, cmd.SessionID)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to retrieve verification session")
		return errorx.Wrap(errorx.NewUpstreamServiceError().WithCause(err), op)
	}

	span.SetAttributes(attribute.String("session_status", sess.Status.String()))

	if !sess.IsVerified() {
		h.logger.InfoContext(ctx, "verification session not verified",
			slog.String("session_id", logging.RedactSessionID(cmd.SessionID)),
			slog.String("status", sess.Status.String()),
		)
		return errorx.Wrap(account.ErrVerificationIncomplete, op)
	}

	err = h.approve(ctx, sess.Email, cmd.SessionID)
	if errors.Is(err, account.ErrAlreadyApproved) {
		span.AddEvent("account already approved")
		return nil
	}
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to approve account")
		return errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "account approved",
		slog.String("email", logging.RedactEmail(sess.Email)),
		slog.String("session_id", logging.RedactSessionID(cmd.SessionID)),
	)

	return nil
}

// approve prefers the email recorded in the session's metadata and falls back
// to the stored session id when the gateway returned none.
func (h *CompleteHandler) approve(ctx context.Context, email, sessionID string) error {
	fn := func(ctx context.Context, a *account.Account) error {
		return a.Approve()
	}

	if email != "" {
		return h.repo.UpdateAccountByEmail(ctx, email, fn)
	}

	return h.repo.UpdateAccountBySessionID(ctx, sessionID, fn)
}
