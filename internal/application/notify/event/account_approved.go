package notifyevent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/internal/domain/valueobject/mails"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
)

func (h *NotifyEventHandler) HandleAccountApproved(ctx context.Context, e *account.Approved) error {
	if e == nil {
		return nil
	}

	l := h.logger.With(
		slog.String("event", "Approved"),
		slog.String("account.id", e.AccountID.String()),
		slog.String("account.email", logging.RedactEmail(e.Email)))

	ctx, span := h.tracer.Start(
		ctx,
		"NotifyEventHandler.HandleAccountApproved",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("account.id", e.AccountID.String()),
			attribute.String("account.email", logging.RedactEmail(e.Email))),
	)
	defer span.End()

	if e.Email == "" {
		l.WarnContext(ctx, "approved event without email, skipping notification")
		return nil
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: "Your account has been approved",
		Body: "Hello,\n\nYour identity has been verified and your account is now active. " +
			"You can sign in right away.\n\nBest regards,\nNestar Team",
	}

	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send approval email")
		l.ErrorContext(ctx, "failed to send approval email", slog.Any("error", err))
		return err
	}

	return nil
}
