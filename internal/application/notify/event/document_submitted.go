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

func (h *NotifyEventHandler) HandleDocumentSubmitted(ctx context.Context, e *account.DocumentSubmitted) error {
	if e == nil {
		return nil
	}

	l := h.logger.With(
		slog.String("event", "DocumentSubmitted"),
		slog.String("account.id", e.AccountID.String()),
		slog.String("account.email", logging.RedactEmail(e.Email)))

	ctx, span := h.tracer.Start(
		ctx,
		"NotifyEventHandler.HandleDocumentSubmitted",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("account.id", e.AccountID.String()),
			attribute.String("account.email", logging.RedactEmail(e.Email))),
	)
	defer span.End()

	if e.Email == "" {
		l.WarnContext(ctx, "document submitted event without email, skipping notification")
		return nil
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: "We received your student ID",
		Body: "Hello,\n\nWe received your student ID document. " +
			"Our team will review it shortly and you will be notified once your account is approved.\n\n" +
			"Best regards,\nNestar Team",
	}

	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send document receipt email")
		l.ErrorContext(ctx, "failed to send document receipt email", slog.Any("error", err))
		return err
	}

	return nil
}
