package notifyevent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/valueobject/mails"
)

var (
	tracer = otel.Tracer("idverify/application/notify/event")
	logger = otelslog.NewLogger("idverify/application/notify/event")
)

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}

type NotifyEventHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	mailsender MailSender
}

type NotifyEventHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Mailsender MailSender
}

func NewNotifyEventHandler(args NotifyEventHandlerArgs) *NotifyEventHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &NotifyEventHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		mailsender: args.Mailsender,
	}
}
