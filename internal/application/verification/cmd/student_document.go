package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
)

type SubmitStudentDocument struct {
	Email       string
	Filename    string
	ContentType string
	File        io.Reader
}

type SubmitStudentDocumentResult struct {
	DocumentKey string
}

type SubmitStudentDocumentHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   AccountRepo
	store  DocumentStore
}

type SubmitStudentDocumentHandlerArgs struct {
	Tracer      trace.Tracer
	Logger      *slog.Logger
	AccountRepo AccountRepo
	Store       DocumentStore
}

func NewSubmitStudentDocumentHandler(args SubmitStudentDocumentHandlerArgs) *SubmitStudentDocumentHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &SubmitStudentDocumentHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.AccountRepo,
		store:  args.Store,
	}
}

// Handle stores the uploaded student ID and records it on the account. The
// account stays parked: student ID uploads are approved by a reviewer, not
// automatically.
func (h *SubmitStudentDocumentHandler) Handle(ctx context.Context, cmd SubmitStudentDocument) (SubmitStudentDocumentResult, error) {
	const op = "cmd.SubmitStudentDocumentHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "SubmitStudentDocumentHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	// The account is resolved before the upload so a rejected submission
	// leaves no orphan object in the bucket.
	if _, err := h.repo.GetAccountByEmail(ctx, cmd.Email); err != nil {
		span.AddEvent("failed to resolve account")
		return SubmitStudentDocumentResult{}, errorx.Wrap(err, op)
	}

	key := documentKey(cmd.Filename)

	if err := h.store.UploadFile(ctx, key, cmd.File, cmd.ContentType); err != nil {
		span.AddEvent("failed to upload document")
		return SubmitStudentDocumentResult{}, errorx.Wrap(errorx.NewUpstreamServiceError().WithCause(err), op)
	}

	err := h.repo.UpdateAccountByEmail(ctx, cmd.Email, func(ctx context.Context, a *account.Account) error {
		return a.AttachStudentDocument(key)
	})
	if err != nil {
		return SubmitStudentDocumentResult{}, errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "student document submitted",
		slog.String("email", logging.RedactEmail(cmd.Email)),
		slog.String("document_key", key),
	)

	return SubmitStudentDocumentResult{DocumentKey: key}, nil
}

func documentKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("documents/%s%s", uuid.NewString(), ext)
}
