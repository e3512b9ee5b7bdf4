package verificationhttp

import (
	"log/slog"
	"net/http"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	verificationapp "gitlab.com/nestar/idverify-backend/internal/application/verification"
	"gitlab.com/nestar/idverify-backend/internal/application/verification/cmd"
	"gitlab.com/nestar/idverify-backend/pkg/httpx"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
	"gitlab.com/nestar/idverify-backend/pkg/otelx"
	"gitlab.com/nestar/idverify-backend/pkg/sanitizex"
	"gitlab.com/nestar/idverify-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("idverify/internal/ports/http/verification")
	logger = otelslog.NewLogger("idverify/internal/ports/http/verification")
)

const maxDocumentSize = 10 << 20 // 10MB

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *verificationapp.Command
	errhandler *httpx.ErrorHandler
	successURL string
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *verificationapp.App
	Errhandler *httpx.ErrorHandler
	// SuccessURL is where the applicant lands after the gateway confirms
	// their identity.
	SuccessURL string
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        &args.App.CMD,
		errhandler: args.Errhandler,
		successURL: args.SuccessURL,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/verification", func(r chi.Router) {
		r.Get("/complete", h.Complete)
		r.Post("/student-id", h.SubmitStudentDocument)
	})
}

func (h *HTTP) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompleteVerification")
	defer span.End()

	sessionID := sanitizex.CleanSingleLine(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		// the gateway redirected without a session reference, nothing to do
		span.AddEvent("callback without session_id")
		h.logger.InfoContext(ctx, "verification callback without session_id, ignoring")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	otelx.SetSpanAttrs(span, map[string]any{"session_id": logging.RedactSessionID(sessionID)})

	if err := validation.Validate(&sessionID, validationx.SessionIDRules...); err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid session id")
		return
	}

	if err := h.cmd.Complete.Handle(ctx, cmd.Complete{SessionID: sessionID}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to complete verification")
		return
	}

	http.Redirect(w, r, h.successURL, http.StatusSeeOther)
}

func (h *HTTP) SubmitStudentDocument(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SubmitStudentDocument")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return
	}

	email := sanitizex.CleanSingleLine(r.FormValue("email"))
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(email)})

	if err := validation.Validate(&email, validationx.EmailRules...); err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid email")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get document file from form")
		return
	}
	defer file.Close()

	res, err := h.cmd.SubmitStudentDocument.Handle(ctx, cmd.SubmitStudentDocument{
		Email:       email,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		File:        file,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to submit student document")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"document_key": res.DocumentKey})
}
