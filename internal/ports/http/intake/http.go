package intakehttp

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	verificationapp "gitlab.com/nestar/idverify-backend/internal/application/verification"
	"gitlab.com/nestar/idverify-backend/internal/application/verification/cmd"
	"gitlab.com/nestar/idverify-backend/internal/domain/submission"
	"gitlab.com/nestar/idverify-backend/pkg/httpx"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
	"gitlab.com/nestar/idverify-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("idverify/internal/ports/http/intake")
	logger = otelslog.NewLogger("idverify/internal/ports/http/intake")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *verificationapp.Command
	errhandler *httpx.ErrorHandler
	formID     int64
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *verificationapp.App
	Errhandler *httpx.ErrorHandler
	// FormID is the registration form this service reacts to. Entries from
	// any other form are acknowledged and ignored.
	FormID int64
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
		formID:     args.FormID,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Post("/v1/forms/entry-saved", h.EntrySaved)
}

// Field names the form host sends for the registration form. Unknown field
// names are ignored.
const (
	fieldEmail  = "email"
	fieldRole   = "role-selector"
	fieldMethod = "verification-method-selector"
)

type EntrySavedRequest struct {
	FormID  int64             `json:"form_id"`
	Success bool              `json:"success"`
	Fields  []EntrySavedField `json:"fields"`
}

type EntrySavedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (req *EntrySavedRequest) Field(name string) string {
	for _, f := range req.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func (req *EntrySavedRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"form_id": req.FormID,
		"success": req.Success,
		"email":   logging.RedactEmail(req.Field(fieldEmail)),
		"method":  req.Field(fieldMethod),
	})
}

func (h *HTTP) EntrySaved(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "EntrySaved")
	defer span.End()

	// Lenient decode: the form host adds payload keys without notice.
	var req EntrySavedRequest
	if err := httpx.ReadJSONLenient(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.SetSpanAttrs(span)

	if req.FormID != h.formID {
		span.AddEvent("entry from unrelated form, ignoring")
		httpx.Success(w, r, http.StatusOK, httpx.Envelope{"ignored": true})
		return
	}
	if !req.Success {
		span.AddEvent("entry not saved successfully, ignoring")
		httpx.Success(w, r, http.StatusOK, httpx.Envelope{"ignored": true})
		return
	}

	sub, err := submission.New(req.Field(fieldEmail), req.Field(fieldRole), req.Field(fieldMethod))
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid form submission")
		return
	}

	res, err := h.cmd.EntrySaved.Handle(ctx, cmd.EntrySaved{Submission: sub})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to process form entry")
		return
	}

	if res.RedirectURL == "" {
		httpx.Success(w, r, http.StatusAccepted, nil)
		return
	}

	span.SetAttributes(attribute.Bool("redirected", true))
	writeRedirectPage(w, r, res.RedirectURL)
}

// writeRedirectPage sends the applicant to the gateway's hosted verification
// page. Meta refresh plus a script fallback, since the form plugin renders
// the webhook response inside the page.
func writeRedirectPage(w http.ResponseWriter, r *http.Request, url string) {
	escaped := html.EscapeString(url)
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta http-equiv="refresh" content="0;url=%s">
<script>window.location.href=%q;</script>
</head>
<body>Redirecting you to identity verification&hellip; <a href="%s">Continue</a></body>
</html>
`, escaped, url, escaped)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		slog.ErrorContext(r.Context(), "failed to write redirect page", "error", err)
	}
}
