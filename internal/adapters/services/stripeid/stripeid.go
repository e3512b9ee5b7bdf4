package stripeid

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/nestar/idverify-backend/internal/domain/verification"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/logging"
	"gitlab.com/nestar/idverify-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("idverify/internal/adapters/services/stripeid")
	logger = otelslog.NewLogger("idverify/internal/adapters/services/stripeid")
)

// Client drives Stripe Identity verification sessions. The API key comes
// from configuration; it is never embedded in the binary.
type Client struct {
	tracer trace.Tracer
	logger *slog.Logger
	sc     *client.API
}

func NewClient(apiKey string) *Client {
	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &Client{
		tracer: tracer,
		logger: logger,
		sc:     sc,
	}
}

func (c *Client) CreateSession(ctx context.Context, email, returnURL string) (verification.SessionHandle, error) {
	const op = "stripeid.Client.CreateSession"
	ctx, span := c.tracer.Start(ctx, "stripeid.CreateSession",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(email))),
	)
	defer span.End()

	params := &stripe.IdentityVerificationSessionParams{
		Type:      stripe.String(string(stripe.IdentityVerificationSessionTypeDocument)),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	params.AddMetadata("email", email)

	sess, err := c.sc.IdentityVerificationSessions.New(params)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create verification session")
		return verification.SessionHandle{}, errorx.Wrap(err, op)
	}

	c.logger.DebugContext(ctx, "verification session created",
		slog.String("session_id", logging.RedactSessionID(sess.ID)),
	)

	return verification.SessionHandle{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (verification.Session, error) {
	const op = "stripeid.Client.RetrieveSession"
	ctx, span := c.tracer.Start(ctx, "stripeid.RetrieveSession",
		trace.WithAttributes(attribute.String("session_id", logging.RedactSessionID(sessionID))),
	)
	defer span.End()

	params := &stripe.IdentityVerificationSessionParams{}
	params.Context = ctx

	sess, err := c.sc.IdentityVerificationSessions.Get(sessionID, params)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to retrieve verification session")
		return verification.Session{}, errorx.Wrap(err, op)
	}

	span.SetAttributes(attribute.String("session_status", string(sess.Status)))

	return verification.Session{
		ID:     sess.ID,
		Status: verification.SessionStatus(sess.Status),
		Email:  sess.Metadata["email"],
	}, nil
}
